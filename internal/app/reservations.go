package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/metinatakli/theater-reservation-system/api"
	"github.com/metinatakli/theater-reservation-system/internal/domain"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

func (app *application) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req api.CreateReservationRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	reservation := &domain.Reservation{
		UserID: app.contextGetUserId(r),
		ShowID: req.ShowId,
		SeatID: req.SeatId,
	}

	err = app.reservationRepo.Create(r.Context(), reservation)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatAlreadyReserved):
			app.conflictResponse(w, r, "this seat is already reserved for the show")
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		detail, err := app.reservationRepo.GetDetailById(ctx, reservation.ID)
		if err != nil {
			app.logger.Error("failed to load reservation for admin alert", "error", err, "reservation_id", reservation.ID)
			return
		}

		data := map[string]any{
			"userName":   detail.UserName,
			"showTitle":  detail.ShowTitle,
			"showDate":   detail.ShowDate.Format("2006-01-02"),
			"showTime":   detail.ShowTime,
			"seatNumber": detail.SeatNumber,
		}

		err = app.mailer.Send(app.config.adminEmail, "reservation_admin_alert.tmpl", data)
		if err != nil {
			app.logger.Error("failed to send admin alert email", "error", err, "reservation_id", reservation.ID)
		}
	})

	resp := api.ReservationResponse{
		Id:         reservation.ID,
		ShowId:     reservation.ShowID,
		SeatId:     reservation.SeatID,
		Status:     string(reservation.Status),
		ReservedAt: reservation.ReservedAt,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetReservationsOfUser(w http.ResponseWriter, r *http.Request) {
	pagination, err := app.readPagination(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userID := app.contextGetUserId(r)

	summaries, metadata, err := app.reservationRepo.GetSummariesByUserId(r.Context(), userID, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toUserReservationsResponse(summaries, metadata), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetUserReservationById(w http.ResponseWriter, r *http.Request) {
	reservationID, err := app.readIDParam(r, "reservationId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	detail, err := app.reservationRepo.GetDetailById(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	// Hide other users' reservations rather than admit they exist.
	if detail.UserID != app.contextGetUserId(r) {
		app.notFoundResponse(w, r)
		return
	}

	resp := api.ReservationDetailResponse{
		Id:          detail.ReservationID,
		ShowTitle:   detail.ShowTitle,
		TheaterName: detail.TheaterName,
		SeatNumber:  detail.SeatNumber,
		Date:        openapi_types.Date{Time: detail.ShowDate},
		Time:        detail.ShowTime,
		Status:      string(detail.Status),
		Price:       detail.Price,
		ReservedAt:  detail.ReservedAt,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) ListReservations(w http.ResponseWriter, r *http.Request) {
	pagination, err := app.readPagination(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	summaries, metadata, err := app.reservationRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toUserReservationsResponse(summaries, metadata), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) CancelReservation(w http.ResponseWriter, r *http.Request) {
	reservationID, err := app.readIDParam(r, "reservationId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	reservation, err := app.reservationRepo.GetById(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if !app.canAccessReservation(r, reservation) {
		app.notFoundResponse(w, r)
		return
	}

	err = app.reservationRepo.Cancel(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTransition):
			app.conflictResponse(w, r, "this reservation is already cancelled")
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toUserReservationsResponse(summaries []domain.ReservationSummary, metadata *domain.Metadata) api.UserReservationsResponse {
	resp := api.UserReservationsResponse{
		Reservations: make([]api.ReservationSummary, 0, len(summaries)),
		Metadata:     toMetadataResponse(metadata),
	}

	for _, summary := range summaries {
		resp.Reservations = append(resp.Reservations, api.ReservationSummary{
			Id:          summary.ReservationID,
			ShowTitle:   summary.ShowTitle,
			TheaterName: summary.TheaterName,
			SeatNumber:  summary.SeatNumber,
			Date:        openapi_types.Date{Time: summary.ShowDate},
			Time:        summary.ShowTime,
			Status:      string(summary.Status),
			ReservedAt:  summary.ReservedAt,
		})
	}

	return resp
}
