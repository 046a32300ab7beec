package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/theater-reservation-system/api"
	"github.com/metinatakli/theater-reservation-system/internal/domain"
)

func (app *application) CreateSeat(w http.ResponseWriter, r *http.Request) {
	var req api.CreateSeatRequest

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

	if req.Price.IsNegative() {
		app.errorResponse(w, r, http.StatusUnprocessableEntity, "price must not be negative")
		return
	}

	seat := &domain.Seat{
		TheaterID:  req.TheaterId,
		SeatNumber: req.SeatNumber,
	}

	err = app.seatRepo.Create(r.Context(), seat, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatAlreadyExists):
			app.conflictResponse(w, r, "a seat with this number already exists in the theater")
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := api.SeatResponse{
		Id:         seat.ID,
		TheaterId:  seat.TheaterID,
		SeatNumber: seat.SeatNumber,
		Price:      req.Price,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetSeatMapByShow(w http.ResponseWriter, r *http.Request) {
	showID, err := app.readIDParam(r, "showId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	seatMap, err := app.seatRepo.GetSeatMapByShow(r.Context(), showID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := api.SeatMapResponse{
		ShowId:      seatMap.ShowID,
		ShowTitle:   seatMap.ShowTitle,
		TheaterId:   seatMap.TheaterID,
		TheaterName: seatMap.TheaterName,
		Seats:       make([]api.SeatMapSeat, 0, len(seatMap.Seats)),
	}
	for _, seat := range seatMap.Seats {
		resp.Seats = append(resp.Seats, api.SeatMapSeat{
			Id:         seat.ID,
			SeatNumber: seat.SeatNumber,
			Price:      seat.Price,
			Available:  seat.Available,
		})
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
