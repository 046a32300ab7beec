package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/metinatakli/theater-reservation-system/api"
	"github.com/metinatakli/theater-reservation-system/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

func (app *application) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
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

	if detail.UserID != app.contextGetUserId(r) {
		app.notFoundResponse(w, r)
		return
	}

	switch detail.Status {
	case domain.ReservationStatusPaid:
		app.conflictResponse(w, r, "this reservation has already been paid")
		return
	case domain.ReservationStatusCancelled:
		app.conflictResponse(w, r, "this reservation has been cancelled")
		return
	}

	user, err := app.userRepo.GetById(r.Context(), detail.UserID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	session, err := app.paymentProvider.CreateCheckoutSession(user, detail)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.CheckoutSessionResponse{RedirectUrl: session.URL}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// StripeWebhookHandler confirms payments. On checkout.session.completed it
// marks the reservation paid, issues the ticket and emails the confirmation.
// Stripe retries failed deliveries, so every step tolerates replays.
func (app *application) StripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 65536))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		r.Header.Get("Stripe-Signature"),
		app.config.stripe.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		app.logError(r, err)
		app.errorResponse(w, r, http.StatusBadRequest, "invalid webhook signature")
		return
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		w.WriteHeader(http.StatusOK)
		return
	}

	var session stripe.CheckoutSession
	err = json.Unmarshal(event.Data.Raw, &session)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reservationID, err := strconv.Atoi(session.Metadata["reservation_id"])
	if err != nil {
		app.badRequestResponse(w, r, errors.New("webhook payload is missing the reservation id"))
		return
	}

	err = app.reservationRepo.MarkPaid(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, err)
		case errors.Is(err, domain.ErrInvalidTransition):
			app.conflictResponse(w, r, "this reservation can no longer be paid")
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	ticket := &domain.Ticket{
		ReservationID: reservationID,
		TicketNumber:  domain.NewTicketNumber(),
	}

	err = app.ticketRepo.Create(r.Context(), ticket)
	if err != nil && !errors.Is(err, domain.ErrTicketAlreadyIssued) {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.background(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		detail, err := app.reservationRepo.GetDetailById(ctx, reservationID)
		if err != nil {
			app.logger.Error("failed to load reservation for payment confirmation", "error", err, "reservation_id", reservationID)
			return
		}

		// Re-read the ticket so a replayed webhook mails the original number.
		issued, err := app.ticketRepo.GetByReservationId(ctx, reservationID)
		if err != nil {
			app.logger.Error("failed to load ticket for payment confirmation", "error", err, "reservation_id", reservationID)
			return
		}

		data := map[string]any{
			"userName":     detail.UserName,
			"showTitle":    detail.ShowTitle,
			"showDate":     detail.ShowDate.Format("2006-01-02"),
			"showTime":     detail.ShowTime,
			"seatNumber":   detail.SeatNumber,
			"ticketNumber": issued.TicketNumber,
		}

		err = app.mailer.Send(detail.UserEmail, "payment_confirmation.tmpl", data)
		if err != nil {
			app.logger.Error("failed to send payment confirmation email", "error", err, "reservation_id", reservationID)
		}
	})

	w.WriteHeader(http.StatusOK)
}
