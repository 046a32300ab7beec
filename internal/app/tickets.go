package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/theater-reservation-system/api"
	"github.com/metinatakli/theater-reservation-system/internal/domain"
)

func (app *application) IssueTicket(w http.ResponseWriter, r *http.Request) {
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

	ticket := &domain.Ticket{
		ReservationID: reservationID,
		TicketNumber:  domain.NewTicketNumber(),
	}

	err = app.ticketRepo.Create(r.Context(), ticket)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTicketAlreadyIssued):
			app.conflictResponse(w, r, "a ticket has already been issued for this reservation")
		case errors.Is(err, domain.ErrReservationNotPaid):
			app.conflictResponse(w, r, "the reservation must be paid before a ticket can be issued")
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := toTicketResponse(ticket)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetTicket(w http.ResponseWriter, r *http.Request) {
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

	ticket, err := app.ticketRepo.GetByReservationId(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := toTicketResponse(ticket)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toTicketResponse(ticket *domain.Ticket) api.TicketResponse {
	return api.TicketResponse{
		ReservationId: ticket.ReservationID,
		TicketNumber:  ticket.TicketNumber,
		IssuedAt:      ticket.IssuedAt,
	}
}
