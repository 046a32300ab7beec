package domain

import "errors"

var (
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrRecordNotFound      = errors.New("record not found")
	ErrEditConflict        = errors.New("edit conflict")
	ErrSeatAlreadyReserved = errors.New("seat is already reserved for this show")
	ErrSeatAlreadyExists   = errors.New("seat number already exists in this theater")
	ErrShowAlreadyExists   = errors.New("a show is already scheduled at this theater for that date and time")
	ErrTicketAlreadyIssued = errors.New("ticket has already been issued for this reservation")
	ErrReservationNotPaid  = errors.New("reservation has not been paid")
	ErrInvalidTransition   = errors.New("reservation status transition not permitted")
)
