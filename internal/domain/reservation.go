package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	ReservationStatusReserved  ReservationStatus = "reserved"
	ReservationStatusPaid      ReservationStatus = "paid"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// CanTransitionTo reports whether the status change is permitted.
// reserved -> paid, reserved -> cancelled and paid -> cancelled are the only
// real transitions; cancelled is terminal. A no-op transition to the current
// status is allowed for paid so that repeated payment confirmations stay
// idempotent.
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	switch s {
	case ReservationStatusReserved:
		return target == ReservationStatusPaid || target == ReservationStatusCancelled
	case ReservationStatusPaid:
		return target == ReservationStatusPaid || target == ReservationStatusCancelled
	default:
		return false
	}
}

type Reservation struct {
	ID         int
	UserID     int
	ShowID     int
	SeatID     int
	Status     ReservationStatus
	ReservedAt time.Time
}

type ReservationSummary struct {
	ReservationID int
	ShowTitle     string
	TheaterName   string
	SeatNumber    int
	ShowDate      time.Time
	ShowTime      string
	Status        ReservationStatus
	ReservedAt    time.Time
}

type ReservationDetail struct {
	ReservationID int
	UserID        int
	UserEmail     string
	UserName      string
	ShowTitle     string
	TheaterName   string
	SeatNumber    int
	ShowDate      time.Time
	ShowTime      string
	Status        ReservationStatus
	Price         decimal.Decimal
	ReservedAt    time.Time
}

type ReservationRepository interface {
	// Create inserts the reservation with status "reserved". The check that the
	// (show, seat) pair is free and the insert are a single guarded statement:
	// a taken pair yields ErrSeatAlreadyReserved, a missing show or seat (or a
	// seat outside the show's theater) yields ErrRecordNotFound.
	Create(ctx context.Context, reservation *Reservation) error
	GetById(ctx context.Context, id int) (*Reservation, error)
	GetDetailById(ctx context.Context, id int) (*ReservationDetail, error)
	GetSummariesByUserId(ctx context.Context, userID int, pagination Pagination) ([]ReservationSummary, *Metadata, error)
	GetAll(ctx context.Context, pagination Pagination) ([]ReservationSummary, *Metadata, error)
	// GetDetailsByShowDate returns non-cancelled reservations for shows on the
	// given date, with user contact data, for reminders and the daily report.
	GetDetailsByShowDate(ctx context.Context, date time.Time) ([]ReservationDetail, error)
	// MarkPaid transitions the reservation to paid. Confirming an already paid
	// reservation is a no-op.
	MarkPaid(ctx context.Context, id int) error
	// Cancel transitions the reservation to cancelled, from either reserved or
	// paid. Cancelling twice yields ErrInvalidTransition.
	Cancel(ctx context.Context, id int) error
}
