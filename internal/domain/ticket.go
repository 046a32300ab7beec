package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	ID            int
	ReservationID int
	TicketNumber  string
	IssuedAt      time.Time
}

// NewTicketNumber returns a globally unique ticket number. Uniqueness comes
// from the embedded UUID, so concurrent issuance never needs coordination.
func NewTicketNumber() string {
	return "TKT-" + strings.ToUpper(uuid.NewString())
}

type TicketRepository interface {
	// Create issues the ticket for a paid reservation as an atomic guarded
	// insert. An unpaid reservation yields ErrReservationNotPaid, a missing one
	// ErrRecordNotFound, and a second ticket for the same reservation
	// ErrTicketAlreadyIssued.
	Create(ctx context.Context, ticket *Ticket) error
	GetByReservationId(ctx context.Context, reservationID int) (*Ticket, error)
}
