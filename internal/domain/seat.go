package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type Seat struct {
	ID         int
	TheaterID  int
	SeatNumber int
}

// SeatPricing carries a price tier for a seat. A seat may have several pricing
// rows; the lowest one is treated as the base price when quoting availability.
type SeatPricing struct {
	ID     int
	SeatID int
	Price  decimal.Decimal
}

// ShowSeatMap is the per-show availability view of a theater's seat inventory.
// Reservation state lives on the (show, seat) pair, not on the seat itself, so
// the same seat can be free for one show and taken for another.
type ShowSeatMap struct {
	ShowID      int
	ShowTitle   string
	TheaterID   int
	TheaterName string
	Seats       []ShowSeat
}

type ShowSeat struct {
	ID         int
	SeatNumber int
	Price      decimal.Decimal
	Available  bool
}

type SeatRepository interface {
	// Create inserts a single seat with a pricing row. Seat numbers are unique
	// within a theater; a duplicate yields ErrSeatAlreadyExists.
	Create(ctx context.Context, seat *Seat, price decimal.Decimal) error
	GetSeatMapByShow(ctx context.Context, showID int) (*ShowSeatMap, error)
}
