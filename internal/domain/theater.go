package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Theater struct {
	ID         int
	Name       string
	Location   string
	TotalSeats int
	CreatedAt  time.Time
}

type TheaterRepository interface {
	// Create inserts the theater and bulk-creates its seats, numbered 1..TotalSeats,
	// each with a base pricing row, in a single transaction.
	Create(ctx context.Context, theater *Theater, basePrice decimal.Decimal) error
	GetAll(ctx context.Context, location string, pagination Pagination) ([]Theater, *Metadata, error)
	GetById(ctx context.Context, id int) (*Theater, error)
}
