package domain

import (
	"context"
	"time"
)

type Show struct {
	ID          int
	TheaterID   int
	Title       string
	Description string
	Date        time.Time
	Time        string
	CreatedAt   time.Time
}

type ShowRepository interface {
	// Create inserts the show. The (theater, date, time) triple is unique;
	// a duplicate yields ErrShowAlreadyExists.
	Create(ctx context.Context, show *Show) error
	GetAll(ctx context.Context, theaterID int, pagination Pagination) ([]Show, *Metadata, error)
	GetById(ctx context.Context, id int) (*Show, error)
}
