package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/theater-reservation-system/internal/domain"
)

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

// Create issues the ticket with a single guarded insert: the inner select
// enforces the paid precondition and the unique constraint on reservation_id
// enforces at-most-one ticket, so concurrent issuance cannot produce two rows.
func (p *PostgresTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	query := `
		INSERT INTO tickets (reservation_id, ticket_number)
		SELECT r.id, $2
		FROM reservations r
		WHERE r.id = $1 AND r.status = 'paid'
		RETURNING id, issued_at
	`

	err := p.db.QueryRow(ctx, query, ticket.ReservationID, ticket.TicketNumber).
		Scan(&ticket.ID, &ticket.IssuedAt)

	if err == nil {
		return nil
	}

	if isUniqueViolation(err) {
		return domain.ErrTicketAlreadyIssued
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	// No row inserted: either the reservation does not exist or it is unpaid.
	var exists bool

	existsErr := p.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM reservations WHERE id = $1)`,
		ticket.ReservationID).Scan(&exists)

	if existsErr != nil {
		return existsErr
	}

	if !exists {
		return domain.ErrRecordNotFound
	}

	return domain.ErrReservationNotPaid
}

func (p *PostgresTicketRepository) GetByReservationId(
	ctx context.Context,
	reservationID int) (*domain.Ticket, error) {

	query := `
		SELECT id, reservation_id, ticket_number, issued_at
		FROM tickets
		WHERE reservation_id = $1
	`

	var ticket domain.Ticket

	err := p.db.QueryRow(ctx, query, reservationID).Scan(
		&ticket.ID,
		&ticket.ReservationID,
		&ticket.TicketNumber,
		&ticket.IssuedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &ticket, nil
}
