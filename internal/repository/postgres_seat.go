package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/theater-reservation-system/internal/domain"
	"github.com/shopspring/decimal"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

func (p *PostgresSeatRepository) Create(
	ctx context.Context,
	seat *domain.Seat,
	price decimal.Decimal) error {

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO seats (theater_id, seat_number)
			VALUES ($1, $2)
			RETURNING id
		`

		err := tx.QueryRow(ctx, query, seat.TheaterID, seat.SeatNumber).Scan(&seat.ID)
		if err != nil {
			switch {
			case isUniqueViolation(err):
				return domain.ErrSeatAlreadyExists
			case isForeignKeyViolation(err):
				return domain.ErrRecordNotFound
			}

			return err
		}

		query = `INSERT INTO seat_pricing (seat_id, price) VALUES ($1, $2)`

		_, err = tx.Exec(ctx, query, seat.ID, price)

		return err
	})
}

// GetSeatMapByShow returns every seat of the show's theater with its base
// price and whether it is still free for that show. Seats are free unless a
// non-cancelled reservation exists for the (show, seat) pair.
func (p *PostgresSeatRepository) GetSeatMapByShow(
	ctx context.Context,
	showID int) (*domain.ShowSeatMap, error) {

	query := `
		SELECT
			sh.id,
			sh.title,
			t.id,
			t.name,
			se.id,
			se.seat_number,
			COALESCE(MIN(sp.price), 0),
			NOT EXISTS (
				SELECT 1 FROM reservations r
				WHERE r.show_id = sh.id
					AND r.seat_id = se.id
					AND r.status <> 'cancelled'
			) AS available
		FROM shows sh
		JOIN theaters t ON sh.theater_id = t.id
		JOIN seats se ON se.theater_id = t.id
		LEFT JOIN seat_pricing sp ON sp.seat_id = se.id
		WHERE sh.id = $1
		GROUP BY sh.id, sh.title, t.id, t.name, se.id, se.seat_number
		ORDER BY se.seat_number
	`

	rows, err := p.db.Query(ctx, query, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seatMap domain.ShowSeatMap

	for rows.Next() {
		var seat domain.ShowSeat

		err = rows.Scan(
			&seatMap.ShowID,
			&seatMap.ShowTitle,
			&seatMap.TheaterID,
			&seatMap.TheaterName,
			&seat.ID,
			&seat.SeatNumber,
			&seat.Price,
			&seat.Available,
		)
		if err != nil {
			return nil, err
		}

		seatMap.Seats = append(seatMap.Seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(seatMap.Seats) == 0 {
		return nil, domain.ErrRecordNotFound
	}

	return &seatMap, nil
}
