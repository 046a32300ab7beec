package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/theater-reservation-system/internal/domain"
	"github.com/shopspring/decimal"
)

type PostgresTheaterRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTheaterRepository(db *pgxpool.Pool) *PostgresTheaterRepository {
	return &PostgresTheaterRepository{
		db: db,
	}
}

func (p *PostgresTheaterRepository) Create(
	ctx context.Context,
	theater *domain.Theater,
	basePrice decimal.Decimal) error {

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO theaters (name, location, total_seats)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`

		err := tx.QueryRow(ctx, query, theater.Name, theater.Location, theater.TotalSeats).
			Scan(&theater.ID, &theater.CreatedAt)
		if err != nil {
			return err
		}

		rows := make([][]any, 0, theater.TotalSeats)
		for seatNumber := 1; seatNumber <= theater.TotalSeats; seatNumber++ {
			rows = append(rows, []any{theater.ID, seatNumber})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"seats"},
			[]string{"theater_id", "seat_number"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return err
		}

		query = `
			INSERT INTO seat_pricing (seat_id, price)
			SELECT id, $1 FROM seats WHERE theater_id = $2
		`

		_, err = tx.Exec(ctx, query, basePrice, theater.ID)

		return err
	})
}

func (p *PostgresTheaterRepository) GetAll(
	ctx context.Context,
	location string,
	pagination domain.Pagination) ([]domain.Theater, *domain.Metadata, error) {

	query := `
		SELECT COUNT(*) OVER(), id, name, location, total_seats, created_at
		FROM theaters
		WHERE ($1 = '' OR location = $1)
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, location, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	theaters := make([]domain.Theater, 0)
	totalRecords := 0

	for rows.Next() {
		var theater domain.Theater

		err := rows.Scan(
			&totalRecords,
			&theater.ID,
			&theater.Name,
			&theater.Location,
			&theater.TotalSeats,
			&theater.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		theaters = append(theaters, theater)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return theaters, metadata, nil
}

func (p *PostgresTheaterRepository) GetById(ctx context.Context, id int) (*domain.Theater, error) {
	query := `
		SELECT id, name, location, total_seats, created_at
		FROM theaters
		WHERE id = $1
	`

	var theater domain.Theater

	err := p.db.QueryRow(ctx, query, id).Scan(
		&theater.ID,
		&theater.Name,
		&theater.Location,
		&theater.TotalSeats,
		&theater.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &theater, nil
}
