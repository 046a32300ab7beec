package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/theater-reservation-system/internal/domain"
)

type PostgresShowRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowRepository(db *pgxpool.Pool) *PostgresShowRepository {
	return &PostgresShowRepository{
		db: db,
	}
}

func (p *PostgresShowRepository) Create(ctx context.Context, show *domain.Show) error {
	query := `
		INSERT INTO shows (theater_id, title, description, show_date, show_time)
		VALUES ($1, $2, $3, $4, $5::time)
		RETURNING id, created_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		show.TheaterID,
		show.Title,
		show.Description,
		show.Date,
		show.Time).Scan(&show.ID, &show.CreatedAt)

	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrShowAlreadyExists
		case isForeignKeyViolation(err):
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

func (p *PostgresShowRepository) GetAll(
	ctx context.Context,
	theaterID int,
	pagination domain.Pagination) ([]domain.Show, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			id,
			theater_id,
			title,
			description,
			show_date,
			to_char(show_time, 'HH24:MI'),
			created_at
		FROM shows
		WHERE ($1 = 0 OR theater_id = $1)
		ORDER BY show_date, show_time
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, theaterID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	shows := make([]domain.Show, 0)
	totalRecords := 0

	for rows.Next() {
		var show domain.Show

		err := rows.Scan(
			&totalRecords,
			&show.ID,
			&show.TheaterID,
			&show.Title,
			&show.Description,
			&show.Date,
			&show.Time,
			&show.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		shows = append(shows, show)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return shows, metadata, nil
}

func (p *PostgresShowRepository) GetById(ctx context.Context, id int) (*domain.Show, error) {
	query := `
		SELECT id, theater_id, title, description, show_date, to_char(show_time, 'HH24:MI'), created_at
		FROM shows
		WHERE id = $1
	`

	var show domain.Show

	err := p.db.QueryRow(ctx, query, id).Scan(
		&show.ID,
		&show.TheaterID,
		&show.Title,
		&show.Description,
		&show.Date,
		&show.Time,
		&show.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &show, nil
}
