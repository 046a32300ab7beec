package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/theater-reservation-system/internal/domain"
)

type PostgresReservationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReservationRepository(db *pgxpool.Pool) *PostgresReservationRepository {
	return &PostgresReservationRepository{
		db: db,
	}
}

// Create inserts the reservation as a single guarded statement. The join
// proves the seat belongs to the show's theater, and the partial unique index
// on (show_id, seat_id) makes the availability check and the insert one
// indivisible unit: under concurrent requests for the same seat at most one
// insert succeeds, the rest surface as unique violations.
func (p *PostgresReservationRepository) Create(
	ctx context.Context,
	reservation *domain.Reservation) error {

	query := `
		INSERT INTO reservations (user_id, show_id, seat_id)
		SELECT $1, sh.id, se.id
		FROM shows sh
		JOIN seats se ON se.theater_id = sh.theater_id AND se.id = $3
		WHERE sh.id = $2
		RETURNING id, status, reserved_at
	`

	err := p.db.QueryRow(ctx, query, reservation.UserID, reservation.ShowID, reservation.SeatID).
		Scan(&reservation.ID, &reservation.Status, &reservation.ReservedAt)

	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return domain.ErrRecordNotFound
		case isUniqueViolation(err):
			return domain.ErrSeatAlreadyReserved
		}

		return err
	}

	return nil
}

func (p *PostgresReservationRepository) GetById(ctx context.Context, id int) (*domain.Reservation, error) {
	query := `
		SELECT id, user_id, show_id, seat_id, status, reserved_at
		FROM reservations
		WHERE id = $1
	`

	var reservation domain.Reservation

	err := p.db.QueryRow(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.ShowID,
		&reservation.SeatID,
		&reservation.Status,
		&reservation.ReservedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &reservation, nil
}

func (p *PostgresReservationRepository) GetDetailById(
	ctx context.Context,
	id int) (*domain.ReservationDetail, error) {

	query := `
		SELECT
			r.id,
			u.id,
			u.email,
			u.first_name || ' ' || u.last_name,
			sh.title,
			t.name,
			se.seat_number,
			sh.show_date,
			to_char(sh.show_time, 'HH24:MI'),
			r.status,
			COALESCE(MIN(sp.price), 0),
			r.reserved_at
		FROM reservations r
		JOIN users u ON r.user_id = u.id
		JOIN shows sh ON r.show_id = sh.id
		JOIN theaters t ON sh.theater_id = t.id
		JOIN seats se ON r.seat_id = se.id
		LEFT JOIN seat_pricing sp ON sp.seat_id = se.id
		WHERE r.id = $1
		GROUP BY r.id, u.id, sh.id, t.id, se.id
	`

	var detail domain.ReservationDetail

	err := p.db.QueryRow(ctx, query, id).Scan(
		&detail.ReservationID,
		&detail.UserID,
		&detail.UserEmail,
		&detail.UserName,
		&detail.ShowTitle,
		&detail.TheaterName,
		&detail.SeatNumber,
		&detail.ShowDate,
		&detail.ShowTime,
		&detail.Status,
		&detail.Price,
		&detail.ReservedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &detail, nil
}

func (p *PostgresReservationRepository) GetSummariesByUserId(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.ReservationSummary, *domain.Metadata, error) {

	return p.getSummaries(ctx, userID, pagination)
}

func (p *PostgresReservationRepository) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.ReservationSummary, *domain.Metadata, error) {

	return p.getSummaries(ctx, 0, pagination)
}

func (p *PostgresReservationRepository) getSummaries(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.ReservationSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			r.id,
			sh.title,
			t.name,
			se.seat_number,
			sh.show_date,
			to_char(sh.show_time, 'HH24:MI'),
			r.status,
			r.reserved_at
		FROM reservations r
		JOIN shows sh ON r.show_id = sh.id
		JOIN theaters t ON sh.theater_id = t.id
		JOIN seats se ON r.seat_id = se.id
		WHERE ($1 = 0 OR r.user_id = $1)
		ORDER BY r.reserved_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	reservations := make([]domain.ReservationSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var reservation domain.ReservationSummary

		err := rows.Scan(
			&totalRecords,
			&reservation.ReservationID,
			&reservation.ShowTitle,
			&reservation.TheaterName,
			&reservation.SeatNumber,
			&reservation.ShowDate,
			&reservation.ShowTime,
			&reservation.Status,
			&reservation.ReservedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		reservations = append(reservations, reservation)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return reservations, metadata, nil
}

func (p *PostgresReservationRepository) GetDetailsByShowDate(
	ctx context.Context,
	date time.Time) ([]domain.ReservationDetail, error) {

	query := `
		SELECT
			r.id,
			u.id,
			u.email,
			u.first_name || ' ' || u.last_name,
			sh.title,
			t.name,
			se.seat_number,
			sh.show_date,
			to_char(sh.show_time, 'HH24:MI'),
			r.status,
			COALESCE(MIN(sp.price), 0),
			r.reserved_at
		FROM reservations r
		JOIN users u ON r.user_id = u.id
		JOIN shows sh ON r.show_id = sh.id
		JOIN theaters t ON sh.theater_id = t.id
		JOIN seats se ON r.seat_id = se.id
		LEFT JOIN seat_pricing sp ON sp.seat_id = se.id
		WHERE sh.show_date = $1 AND r.status <> 'cancelled'
		GROUP BY r.id, u.id, sh.id, t.id, se.id
		ORDER BY sh.show_time, se.seat_number
	`

	rows, err := p.db.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]domain.ReservationDetail, 0)

	for rows.Next() {
		var detail domain.ReservationDetail

		err := rows.Scan(
			&detail.ReservationID,
			&detail.UserID,
			&detail.UserEmail,
			&detail.UserName,
			&detail.ShowTitle,
			&detail.TheaterName,
			&detail.SeatNumber,
			&detail.ShowDate,
			&detail.ShowTime,
			&detail.Status,
			&detail.Price,
			&detail.ReservedAt,
		)
		if err != nil {
			return nil, err
		}

		details = append(details, detail)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}

func (p *PostgresReservationRepository) MarkPaid(ctx context.Context, id int) error {
	return p.transition(ctx, id, domain.ReservationStatusPaid)
}

func (p *PostgresReservationRepository) Cancel(ctx context.Context, id int) error {
	return p.transition(ctx, id, domain.ReservationStatusCancelled)
}

// transition applies the status state machine under a row lock so concurrent
// transitions serialize instead of skipping states.
func (p *PostgresReservationRepository) transition(
	ctx context.Context,
	id int,
	target domain.ReservationStatus) error {

	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var current domain.ReservationStatus

		query := `SELECT status FROM reservations WHERE id = $1 FOR UPDATE`

		err := tx.QueryRow(ctx, query, id).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		if current == target && target == domain.ReservationStatusPaid {
			return nil
		}

		if !current.CanTransitionTo(target) {
			return domain.ErrInvalidTransition
		}

		_, err = tx.Exec(ctx, `UPDATE reservations SET status = $1 WHERE id = $2`, target, id)

		return err
	})
}
