package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/circa/reservations/internal/model"
)

// SQLReservationRepo stores reservations through database/sql. It serves the
// MySQL and SQLite drivers, which share '?' placeholders. All timestamps are
// assigned by the database.
type SQLReservationRepo struct {
	db *sql.DB
}

// NewSQLReservationRepo returns a repository bound to db. The schema must
// already exist (see database.Migrate).
func NewSQLReservationRepo(db *sql.DB) *SQLReservationRepo { return &SQLReservationRepo{db: db} }

const reservationColumns = `id, name, email, phone, reservation_date, reservation_time, guests, message, created_at`

// Create inserts a reservation and reads the stored row back so the caller
// sees the generated id and timestamp.
func (r *SQLReservationRepo) Create(ctx context.Context, in model.NewReservation) (*model.Reservation, error) {
	const q = `INSERT INTO reservations (name, email, phone, reservation_date, reservation_time, guests, message)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, in.Name, in.Email, in.Phone, in.Date, in.Time, int(in.Guests), in.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to insert reservation: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read reservation id: %w", err)
	}

	const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	var res model.Reservation
	if err := scanReservation(r.db.QueryRowContext(ctx, sel, id), &res); err != nil {
		return nil, fmt.Errorf("failed to load reservation %d: %w", id, err)
	}
	return &res, nil
}

// Get returns the reservation with id or ErrNotFound.
func (r *SQLReservationRepo) Get(ctx context.Context, id int64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	var res model.Reservation
	if err := scanReservation(r.db.QueryRowContext(ctx, q, id), &res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reservation %d: %w", id, err)
	}
	return &res, nil
}

// List returns every reservation, newest first. Rows created in the same
// instant are ordered by id so the result is stable.
func (r *SQLReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer rows.Close()

	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *SQLReservationRepo) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner, res *model.Reservation) error {
	var message sql.NullString
	if err := row.Scan(
		&res.ID, &res.Name, &res.Email, &res.Phone, &res.Date, &res.Time,
		&res.Guests, &message, &res.CreatedAt,
	); err != nil {
		return err
	}
	res.Message = message.String
	res.CreatedAt = res.CreatedAt.UTC()
	return nil
}
