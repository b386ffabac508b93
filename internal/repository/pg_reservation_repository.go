package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/circa/reservations/internal/model"
)

// PGReservationRepo stores reservations in PostgreSQL through a pgx pool.
type PGReservationRepo struct {
	pool *pgxpool.Pool
}

func NewPGReservationRepo(pool *pgxpool.Pool) *PGReservationRepo {
	return &PGReservationRepo{pool: pool}
}

func (r *PGReservationRepo) Create(ctx context.Context, in model.NewReservation) (*model.Reservation, error) {
	const q = `INSERT INTO reservations (name, email, phone, reservation_date, reservation_time, guests, message)
	           VALUES ($1, $2, $3, $4, $5, $6, $7)
	           RETURNING ` + reservationColumns
	rows, err := r.pool.Query(ctx, q, in.Name, in.Email, in.Phone, in.Date, in.Time, int32(in.Guests), in.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to insert reservation: %w", err)
	}
	res, err := pgx.CollectExactlyOneRow(rows, scanPGReservation)
	if err != nil {
		return nil, fmt.Errorf("failed to insert reservation: %w", err)
	}
	return &res, nil
}

func (r *PGReservationRepo) Get(ctx context.Context, id int64) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	rows, err := r.pool.Query(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation %d: %w", id, err)
	}
	res, err := pgx.CollectExactlyOneRow(rows, scanPGReservation)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation %d: %w", id, err)
	}
	return &res, nil
}

func (r *PGReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	out, err := pgx.CollectRows(rows, scanPGReservation)
	if err != nil {
		return nil, fmt.Errorf("failed to scan reservations: %w", err)
	}
	if out == nil {
		out = make([]model.Reservation, 0)
	}
	return out, nil
}

func (r *PGReservationRepo) Ping(ctx context.Context) error { return r.pool.Ping(ctx) }

func scanPGReservation(row pgx.CollectableRow) (model.Reservation, error) {
	var (
		res    model.Reservation
		guests int32
	)
	err := row.Scan(&res.ID, &res.Name, &res.Email, &res.Phone, &res.Date, &res.Time, &guests, &res.Message, &res.CreatedAt)
	res.Guests = int(guests)
	res.CreatedAt = res.CreatedAt.UTC()
	return res, err
}
