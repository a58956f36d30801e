package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationRepository struct {
	store
}

const reservationColumns = `
id, restaurant_id, customer_name, customer_email, customer_phone, party_size,
reserved_at, duration_minutes, status, table_id, notes, created_at, updated_at`

func scanReservation(row pgx.Row) (model.Reservation, error) {
	var r model.Reservation
	var status string
	err := row.Scan(
		&r.ID, &r.RestaurantID, &r.CustomerName, &r.CustomerEmail, &r.CustomerPhone,
		&r.PartySize, &r.ReservedAt, &r.DurationMinutes, &status, &r.TableID, &r.Notes,
		&r.CreatedAt, &r.UpdatedAt,
	)
	r.Status = model.ReservationStatus(status)
	return r, err
}

func collectReservations(rows pgx.Rows) ([]model.Reservation, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Reservation, error) {
		return scanReservation(row)
	})
}

func (r *ReservationRepository) Create(ctx context.Context, res *model.Reservation) error {
	const stmt = `
INSERT INTO reservations (restaurant_id, customer_name, customer_email, customer_phone,
	party_size, reserved_at, duration_minutes, status, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, created_at, updated_at`

	err := r.queryRow(ctx, stmt,
		res.RestaurantID, res.CustomerName, res.CustomerEmail, res.CustomerPhone,
		res.PartySize, res.ReservedAt, res.DurationMinutes, res.Status, res.Notes,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, restaurantID, id uuid.UUID) (*model.Reservation, error) {
	res, err := scanReservation(r.queryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE restaurant_id = $1 AND id = $2`,
		restaurantID, id))
	if err != nil {
		return nil, fmt.Errorf("get reservation: %w", notFound(err))
	}
	return &res, nil
}

// List returns reservations ordered by time.
func (r *ReservationRepository) List(ctx context.Context, restaurantID uuid.UUID, filter model.ReservationFilter) ([]model.Reservation, error) {
	limit, offset := pageBounds(filter.Limit, filter.Offset)

	var from, to *time.Time
	if !filter.From.IsZero() {
		from = &filter.From
	}
	if !filter.To.IsZero() {
		to = &filter.To
	}

	rows, err := r.query(ctx, `
SELECT `+reservationColumns+`
FROM reservations
WHERE restaurant_id = $1
	AND ($2::timestamptz IS NULL OR reserved_at >= $2)
	AND ($3::timestamptz IS NULL OR reserved_at < $3)
	AND ($4 = '' OR status = $4)
ORDER BY reserved_at
LIMIT $5 OFFSET $6`, restaurantID, from, to, string(filter.Status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	list, err := collectReservations(rows)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return list, nil
}

// UpdateStatus applies a transition guarded by the current status. tableID
// replaces the assigned table when non-nil.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, restaurantID, id uuid.UUID, from, to model.ReservationStatus, tableID *uuid.UUID) (*model.Reservation, error) {
	res, err := scanReservation(r.queryRow(ctx, `
UPDATE reservations
SET status = $4, table_id = COALESCE($5, table_id), updated_at = now()
WHERE restaurant_id = $1 AND id = $2 AND status = $3
RETURNING `+reservationColumns, restaurantID, id, from, to, tableID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, model.ErrInvalidTransition
		}
		return nil, fmt.Errorf("update reservation status: %w", err)
	}
	return &res, nil
}

// MarkNoShows flips confirmed reservations that started before cutoff to
// no_show and returns them.
func (r *ReservationRepository) MarkNoShows(ctx context.Context, cutoff time.Time) ([]model.Reservation, error) {
	rows, err := r.query(ctx, `
UPDATE reservations
SET status = 'no_show', updated_at = now()
WHERE status = 'confirmed' AND reserved_at < $1
RETURNING `+reservationColumns, cutoff)
	if err != nil {
		return nil, fmt.Errorf("mark no-shows: %w", err)
	}
	list, err := collectReservations(rows)
	if err != nil {
		return nil, fmt.Errorf("mark no-shows: %w", err)
	}
	return list, nil
}
