package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type DeliveryZoneRepository struct {
	store
}

const zoneColumns = `
id, restaurant_id, name, postal_codes, delivery_fee, minimum_order,
estimated_minutes, active, position, created_at, updated_at`

func scanZone(row pgx.Row) (model.DeliveryZone, error) {
	var z model.DeliveryZone
	err := row.Scan(
		&z.ID, &z.RestaurantID, &z.Name, &z.PostalCodes, &z.DeliveryFee, &z.MinimumOrder,
		&z.EstimatedMinutes, &z.Active, &z.Position, &z.CreatedAt, &z.UpdatedAt,
	)
	return z, err
}

func (r *DeliveryZoneRepository) List(ctx context.Context, restaurantID uuid.UUID) ([]model.DeliveryZone, error) {
	rows, err := r.query(ctx,
		`SELECT `+zoneColumns+` FROM delivery_zones WHERE restaurant_id = $1 ORDER BY position, name`,
		restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list delivery zones: %w", err)
	}
	zones, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.DeliveryZone, error) {
		return scanZone(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list delivery zones: %w", err)
	}
	return zones, nil
}

func (r *DeliveryZoneRepository) Create(ctx context.Context, z *model.DeliveryZone) (*model.DeliveryZone, error) {
	const stmt = `
INSERT INTO delivery_zones (restaurant_id, name, postal_codes, delivery_fee, minimum_order,
	estimated_minutes, active, position)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + zoneColumns

	created, err := scanZone(r.queryRow(ctx, stmt,
		z.RestaurantID, z.Name, z.PostalCodes, z.DeliveryFee, z.MinimumOrder,
		z.EstimatedMinutes, z.Active, z.Position))
	if err != nil {
		return nil, fmt.Errorf("create delivery zone: %w", err)
	}
	return &created, nil
}

func (r *DeliveryZoneRepository) Update(ctx context.Context, z *model.DeliveryZone) (*model.DeliveryZone, error) {
	const stmt = `
UPDATE delivery_zones
SET name = $3, postal_codes = $4, delivery_fee = $5, minimum_order = $6,
	estimated_minutes = $7, active = $8, position = $9, updated_at = now()
WHERE restaurant_id = $1 AND id = $2
RETURNING ` + zoneColumns

	updated, err := scanZone(r.queryRow(ctx, stmt,
		z.RestaurantID, z.ID, z.Name, z.PostalCodes, z.DeliveryFee, z.MinimumOrder,
		z.EstimatedMinutes, z.Active, z.Position))
	if err != nil {
		return nil, fmt.Errorf("update delivery zone: %w", notFound(err))
	}
	return &updated, nil
}

func (r *DeliveryZoneRepository) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	tag, err := r.exec(ctx, `DELETE FROM delivery_zones WHERE restaurant_id = $1 AND id = $2`, restaurantID, id)
	if err != nil {
		return fmt.Errorf("delete delivery zone: %w", notFound(err))
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
