package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RestaurantRepository struct {
	store
}

const restaurantColumns = `
id, slug, name, description, phone, email, address, currency, timezone,
opening_hours, pickup_enabled, delivery_enabled, dine_in_enabled,
accepting_orders, accepting_reservations, max_party_size, created_at, updated_at`

func scanRestaurant(row pgx.Row) (*model.Restaurant, error) {
	var r model.Restaurant
	err := row.Scan(
		&r.ID, &r.Slug, &r.Name, &r.Description, &r.Phone, &r.Email, &r.Address,
		&r.Currency, &r.Timezone, &r.OpeningHours, &r.PickupEnabled, &r.DeliveryEnabled,
		&r.DineInEnabled, &r.AcceptingOrders, &r.AcceptingReservations, &r.MaxPartySize,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *RestaurantRepository) GetBySlug(ctx context.Context, slug string) (*model.Restaurant, error) {
	query := `SELECT` + restaurantColumns + ` FROM restaurants WHERE slug = $1`

	restaurant, err := scanRestaurant(r.queryRow(ctx, query, slug))
	if err != nil {
		return nil, fmt.Errorf("get restaurant by slug: %w", notFound(err))
	}
	return restaurant, nil
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	query := `SELECT` + restaurantColumns + ` FROM restaurants WHERE id = $1`

	restaurant, err := scanRestaurant(r.queryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get restaurant: %w", notFound(err))
	}
	return restaurant, nil
}

// UpdateSettings overwrites the editable profile fields. Slug and id are
// immutable.
func (r *RestaurantRepository) UpdateSettings(ctx context.Context, restaurant *model.Restaurant) (*model.Restaurant, error) {
	query := `
UPDATE restaurants SET
	name = $2, description = $3, phone = $4, email = $5, address = $6,
	currency = $7, timezone = $8, opening_hours = $9,
	pickup_enabled = $10, delivery_enabled = $11, dine_in_enabled = $12,
	accepting_orders = $13, accepting_reservations = $14, max_party_size = $15,
	updated_at = now()
WHERE id = $1
RETURNING` + restaurantColumns

	hours := restaurant.OpeningHours
	if hours == nil {
		hours = model.OpeningHours{}
	}

	updated, err := scanRestaurant(r.queryRow(ctx, query,
		restaurant.ID, restaurant.Name, restaurant.Description, restaurant.Phone,
		restaurant.Email, restaurant.Address, restaurant.Currency, restaurant.Timezone,
		hours, restaurant.PickupEnabled, restaurant.DeliveryEnabled, restaurant.DineInEnabled,
		restaurant.AcceptingOrders, restaurant.AcceptingReservations, restaurant.MaxPartySize,
	))
	if err != nil {
		return nil, fmt.Errorf("update restaurant settings: %w", notFound(err))
	}
	return updated, nil
}
