package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PushRepository struct {
	store
}

const pushColumns = `id, restaurant_id, user_id, endpoint, p256dh, auth, user_agent, created_at`

func scanSubscription(row pgx.Row) (model.PushSubscription, error) {
	var s model.PushSubscription
	err := row.Scan(&s.ID, &s.RestaurantID, &s.UserID, &s.Endpoint, &s.P256dh, &s.Auth, &s.UserAgent, &s.CreatedAt)
	return s, err
}

// Upsert stores a subscription. A browser endpoint is unique, so
// re-subscribing moves it to the current user and restaurant.
func (r *PushRepository) Upsert(ctx context.Context, sub *model.PushSubscription) (*model.PushSubscription, error) {
	const stmt = `
INSERT INTO push_subscriptions (restaurant_id, user_id, endpoint, p256dh, auth, user_agent)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (endpoint) DO UPDATE SET
	restaurant_id = EXCLUDED.restaurant_id, user_id = EXCLUDED.user_id,
	p256dh = EXCLUDED.p256dh, auth = EXCLUDED.auth, user_agent = EXCLUDED.user_agent
RETURNING ` + pushColumns

	saved, err := scanSubscription(r.queryRow(ctx, stmt,
		sub.RestaurantID, sub.UserID, sub.Endpoint, sub.P256dh, sub.Auth, sub.UserAgent))
	if err != nil {
		return nil, fmt.Errorf("upsert push subscription: %w", err)
	}
	return &saved, nil
}

func (r *PushRepository) DeleteForUser(ctx context.Context, userID, endpoint string) error {
	tag, err := r.exec(ctx, `DELETE FROM push_subscriptions WHERE user_id = $1 AND endpoint = $2`, userID, endpoint)
	if err != nil {
		return fmt.Errorf("delete push subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// DeleteByID removes a subscription the push service reported as gone.
func (r *PushRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if _, err := r.exec(ctx, `DELETE FROM push_subscriptions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete push subscription: %w", err)
	}
	return nil
}

// ListByRestaurant returns subscriptions for a restaurant, optionally only
// those of one user.
func (r *PushRepository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, userID string) ([]model.PushSubscription, error) {
	rows, err := r.query(ctx, `
SELECT `+pushColumns+`
FROM push_subscriptions
WHERE restaurant_id = $1 AND ($2 = '' OR user_id = $2)
ORDER BY created_at`, restaurantID, userID)
	if err != nil {
		return nil, fmt.Errorf("list push subscriptions: %w", err)
	}
	subs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.PushSubscription, error) {
		return scanSubscription(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list push subscriptions: %w", err)
	}
	return subs, nil
}
