package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AdminRepository reads restaurant_admins, the membership table behind
// admin context resolution.
type AdminRepository struct {
	store
}

const membershipQuery = `
SELECT ra.restaurant_id, r.name, r.slug, ra.user_id, ra.role, ra.created_at
FROM restaurant_admins ra
JOIN restaurants r ON r.id = ra.restaurant_id`

func scanMembership(row pgx.Row) (model.Membership, error) {
	var m model.Membership
	var role string
	if err := row.Scan(&m.RestaurantID, &m.RestaurantName, &m.RestaurantSlug, &m.UserID, &role, &m.CreatedAt); err != nil {
		return model.Membership{}, err
	}
	m.Role = model.Role(role)
	return m, nil
}

func (r *AdminRepository) GetMembership(ctx context.Context, userID string, restaurantID uuid.UUID) (*model.Membership, error) {
	query := membershipQuery + ` WHERE ra.user_id = $1 AND ra.restaurant_id = $2`

	m, err := scanMembership(r.queryRow(ctx, query, userID, restaurantID))
	if err != nil {
		return nil, fmt.Errorf("get membership: %w", notFound(err))
	}
	return &m, nil
}

// ListMemberships returns the user's restaurants, oldest assignment first.
func (r *AdminRepository) ListMemberships(ctx context.Context, userID string) ([]model.Membership, error) {
	query := membershipQuery + ` WHERE ra.user_id = $1 ORDER BY ra.created_at, ra.restaurant_id`

	rows, err := r.query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	memberships, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Membership, error) {
		return scanMembership(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	return memberships, nil
}
