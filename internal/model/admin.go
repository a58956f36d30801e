package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is an admin's permission level within one restaurant.
type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
	RoleOwner   Role = "owner"
)

func (r Role) rank() int {
	switch r {
	case RoleStaff:
		return 1
	case RoleManager:
		return 2
	case RoleOwner:
		return 3
	default:
		return 0
	}
}

func (r Role) Valid() bool {
	return r.rank() > 0
}

// AtLeast reports whether r grants everything min grants.
func (r Role) AtLeast(min Role) bool {
	return r.rank() > 0 && r.rank() >= min.rank()
}

// Membership links a user to a restaurant they administer.
type Membership struct {
	RestaurantID   uuid.UUID `json:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name"`
	RestaurantSlug string    `json:"restaurant_slug"`
	UserID         string    `json:"-"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// AdminContext is the resolved identity for an admin request.
type AdminContext struct {
	UserID       string    `json:"user_id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Role         Role      `json:"role"`
}
