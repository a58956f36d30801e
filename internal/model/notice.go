package model

import (
	"time"

	"github.com/google/uuid"
)

type NoticeVariant string

const (
	NoticeVariantInfo    NoticeVariant = "info"
	NoticeVariantWarning NoticeVariant = "warning"
	NoticeVariantSuccess NoticeVariant = "success"
	NoticeVariantPromo   NoticeVariant = "promo"
)

// Notice is the banner shown above a restaurant's storefront. Each
// restaurant has at most one.
type Notice struct {
	RestaurantID uuid.UUID     `json:"restaurant_id"`
	Message      string        `json:"message"`
	Variant      NoticeVariant `json:"variant"`
	LinkURL      string        `json:"link_url,omitempty"`
	LinkLabel    string        `json:"link_label,omitempty"`
	Active       bool          `json:"active"`
	StartsAt     *time.Time    `json:"starts_at,omitempty"`
	EndsAt       *time.Time    `json:"ends_at,omitempty"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// VisibleAt reports whether the notice should be shown at now.
func (n *Notice) VisibleAt(now time.Time) bool {
	if !n.Active {
		return false
	}
	if n.StartsAt != nil && now.Before(*n.StartsAt) {
		return false
	}
	if n.EndsAt != nil && !now.Before(*n.EndsAt) {
		return false
	}
	return true
}
