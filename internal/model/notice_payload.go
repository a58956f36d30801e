package model

import (
	"time"

	"github.com/deppfellow/restaurant-backend/internal/validation"
	"github.com/google/uuid"
)

type NoticePayload struct {
	Message   string        `json:"message" validate:"required,min=1,max=280"`
	Variant   NoticeVariant `json:"variant" validate:"required,oneof=info warning success promo"`
	LinkURL   string        `json:"link_url" validate:"omitempty,url,max=2048"`
	LinkLabel string        `json:"link_label" validate:"max=40"`
	Active    bool          `json:"active"`
	StartsAt  *time.Time    `json:"starts_at"`
	EndsAt    *time.Time    `json:"ends_at"`
}

func (p *NoticePayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	if p.StartsAt != nil && p.EndsAt != nil && !p.EndsAt.After(*p.StartsAt) {
		return validation.CustomValidationErrors{{Field: "ends_at", Message: "must be after starts_at"}}
	}
	return nil
}

func (p *NoticePayload) Notice(restaurantID uuid.UUID) *Notice {
	return &Notice{
		RestaurantID: restaurantID,
		Message:      p.Message,
		Variant:      p.Variant,
		LinkURL:      p.LinkURL,
		LinkLabel:    p.LinkLabel,
		Active:       p.Active,
		StartsAt:     p.StartsAt,
		EndsAt:       p.EndsAt,
	}
}
