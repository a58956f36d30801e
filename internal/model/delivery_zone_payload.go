package model

import (
	"github.com/deppfellow/restaurant-backend/internal/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultEstimatedMinutes applies when a zone is saved without an estimate.
const DefaultEstimatedMinutes = 45

type DeliveryZonePayload struct {
	ID               uuid.UUID       `param:"id" json:"-"`
	Name             string          `json:"name" validate:"required,max=100"`
	PostalCodes      []string        `json:"postal_codes" validate:"required,min=1,max=500,dive,required,max=20"`
	DeliveryFee      decimal.Decimal `json:"delivery_fee"`
	MinimumOrder     decimal.Decimal `json:"minimum_order"`
	EstimatedMinutes int             `json:"estimated_minutes" validate:"min=0,max=600"`
	Active           *bool           `json:"active"`
	Position         int             `json:"position" validate:"min=0"`
}

func (p *DeliveryZonePayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	errs := nonNegative(map[string]decimal.Decimal{
		"delivery_fee":  p.DeliveryFee,
		"minimum_order": p.MinimumOrder,
	})
	if len(NormalizePatterns(p.PostalCodes)) == 0 {
		errs = append(errs, validation.CustomValidationError{Field: "postal_codes", Message: "must contain at least one postal code or prefix"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (p *DeliveryZonePayload) Zone(restaurantID uuid.UUID) *DeliveryZone {
	minutes := p.EstimatedMinutes
	if minutes == 0 {
		minutes = DefaultEstimatedMinutes
	}
	return &DeliveryZone{
		ID:               p.ID,
		RestaurantID:     restaurantID,
		Name:             p.Name,
		PostalCodes:      NormalizePatterns(p.PostalCodes),
		DeliveryFee:      p.DeliveryFee,
		MinimumOrder:     p.MinimumOrder,
		EstimatedMinutes: minutes,
		Active:           boolOr(p.Active, true),
		Position:         p.Position,
	}
}

type DeliveryQuotePayload struct {
	PostalCode string `query:"postal_code" validate:"required,max=20"`
}

func (p *DeliveryQuotePayload) Validate() error {
	return validation.Struct(p)
}
