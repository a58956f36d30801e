package model

import (
	"github.com/deppfellow/restaurant-backend/internal/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmptyPayload is used by routes that take no input.
type EmptyPayload struct{}

func (*EmptyPayload) Validate() error { return nil }

// IDPayload carries a single :id path parameter.
type IDPayload struct {
	ID uuid.UUID `param:"id" json:"-" validate:"required"`
}

func (p *IDPayload) Validate() error {
	return validation.Struct(p)
}

// nonNegative collects field errors for money values below zero.
func nonNegative(fields map[string]decimal.Decimal) validation.CustomValidationErrors {
	var out validation.CustomValidationErrors
	for field, value := range fields {
		if value.IsNegative() {
			out = append(out, validation.CustomValidationError{Field: field, Message: "must not be negative"})
		}
	}
	return out
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
