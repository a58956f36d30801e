package model

import (
	"fmt"
	"time"

	"github.com/deppfellow/restaurant-backend/internal/validation"
	"github.com/google/uuid"
)

type CreateReservationPayload struct {
	CustomerName    string    `json:"customer_name" validate:"required,max=120"`
	CustomerEmail   string    `json:"customer_email" validate:"omitempty,email,max=254"`
	CustomerPhone   string    `json:"customer_phone" validate:"required,max=40"`
	PartySize       int       `json:"party_size" validate:"min=1,max=100"`
	ReservedAt      time.Time `json:"reserved_at" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,min=15,max=480"`
	Notes           string    `json:"notes" validate:"max=500"`
}

func (p *CreateReservationPayload) Validate() error {
	return validation.Struct(p)
}

type UpdateReservationStatusPayload struct {
	ID      uuid.UUID         `param:"id" json:"-" validate:"required"`
	Status  ReservationStatus `json:"status" validate:"required"`
	TableID *uuid.UUID        `json:"table_id"`
}

func (p *UpdateReservationStatusPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	if !p.Status.Valid() {
		return validation.CustomValidationErrors{{Field: "status", Message: fmt.Sprintf("unknown reservation status %q", p.Status)}}
	}
	return nil
}

// ListReservationsPayload filters by a calendar day in the restaurant's
// time zone.
type ListReservationsPayload struct {
	Date   string            `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Status ReservationStatus `query:"status"`
	Limit  int               `query:"limit" validate:"min=0,max=200"`
	Offset int               `query:"offset" validate:"min=0"`
}

func (p *ListReservationsPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	if p.Status != "" && !p.Status.Valid() {
		return validation.CustomValidationErrors{{Field: "status", Message: fmt.Sprintf("unknown reservation status %q", p.Status)}}
	}
	return nil
}

// Filter resolves Date to a [midnight, next midnight) window in loc.
func (p *ListReservationsPayload) Filter(loc *time.Location) ReservationFilter {
	filter := ReservationFilter{Status: p.Status, Limit: p.Limit, Offset: p.Offset}
	if p.Date == "" {
		return filter
	}
	day, err := time.ParseInLocation("2006-01-02", p.Date, loc)
	if err != nil {
		return filter
	}
	filter.From = day
	filter.To = day.AddDate(0, 0, 1)
	return filter
}
