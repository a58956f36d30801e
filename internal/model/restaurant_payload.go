package model

import "github.com/deppfellow/restaurant-backend/internal/validation"

type UpdateRestaurantPayload struct {
	Name                  string       `json:"name" validate:"required,max=120"`
	Description           string       `json:"description" validate:"max=2000"`
	Phone                 string       `json:"phone" validate:"max=40"`
	Email                 string       `json:"email" validate:"omitempty,email"`
	Address               string       `json:"address" validate:"max=300"`
	Currency              string       `json:"currency" validate:"required,len=3,uppercase"`
	Timezone              string       `json:"timezone" validate:"required,timezone"`
	OpeningHours          OpeningHours `json:"opening_hours" validate:"max=50,dive"`
	PickupEnabled         bool         `json:"pickup_enabled"`
	DeliveryEnabled       bool         `json:"delivery_enabled"`
	DineInEnabled         bool         `json:"dine_in_enabled"`
	AcceptingOrders       bool         `json:"accepting_orders"`
	AcceptingReservations bool         `json:"accepting_reservations"`
	MaxPartySize          int          `json:"max_party_size" validate:"min=1,max=100"`
}

func (p *UpdateRestaurantPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	if err := p.OpeningHours.Validate(); err != nil {
		return validation.CustomValidationErrors{{Field: "opening_hours", Message: err.Error()}}
	}
	return nil
}

// Apply copies the editable fields onto r.
func (p *UpdateRestaurantPayload) Apply(r *Restaurant) {
	r.Name = p.Name
	r.Description = p.Description
	r.Phone = p.Phone
	r.Email = p.Email
	r.Address = p.Address
	r.Currency = p.Currency
	r.Timezone = p.Timezone
	r.OpeningHours = p.OpeningHours
	r.PickupEnabled = p.PickupEnabled
	r.DeliveryEnabled = p.DeliveryEnabled
	r.DineInEnabled = p.DineInEnabled
	r.AcceptingOrders = p.AcceptingOrders
	r.AcceptingReservations = p.AcceptingReservations
	r.MaxPartySize = p.MaxPartySize
}

type SwitchRestaurantPayload struct {
	RestaurantID string `json:"restaurant_id" validate:"required,uuid"`
}

func (p *SwitchRestaurantPayload) Validate() error {
	return validation.Struct(p)
}
