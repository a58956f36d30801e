package model

import (
	"fmt"

	"github.com/deppfellow/restaurant-backend/internal/validation"
	"github.com/google/uuid"
)

const (
	MaxOrderLines    = 50
	MaxOrderQuantity = 99
)

type OrderLinePayload struct {
	MenuItemID uuid.UUID `json:"menu_item_id" validate:"required"`
	Quantity   int       `json:"quantity" validate:"min=1,max=99"`
	Notes      string    `json:"notes" validate:"max=200"`
}

type CreateOrderPayload struct {
	Type            OrderType          `json:"type" validate:"required,oneof=pickup delivery dine_in"`
	CustomerName    string             `json:"customer_name" validate:"required,max=120"`
	CustomerEmail   string             `json:"customer_email" validate:"omitempty,email,max=254"`
	CustomerPhone   string             `json:"customer_phone" validate:"required,max=40"`
	DeliveryAddress string             `json:"delivery_address" validate:"required_if=Type delivery,max=300"`
	PostalCode      string             `json:"postal_code" validate:"required_if=Type delivery,max=20"`
	TableID         *uuid.UUID         `json:"table_id" validate:"required_if=Type dine_in"`
	Notes           string             `json:"notes" validate:"max=500"`
	Items           []OrderLinePayload `json:"items" validate:"required,min=1,max=50,dive"`
}

func (p *CreateOrderPayload) Validate() error {
	return validation.Struct(p)
}

type UpdateOrderStatusPayload struct {
	ID     uuid.UUID   `param:"id" json:"-" validate:"required"`
	Status OrderStatus `json:"status" validate:"required"`
}

func (p *UpdateOrderStatusPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	if !p.Status.Valid() {
		return validation.CustomValidationErrors{{Field: "status", Message: fmt.Sprintf("unknown order status %q", p.Status)}}
	}
	return nil
}

type ListOrdersPayload struct {
	Status OrderStatus `query:"status"`
	Limit  int         `query:"limit" validate:"min=0,max=200"`
	Offset int         `query:"offset" validate:"min=0"`
}

func (p *ListOrdersPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	if p.Status != "" && !p.Status.Valid() {
		return validation.CustomValidationErrors{{Field: "status", Message: fmt.Sprintf("unknown order status %q", p.Status)}}
	}
	return nil
}

func (p *ListOrdersPayload) Filter() OrderFilter {
	return OrderFilter{Status: p.Status, Limit: p.Limit, Offset: p.Offset}
}
