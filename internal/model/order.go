package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderTypePickup   OrderType = "pickup"
	OrderTypeDelivery OrderType = "delivery"
	OrderTypeDineIn   OrderType = "dine_in"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusAccepted       OrderStatus = "accepted"
	OrderStatusRejected       OrderStatus = "rejected"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusAccepted, OrderStatusRejected, OrderStatusCancelled},
	OrderStatusAccepted:       {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:          {OrderStatusOutForDelivery, OrderStatusCompleted},
	OrderStatusOutForDelivery: {OrderStatusCompleted},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusRejected, OrderStatusPreparing,
		OrderStatusReady, OrderStatusOutForDelivery, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// CanTransition reports whether an order of type t may move from s to next.
// Only delivery orders go out for delivery.
func (s OrderStatus) CanTransition(next OrderStatus, t OrderType) bool {
	if next == OrderStatusOutForDelivery && t != OrderTypeDelivery {
		return false
	}
	return slices.Contains(orderTransitions[s], next)
}

type Order struct {
	ID              uuid.UUID       `json:"id"`
	RestaurantID    uuid.UUID       `json:"restaurant_id"`
	OrderNumber     int64           `json:"order_number"`
	Type            OrderType       `json:"type"`
	Status          OrderStatus     `json:"status"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	PostalCode      string          `json:"postal_code,omitempty"`
	DeliveryZoneID  *uuid.UUID      `json:"delivery_zone_id,omitempty"`
	TableID         *uuid.UUID      `json:"table_id,omitempty"`
	Notes           string          `json:"notes"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	Total           decimal.Decimal `json:"total"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem snapshots the menu item at order time so later menu edits do
// not change past orders.
type OrderItem struct {
	ID         uuid.UUID       `json:"id"`
	OrderID    uuid.UUID       `json:"order_id"`
	MenuItemID *uuid.UUID      `json:"menu_item_id,omitempty"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int             `json:"quantity"`
	LineTotal  decimal.Decimal `json:"line_total"`
	Notes      string          `json:"notes"`
}

// OrderTracking is the customer-facing view of an order.
type OrderTracking struct {
	ID          uuid.UUID       `json:"id"`
	OrderNumber int64           `json:"order_number"`
	Type        OrderType       `json:"type"`
	Status      OrderStatus     `json:"status"`
	Items       []OrderItem     `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (o *Order) Tracking() OrderTracking {
	return OrderTracking{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Type:        o.Type,
		Status:      o.Status,
		Items:       o.Items,
		Subtotal:    o.Subtotal,
		DeliveryFee: o.DeliveryFee,
		Total:       o.Total,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status OrderStatus
	Limit  int
	Offset int
}
