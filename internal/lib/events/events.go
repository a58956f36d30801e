// Package events carries domain events from services to the realtime
// feed and, when configured, to Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	OrderCreated             Type = "order.created"
	OrderStatusChanged       Type = "order.status_changed"
	ReservationCreated       Type = "reservation.created"
	ReservationStatusChanged Type = "reservation.status_changed"
)

// Event is serialized as-is onto Redis, websockets and Kafka.
type Event struct {
	ID           uuid.UUID       `json:"id"`
	Type         Type            `json:"type"`
	RestaurantID uuid.UUID       `json:"restaurant_id"`
	ResourceID   uuid.UUID       `json:"resource_id"`
	Data         json.RawMessage `json:"data,omitempty"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// New builds an event with data encoded once up front.
func New(t Type, restaurantID, resourceID uuid.UUID, data any, at time.Time) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("encode %s event: %w", t, err)
	}
	return Event{
		ID:           uuid.New(),
		Type:         t,
		RestaurantID: restaurantID,
		ResourceID:   resourceID,
		Data:         raw,
		OccurredAt:   at.UTC(),
	}, nil
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Multi publishes to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
