package model

import (
	"time"

	"github.com/google/uuid"
)

// PushSubscription is a browser Web Push subscription owned by an admin
// for one restaurant.
type PushSubscription struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	UserID       string    `json:"user_id"`
	Endpoint     string    `json:"endpoint"`
	P256dh       string    `json:"-"`
	Auth         string    `json:"-"`
	UserAgent    string    `json:"user_agent"`
	CreatedAt    time.Time `json:"created_at"`
}

// PushMessage is the JSON payload the service worker receives.
type PushMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
	Tag   string `json:"tag,omitempty"`
}
