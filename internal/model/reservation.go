package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusSeated    ReservationStatus = "seated"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusNoShow    ReservationStatus = "no_show"
)

// DefaultReservationDuration applies when the guest gives none.
const DefaultReservationDuration = 90

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPending:   {ReservationStatusConfirmed, ReservationStatusCancelled},
	ReservationStatusConfirmed: {ReservationStatusSeated, ReservationStatusCancelled, ReservationStatusNoShow},
	ReservationStatusSeated:    {ReservationStatusCompleted},
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusSeated,
		ReservationStatusCompleted, ReservationStatusCancelled, ReservationStatusNoShow:
		return true
	}
	return false
}

func (s ReservationStatus) CanTransition(next ReservationStatus) bool {
	return slices.Contains(reservationTransitions[s], next)
}

type Reservation struct {
	ID              uuid.UUID         `json:"id"`
	RestaurantID    uuid.UUID         `json:"restaurant_id"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerPhone   string            `json:"customer_phone"`
	PartySize       int               `json:"party_size"`
	ReservedAt      time.Time         `json:"reserved_at"`
	DurationMinutes int               `json:"duration_minutes"`
	Status          ReservationStatus `json:"status"`
	TableID         *uuid.UUID        `json:"table_id,omitempty"`
	Notes           string            `json:"notes"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (r *Reservation) EndsAt() time.Time {
	return r.ReservedAt.Add(time.Duration(r.DurationMinutes) * time.Minute)
}

// ReservationFilter selects reservations whose reserved_at falls in
// [From, To). Zero bounds are open.
type ReservationFilter struct {
	From   time.Time
	To     time.Time
	Status ReservationStatus
	Limit  int
	Offset int
}
