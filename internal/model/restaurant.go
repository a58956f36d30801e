package model

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

type Restaurant struct {
	ID                    uuid.UUID    `json:"id"`
	Slug                  string       `json:"slug"`
	Name                  string       `json:"name"`
	Description           string       `json:"description"`
	Phone                 string       `json:"phone"`
	Email                 string       `json:"email"`
	Address               string       `json:"address"`
	Currency              string       `json:"currency"`
	Timezone              string       `json:"timezone"`
	OpeningHours          OpeningHours `json:"opening_hours"`
	PickupEnabled         bool         `json:"pickup_enabled"`
	DeliveryEnabled       bool         `json:"delivery_enabled"`
	DineInEnabled         bool         `json:"dine_in_enabled"`
	AcceptingOrders       bool         `json:"accepting_orders"`
	AcceptingReservations bool         `json:"accepting_reservations"`
	MaxPartySize          int          `json:"max_party_size"`
	CreatedAt             time.Time    `json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
}

// Location returns the restaurant's time zone, UTC when unknown.
func (r *Restaurant) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (r *Restaurant) OrderTypeEnabled(t OrderType) bool {
	switch t {
	case OrderTypePickup:
		return r.PickupEnabled
	case OrderTypeDelivery:
		return r.DeliveryEnabled
	case OrderTypeDineIn:
		return r.DineInEnabled
	default:
		return false
	}
}

type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

var weekdays = map[time.Weekday]DayOfWeek{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

func DayOf(t time.Time) DayOfWeek {
	return weekdays[t.Weekday()]
}

func (d DayOfWeek) Valid() bool {
	for _, day := range weekdays {
		if day == d {
			return true
		}
	}
	return false
}

// OpeningPeriod is one open interval on a weekday. Open and Close are
// "HH:MM" in the restaurant's time zone and Close is after Open.
type OpeningPeriod struct {
	Day   DayOfWeek `json:"day" validate:"required"`
	Open  string    `json:"open" validate:"required,hhmm"`
	Close string    `json:"close" validate:"required,hhmm"`
}

type OpeningHours []OpeningPeriod

func minutesOf(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidHours, hhmm)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Validate checks every period and rejects overlaps on the same day.
func (h OpeningHours) Validate() error {
	type span struct{ open, close int }
	byDay := map[DayOfWeek][]span{}

	for i, p := range h {
		if !p.Day.Valid() {
			return fmt.Errorf("%w: period %d has unknown day %q", ErrInvalidHours, i, p.Day)
		}
		open, err := minutesOf(p.Open)
		if err != nil {
			return err
		}
		closeAt, err := minutesOf(p.Close)
		if err != nil {
			return err
		}
		if closeAt <= open {
			return fmt.Errorf("%w: %s closes at %s before opening at %s", ErrInvalidHours, p.Day, p.Close, p.Open)
		}
		byDay[p.Day] = append(byDay[p.Day], span{open, closeAt})
	}

	for day, spans := range byDay {
		slices.SortFunc(spans, func(a, b span) int { return a.open - b.open })
		for i := 1; i < len(spans); i++ {
			if spans[i].open < spans[i-1].close {
				return fmt.Errorf("%w: overlapping periods on %s", ErrInvalidHours, day)
			}
		}
	}
	return nil
}

// IsOpenAt reports whether local time t falls inside a period. t must
// already be in the restaurant's location. No configured hours means no
// restriction.
func (h OpeningHours) IsOpenAt(t time.Time) bool {
	if len(h) == 0 {
		return true
	}

	day := DayOf(t)
	minute := t.Hour()*60 + t.Minute()
	for _, p := range h {
		if p.Day != day {
			continue
		}
		open, err := minutesOf(p.Open)
		if err != nil {
			continue
		}
		closeAt, err := minutesOf(p.Close)
		if err != nil {
			continue
		}
		if minute >= open && minute < closeAt {
			return true
		}
	}
	return false
}
