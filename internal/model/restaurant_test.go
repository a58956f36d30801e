package model

import (
	"errors"
	"testing"
	"time"
)

func TestOpeningHoursValidate(t *testing.T) {
	tests := []struct {
		name    string
		hours   OpeningHours
		wantErr bool
	}{
		{name: "empty", hours: nil},
		{name: "lunch and dinner", hours: OpeningHours{
			{Day: Monday, Open: "11:30", Close: "14:30"},
			{Day: Monday, Open: "18:00", Close: "22:00"},
		}},
		{name: "close before open", hours: OpeningHours{{Day: Friday, Open: "22:00", Close: "18:00"}}, wantErr: true},
		{name: "close equals open", hours: OpeningHours{{Day: Friday, Open: "10:00", Close: "10:00"}}, wantErr: true},
		{name: "bad format", hours: OpeningHours{{Day: Friday, Open: "9am", Close: "18:00"}}, wantErr: true},
		{name: "unknown day", hours: OpeningHours{{Day: "funday", Open: "09:00", Close: "18:00"}}, wantErr: true},
		{name: "overlap", hours: OpeningHours{
			{Day: Sunday, Open: "10:00", Close: "15:00"},
			{Day: Sunday, Open: "14:00", Close: "20:00"},
		}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.hours.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidHours) {
					t.Fatalf("expected ErrInvalidHours, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestOpeningHoursIsOpenAt(t *testing.T) {
	hours := OpeningHours{
		{Day: Monday, Open: "11:30", Close: "14:30"},
		{Day: Monday, Open: "18:00", Close: "22:00"},
	}
	// 2026-10-19 is a Monday.
	at := func(hh, mm int) time.Time { return time.Date(2026, 10, 19, hh, mm, 0, 0, time.UTC) }

	cases := []struct {
		t    time.Time
		open bool
	}{
		{at(11, 29), false},
		{at(11, 30), true},
		{at(14, 29), true},
		{at(14, 30), false},
		{at(19, 0), true},
		{time.Date(2026, 10, 20, 19, 0, 0, 0, time.UTC), false},
	}

	for _, tc := range cases {
		if got := hours.IsOpenAt(tc.t); got != tc.open {
			t.Fatalf("%s: expected open=%v, got %v", tc.t, tc.open, got)
		}
	}

	if !OpeningHours(nil).IsOpenAt(at(3, 0)) {
		t.Fatalf("expected no configured hours to mean always open")
	}
}

func TestRestaurantLocationFallsBackToUTC(t *testing.T) {
	r := &Restaurant{Timezone: "Not/AZone"}
	if r.Location() != time.UTC {
		t.Fatalf("expected UTC fallback, got %s", r.Location())
	}
}

func TestRoleAtLeast(t *testing.T) {
	if !RoleOwner.AtLeast(RoleManager) || !RoleManager.AtLeast(RoleManager) || !RoleStaff.AtLeast(RoleStaff) {
		t.Fatalf("expected higher or equal roles to pass")
	}
	if RoleStaff.AtLeast(RoleManager) || RoleManager.AtLeast(RoleOwner) {
		t.Fatalf("expected lower roles to fail")
	}
	if Role("guest").AtLeast(RoleStaff) {
		t.Fatalf("expected unknown role to fail")
	}
}
