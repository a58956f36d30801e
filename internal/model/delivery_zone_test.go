package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNormalizePostalCode(t *testing.T) {
	if got := NormalizePostalCode(" sw1a 1aa "); got != "SW1A1AA" {
		t.Fatalf("expected SW1A1AA, got %s", got)
	}
}

func TestDeliveryZoneMatches(t *testing.T) {
	zone := DeliveryZone{PostalCodes: []string{"10115", "102*", "sw1a *"}}

	cases := map[string]bool{
		"10115":    true,
		"10116":    false,
		"10245":    true,
		" 102 99 ": true,
		"SW1A 2AA": true,
		"SW1B":     false,
		"":         false,
	}
	for code, want := range cases {
		if got := zone.Matches(code); got != want {
			t.Fatalf("%q: expected %v, got %v", code, want, got)
		}
	}

	bare := DeliveryZone{PostalCodes: []string{"*"}}
	if bare.Matches("12345") {
		t.Fatalf("expected a bare wildcard to match nothing")
	}
}

func TestMatchZonePrefersActiveByPosition(t *testing.T) {
	zones := []DeliveryZone{
		{Name: "wide", PostalCodes: []string{"1*"}, Active: true, Position: 2, DeliveryFee: decimal.NewFromInt(5)},
		{Name: "inactive", PostalCodes: []string{"101*"}, Active: false, Position: 0},
		{Name: "inner", PostalCodes: []string{"101*"}, Active: true, Position: 1, DeliveryFee: decimal.NewFromInt(2)},
	}

	zone, ok := MatchZone(zones, "10115")
	if !ok || zone.Name != "inner" {
		t.Fatalf("expected inner zone, got %+v", zone)
	}

	zone, ok = MatchZone(zones, "19999")
	if !ok || zone.Name != "wide" {
		t.Fatalf("expected wide zone, got %+v", zone)
	}

	if _, ok := MatchZone(zones, "20000"); ok {
		t.Fatalf("expected no zone")
	}
}

func TestNormalizePatterns(t *testing.T) {
	got := NormalizePatterns([]string{"10 115", "10115", "", "*", "abc*"})
	want := []string{"10115", "ABC*"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestDeliveryZonePayloadDefaultsEstimate(t *testing.T) {
	p := &DeliveryZonePayload{Name: "Centre", PostalCodes: []string{"00-1*"}}
	if err := p.Validate(); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
	if got := p.Zone(uuid.New()).EstimatedMinutes; got != DefaultEstimatedMinutes {
		t.Fatalf("expected %d minutes, got %d", DefaultEstimatedMinutes, got)
	}

	p.EstimatedMinutes = 20
	if got := p.Zone(uuid.New()).EstimatedMinutes; got != 20 {
		t.Fatalf("expected explicit estimate kept, got %d", got)
	}
}
