package model

import (
	"cmp"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DeliveryZone struct {
	ID               uuid.UUID       `json:"id"`
	RestaurantID     uuid.UUID       `json:"restaurant_id"`
	Name             string          `json:"name"`
	PostalCodes      []string        `json:"postal_codes"`
	DeliveryFee      decimal.Decimal `json:"delivery_fee"`
	MinimumOrder     decimal.Decimal `json:"minimum_order"`
	EstimatedMinutes int             `json:"estimated_minutes"`
	Active           bool            `json:"active"`
	Position         int             `json:"position"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NormalizePostalCode upper-cases and strips whitespace: " sw1a 1aa" → "SW1A1AA".
func NormalizePostalCode(code string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, code)
}

// NormalizePatterns normalizes and de-duplicates zone patterns, dropping
// empty entries.
func NormalizePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		n := NormalizePostalCode(p)
		if n == "" || n == "*" || slices.Contains(out, n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Matches reports whether code falls in the zone. Patterns are exact codes
// or prefixes ending in "*".
func (z *DeliveryZone) Matches(code string) bool {
	code = NormalizePostalCode(code)
	if code == "" {
		return false
	}
	for _, pattern := range z.PostalCodes {
		pattern = NormalizePostalCode(pattern)
		if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
			if prefix != "" && strings.HasPrefix(code, prefix) {
				return true
			}
			continue
		}
		if pattern == code {
			return true
		}
	}
	return false
}

// MatchZone returns the first active zone, by position, covering code.
func MatchZone(zones []DeliveryZone, code string) (*DeliveryZone, bool) {
	sorted := slices.Clone(zones)
	slices.SortStableFunc(sorted, func(a, b DeliveryZone) int {
		return cmp.Compare(a.Position, b.Position)
	})
	for i := range sorted {
		if sorted[i].Active && sorted[i].Matches(code) {
			return &sorted[i], true
		}
	}
	return nil, false
}

// DeliveryQuote is what customers see before ordering.
type DeliveryQuote struct {
	ZoneID           uuid.UUID       `json:"zone_id"`
	ZoneName         string          `json:"zone_name"`
	PostalCode       string          `json:"postal_code"`
	DeliveryFee      decimal.Decimal `json:"delivery_fee"`
	MinimumOrder     decimal.Decimal `json:"minimum_order"`
	EstimatedMinutes int             `json:"estimated_minutes"`
}

func (z *DeliveryZone) Quote(code string) DeliveryQuote {
	return DeliveryQuote{
		ZoneID:           z.ID,
		ZoneName:         z.Name,
		PostalCode:       NormalizePostalCode(code),
		DeliveryFee:      z.DeliveryFee,
		MinimumOrder:     z.MinimumOrder,
		EstimatedMinutes: z.EstimatedMinutes,
	}
}
