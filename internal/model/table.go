package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type TableShape string

const (
	TableShapeRound     TableShape = "round"
	TableShapeSquare    TableShape = "square"
	TableShapeRectangle TableShape = "rectangle"
)

// Table is one table on the floor plan. Coordinates are in layout units
// with the origin at the top left.
type Table struct {
	ID           uuid.UUID  `json:"id"`
	RestaurantID uuid.UUID  `json:"restaurant_id"`
	Label        string     `json:"label"`
	Seats        int        `json:"seats"`
	Shape        TableShape `json:"shape"`
	X            float64    `json:"x"`
	Y            float64    `json:"y"`
	Width        float64    `json:"width"`
	Height       float64    `json:"height"`
	Rotation     int        `json:"rotation"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CheckLabels rejects a layout where two tables share a label, compared
// case-insensitively after trimming.
func CheckLabels(tables []Table) error {
	seen := make(map[string]struct{}, len(tables))
	for _, t := range tables {
		key := strings.ToLower(strings.TrimSpace(t.Label))
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateLabel, strings.TrimSpace(t.Label))
		}
		seen[key] = struct{}{}
	}
	return nil
}
