package model

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MenuCategory struct {
	ID           uuid.UUID  `json:"id"`
	RestaurantID uuid.UUID  `json:"restaurant_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Position     int        `json:"position"`
	Active       bool       `json:"active"`
	Items        []MenuItem `json:"items,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type MenuItem struct {
	ID           uuid.UUID       `json:"id"`
	RestaurantID uuid.UUID       `json:"restaurant_id"`
	CategoryID   uuid.UUID       `json:"category_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	ImageURL     string          `json:"image_url"`
	Available    bool            `json:"available"`
	Position     int             `json:"position"`
	Allergens    []string        `json:"allergens"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BuildMenu nests items under their categories. With publicOnly set,
// inactive categories, unavailable items and empty categories are dropped.
// Both levels are ordered by position then name.
func BuildMenu(categories []MenuCategory, items []MenuItem, publicOnly bool) []MenuCategory {
	byCategory := make(map[uuid.UUID][]MenuItem, len(categories))
	for _, item := range items {
		if publicOnly && !item.Available {
			continue
		}
		byCategory[item.CategoryID] = append(byCategory[item.CategoryID], item)
	}

	menu := make([]MenuCategory, 0, len(categories))
	for _, category := range categories {
		if publicOnly && !category.Active {
			continue
		}
		category.Items = byCategory[category.ID]
		if publicOnly && len(category.Items) == 0 {
			continue
		}
		slices.SortStableFunc(category.Items, func(a, b MenuItem) int {
			return cmp.Or(cmp.Compare(a.Position, b.Position), cmp.Compare(a.Name, b.Name))
		})
		menu = append(menu, category)
	}

	slices.SortStableFunc(menu, func(a, b MenuCategory) int {
		return cmp.Or(cmp.Compare(a.Position, b.Position), cmp.Compare(a.Name, b.Name))
	})
	return menu
}
