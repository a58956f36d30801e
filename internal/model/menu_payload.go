package model

import (
	"github.com/deppfellow/restaurant-backend/internal/validation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuCategoryPayload creates a category, or updates one when the route
// carries an :id.
type MenuCategoryPayload struct {
	ID          uuid.UUID `param:"id" json:"-"`
	Name        string    `json:"name" validate:"required,max=100"`
	Description string    `json:"description" validate:"max=500"`
	Position    int       `json:"position" validate:"min=0"`
	Active      *bool     `json:"active"`
}

func (p *MenuCategoryPayload) Validate() error {
	return validation.Struct(p)
}

func (p *MenuCategoryPayload) Category(restaurantID uuid.UUID) *MenuCategory {
	return &MenuCategory{
		ID:           p.ID,
		RestaurantID: restaurantID,
		Name:         p.Name,
		Description:  p.Description,
		Position:     p.Position,
		Active:       boolOr(p.Active, true),
	}
}

type MenuItemPayload struct {
	ID          uuid.UUID       `param:"id" json:"-"`
	CategoryID  uuid.UUID       `json:"category_id" validate:"required"`
	Name        string          `json:"name" validate:"required,max=120"`
	Description string          `json:"description" validate:"max=1000"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url" validate:"omitempty,url,max=2048"`
	Available   *bool           `json:"available"`
	Position    int             `json:"position" validate:"min=0"`
	Allergens   []string        `json:"allergens" validate:"max=20,dive,min=1,max=40"`
}

func (p *MenuItemPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	if errs := nonNegative(map[string]decimal.Decimal{"price": p.Price}); len(errs) > 0 {
		return errs
	}
	return nil
}

func (p *MenuItemPayload) Item(restaurantID uuid.UUID) *MenuItem {
	allergens := p.Allergens
	if allergens == nil {
		allergens = []string{}
	}
	return &MenuItem{
		ID:           p.ID,
		RestaurantID: restaurantID,
		CategoryID:   p.CategoryID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		ImageURL:     p.ImageURL,
		Available:    boolOr(p.Available, true),
		Position:     p.Position,
		Allergens:    allergens,
	}
}
