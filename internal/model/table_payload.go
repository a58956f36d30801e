package model

import (
	"errors"
	"strings"

	"github.com/deppfellow/restaurant-backend/internal/validation"
	"github.com/google/uuid"
)

type TablePayload struct {
	ID       *uuid.UUID `json:"id"`
	Label    string     `json:"label" validate:"required,max=20"`
	Seats    int        `json:"seats" validate:"min=1,max=50"`
	Shape    TableShape `json:"shape" validate:"required,oneof=round square rectangle"`
	X        float64    `json:"x" validate:"gte=0"`
	Y        float64    `json:"y" validate:"gte=0"`
	Width    float64    `json:"width" validate:"gt=0"`
	Height   float64    `json:"height" validate:"gt=0"`
	Rotation int        `json:"rotation" validate:"min=0,max=359"`
	Active   *bool      `json:"active"`
}

// TableLayoutPayload is the whole floor plan as the editor saves it.
type TableLayoutPayload struct {
	Tables []TablePayload `json:"tables" validate:"max=200,dive"`
}

func (p *TableLayoutPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	if err := CheckLabels(p.Layout(uuid.Nil)); err != nil {
		message := "labels must be unique"
		if errors.Is(err, ErrDuplicateLabel) {
			message = strings.TrimPrefix(err.Error(), ErrDuplicateLabel.Error()+": ") + " is used more than once"
		}
		return validation.CustomValidationErrors{{Field: "tables", Message: message}}
	}
	return nil
}

func (p *TableLayoutPayload) Layout(restaurantID uuid.UUID) []Table {
	tables := make([]Table, 0, len(p.Tables))
	for _, t := range p.Tables {
		table := Table{
			RestaurantID: restaurantID,
			Label:        strings.TrimSpace(t.Label),
			Seats:        t.Seats,
			Shape:        t.Shape,
			X:            t.X,
			Y:            t.Y,
			Width:        t.Width,
			Height:       t.Height,
			Rotation:     t.Rotation,
			Active:       boolOr(t.Active, true),
		}
		if t.ID != nil {
			table.ID = *t.ID
		}
		tables = append(tables, table)
	}
	return tables
}
