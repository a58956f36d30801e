package model

import (
	"testing"

	"github.com/google/uuid"
)

func TestBuildMenuPublic(t *testing.T) {
	mains := MenuCategory{ID: uuid.New(), Name: "Mains", Position: 2, Active: true}
	starters := MenuCategory{ID: uuid.New(), Name: "Starters", Position: 1, Active: true}
	hidden := MenuCategory{ID: uuid.New(), Name: "Secret", Position: 0, Active: false}
	empty := MenuCategory{ID: uuid.New(), Name: "Desserts", Position: 3, Active: true}

	items := []MenuItem{
		{CategoryID: mains.ID, Name: "Steak", Position: 2, Available: true},
		{CategoryID: mains.ID, Name: "Fish", Position: 1, Available: true},
		{CategoryID: mains.ID, Name: "Sold out", Position: 0, Available: false},
		{CategoryID: starters.ID, Name: "Soup", Available: true},
		{CategoryID: hidden.ID, Name: "Truffle", Available: true},
		{CategoryID: empty.ID, Name: "Cake", Available: false},
	}

	menu := BuildMenu([]MenuCategory{mains, hidden, starters, empty}, items, true)
	if len(menu) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(menu))
	}
	if menu[0].Name != "Starters" || menu[1].Name != "Mains" {
		t.Fatalf("expected categories ordered by position, got %s, %s", menu[0].Name, menu[1].Name)
	}
	if len(menu[1].Items) != 2 || menu[1].Items[0].Name != "Fish" {
		t.Fatalf("expected available mains ordered by position, got %+v", menu[1].Items)
	}

	admin := BuildMenu([]MenuCategory{mains, hidden, starters, empty}, items, false)
	if len(admin) != 4 {
		t.Fatalf("expected admin menu to keep every category, got %d", len(admin))
	}
}
