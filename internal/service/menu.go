package service

import (
	"context"
	"errors"

	"github.com/deppfellow/restaurant-backend/internal/errs"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
)

type MenuItemReader interface {
	GetItems(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) ([]model.MenuItem, error)
}

type MenuStore interface {
	MenuItemReader
	ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]model.MenuCategory, error)
	ListItems(ctx context.Context, restaurantID uuid.UUID) ([]model.MenuItem, error)
	CreateCategory(ctx context.Context, c *model.MenuCategory) (*model.MenuCategory, error)
	UpdateCategory(ctx context.Context, c *model.MenuCategory) (*model.MenuCategory, error)
	DeleteCategory(ctx context.Context, restaurantID, id uuid.UUID) error
	CreateItem(ctx context.Context, i *model.MenuItem) (*model.MenuItem, error)
	UpdateItem(ctx context.Context, i *model.MenuItem) (*model.MenuItem, error)
	DeleteItem(ctx context.Context, restaurantID, id uuid.UUID) error
}

type MenuService struct {
	menu MenuStore
}

func NewMenuService(menu MenuStore) *MenuService {
	return &MenuService{menu: menu}
}

func errCategoryNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Menu category not found", true, errs.Code("MENU_CATEGORY_NOT_FOUND"))
}

func errItemNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Menu item not found", true, errs.Code("MENU_ITEM_NOT_FOUND"))
}

// Menu returns categories with their items. publicOnly hides inactive
// categories and unavailable items.
func (s *MenuService) Menu(ctx context.Context, restaurantID uuid.UUID, publicOnly bool) ([]model.MenuCategory, error) {
	categories, err := s.menu.ListCategories(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	items, err := s.menu.ListItems(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return model.BuildMenu(categories, items, publicOnly), nil
}

func (s *MenuService) CreateCategory(ctx context.Context, restaurantID uuid.UUID, p *model.MenuCategoryPayload) (*model.MenuCategory, error) {
	return s.menu.CreateCategory(ctx, p.Category(restaurantID))
}

func (s *MenuService) UpdateCategory(ctx context.Context, restaurantID uuid.UUID, p *model.MenuCategoryPayload) (*model.MenuCategory, error) {
	category, err := s.menu.UpdateCategory(ctx, p.Category(restaurantID))
	if errors.Is(err, model.ErrNotFound) {
		return nil, errCategoryNotFound()
	}
	return category, err
}

func (s *MenuService) DeleteCategory(ctx context.Context, restaurantID, id uuid.UUID) error {
	err := s.menu.DeleteCategory(ctx, restaurantID, id)
	if errors.Is(err, model.ErrNotFound) {
		return errCategoryNotFound()
	}
	return err
}

func (s *MenuService) CreateItem(ctx context.Context, restaurantID uuid.UUID, p *model.MenuItemPayload) (*model.MenuItem, error) {
	item, err := s.menu.CreateItem(ctx, p.Item(restaurantID))
	if errors.Is(err, model.ErrNotFound) {
		return nil, errBadField("category_id", "category does not exist")
	}
	return item, err
}

func (s *MenuService) UpdateItem(ctx context.Context, restaurantID uuid.UUID, p *model.MenuItemPayload) (*model.MenuItem, error) {
	item, err := s.menu.UpdateItem(ctx, p.Item(restaurantID))
	if errors.Is(err, model.ErrNotFound) {
		return nil, errItemNotFound()
	}
	return item, err
}

func (s *MenuService) DeleteItem(ctx context.Context, restaurantID, id uuid.UUID) error {
	err := s.menu.DeleteItem(ctx, restaurantID, id)
	if errors.Is(err, model.ErrNotFound) {
		return errItemNotFound()
	}
	return err
}
