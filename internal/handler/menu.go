package handler

import (
	"github.com/deppfellow/restaurant-backend/internal/middleware"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/deppfellow/restaurant-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type MenuHandler struct {
	Handler
	menu *service.MenuService
}

func NewMenuHandler(s *server.Server, menu *service.MenuService) *MenuHandler {
	return &MenuHandler{Handler: NewHandler(s), menu: menu}
}

// PublicMenu lists active categories with their available items.
func (h *MenuHandler) PublicMenu(c echo.Context, _ *model.EmptyPayload) ([]model.MenuCategory, error) {
	restaurant, err := middleware.GetRestaurant(c)
	if err != nil {
		return nil, err
	}
	return h.menu.Menu(c.Request().Context(), restaurant.ID, true)
}

func (h *MenuHandler) AdminMenu(c echo.Context, _ *model.EmptyPayload) ([]model.MenuCategory, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.menu.Menu(c.Request().Context(), ac.RestaurantID, false)
}

func (h *MenuHandler) CreateCategory(c echo.Context, payload *model.MenuCategoryPayload) (*model.MenuCategory, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.menu.CreateCategory(c.Request().Context(), ac.RestaurantID, payload)
}

func (h *MenuHandler) UpdateCategory(c echo.Context, payload *model.MenuCategoryPayload) (*model.MenuCategory, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.menu.UpdateCategory(c.Request().Context(), ac.RestaurantID, payload)
}

func (h *MenuHandler) DeleteCategory(c echo.Context, payload *model.IDPayload) error {
	ac, err := adminContext(c)
	if err != nil {
		return err
	}
	return h.menu.DeleteCategory(c.Request().Context(), ac.RestaurantID, payload.ID)
}

func (h *MenuHandler) CreateItem(c echo.Context, payload *model.MenuItemPayload) (*model.MenuItem, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.menu.CreateItem(c.Request().Context(), ac.RestaurantID, payload)
}

func (h *MenuHandler) UpdateItem(c echo.Context, payload *model.MenuItemPayload) (*model.MenuItem, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.menu.UpdateItem(c.Request().Context(), ac.RestaurantID, payload)
}

func (h *MenuHandler) DeleteItem(c echo.Context, payload *model.IDPayload) error {
	ac, err := adminContext(c)
	if err != nil {
		return err
	}
	return h.menu.DeleteItem(c.Request().Context(), ac.RestaurantID, payload.ID)
}
