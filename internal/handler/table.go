package handler

import (
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/deppfellow/restaurant-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type TableHandler struct {
	Handler
	tables *service.TableService
}

func NewTableHandler(s *server.Server, tables *service.TableService) *TableHandler {
	return &TableHandler{Handler: NewHandler(s), tables: tables}
}

func (h *TableHandler) List(c echo.Context, _ *model.EmptyPayload) ([]model.Table, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.tables.List(c.Request().Context(), ac.RestaurantID)
}

// SaveLayout replaces the floor plan with the submitted one.
func (h *TableHandler) SaveLayout(c echo.Context, payload *model.TableLayoutPayload) ([]model.Table, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.tables.SaveLayout(c.Request().Context(), ac.RestaurantID, payload)
}

func (h *TableHandler) Delete(c echo.Context, payload *model.IDPayload) error {
	ac, err := adminContext(c)
	if err != nil {
		return err
	}
	return h.tables.Delete(c.Request().Context(), ac.RestaurantID, payload.ID)
}
