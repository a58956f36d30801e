package handler

import (
	"github.com/deppfellow/restaurant-backend/internal/middleware"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/deppfellow/restaurant-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type DeliveryZoneHandler struct {
	Handler
	zones *service.DeliveryZoneService
}

func NewDeliveryZoneHandler(s *server.Server, zones *service.DeliveryZoneService) *DeliveryZoneHandler {
	return &DeliveryZoneHandler{Handler: NewHandler(s), zones: zones}
}

func (h *DeliveryZoneHandler) Quote(c echo.Context, payload *model.DeliveryQuotePayload) (*model.DeliveryQuote, error) {
	restaurant, err := middleware.GetRestaurant(c)
	if err != nil {
		return nil, err
	}
	return h.zones.Quote(c.Request().Context(), restaurant.ID, payload.PostalCode)
}

func (h *DeliveryZoneHandler) List(c echo.Context, _ *model.EmptyPayload) ([]model.DeliveryZone, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.zones.List(c.Request().Context(), ac.RestaurantID)
}

func (h *DeliveryZoneHandler) Create(c echo.Context, payload *model.DeliveryZonePayload) (*model.DeliveryZone, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.zones.Create(c.Request().Context(), ac.RestaurantID, payload)
}

func (h *DeliveryZoneHandler) Update(c echo.Context, payload *model.DeliveryZonePayload) (*model.DeliveryZone, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.zones.Update(c.Request().Context(), ac.RestaurantID, payload)
}

func (h *DeliveryZoneHandler) Delete(c echo.Context, payload *model.IDPayload) error {
	ac, err := adminContext(c)
	if err != nil {
		return err
	}
	return h.zones.Delete(c.Request().Context(), ac.RestaurantID, payload.ID)
}
