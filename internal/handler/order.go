package handler

import (
	"github.com/deppfellow/restaurant-backend/internal/middleware"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/deppfellow/restaurant-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	Handler
	orders *service.OrderService
}

func NewOrderHandler(s *server.Server, orders *service.OrderService) *OrderHandler {
	return &OrderHandler{Handler: NewHandler(s), orders: orders}
}

func (h *OrderHandler) Create(c echo.Context, payload *model.CreateOrderPayload) (*model.Order, error) {
	restaurant, err := middleware.GetRestaurant(c)
	if err != nil {
		return nil, err
	}
	return h.orders.Create(c.Request().Context(), restaurant, payload)
}

// Track is the customer's view of an order they placed.
func (h *OrderHandler) Track(c echo.Context, payload *model.IDPayload) (*model.OrderTracking, error) {
	restaurant, err := middleware.GetRestaurant(c)
	if err != nil {
		return nil, err
	}
	return h.orders.Track(c.Request().Context(), restaurant.ID, payload.ID)
}

func (h *OrderHandler) List(c echo.Context, payload *model.ListOrdersPayload) ([]model.Order, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.orders.List(c.Request().Context(), ac.RestaurantID, payload.Filter())
}

func (h *OrderHandler) Get(c echo.Context, payload *model.IDPayload) (*model.Order, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.orders.Get(c.Request().Context(), ac.RestaurantID, payload.ID)
}

func (h *OrderHandler) UpdateStatus(c echo.Context, payload *model.UpdateOrderStatusPayload) (*model.Order, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.orders.UpdateStatus(c.Request().Context(), ac, payload)
}
