package handler

import (
	"github.com/deppfellow/restaurant-backend/internal/middleware"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/deppfellow/restaurant-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ReservationHandler struct {
	Handler
	reservations *service.ReservationService
}

func NewReservationHandler(s *server.Server, reservations *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Handler: NewHandler(s), reservations: reservations}
}

func (h *ReservationHandler) Create(c echo.Context, payload *model.CreateReservationPayload) (*model.Reservation, error) {
	restaurant, err := middleware.GetRestaurant(c)
	if err != nil {
		return nil, err
	}
	return h.reservations.Create(c.Request().Context(), restaurant, payload)
}

func (h *ReservationHandler) List(c echo.Context, payload *model.ListReservationsPayload) ([]model.Reservation, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.reservations.List(c.Request().Context(), ac.RestaurantID, payload)
}

func (h *ReservationHandler) Get(c echo.Context, payload *model.IDPayload) (*model.Reservation, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.reservations.Get(c.Request().Context(), ac.RestaurantID, payload.ID)
}

// UpdateStatus moves a reservation along its lifecycle and optionally
// assigns a table.
func (h *ReservationHandler) UpdateStatus(c echo.Context, payload *model.UpdateReservationStatusPayload) (*model.Reservation, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.reservations.UpdateStatus(c.Request().Context(), ac, payload)
}
