package handler

import (
	"github.com/deppfellow/restaurant-backend/internal/errs"
	"github.com/deppfellow/restaurant-backend/internal/middleware"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/deppfellow/restaurant-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type RestaurantHandler struct {
	Handler
	restaurants *service.RestaurantService
	admins      *service.AdminContextService
}

func NewRestaurantHandler(s *server.Server, restaurants *service.RestaurantService, admins *service.AdminContextService) *RestaurantHandler {
	return &RestaurantHandler{
		Handler:     NewHandler(s),
		restaurants: restaurants,
		admins:      admins,
	}
}

func (h *RestaurantHandler) Profile(c echo.Context, _ *model.EmptyPayload) (service.PublicProfile, error) {
	restaurant, err := middleware.GetRestaurant(c)
	if err != nil {
		return service.PublicProfile{}, err
	}
	return h.restaurants.Profile(restaurant), nil
}

func (h *RestaurantHandler) GetSettings(c echo.Context, _ *model.EmptyPayload) (*model.Restaurant, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.restaurants.Get(c.Request().Context(), ac.RestaurantID)
}

func (h *RestaurantHandler) UpdateSettings(c echo.Context, payload *model.UpdateRestaurantPayload) (*model.Restaurant, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.restaurants.UpdateSettings(c.Request().Context(), ac.RestaurantID, payload)
}

// Me returns the admin context the request resolved to.
func (h *RestaurantHandler) Me(c echo.Context, _ *model.EmptyPayload) (model.AdminContext, error) {
	return adminContext(c)
}

// Memberships only needs an authenticated user, so it also serves users
// who have not been assigned a restaurant yet.
func (h *RestaurantHandler) Memberships(c echo.Context, _ *model.EmptyPayload) ([]model.Membership, error) {
	return h.admins.List(c.Request().Context(), middleware.GetUserID(c))
}

func (h *RestaurantHandler) Switch(c echo.Context, payload *model.SwitchRestaurantPayload) (*model.Membership, error) {
	restaurantID, err := uuid.Parse(payload.RestaurantID)
	if err != nil {
		return nil, errs.NewBadRequestError("Invalid restaurant id", true, nil, nil, nil)
	}

	membership, err := h.admins.Switch(c.Request().Context(), middleware.GetUserID(c), restaurantID)
	if err != nil {
		return nil, err
	}

	middleware.SetTenantCookies(c, h.server.Config, membership.RestaurantID, membership.RestaurantSlug)
	return membership, nil
}
