package handler

import (
	"github.com/deppfellow/restaurant-backend/internal/middleware"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/deppfellow/restaurant-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type NoticeHandler struct {
	Handler
	notices *service.NoticeService
}

func NewNoticeHandler(s *server.Server, notices *service.NoticeService) *NoticeHandler {
	return &NoticeHandler{Handler: NewHandler(s), notices: notices}
}

// NoticeResponse wraps the public notice; Notice is null when nothing
// should be shown.
type NoticeResponse struct {
	Notice *model.Notice `json:"notice"`
}

func (h *NoticeHandler) Public(c echo.Context, _ *model.EmptyPayload) (NoticeResponse, error) {
	restaurant, err := middleware.GetRestaurant(c)
	if err != nil {
		return NoticeResponse{}, err
	}
	notice, err := h.notices.Visible(c.Request().Context(), restaurant.ID)
	if err != nil {
		return NoticeResponse{}, err
	}
	return NoticeResponse{Notice: notice}, nil
}

func (h *NoticeHandler) Get(c echo.Context, _ *model.EmptyPayload) (*model.Notice, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.notices.Get(c.Request().Context(), ac.RestaurantID)
}

func (h *NoticeHandler) Upsert(c echo.Context, payload *model.NoticePayload) (*model.Notice, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.notices.Upsert(c.Request().Context(), ac.RestaurantID, payload)
}

func (h *NoticeHandler) Delete(c echo.Context, _ *model.EmptyPayload) error {
	ac, err := adminContext(c)
	if err != nil {
		return err
	}
	return h.notices.Delete(c.Request().Context(), ac.RestaurantID)
}
