package handler

import (
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/deppfellow/restaurant-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type PushHandler struct {
	Handler
	push *service.PushService
}

func NewPushHandler(s *server.Server, push *service.PushService) *PushHandler {
	return &PushHandler{Handler: NewHandler(s), push: push}
}

type VAPIDKeyResponse struct {
	PublicKey string `json:"public_key"`
}

func (h *PushHandler) VAPIDKey(c echo.Context, _ *model.EmptyPayload) (VAPIDKeyResponse, error) {
	key, err := h.push.VAPIDPublicKey()
	if err != nil {
		return VAPIDKeyResponse{}, err
	}
	return VAPIDKeyResponse{PublicKey: key}, nil
}

func (h *PushHandler) Subscribe(c echo.Context, payload *model.PushSubscribePayload) (*model.PushSubscription, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.push.Subscribe(c.Request().Context(), ac, payload)
}

func (h *PushHandler) Unsubscribe(c echo.Context, payload *model.PushUnsubscribePayload) error {
	ac, err := adminContext(c)
	if err != nil {
		return err
	}
	return h.push.Unsubscribe(c.Request().Context(), ac, payload)
}

// SendTest queues a test notification to the caller's own devices.
func (h *PushHandler) SendTest(c echo.Context, _ *model.EmptyPayload) error {
	ac, err := adminContext(c)
	if err != nil {
		return err
	}
	return h.push.SendTest(c.Request().Context(), ac)
}
