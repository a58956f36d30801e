package handler

import (
	"net/http"
	"strings"

	"github.com/deppfellow/restaurant-backend/internal/middleware"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/deppfellow/restaurant-backend/internal/service"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type RealtimeHandler struct {
	Handler
	realtime *service.RealtimeService
	upgrader websocket.Upgrader
}

func NewRealtimeHandler(s *server.Server, rt *service.RealtimeService) *RealtimeHandler {
	h := &RealtimeHandler{Handler: NewHandler(s), realtime: rt}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// checkOrigin accepts the same origins as CORS. Clients without an Origin
// header (native apps, tests) are allowed through.
func (h *RealtimeHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.server.Config.Server.CORSAllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

func (h *RealtimeHandler) Ticket(c echo.Context, _ *model.EmptyPayload) (*service.Ticket, error) {
	ac, err := adminContext(c)
	if err != nil {
		return nil, err
	}
	return h.realtime.IssueTicket(ac)
}

// Connect upgrades to a websocket bound to the restaurant named in the
// ticket. The ticket is checked before the upgrade so failures are plain
// HTTP errors.
func (h *RealtimeHandler) Connect(c echo.Context) error {
	logger := middleware.GetLogger(c)

	ac, err := h.realtime.Authorize(c.QueryParam("ticket"))
	if err != nil {
		logger.Warn().Err(err).Str("ip", c.RealIP()).Msg("realtime ticket rejected")
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already written the error response.
		logger.Warn().Err(err).Msg("websocket upgrade failed")
		return nil
	}

	client := h.server.Realtime.Attach(conn, ac.RestaurantID, ac.UserID)
	go client.WritePump()
	go client.ReadPump()

	logger.Info().
		Str("user_id", ac.UserID).
		Str("restaurant_id", ac.RestaurantID.String()).
		Int("clients", h.server.Realtime.Clients(ac.RestaurantID)).
		Msg("realtime client attached")

	return nil
}
