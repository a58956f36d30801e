package router

import (
	"net/http"

	"github.com/deppfellow/restaurant-backend/internal/handler"
	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes mounts health, docs, static assets and, outside
// production, the email preview.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.HEAD("/status", h.Health.CheckHealth)

	r.Static("/static", "static")

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)

	if !s.Config.Primary.IsProduction() {
		r.GET("/dev/emails/:template", handler.HandleHTML(
			h.Email.Handler, h.Email.Preview, http.StatusOK, &handler.EmailPreviewPayload{},
		))
	}
}
