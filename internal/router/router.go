// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/restaurant-backend/internal/handler"
	"github.com/deppfellow/restaurant-backend/internal/middleware"
	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/deppfellow/restaurant-backend/internal/service"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services)

	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	proxies, err := s.Config.Server.TrustedProxyRanges()
	if err != nil {
		s.Logger.Warn().Err(err).Msg("ignoring trusted proxies, using the socket peer as client ip")
	}
	router.IPExtractor = middleware.ClientIPExtractor(proxies)

	// Probes are dropped before routing so they never reach logging or
	// tracing.
	router.Pre(middlewares.Spam.Filter())

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, s, h)

	v1 := router.Group("/api/v1")
	registerPublicRoutes(v1, h, middlewares)
	registerAdminRoutes(v1, h, middlewares)
	registerRealtimeRoutes(v1, h)

	return router
}
