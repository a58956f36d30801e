package router

import (
	"net/http"

	"github.com/deppfellow/restaurant-backend/internal/handler"
	"github.com/deppfellow/restaurant-backend/internal/middleware"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/labstack/echo/v4"
)

// registerPublicRoutes mounts the storefront API under
// /restaurants/:slug. Every route sees the resolved restaurant.
func registerPublicRoutes(v1 *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	g := v1.Group("/restaurants/:slug", m.Tenant.ResolveRestaurant)
	writes := m.RateLimit.PublicWrites()

	g.GET("", handler.Handle(h.Restaurant.Handler, h.Restaurant.Profile, http.StatusOK, &model.EmptyPayload{}))
	g.GET("/menu", handler.Handle(h.Menu.Handler, h.Menu.PublicMenu, http.StatusOK, &model.EmptyPayload{}))
	g.GET("/notice", handler.Handle(h.Notices.Handler, h.Notices.Public, http.StatusOK, &model.EmptyPayload{}))
	g.GET("/delivery-quote", handler.Handle(h.DeliveryZones.Handler, h.DeliveryZones.Quote, http.StatusOK, &model.DeliveryQuotePayload{}))

	g.POST("/orders", handler.Handle(h.Orders.Handler, h.Orders.Create, http.StatusCreated, &model.CreateOrderPayload{}), writes)
	g.GET("/orders/:id", handler.Handle(h.Orders.Handler, h.Orders.Track, http.StatusOK, &model.IDPayload{}))

	g.POST("/reservations", handler.Handle(h.Reservations.Handler, h.Reservations.Create, http.StatusCreated, &model.CreateReservationPayload{}), writes)
}
