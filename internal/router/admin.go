package router

import (
	"net/http"

	"github.com/deppfellow/restaurant-backend/internal/handler"
	"github.com/deppfellow/restaurant-backend/internal/middleware"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/labstack/echo/v4"
)

// registerAdminRoutes mounts the back-office API. Everything needs a Clerk
// session; routes below the membership endpoints also need an admin
// context, and settings-like routes need manager or above.
func registerAdminRoutes(v1 *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	g := v1.Group("/admin", m.Auth.RequireAuth)

	g.GET("/restaurants", handler.Handle(h.Restaurant.Handler, h.Restaurant.Memberships, http.StatusOK, &model.EmptyPayload{}))
	g.POST("/restaurants/switch", handler.Handle(h.Restaurant.Handler, h.Restaurant.Switch, http.StatusOK, &model.SwitchRestaurantPayload{}))

	admin := routes{group: g, middleware: []echo.MiddlewareFunc{m.Admin.RequireAdmin}}
	manager := routes{group: g, middleware: []echo.MiddlewareFunc{m.Admin.RequireAdmin, middleware.RequireRole(model.RoleManager)}}

	admin.GET("/me", handler.Handle(h.Restaurant.Handler, h.Restaurant.Me, http.StatusOK, &model.EmptyPayload{}))

	manager.GET("/settings", handler.Handle(h.Restaurant.Handler, h.Restaurant.GetSettings, http.StatusOK, &model.EmptyPayload{}))
	manager.PUT("/settings", handler.Handle(h.Restaurant.Handler, h.Restaurant.UpdateSettings, http.StatusOK, &model.UpdateRestaurantPayload{}))

	// Orders and reservations are day-to-day work for every role.
	admin.GET("/orders", handler.Handle(h.Orders.Handler, h.Orders.List, http.StatusOK, &model.ListOrdersPayload{}))
	admin.GET("/orders/:id", handler.Handle(h.Orders.Handler, h.Orders.Get, http.StatusOK, &model.IDPayload{}))
	admin.PATCH("/orders/:id/status", handler.Handle(h.Orders.Handler, h.Orders.UpdateStatus, http.StatusOK, &model.UpdateOrderStatusPayload{}))

	admin.GET("/reservations", handler.Handle(h.Reservations.Handler, h.Reservations.List, http.StatusOK, &model.ListReservationsPayload{}))
	admin.GET("/reservations/:id", handler.Handle(h.Reservations.Handler, h.Reservations.Get, http.StatusOK, &model.IDPayload{}))
	admin.PATCH("/reservations/:id/status", handler.Handle(h.Reservations.Handler, h.Reservations.UpdateStatus, http.StatusOK, &model.UpdateReservationStatusPayload{}))

	admin.GET("/menu", handler.Handle(h.Menu.Handler, h.Menu.AdminMenu, http.StatusOK, &model.EmptyPayload{}))
	manager.POST("/menu/categories", handler.Handle(h.Menu.Handler, h.Menu.CreateCategory, http.StatusCreated, &model.MenuCategoryPayload{}))
	manager.PUT("/menu/categories/:id", handler.Handle(h.Menu.Handler, h.Menu.UpdateCategory, http.StatusOK, &model.MenuCategoryPayload{}))
	manager.DELETE("/menu/categories/:id", handler.HandleNoContent(h.Menu.Handler, h.Menu.DeleteCategory, http.StatusNoContent, &model.IDPayload{}))
	manager.POST("/menu/items", handler.Handle(h.Menu.Handler, h.Menu.CreateItem, http.StatusCreated, &model.MenuItemPayload{}))
	manager.PUT("/menu/items/:id", handler.Handle(h.Menu.Handler, h.Menu.UpdateItem, http.StatusOK, &model.MenuItemPayload{}))
	manager.DELETE("/menu/items/:id", handler.HandleNoContent(h.Menu.Handler, h.Menu.DeleteItem, http.StatusNoContent, &model.IDPayload{}))

	admin.GET("/delivery-zones", handler.Handle(h.DeliveryZones.Handler, h.DeliveryZones.List, http.StatusOK, &model.EmptyPayload{}))
	manager.POST("/delivery-zones", handler.Handle(h.DeliveryZones.Handler, h.DeliveryZones.Create, http.StatusCreated, &model.DeliveryZonePayload{}))
	manager.PUT("/delivery-zones/:id", handler.Handle(h.DeliveryZones.Handler, h.DeliveryZones.Update, http.StatusOK, &model.DeliveryZonePayload{}))
	manager.DELETE("/delivery-zones/:id", handler.HandleNoContent(h.DeliveryZones.Handler, h.DeliveryZones.Delete, http.StatusNoContent, &model.IDPayload{}))

	admin.GET("/tables", handler.Handle(h.Tables.Handler, h.Tables.List, http.StatusOK, &model.EmptyPayload{}))
	manager.PUT("/tables", handler.Handle(h.Tables.Handler, h.Tables.SaveLayout, http.StatusOK, &model.TableLayoutPayload{}))
	manager.DELETE("/tables/:id", handler.HandleNoContent(h.Tables.Handler, h.Tables.Delete, http.StatusNoContent, &model.IDPayload{}))

	manager.GET("/notice", handler.Handle(h.Notices.Handler, h.Notices.Get, http.StatusOK, &model.EmptyPayload{}))
	manager.PUT("/notice", handler.Handle(h.Notices.Handler, h.Notices.Upsert, http.StatusOK, &model.NoticePayload{}))
	manager.DELETE("/notice", handler.HandleNoContent(h.Notices.Handler, h.Notices.Delete, http.StatusNoContent, &model.EmptyPayload{}))

	admin.GET("/push/vapid-key", handler.Handle(h.Push.Handler, h.Push.VAPIDKey, http.StatusOK, &model.EmptyPayload{}))
	admin.POST("/push/subscriptions", handler.Handle(h.Push.Handler, h.Push.Subscribe, http.StatusCreated, &model.PushSubscribePayload{}))
	admin.DELETE("/push/subscriptions", handler.HandleNoContent(h.Push.Handler, h.Push.Unsubscribe, http.StatusNoContent, &model.PushUnsubscribePayload{}))
	admin.POST("/push/test", handler.HandleNoContent(h.Push.Handler, h.Push.SendTest, http.StatusAccepted, &model.EmptyPayload{}))

	admin.POST("/realtime/ticket", handler.Handle(h.Realtime.Handler, h.Realtime.Ticket, http.StatusOK, &model.EmptyPayload{}))
}

// routes attaches the same route-level middleware to every registration.
// Sub-groups sharing the /admin prefix would overwrite each other's
// not-found routes.
type routes struct {
	group      *echo.Group
	middleware []echo.MiddlewareFunc
}

func (r routes) GET(path string, fn echo.HandlerFunc) { r.group.GET(path, fn, r.middleware...) }
func (r routes) POST(path string, fn echo.HandlerFunc) { r.group.POST(path, fn, r.middleware...) }
func (r routes) PUT(path string, fn echo.HandlerFunc) { r.group.PUT(path, fn, r.middleware...) }
func (r routes) PATCH(path string, fn echo.HandlerFunc) { r.group.PATCH(path, fn, r.middleware...) }
func (r routes) DELETE(path string, fn echo.HandlerFunc) { r.group.DELETE(path, fn, r.middleware...) }

// registerRealtimeRoutes mounts the websocket endpoint. It authenticates
// with a ticket query parameter instead of the session header.
func registerRealtimeRoutes(v1 *echo.Group, h *handler.Handlers) {
	v1.GET("/realtime", h.Realtime.Connect)
}
