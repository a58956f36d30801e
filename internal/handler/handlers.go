package handler

import (
	"github.com/deppfellow/restaurant-backend/internal/server"
	"github.com/deppfellow/restaurant-backend/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health        *HealthHandler
	OpenAPI       *OpenAPIHandler
	Email         *EmailHandler
	Restaurant    *RestaurantHandler
	Menu          *MenuHandler
	Orders        *OrderHandler
	Reservations  *ReservationHandler
	DeliveryZones *DeliveryZoneHandler
	Tables        *TableHandler
	Notices       *NoticeHandler
	Push          *PushHandler
	Realtime      *RealtimeHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(s),
		OpenAPI:       NewOpenAPIHandler(s),
		Email:         NewEmailHandler(s),
		Restaurant:    NewRestaurantHandler(s, services.Restaurant, services.Admin),
		Menu:          NewMenuHandler(s, services.Menu),
		Orders:        NewOrderHandler(s, services.Orders),
		Reservations:  NewReservationHandler(s, services.Reservations),
		DeliveryZones: NewDeliveryZoneHandler(s, services.DeliveryZones),
		Tables:        NewTableHandler(s, services.Tables),
		Notices:       NewNoticeHandler(s, services.Notices),
		Push:          NewPushHandler(s, services.Push),
		Realtime:      NewRealtimeHandler(s, services.Realtime),
	}
}
