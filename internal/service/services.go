// Package service contains the business logic.
//
// It sits between the handler and repository layers. Services receive
// validated payloads, enforce the restaurant rules and translate storage
// sentinels into API errors.
package service

import (
	"github.com/deppfellow/restaurant-backend/internal/clock"
	"github.com/deppfellow/restaurant-backend/internal/lib/cache"
	"github.com/deppfellow/restaurant-backend/internal/lib/job"
	"github.com/deppfellow/restaurant-backend/internal/lib/push"
	"github.com/deppfellow/restaurant-backend/internal/lib/realtime"
	"github.com/deppfellow/restaurant-backend/internal/repository"
	"github.com/deppfellow/restaurant-backend/internal/server"
)

type Services struct {
	Auth          *AuthService
	Admin         *AdminContextService
	Tenant        *TenantService
	Restaurant    *RestaurantService
	Menu          *MenuService
	Orders        *OrderService
	Reservations  *ReservationService
	DeliveryZones *DeliveryZoneService
	Tables        *TableService
	Notices       *NoticeService
	Push          *PushService
	Realtime      *RealtimeService
	Maintenance   *MaintenanceService
	Job           *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	clk := clock.NewSystem()

	var tenantCache cache.Cache = cache.Nop{}
	if s.Redis != nil {
		tenantCache = cache.NewRedis(s.Redis, "restaurant:")
	}

	effects := sideEffects{
		events: s.Events,
		jobs:   s.Job,
		logger: s.Logger,
		clock:  clk,
	}

	tenant := NewTenantService(repos.Restaurants, tenantCache, s.Config.Ordering.TenantCacheTTL, s.Logger)

	return &Services{
		Auth:          NewAuthService(s),
		Admin:         NewAdminContextService(repos.Admins),
		Tenant:        tenant,
		Restaurant:    NewRestaurantService(repos.Restaurants, tenant, clk),
		Menu:          NewMenuService(repos.Menu),
		Orders:        NewOrderService(repos.Orders, repos.Menu, repos.DeliveryZones, repos.Tables, effects),
		Reservations:  NewReservationService(repos.Reservations, repos.Restaurants, repos.Tables, effects),
		DeliveryZones: NewDeliveryZoneService(repos.DeliveryZones),
		Tables:        NewTableService(repos.Tables),
		Notices:       NewNoticeService(repos.Notices, clk),
		Push:          NewPushService(repos.Push, push.NewSender(s.Config.Integration), s.Config.Integration, s.Job, s.Logger),
		Realtime:      NewRealtimeService(realtime.NewTickets(s.Config.Auth.RealtimeSecret, clk)),
		Maintenance:   NewMaintenanceService(repos.Notices, repos.Reservations, s.Config.Ordering.NoShowGrace, effects),
		Job:           s.Job,
	}, nil
}
