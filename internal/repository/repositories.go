// Package repository holds the pgx-backed SQL for every aggregate.
//
// Repositories return model sentinel errors (model.ErrNotFound,
// model.ErrInvalidID) for expected misses and wrapped driver errors for
// everything else, which sqlerr.HandleError turns into API errors.
package repository

import (
	"github.com/deppfellow/restaurant-backend/internal/server"
)

type Repositories struct {
	Restaurants   *RestaurantRepository
	Admins        *AdminRepository
	Menu          *MenuRepository
	Orders        *OrderRepository
	Reservations  *ReservationRepository
	DeliveryZones *DeliveryZoneRepository
	Tables        *TableRepository
	Notices       *NoticeRepository
	Push          *PushRepository
}

func NewRepositories(s *server.Server) *Repositories {
	pool := s.DB.Pool
	return &Repositories{
		Restaurants:   &RestaurantRepository{store{pool}},
		Admins:        &AdminRepository{store{pool}},
		Menu:          &MenuRepository{store{pool}},
		Orders:        &OrderRepository{store{pool}},
		Reservations:  &ReservationRepository{store{pool}},
		DeliveryZones: &DeliveryZoneRepository{store{pool}},
		Tables:        &TableRepository{store{pool}},
		Notices:       &NoticeRepository{store{pool}},
		Push:          &PushRepository{store{pool}},
	}
}
