package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/restaurant-backend/internal/clock"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
)

type RestaurantStore interface {
	RestaurantReader
	UpdateSettings(ctx context.Context, restaurant *model.Restaurant) (*model.Restaurant, error)
}

type RestaurantService struct {
	restaurants RestaurantStore
	tenant      *TenantService
	clock       clock.Clock
}

func NewRestaurantService(restaurants RestaurantStore, tenant *TenantService, clk clock.Clock) *RestaurantService {
	return &RestaurantService{restaurants: restaurants, tenant: tenant, clock: clk}
}

// PublicProfile is the storefront view of a restaurant.
type PublicProfile struct {
	ID                    uuid.UUID          `json:"id"`
	Slug                  string             `json:"slug"`
	Name                  string             `json:"name"`
	Description           string             `json:"description"`
	Phone                 string             `json:"phone"`
	Email                 string             `json:"email"`
	Address               string             `json:"address"`
	Currency              string             `json:"currency"`
	Timezone              string             `json:"timezone"`
	OpeningHours          model.OpeningHours `json:"opening_hours"`
	OrderTypes            []model.OrderType  `json:"order_types"`
	AcceptingOrders       bool               `json:"accepting_orders"`
	AcceptingReservations bool               `json:"accepting_reservations"`
	MaxPartySize          int                `json:"max_party_size"`
	OpenNow               bool               `json:"open_now"`
}

func (s *RestaurantService) Profile(r *model.Restaurant) PublicProfile {
	types := []model.OrderType{}
	for _, t := range []model.OrderType{model.OrderTypePickup, model.OrderTypeDelivery, model.OrderTypeDineIn} {
		if r.OrderTypeEnabled(t) {
			types = append(types, t)
		}
	}

	hours := r.OpeningHours
	if hours == nil {
		hours = model.OpeningHours{}
	}

	return PublicProfile{
		ID:                    r.ID,
		Slug:                  r.Slug,
		Name:                  r.Name,
		Description:           r.Description,
		Phone:                 r.Phone,
		Email:                 r.Email,
		Address:               r.Address,
		Currency:              r.Currency,
		Timezone:              r.Timezone,
		OpeningHours:          hours,
		OrderTypes:            types,
		AcceptingOrders:       r.AcceptingOrders,
		AcceptingReservations: r.AcceptingReservations,
		MaxPartySize:          r.MaxPartySize,
		OpenNow:               hours.IsOpenAt(s.clock.Now().In(r.Location())),
	}
}

func (s *RestaurantService) Get(ctx context.Context, restaurantID uuid.UUID) (*model.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, errRestaurantNotFound()
	}
	return restaurant, err
}

// UpdateSettings overwrites the editable fields and drops the storefront
// cache entry so customers see the change immediately.
func (s *RestaurantService) UpdateSettings(ctx context.Context, restaurantID uuid.UUID, p *model.UpdateRestaurantPayload) (*model.Restaurant, error) {
	restaurant, err := s.Get(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	if _, err := time.LoadLocation(p.Timezone); err != nil {
		return nil, errBadField("timezone", "unknown time zone")
	}

	p.Apply(restaurant)

	updated, err := s.restaurants.UpdateSettings(ctx, restaurant)
	if errors.Is(err, model.ErrNotFound) {
		return nil, errRestaurantNotFound()
	}
	if err != nil {
		return nil, err
	}

	s.tenant.Invalidate(ctx, updated.Slug)
	return updated, nil
}
