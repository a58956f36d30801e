package service

import (
	"context"
	"errors"

	"github.com/deppfellow/restaurant-backend/internal/errs"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
)

type ZoneLister interface {
	List(ctx context.Context, restaurantID uuid.UUID) ([]model.DeliveryZone, error)
}

type ZoneStore interface {
	ZoneLister
	Create(ctx context.Context, z *model.DeliveryZone) (*model.DeliveryZone, error)
	Update(ctx context.Context, z *model.DeliveryZone) (*model.DeliveryZone, error)
	Delete(ctx context.Context, restaurantID, id uuid.UUID) error
}

type DeliveryZoneService struct {
	zones ZoneStore
}

func NewDeliveryZoneService(zones ZoneStore) *DeliveryZoneService {
	return &DeliveryZoneService{zones: zones}
}

func errZoneNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Delivery zone not found", true, errs.Code(errs.CodeDeliveryZoneNotFound))
}

func (s *DeliveryZoneService) List(ctx context.Context, restaurantID uuid.UUID) ([]model.DeliveryZone, error) {
	zones, err := s.zones.List(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if zones == nil {
		zones = []model.DeliveryZone{}
	}
	return zones, nil
}

func (s *DeliveryZoneService) Create(ctx context.Context, restaurantID uuid.UUID, p *model.DeliveryZonePayload) (*model.DeliveryZone, error) {
	return s.zones.Create(ctx, p.Zone(restaurantID))
}

func (s *DeliveryZoneService) Update(ctx context.Context, restaurantID uuid.UUID, p *model.DeliveryZonePayload) (*model.DeliveryZone, error) {
	zone, err := s.zones.Update(ctx, p.Zone(restaurantID))
	if errors.Is(err, model.ErrNotFound) {
		return nil, errZoneNotFound()
	}
	return zone, err
}

func (s *DeliveryZoneService) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	err := s.zones.Delete(ctx, restaurantID, id)
	if errors.Is(err, model.ErrNotFound) {
		return errZoneNotFound()
	}
	return err
}

// Quote finds the zone that delivers to postalCode.
func (s *DeliveryZoneService) Quote(ctx context.Context, restaurantID uuid.UUID, postalCode string) (*model.DeliveryQuote, error) {
	zones, err := s.zones.List(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	zone, ok := model.MatchZone(zones, postalCode)
	if !ok {
		return nil, errs.NewNotFoundError("We do not deliver to this postal code", true, errs.Code(errs.CodeDeliveryZoneNotFound))
	}
	quote := zone.Quote(postalCode)
	return &quote, nil
}
