package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/restaurant-backend/internal/errs"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type zoneStore struct {
	fakeZones
	listErr error
	saved   []*model.DeliveryZone
}

func (f *zoneStore) List(ctx context.Context, restaurantID uuid.UUID) ([]model.DeliveryZone, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.fakeZones.List(ctx, restaurantID)
}

func (f *zoneStore) Create(_ context.Context, z *model.DeliveryZone) (*model.DeliveryZone, error) {
	z.ID = uuid.New()
	f.saved = append(f.saved, z)
	return z, nil
}

func (f *zoneStore) Update(_ context.Context, z *model.DeliveryZone) (*model.DeliveryZone, error) {
	for _, existing := range f.zones {
		if existing.ID == z.ID && existing.RestaurantID == z.RestaurantID {
			return z, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *zoneStore) Delete(_ context.Context, restaurantID, id uuid.UUID) error {
	for _, existing := range f.zones {
		if existing.ID == id && existing.RestaurantID == restaurantID {
			return nil
		}
	}
	return model.ErrNotFound
}

func newZoneStore(restaurantID uuid.UUID) *zoneStore {
	return &zoneStore{fakeZones: fakeZones{zones: []model.DeliveryZone{
		{
			ID:               uuid.New(),
			RestaurantID:     restaurantID,
			Name:             "Outer",
			PostalCodes:      []string{"10*"},
			DeliveryFee:      decimal.RequireFromString("4.00"),
			MinimumOrder:     decimal.RequireFromString("25.00"),
			EstimatedMinutes: 60,
			Active:           true,
			Position:         2,
		},
		{
			ID:               uuid.New(),
			RestaurantID:     restaurantID,
			Name:             "Mitte",
			PostalCodes:      []string{"10115", "10117"},
			DeliveryFee:      decimal.RequireFromString("2.50"),
			MinimumOrder:     decimal.RequireFromString("15.00"),
			EstimatedMinutes: 30,
			Active:           true,
			Position:         1,
		},
		{
			ID:           uuid.New(),
			RestaurantID: restaurantID,
			Name:         "Closed",
			PostalCodes:  []string{"20*"},
			Active:       false,
		},
	}}}
}

func TestDeliveryZoneQuote(t *testing.T) {
	restaurantID := uuid.New()

	tests := []struct {
		name       string
		postalCode string
		wantZone   string
		wantFee    string
		wantStatus int
	}{
		{name: "exact match wins by position", postalCode: "10115", wantZone: "Mitte", wantFee: "2.50"},
		{name: "prefix match", postalCode: "10245", wantZone: "Outer", wantFee: "4.00"},
		{name: "spaces and case ignored", postalCode: " 101 17 ", wantZone: "Mitte", wantFee: "2.50"},
		{name: "inactive zone ignored", postalCode: "20095", wantStatus: http.StatusNotFound},
		{name: "no zone", postalCode: "80331", wantStatus: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewDeliveryZoneService(newZoneStore(restaurantID))

			quote, err := svc.Quote(context.Background(), restaurantID, tc.postalCode)
			if tc.wantStatus != 0 {
				assertHTTPError(t, err, tc.wantStatus, errs.CodeDeliveryZoneNotFound)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if quote.ZoneName != tc.wantZone {
				t.Fatalf("expected zone %s, got %s", tc.wantZone, quote.ZoneName)
			}
			if !quote.DeliveryFee.Equal(decimal.RequireFromString(tc.wantFee)) {
				t.Fatalf("expected fee %s, got %s", tc.wantFee, quote.DeliveryFee)
			}
		})
	}
}

func TestDeliveryZoneQuoteWithoutZones(t *testing.T) {
	svc := NewDeliveryZoneService(&zoneStore{})

	_, err := svc.Quote(context.Background(), uuid.New(), "10115")
	assertHTTPError(t, err, http.StatusNotFound, errs.CodeDeliveryZoneNotFound)
}

func TestDeliveryZoneQuoteStoreError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewDeliveryZoneService(&zoneStore{listErr: boom})

	if _, err := svc.Quote(context.Background(), uuid.New(), "10115"); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestDeliveryZoneWritesMapNotFound(t *testing.T) {
	restaurantID := uuid.New()
	store := newZoneStore(restaurantID)
	svc := NewDeliveryZoneService(store)
	ctx := context.Background()

	_, err := svc.Update(ctx, restaurantID, &model.DeliveryZonePayload{ID: uuid.New(), Name: "Ghost", PostalCodes: []string{"1*"}})
	assertHTTPError(t, err, http.StatusNotFound, errs.CodeDeliveryZoneNotFound)

	err = svc.Delete(ctx, uuid.New(), store.zones[0].ID)
	assertHTTPError(t, err, http.StatusNotFound, errs.CodeDeliveryZoneNotFound)

	if err := svc.Delete(ctx, restaurantID, store.zones[0].ID); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}
}

func TestDeliveryZoneCreateNormalizes(t *testing.T) {
	restaurantID := uuid.New()
	store := &zoneStore{}
	svc := NewDeliveryZoneService(store)

	zone, err := svc.Create(context.Background(), restaurantID, &model.DeliveryZonePayload{
		Name:        "Kreuzberg",
		PostalCodes: []string{" 109 61", "sw1a*"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if zone.RestaurantID != restaurantID || !zone.Active {
		t.Fatalf("expected active zone for restaurant, got %+v", zone)
	}
	if zone.EstimatedMinutes != model.DefaultEstimatedMinutes {
		t.Fatalf("expected default estimate, got %d", zone.EstimatedMinutes)
	}
	if len(store.saved) != 1 || store.saved[0].PostalCodes[0] != "10961" {
		t.Fatalf("expected normalized postal codes, got %+v", store.saved)
	}
}
