package service

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/deppfellow/restaurant-backend/internal/lib/events"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
)

type fakeNoticeExpirer struct {
	at time.Time
}

func (f *fakeNoticeExpirer) DeactivateExpired(_ context.Context, now time.Time) (int64, error) {
	f.at = now
	return 2, nil
}

func TestMaintenanceMarkNoShows(t *testing.T) {
	effects, pub, _ := testEffects()
	reservations := newFakeReservations()
	restaurantID := uuid.New()
	reservations.noShows = []model.Reservation{
		{ID: uuid.New(), RestaurantID: restaurantID, Status: model.ReservationStatusNoShow},
		{ID: uuid.New(), RestaurantID: restaurantID, Status: model.ReservationStatusNoShow},
	}
	notices := &fakeNoticeExpirer{}
	svc := NewMaintenanceService(notices, reservations, 2*time.Hour, effects)

	n, err := svc.MarkNoShows(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 marked, got %d", n)
	}
	if want := testNow.Add(-2 * time.Hour); !reservations.cutoff.Equal(want) {
		t.Fatalf("expected cutoff %s, got %s", want, reservations.cutoff)
	}
	want := []events.Type{events.ReservationStatusChanged, events.ReservationStatusChanged}
	if got := pub.types(); !slices.Equal(got, want) {
		t.Fatalf("unexpected events %v", got)
	}

	count, err := svc.DeactivateExpiredNotices(context.Background())
	if err != nil || count != 2 || !notices.at.Equal(testNow) {
		t.Fatalf("unexpected notice maintenance result %d %v at %s", count, err, notices.at)
	}
}
