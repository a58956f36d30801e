package service

import (
	"context"
	"time"

	"github.com/deppfellow/restaurant-backend/internal/lib/events"
	"github.com/deppfellow/restaurant-backend/internal/model"
)

type NoticeExpirer interface {
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

type NoShowMarker interface {
	MarkNoShows(ctx context.Context, cutoff time.Time) ([]model.Reservation, error)
}

// MaintenanceService runs the periodic cleanups scheduled by the job
// package.
type MaintenanceService struct {
	notices      NoticeExpirer
	reservations NoShowMarker
	grace        time.Duration
	effects      sideEffects
}

func NewMaintenanceService(notices NoticeExpirer, reservations NoShowMarker, grace time.Duration, effects sideEffects) *MaintenanceService {
	return &MaintenanceService{
		notices:      notices,
		reservations: reservations,
		grace:        grace,
		effects:      effects,
	}
}

func (s *MaintenanceService) DeactivateExpiredNotices(ctx context.Context) (int64, error) {
	return s.notices.DeactivateExpired(ctx, s.effects.clock.Now())
}

// MarkNoShows flags confirmed reservations whose start is more than the
// grace period in the past.
func (s *MaintenanceService) MarkNoShows(ctx context.Context) (int, error) {
	marked, err := s.reservations.MarkNoShows(ctx, s.effects.clock.Now().Add(-s.grace))
	if err != nil {
		return 0, err
	}
	for _, res := range marked {
		s.effects.publish(ctx, events.ReservationStatusChanged, res.RestaurantID, res.ID, map[string]any{
			"from":       model.ReservationStatusConfirmed,
			"to":         model.ReservationStatusNoShow,
			"changed_by": "system",
		})
	}
	return len(marked), nil
}
