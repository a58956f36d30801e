package service

import (
	"context"

	"github.com/deppfellow/restaurant-backend/internal/clock"
	"github.com/deppfellow/restaurant-backend/internal/lib/events"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Enqueuer is the part of the job service that services need.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// sideEffects publishes events and enqueues tasks after a write has
// committed. Failures are logged, never returned: the write stands.
type sideEffects struct {
	events events.Publisher
	jobs   Enqueuer
	logger *zerolog.Logger
	clock  clock.Clock
}

func (s sideEffects) publish(ctx context.Context, t events.Type, restaurantID, resourceID uuid.UUID, data any) {
	if s.events == nil {
		return
	}
	event, err := events.New(t, restaurantID, resourceID, data, s.clock.Now())
	if err != nil {
		s.logger.Error().Err(err).Str("event", string(t)).Msg("failed to build domain event")
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("event", string(t)).Str("restaurant_id", restaurantID.String()).Msg("failed to publish domain event")
	}
}

func (s sideEffects) enqueue(ctx context.Context, task *asynq.Task, buildErr error) {
	if buildErr != nil {
		s.logger.Error().Err(buildErr).Msg("failed to build task")
		return
	}
	if s.jobs == nil {
		return
	}
	if _, err := s.jobs.EnqueueContext(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("task", task.Type()).Msg("failed to enqueue task")
	}
}
