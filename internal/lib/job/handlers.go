package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/restaurant-backend/internal/config"
	"github.com/deppfellow/restaurant-backend/internal/lib/email"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// PushDispatcher fans a message out to stored subscriptions and returns
// how many deliveries succeeded.
type PushDispatcher interface {
	Dispatch(ctx context.Context, restaurantID uuid.UUID, userID string, msg model.PushMessage) (int, error)
}

type Maintainer interface {
	DeactivateExpiredNotices(ctx context.Context) (int64, error)
	MarkNoShows(ctx context.Context) (int, error)
}

type Dependencies struct {
	Push        PushDispatcher
	Maintenance Maintainer
}

// InitHandlers wires task dependencies. The job package never reaches into
// services directly; they are handed in here once they exist.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger, deps Dependencies) {
	j.mailer = email.NewClient(cfg, logger)
	j.push = deps.Push
	j.maintenance = deps.Maintenance
}

func (j *JobService) handlePushNotifyTask(ctx context.Context, t *asynq.Task) error {
	var p PushNotifyPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal push payload: %w: %w", err, asynq.SkipRetry)
	}

	if j.push == nil {
		j.logger.Warn().Str("type", TaskPushNotify).Msg("push dispatcher not configured, dropping task")
		return nil
	}

	delivered, err := j.push.Dispatch(ctx, p.RestaurantID, p.UserID, p.Message)
	if err != nil {
		j.logger.Error().
			Err(err).
			Str("type", TaskPushNotify).
			Str("restaurant_id", p.RestaurantID.String()).
			Msg("failed to dispatch push notification")
		return err
	}

	j.logger.Info().
		Str("type", TaskPushNotify).
		Str("restaurant_id", p.RestaurantID.String()).
		Int("delivered", delivered).
		Msg("dispatched push notification")
	return nil
}

func (j *JobService) handleReservationEmailTask(ctx context.Context, t *asynq.Task) error {
	var p ReservationEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal reservation email payload: %w: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", string(p.Template)).
		Str("to", p.To).
		Msg("processing reservation email task")

	if err := j.mailer.SendReservationEmail(ctx, p.To, p.Template, p.Data); err != nil {
		j.logger.Error().
			Str("type", string(p.Template)).
			Str("to", p.To).
			Err(err).
			Msg("failed to send reservation email")
		return err
	}

	j.logger.Info().
		Str("type", string(p.Template)).
		Str("to", p.To).
		Msg("successfully sent reservation email")
	return nil
}

func (j *JobService) handleNoticeMaintenanceTask(ctx context.Context, _ *asynq.Task) error {
	if j.maintenance == nil {
		return nil
	}

	n, err := j.maintenance.DeactivateExpiredNotices(ctx)
	if err != nil {
		return fmt.Errorf("deactivate expired notices: %w", err)
	}
	if n > 0 {
		j.logger.Info().Int64("count", n).Msg("deactivated expired notices")
	}
	return nil
}

func (j *JobService) handleNoShowMaintenanceTask(ctx context.Context, _ *asynq.Task) error {
	if j.maintenance == nil {
		return nil
	}

	n, err := j.maintenance.MarkNoShows(ctx)
	if err != nil {
		return fmt.Errorf("mark no-shows: %w", err)
	}
	if n > 0 {
		j.logger.Info().Int("count", n).Msg("marked reservations as no-show")
	}
	return nil
}
