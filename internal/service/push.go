package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/deppfellow/restaurant-backend/internal/config"
	"github.com/deppfellow/restaurant-backend/internal/errs"
	"github.com/deppfellow/restaurant-backend/internal/lib/job"
	"github.com/deppfellow/restaurant-backend/internal/lib/push"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type PushStore interface {
	Upsert(ctx context.Context, sub *model.PushSubscription) (*model.PushSubscription, error)
	DeleteForUser(ctx context.Context, userID, endpoint string) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID, userID string) ([]model.PushSubscription, error)
}

type PushSender interface {
	Send(ctx context.Context, sub push.Subscription, payload []byte) error
}

type PushService struct {
	subscriptions PushStore
	sender        PushSender
	cfg           config.IntegrationConfig
	jobs          Enqueuer
	logger        *zerolog.Logger
}

func NewPushService(subscriptions PushStore, sender PushSender, cfg config.IntegrationConfig, jobs Enqueuer, logger *zerolog.Logger) *PushService {
	return &PushService{
		subscriptions: subscriptions,
		sender:        sender,
		cfg:           cfg,
		jobs:          jobs,
		logger:        logger,
	}
}

func errPushDisabled() *errs.HTTPError {
	return errs.NewServiceUnavailableError("Push notifications are not configured", true, errs.Code(errs.CodePushDisabled))
}

func (s *PushService) VAPIDPublicKey() (string, error) {
	if !s.cfg.PushEnabled() {
		return "", errPushDisabled()
	}
	return s.cfg.VAPIDPublicKey, nil
}

func (s *PushService) Subscribe(ctx context.Context, ac model.AdminContext, p *model.PushSubscribePayload) (*model.PushSubscription, error) {
	if !s.cfg.PushEnabled() {
		return nil, errPushDisabled()
	}
	return s.subscriptions.Upsert(ctx, &model.PushSubscription{
		RestaurantID: ac.RestaurantID,
		UserID:       ac.UserID,
		Endpoint:     p.Endpoint,
		P256dh:       p.Keys.P256dh,
		Auth:         p.Keys.Auth,
		UserAgent:    p.UserAgent,
	})
}

// Unsubscribe is idempotent: an unknown endpoint is not an error.
func (s *PushService) Unsubscribe(ctx context.Context, ac model.AdminContext, p *model.PushUnsubscribePayload) error {
	err := s.subscriptions.DeleteForUser(ctx, ac.UserID, p.Endpoint)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	return err
}

// SendTest queues a notification to the caller's own devices.
func (s *PushService) SendTest(ctx context.Context, ac model.AdminContext) error {
	if !s.cfg.PushEnabled() {
		return errPushDisabled()
	}
	task, err := job.NewPushNotifyTask(job.PushNotifyPayload{
		RestaurantID: ac.RestaurantID,
		UserID:       ac.UserID,
		Message: model.PushMessage{
			Title: "Test notification",
			Body:  "Push notifications are working on this device.",
			Tag:   "test",
		},
	})
	if err != nil {
		return err
	}
	_, err = s.jobs.EnqueueContext(ctx, task)
	return err
}

// Dispatch delivers msg to every matching subscription and prunes the
// ones the push service reports as gone. One failing device does not stop
// delivery to the others.
func (s *PushService) Dispatch(ctx context.Context, restaurantID uuid.UUID, userID string, msg model.PushMessage) (int, error) {
	if !s.cfg.PushEnabled() {
		return 0, nil
	}

	subs, err := s.subscriptions.ListByRestaurant(ctx, restaurantID, userID)
	if err != nil {
		return 0, err
	}
	if len(subs) == 0 {
		return 0, nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, sub := range subs {
		err := s.sender.Send(ctx, push.Subscription{Endpoint: sub.Endpoint, P256dh: sub.P256dh, Auth: sub.Auth}, payload)
		switch {
		case err == nil:
			delivered++
		case errors.Is(err, push.ErrSubscriptionGone):
			if err := s.subscriptions.DeleteByID(ctx, sub.ID); err != nil {
				s.logger.Error().Err(err).Str("subscription_id", sub.ID.String()).Msg("failed to delete expired push subscription")
			} else {
				s.logger.Info().Str("subscription_id", sub.ID.String()).Msg("removed expired push subscription")
			}
		default:
			s.logger.Warn().Err(err).Str("subscription_id", sub.ID.String()).Msg("push delivery failed")
		}
		if ctx.Err() != nil {
			return delivered, ctx.Err()
		}
	}
	return delivered, nil
}
