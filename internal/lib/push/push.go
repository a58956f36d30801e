// Package push delivers Web Push notifications with VAPID and retries
// transient failures.
package push

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/deppfellow/restaurant-backend/internal/config"
)

const (
	maxAttempts = 3
	messageTTL  = 60 * 60
)

// ErrSubscriptionGone means the push service no longer knows the
// subscription (404/410) and it should be deleted.
var ErrSubscriptionGone = errors.New("push subscription gone")

// StatusError is a non-retryable rejection from the push service.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("push service rejected notification with status %d", e.StatusCode)
}

type Subscription struct {
	Endpoint string
	P256dh   string
	Auth     string
}

type sendFunc func(ctx context.Context, message []byte, sub *webpush.Subscription, opts *webpush.Options) (*http.Response, error)

type Sender struct {
	send    sendFunc
	sleep   func(ctx context.Context, d time.Duration) error
	options webpush.Options
	backoff []time.Duration
}

func NewSender(cfg config.IntegrationConfig) *Sender {
	return &Sender{
		send:  webpush.SendNotificationWithContext,
		sleep: sleepContext,
		options: webpush.Options{
			Subscriber:      cfg.VAPIDSubject,
			VAPIDPublicKey:  cfg.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.VAPIDPrivateKey,
			TTL:             messageTTL,
			Urgency:         webpush.UrgencyHigh,
		},
		backoff: []time.Duration{500 * time.Millisecond, time.Second},
	}
}

// Send delivers payload to one subscription. Network errors, 429 and 5xx
// are retried; 404/410 return ErrSubscriptionGone; any other status is
// returned as *StatusError without retrying.
func (s *Sender) Send(ctx context.Context, sub Subscription, payload []byte) error {
	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			if err := s.sleep(ctx, s.delay(attempt)); err != nil {
				return err
			}
		}

		opts := s.options
		resp, err := s.send(ctx, payload, target, &opts)
		if err != nil {
			lastErr = err
			continue
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		switch code := resp.StatusCode; {
		case code >= 200 && code < 300:
			return nil
		case code == http.StatusNotFound || code == http.StatusGone:
			return ErrSubscriptionGone
		case code == http.StatusTooManyRequests || code >= 500:
			lastErr = &StatusError{StatusCode: code}
		default:
			return &StatusError{StatusCode: code}
		}
	}

	return fmt.Errorf("push delivery failed after %d attempts: %w", maxAttempts, lastErr)
}

func (s *Sender) delay(attempt int) time.Duration {
	if attempt-1 < len(s.backoff) {
		return s.backoff[attempt-1]
	}
	return s.backoff[len(s.backoff)-1]
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
