package push

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/deppfellow/restaurant-backend/internal/config"
)

type step struct {
	status int
	err    error
}

func newTestSender(steps []step) (*Sender, *int, *[]time.Duration) {
	calls := 0
	var slept []time.Duration

	sender := NewSender(config.IntegrationConfig{
		VAPIDPublicKey:  "public",
		VAPIDPrivateKey: "private",
		VAPIDSubject:    "mailto:ops@example.com",
	})
	sender.send = func(_ context.Context, _ []byte, _ *webpush.Subscription, _ *webpush.Options) (*http.Response, error) {
		s := steps[calls]
		calls++
		if s.err != nil {
			return nil, s.err
		}
		return &http.Response{StatusCode: s.status, Body: io.NopCloser(strings.NewReader(""))}, nil
	}
	sender.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return sender, &calls, &slept
}

func TestSendRetries(t *testing.T) {
	tests := []struct {
		name      string
		steps     []step
		wantCalls int
		wantErr   func(error) bool
	}{
		{
			name:      "first try succeeds",
			steps:     []step{{status: http.StatusCreated}},
			wantCalls: 1,
			wantErr:   func(err error) bool { return err == nil },
		},
		{
			name:      "network error then success",
			steps:     []step{{err: errors.New("connection reset")}, {status: http.StatusCreated}},
			wantCalls: 2,
			wantErr:   func(err error) bool { return err == nil },
		},
		{
			name:      "server errors exhaust attempts",
			steps:     []step{{status: 503}, {status: 429}, {status: 500}},
			wantCalls: 3,
			wantErr: func(err error) bool {
				var statusErr *StatusError
				return errors.As(err, &statusErr) && statusErr.StatusCode == 500
			},
		},
		{
			name:      "gone stops immediately",
			steps:     []step{{status: http.StatusGone}},
			wantCalls: 1,
			wantErr:   func(err error) bool { return errors.Is(err, ErrSubscriptionGone) },
		},
		{
			name:      "not found after retry",
			steps:     []step{{status: 502}, {status: http.StatusNotFound}},
			wantCalls: 2,
			wantErr:   func(err error) bool { return errors.Is(err, ErrSubscriptionGone) },
		},
		{
			name:      "bad request gives up",
			steps:     []step{{status: http.StatusBadRequest}},
			wantCalls: 1,
			wantErr: func(err error) bool {
				var statusErr *StatusError
				return errors.As(err, &statusErr) && statusErr.StatusCode == 400
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sender, calls, _ := newTestSender(tc.steps)
			err := sender.Send(context.Background(), Subscription{Endpoint: "https://push.example.com/x"}, []byte(`{}`))
			if !tc.wantErr(err) {
				t.Fatalf("unexpected error: %v", err)
			}
			if *calls != tc.wantCalls {
				t.Fatalf("expected %d calls, got %d", tc.wantCalls, *calls)
			}
		})
	}
}

func TestSendBackoffSchedule(t *testing.T) {
	sender, _, slept := newTestSender([]step{{status: 500}, {status: 500}, {status: 500}})
	_ = sender.Send(context.Background(), Subscription{}, nil)

	want := []time.Duration{500 * time.Millisecond, time.Second}
	if len(*slept) != len(want) {
		t.Fatalf("expected %d sleeps, got %v", len(want), *slept)
	}
	for i := range want {
		if (*slept)[i] != want[i] {
			t.Fatalf("expected backoff %v, got %v", want, *slept)
		}
	}
}

func TestSendStopsWhenContextCancelled(t *testing.T) {
	sender, calls, _ := newTestSender([]step{{status: 500}, {status: 201}})
	sender.sleep = sleepContext

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sender.Send(ctx, Subscription{}, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if *calls != 1 {
		t.Fatalf("expected a single attempt, got %d", *calls)
	}
}
