package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type recordingPublisher struct {
	events []Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, e Event) error {
	r.events = append(r.events, e)
	return r.err
}

func TestMultiPublishesToAllAndJoinsErrors(t *testing.T) {
	ok := &recordingPublisher{}
	failing := &recordingPublisher{err: errors.New("down")}

	event, err := New(OrderCreated, uuid.New(), uuid.New(), map[string]string{"status": "pending"}, time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	err = Multi{failing, ok}.Publish(context.Background(), event)
	if err == nil || err.Error() != "down" {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(ok.events) != 1 || len(failing.events) != 1 {
		t.Fatalf("expected both publishers to receive the event")
	}
}

type fakeWriter struct {
	msgs []kafka.Message
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaPublisherKeysByRestaurant(t *testing.T) {
	writer := &fakeWriter{}
	publisher := &KafkaPublisher{writer: writer}

	restaurantID := uuid.New()
	event, _ := New(ReservationCreated, restaurantID, uuid.New(), nil, time.Now())
	if err := publisher.Publish(context.Background(), event); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(writer.msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(writer.msgs))
	}
	msg := writer.msgs[0]
	if string(msg.Key) != restaurantID.String() {
		t.Fatalf("expected restaurant key, got %s", msg.Key)
	}

	var decoded Event
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Type != ReservationCreated || decoded.ID != event.ID {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}
