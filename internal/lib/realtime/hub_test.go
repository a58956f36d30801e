package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/restaurant-backend/internal/lib/events"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

func newTestHub() *Hub {
	logger := zerolog.Nop()
	return NewHub(&logger)
}

func testEvent(t *testing.T, restaurantID uuid.UUID) events.Event {
	t.Helper()
	event, err := events.New(events.OrderCreated, restaurantID, uuid.New(), map[string]string{"status": "pending"}, time.Now())
	if err != nil {
		t.Fatalf("build event: %v", err)
	}
	return event
}

func TestBroadcastOnlyReachesSameRestaurant(t *testing.T) {
	hub := newTestHub()
	restaurantA, restaurantB := uuid.New(), uuid.New()

	a := newClient(hub, nil, restaurantA, "user-a", 4)
	b := newClient(hub, nil, restaurantB, "user-b", 4)
	hub.register(a)
	hub.register(b)

	if got := hub.Broadcast(testEvent(t, restaurantA)); got != 1 {
		t.Fatalf("expected 1 delivery, got %d", got)
	}
	if len(a.send) != 1 {
		t.Fatalf("expected client a to receive the event")
	}
	if len(b.send) != 0 {
		t.Fatalf("expected client b to receive nothing")
	}
}

func TestBroadcastDropsSlowClient(t *testing.T) {
	hub := newTestHub()
	restaurantID := uuid.New()

	slow := newClient(hub, nil, restaurantID, "slow", 1)
	hub.register(slow)

	hub.Broadcast(testEvent(t, restaurantID))
	if got := hub.Broadcast(testEvent(t, restaurantID)); got != 0 {
		t.Fatalf("expected no delivery to a full buffer, got %d", got)
	}

	if hub.Clients(restaurantID) != 0 {
		t.Fatalf("expected slow client to be unregistered")
	}
	select {
	case <-slow.done:
	default:
		t.Fatalf("expected slow client to be closed")
	}
}

func TestUnregisterIsIdempotent(t *testing.T) {
	hub := newTestHub()
	c := newClient(hub, nil, uuid.New(), "user", 1)
	hub.register(c)

	hub.Unregister(c)
	hub.Unregister(c)

	if c.enqueue([]byte("x")) {
		t.Fatalf("expected closed client to refuse messages")
	}
}

func TestBrokerWithoutRedisDeliversLocally(t *testing.T) {
	hub := newTestHub()
	restaurantID := uuid.New()
	c := newClient(hub, nil, restaurantID, "user", 4)
	hub.register(c)

	logger := zerolog.Nop()
	broker := NewBroker(nil, hub, &logger)
	if err := broker.Publish(context.Background(), testEvent(t, restaurantID)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(c.send) != 1 {
		t.Fatalf("expected local delivery")
	}
}

func TestBrokerRelayIgnoresMalformedPayload(t *testing.T) {
	hub := newTestHub()
	logger := zerolog.Nop()
	broker := NewBroker(nil, hub, &logger)

	broker.relay("{not json")
}

func TestWebsocketReceivesEvents(t *testing.T) {
	hub := newTestHub()
	restaurantID := uuid.New()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := hub.Attach(conn, restaurantID, "admin")
		go client.WritePump()
		client.ReadPump()
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hello map[string]any
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if hello["type"] != "connected" {
		t.Fatalf("expected connected message, got %v", hello)
	}

	event := testEvent(t, restaurantID)
	hub.Broadcast(event)

	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read event: %v", err)
	}
	var got events.Event
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if got.ID != event.ID || got.Type != events.OrderCreated {
		t.Fatalf("unexpected event: %+v", got)
	}
}
