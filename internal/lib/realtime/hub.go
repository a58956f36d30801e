// Package realtime pushes domain events to admins connected over
// websockets. Each instance keeps a local Hub; a Redis-backed Broker
// relays events between instances.
package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/deppfellow/restaurant-backend/internal/lib/events"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const clientBuffer = 32

// Hub tracks connected clients grouped by restaurant.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[uuid.UUID]map[*Client]struct{}
	logger *zerolog.Logger
}

func NewHub(logger *zerolog.Logger) *Hub {
	return &Hub{
		rooms:  make(map[uuid.UUID]map[*Client]struct{}),
		logger: logger,
	}
}

// Attach registers a connection for restaurantID and queues a hello
// message. The caller runs the pumps.
func (h *Hub) Attach(conn *websocket.Conn, restaurantID uuid.UUID, userID string) *Client {
	client := newClient(h, conn, restaurantID, userID, clientBuffer)
	h.register(client)

	hello, _ := json.Marshal(map[string]any{
		"type":          "connected",
		"restaurant_id": restaurantID,
	})
	client.enqueue(hello)

	return client
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	room, ok := h.rooms[c.restaurantID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[c.restaurantID] = room
	}
	room[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Debug().
		Str("restaurant_id", c.restaurantID.String()).
		Str("user_id", c.userID).
		Msg("realtime client connected")
}

// Unregister removes c and stops its pumps. Safe to call repeatedly.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if room, ok := h.rooms[c.restaurantID]; ok {
		if _, present := room[c]; present {
			delete(room, c)
			if len(room) == 0 {
				delete(h.rooms, c.restaurantID)
			}
		}
	}
	h.mu.Unlock()

	c.close()
}

// Broadcast delivers event to every client of its restaurant and returns
// how many clients accepted it. Clients with a full buffer are dropped.
func (h *Hub) Broadcast(event events.Event) int {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("type", string(event.Type)).Msg("failed to encode realtime event")
		return 0
	}

	h.mu.RLock()
	room := h.rooms[event.RestaurantID]
	clients := make([]*Client, 0, len(room))
	for c := range room {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range clients {
		if c.enqueue(payload) {
			delivered++
			continue
		}
		h.logger.Warn().
			Str("restaurant_id", c.restaurantID.String()).
			Str("user_id", c.userID).
			Msg("realtime client too slow, disconnecting")
		h.Unregister(c)
	}
	return delivered
}

// Publish lets the hub act as a local-only events.Publisher.
func (h *Hub) Publish(_ context.Context, event events.Event) error {
	h.Broadcast(event)
	return nil
}

// Clients returns the number of clients connected for restaurantID.
func (h *Hub) Clients(restaurantID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[restaurantID])
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	var all []*Client
	for _, room := range h.rooms {
		for c := range room {
			all = append(all, c)
		}
	}
	h.rooms = make(map[uuid.UUID]map[*Client]struct{})
	h.mu.Unlock()

	for _, c := range all {
		c.close()
	}
}
