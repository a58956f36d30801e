package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/restaurant-backend/internal/lib/events"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Channel is the Redis pub/sub channel shared by every instance.
const Channel = "restaurant-events"

// Broker publishes events to Redis and relays what it receives to the
// local hub. Without a Redis client it delivers straight to the hub.
type Broker struct {
	client  *redis.Client
	hub     *Hub
	logger  *zerolog.Logger
	channel string
}

func NewBroker(client *redis.Client, hub *Hub, logger *zerolog.Logger) *Broker {
	return &Broker{
		client:  client,
		hub:     hub,
		logger:  logger,
		channel: Channel,
	}
}

// Publish sends event to every instance. A failed Redis publish still
// reaches the clients connected to this instance.
func (b *Broker) Publish(ctx context.Context, event events.Event) error {
	if b.client == nil {
		b.hub.Broadcast(event)
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode realtime event: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		b.logger.Warn().Err(err).Str("type", string(event.Type)).Msg("redis publish failed, delivering locally")
		b.hub.Broadcast(event)
	}
	return nil
}

// Run relays subscribed events to the hub until ctx is cancelled.
func (b *Broker) Run(ctx context.Context) error {
	if b.client == nil {
		<-ctx.Done()
		return nil
	}

	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", b.channel, err)
	}
	b.logger.Info().Str("channel", b.channel).Msg("realtime broker subscribed")

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			b.relay(msg.Payload)
		}
	}
}

func (b *Broker) relay(payload string) {
	var event events.Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		b.logger.Warn().Err(err).Msg("dropping malformed realtime event")
		return
	}
	b.hub.Broadcast(event)
}
