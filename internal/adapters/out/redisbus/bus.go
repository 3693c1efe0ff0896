// Package redisbus relays room events over Redis Pub/Sub so rooms span
// every running instance: a courier connected to one instance still sees
// offers published by another.
package redisbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"quickbite/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	// channelPrefix namespaces the bus inside a shared Redis.
	channelPrefix = "quickbite:rt:"

	subscriberBuffer = 32
)

// envelope is the wire form of an event on a Redis channel. The room rides
// in the channel name.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RedisBus implements ports.EventBus over Redis Pub/Sub. Delivery is
// best-effort: publish failures and lagging subscribers are logged, never
// surfaced to command handlers.
type RedisBus struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisBus creates a bus over the given Redis client.
func NewRedisBus(client *redis.Client, logger *slog.Logger) *RedisBus {
	return &RedisBus{client: client, logger: logger}
}

// Publish sends the event to the room's channel. Subscribers on every
// instance receive it.
func (b *RedisBus) Publish(ctx context.Context, room string, eventType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to encode event payload",
			"room", room, "event_type", eventType, "error", err)
		return
	}

	body, err := json.Marshal(envelope{Type: eventType, Payload: raw})
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to encode event envelope",
			"room", room, "event_type", eventType, "error", err)
		return
	}

	if err = b.client.Publish(ctx, channelPrefix+room, body).Err(); err != nil {
		b.logger.ErrorContext(ctx, "failed to publish event to redis",
			"room", room, "event_type", eventType, "error", err)
	}
}

// Subscribe attaches a subscriber to the room's channel. Events decoded
// from the wire carry their payload as json.RawMessage.
func (b *RedisBus) Subscribe(room string) ports.Subscription {
	pubsub := b.client.Subscribe(context.Background(), channelPrefix+room)

	sub := &subscription{
		pubsub: pubsub,
		ch:     make(chan ports.Event, subscriberBuffer),
	}

	go sub.pump(room, b.logger)

	return sub
}

type subscription struct {
	pubsub *redis.PubSub
	ch     chan ports.Event

	closeOnce sync.Once
}

func (s *subscription) pump(room string, logger *slog.Logger) {
	defer close(s.ch)

	for msg := range s.pubsub.Channel() {
		var env envelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			logger.Error("failed to decode event envelope",
				"room", room, "error", err)
			continue
		}

		event := ports.Event{Room: room, Type: env.Type, Payload: env.Payload}
		select {
		case s.ch <- event:
		default:
			logger.Warn("subscriber buffer full, dropping event",
				"room", room, "event_type", env.Type)
		}
	}
}

func (s *subscription) C() <-chan ports.Event {
	return s.ch
}

// Close detaches from the Redis channel; the delivery channel closes once
// the relay goroutine drains.
func (s *subscription) Close() {
	s.closeOnce.Do(func() {
		_ = s.pubsub.Close()
	})
}
