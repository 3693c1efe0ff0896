// Package eventbus implements the realtime room bus in process. Subscribers
// get buffered channels; a subscriber that stops draining loses events
// instead of stalling the publishing command handler.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"quickbite/internal/core/ports"
)

// subscriberBuffer is how many undelivered events a subscriber may lag
// behind before the bus starts dropping for it.
const subscriberBuffer = 32

// InProcessBus is a room-keyed fan-out bus for a single process. It backs
// the SSE endpoint and the command handler tests; multi-instance
// deployments layer the redis relay on top.
type InProcessBus struct {
	mu     sync.RWMutex
	rooms  map[string]map[*subscription]struct{}
	logger *slog.Logger
}

// NewInProcessBus creates an empty bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	return &InProcessBus{
		rooms:  make(map[string]map[*subscription]struct{}),
		logger: logger,
	}
}

// Publish delivers the event to every current subscriber of the room
// without blocking. Subscribers with a full buffer are skipped and the
// drop is logged.
func (b *InProcessBus) Publish(ctx context.Context, room string, eventType string, payload any) {
	event := ports.Event{Room: room, Type: eventType, Payload: payload}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.rooms[room] {
		select {
		case sub.ch <- event:
		default:
			b.logger.WarnContext(ctx, "subscriber buffer full, dropping event",
				"room", room, "event_type", eventType)
		}
	}
}

// Subscribe attaches a new subscriber to the room.
func (b *InProcessBus) Subscribe(room string) ports.Subscription {
	sub := &subscription{
		bus:  b,
		room: room,
		ch:   make(chan ports.Event, subscriberBuffer),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.rooms[room]
	if !ok {
		subs = make(map[*subscription]struct{})
		b.rooms[room] = subs
	}
	subs[sub] = struct{}{}

	return sub
}

type subscription struct {
	bus  *InProcessBus
	room string
	ch   chan ports.Event

	closeOnce sync.Once
}

func (s *subscription) C() <-chan ports.Event {
	return s.ch
}

// Close detaches the subscription and closes its channel. Safe to call
// more than once.
func (s *subscription) Close() {
	s.closeOnce.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.rooms[s.room], s)
		if len(s.bus.rooms[s.room]) == 0 {
			delete(s.bus.rooms, s.room)
		}
		s.bus.mu.Unlock()

		close(s.ch)
	})
}
