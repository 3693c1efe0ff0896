package ports

import "context"

// Event is a single realtime message delivered to the subscribers of a room.
type Event struct {
	Room    string
	Type    string
	Payload any
}

// Subscription is a live attachment to a room. Events arrive on C until
// Close is called; after Close the channel is drained and closed by the bus.
type Subscription interface {
	// C returns the channel events are delivered on.
	C() <-chan Event

	// Close detaches the subscription from the bus.
	Close()
}

// EventBus fans realtime events out to room subscribers. Publish must not
// block the caller: slow or absent subscribers never delay command handlers.
type EventBus interface {
	// Publish delivers an event to every current subscriber of the room.
	// Publishing to a room with no subscribers is a no-op.
	Publish(ctx context.Context, room string, eventType string, payload any)

	// Subscribe attaches a new subscriber to the room.
	Subscribe(room string) Subscription
}
