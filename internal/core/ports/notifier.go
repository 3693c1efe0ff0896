package ports

import (
	"context"

	"quickbite/internal/core/domain/model/kernel"
)

// Notifier sends a per-user push notification. Implementations are expected
// to be best-effort: delivery failures are logged, never surfaced to the
// command that triggered the notification.
type Notifier interface {
	Notify(ctx context.Context, userID kernel.UUID, title string, body string, data map[string]string)
}

// LifecycleFeed publishes order lifecycle records to an external stream for
// downstream consumers (analytics, settlement). Publishing is asynchronous;
// Close flushes whatever is still buffered.
type LifecycleFeed interface {
	Publish(ctx context.Context, orderID kernel.UUID, eventType string, payload any)
	Close() error
}
