// Package notifier provides the push notification adapter. The slog
// implementation stands in for a real push gateway: the engine treats
// notifications as best-effort either way.
package notifier

import (
	"context"
	"log/slog"

	"quickbite/internal/core/domain/model/kernel"
)

// SlogNotifier implements ports.Notifier by writing each notification to
// the structured log.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a notifier writing to the given logger.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{logger: logger}
}

// Notify logs the notification. It never fails.
func (n *SlogNotifier) Notify(ctx context.Context, userID kernel.UUID, title string, body string, data map[string]string) {
	args := []any{
		"user_id", userID.String(),
		"title", title,
		"body", body,
	}
	for k, v := range data {
		args = append(args, "data."+k, v)
	}

	n.logger.InfoContext(ctx, "push notification", args...)
}
