// Package kafkafeed publishes order lifecycle records to Kafka for
// downstream consumers such as analytics and courier settlement. Records
// are keyed by order ID, so one order's history stays in partition order.
package kafkafeed

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"quickbite/internal/core/domain/model/kernel"

	"github.com/segmentio/kafka-go"
)

const defaultInboxSize = 256

// record is the wire form of one lifecycle entry.
type record struct {
	OrderID    string          `json:"order_id"`
	EventType  string          `json:"event_type"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Feed implements ports.LifecycleFeed on an async kafka writer. Publish
// never blocks command handlers: records queue on an inbox channel and a
// single goroutine writes them out; when the inbox is full the record is
// dropped and logged.
type Feed struct {
	writer *kafka.Writer
	logger *slog.Logger

	inbox chan kafka.Message
	done  chan struct{}

	closeOnce sync.Once
}

// NewFeed creates a feed writing to the given topic and starts its
// delivery goroutine. Call Close to flush and stop it.
func NewFeed(brokers []string, topic string, logger *slog.Logger) *Feed {
	f := &Feed{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		logger: logger,
		inbox:  make(chan kafka.Message, defaultInboxSize),
		done:   make(chan struct{}),
	}

	go f.run()

	return f
}

// Publish queues one lifecycle record. The order ID is the partition key.
func (f *Feed) Publish(ctx context.Context, orderID kernel.UUID, eventType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		f.logger.ErrorContext(ctx, "failed to encode lifecycle payload",
			"order_id", orderID.String(), "event_type", eventType, "error", err)
		return
	}

	body, err := json.Marshal(record{
		OrderID:    orderID.String(),
		EventType:  eventType,
		Payload:    raw,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		f.logger.ErrorContext(ctx, "failed to encode lifecycle record",
			"order_id", orderID.String(), "event_type", eventType, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(orderID.String()),
		Value: body,
		Time:  time.Now(),
	}

	select {
	case f.inbox <- msg:
	default:
		f.logger.WarnContext(ctx, "lifecycle feed inbox full, dropping record",
			"order_id", orderID.String(), "event_type", eventType)
	}
}

// Close flushes the inbox and stops the delivery goroutine.
func (f *Feed) Close() error {
	f.closeOnce.Do(func() {
		close(f.inbox)
		<-f.done
	})
	return nil
}

func (f *Feed) run() {
	defer close(f.done)

	for msg := range f.inbox {
		if err := f.writer.WriteMessages(context.Background(), msg); err != nil {
			f.logger.Error("failed to write lifecycle record",
				"order_id", string(msg.Key), "error", err)
		}
	}

	if err := f.writer.Close(); err != nil {
		f.logger.Error("failed to close kafka writer", "error", err)
	}
}
