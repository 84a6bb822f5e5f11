package eventbus

import (
	"context"
	"log/slog"

	"github.com/pulsedev/pulse/internal/shared/domain"
)

// InProcessBus delivers events synchronously to registered consumers within
// the same process. It is the default bus when no broker is configured.
type InProcessBus struct {
	registry *ConsumerRegistry
	logger   *slog.Logger
}

// NewInProcessBus creates a new in-process event bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		registry: NewConsumerRegistry(logger),
		logger:   logger,
	}
}

// RegisterConsumer registers an event consumer.
func (b *InProcessBus) RegisterConsumer(consumer Consumer) {
	b.registry.Register(consumer)
}

// PublishEvent dispatches the event to all registered consumers. Consumer
// failures are logged but never propagated: by the time an event is
// published the triggering mutation has already succeeded.
func (b *InProcessBus) PublishEvent(ctx context.Context, event domain.DomainEvent) error {
	if err := b.registry.Dispatch(ctx, event); err != nil {
		b.logger.Error("event dispatch failed",
			"routing_key", event.RoutingKey(),
			"event_id", event.EventID(),
			"error", err,
		)
	}
	return nil
}

// Close is a no-op for the in-process bus.
func (b *InProcessBus) Close() error {
	return nil
}
