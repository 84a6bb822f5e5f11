package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pulsedev/pulse/internal/shared/domain"
)

// ConsumerRegistry maps routing keys to registered consumers.
type ConsumerRegistry struct {
	consumers map[string][]Consumer
	mu        sync.RWMutex
	logger    *slog.Logger
}

// NewConsumerRegistry creates an empty registry.
func NewConsumerRegistry(logger *slog.Logger) *ConsumerRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsumerRegistry{
		consumers: make(map[string][]Consumer),
		logger:    logger,
	}
}

// Register adds a consumer for each routing key it declares.
func (r *ConsumerRegistry) Register(consumer Consumer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range consumer.RoutingKeys() {
		r.consumers[key] = append(r.consumers[key], consumer)
		r.logger.Debug("registered consumer", "routing_key", key)
	}
}

// Dispatch delivers an event to every consumer registered for its routing
// key. A failing consumer does not prevent delivery to the others.
func (r *ConsumerRegistry) Dispatch(ctx context.Context, event domain.DomainEvent) error {
	r.mu.RLock()
	consumers := r.consumers[event.RoutingKey()]
	r.mu.RUnlock()

	if len(consumers) == 0 {
		r.logger.Debug("no consumers for event", "routing_key", event.RoutingKey())
		return nil
	}

	var lastErr error
	for _, consumer := range consumers {
		if err := consumer.Handle(ctx, event); err != nil {
			r.logger.Error("consumer failed to handle event",
				"routing_key", event.RoutingKey(),
				"event_id", event.EventID(),
				"error", err,
			)
			lastErr = err
		}
	}
	return lastErr
}
