// Package eventbus carries domain events from command handlers to interested
// consumers. Delivery is best-effort: the primary mutation has already been
// committed by the time an event is published.
package eventbus

import (
	"context"

	"github.com/pulsedev/pulse/internal/shared/domain"
)

// Publisher publishes domain events.
type Publisher interface {
	PublishEvent(ctx context.Context, event domain.DomainEvent) error
	Close() error
}

// Consumer handles domain events for the routing keys it declares.
type Consumer interface {
	RoutingKeys() []string
	Handle(ctx context.Context, event domain.DomainEvent) error
}
