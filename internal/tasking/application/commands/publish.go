package commands

import (
	"context"

	"github.com/pulsedev/pulse/internal/shared/domain"
	"github.com/pulsedev/pulse/internal/shared/infrastructure/eventbus"
)

// publishEvents drains an aggregate's uncommitted events onto the bus. The
// aggregate has already been persisted; event delivery (and everything
// downstream of it, like ledger bookkeeping) is best-effort by design.
func publishEvents(ctx context.Context, pub eventbus.Publisher, agg domain.AggregateRoot) {
	for _, event := range agg.DomainEvents() {
		_ = pub.PublishEvent(ctx, event)
	}
	agg.ClearDomainEvents()
}
