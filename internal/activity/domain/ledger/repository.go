package ledger

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists the activity ledger.
type Repository interface {
	// IncrementFor atomically adds the deltas to the entry for the given
	// day, creating the entry if it does not exist.
	IncrementFor(ctx context.Context, userID uuid.UUID, day string, d Deltas) error
	// ReplaceCounts overwrites the task-derived counters for a day while
	// leaving the pomodoro counter untouched.
	ReplaceCounts(ctx context.Context, userID uuid.UUID, day string, c Counts) error
	// FindRange returns entries with fromDay <= day <= toDay, ascending.
	FindRange(ctx context.Context, userID uuid.UUID, fromDay, toDay string) ([]Entry, error)
}
