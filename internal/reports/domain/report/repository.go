package report

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists weekly reports keyed by (user, week start).
type Repository interface {
	// UpsertReplace inserts the report or fully replaces the metrics of an
	// existing report for the same user and week.
	UpsertReplace(ctx context.Context, r *WeeklyReport) error
	// FindByUserID returns all reports for a user, most recent week first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*WeeklyReport, error)
}
