package application

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/activity/domain/ledger"
	"github.com/pulsedev/pulse/internal/shared/domain"
	"github.com/pulsedev/pulse/internal/tasking/domain/pomodoro"
	"github.com/pulsedev/pulse/internal/tasking/domain/task"
	"github.com/pulsedev/pulse/pkg/calendar"
)

// Recorder consumes task and pomodoro events and folds them into the
// activity ledger. Ledger writes are best-effort: a failed increment is
// logged and swallowed so it never fails the command that raised the event.
type Recorder struct {
	ledgerRepo ledger.Repository
	logger     *slog.Logger
}

// NewRecorder creates a ledger recorder.
func NewRecorder(ledgerRepo ledger.Repository, logger *slog.Logger) *Recorder {
	return &Recorder{ledgerRepo: ledgerRepo, logger: logger}
}

// RoutingKeys lists the events the recorder consumes.
func (r *Recorder) RoutingKeys() []string {
	return []string{
		task.RoutingKeyTaskCreated,
		task.RoutingKeyTaskCompleted,
		pomodoro.RoutingKeySessionRecorded,
	}
}

// Handle folds one event into the ledger.
func (r *Recorder) Handle(ctx context.Context, event domain.DomainEvent) error {
	switch e := event.(type) {
	case *task.TaskCreated:
		r.increment(ctx, e.UserID, event, calendar.DayKey(e.OccurredAt()), ledger.Deltas{TasksCreated: 1})
	case *task.TaskCompleted:
		r.increment(ctx, e.UserID, event, calendar.DayKey(e.CompletedAt), ledger.Deltas{
			TasksCompleted: 1,
			TimeSpent:      e.TimeSpent,
		})
	case *pomodoro.SessionRecorded:
		// Session duration stays out of timeSpent: the ledger's time counter
		// tracks task accumulators only, so a recount from the task store can
		// reproduce it.
		r.increment(ctx, e.UserID, event, calendar.DayKey(e.Date), ledger.Deltas{PomodorosCompleted: 1})
	}
	return nil
}

func (r *Recorder) increment(ctx context.Context, userID uuid.UUID, event domain.DomainEvent, day string, d ledger.Deltas) {
	if err := r.ledgerRepo.IncrementFor(ctx, userID, day, d); err != nil {
		r.logger.Warn("activity ledger increment failed",
			"routing_key", event.RoutingKey(),
			"day", day,
			"error", err,
		)
	}
}
