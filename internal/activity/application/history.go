package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/activity/domain/ledger"
	"github.com/pulsedev/pulse/internal/tasking/domain/task"
	"github.com/pulsedev/pulse/pkg/calendar"
)

// DefaultHistoryDays is the window used when the query does not name one.
const DefaultHistoryDays = 30

// GetHistoryQuery fetches the per-day activity history plus continuity.
type GetHistoryQuery struct {
	UserID uuid.UUID
	Days   int // window size; defaults to DefaultHistoryDays
}

// DayActivity groups what happened on one calendar day. TimeSpent sums the
// accumulated time of the tasks completed that day.
type DayActivity struct {
	Date      string
	Created   []*task.Task
	Completed []*task.Task
	TimeSpent float64
}

// History is the query result: day buckets newest first plus the continuity
// summary.
type History struct {
	Days       []DayActivity
	Continuity Continuity
}

// GetHistoryHandler builds the history view from the task store and keeps
// today's ledger row honest along the way: the task-derived counters are
// recounted from source on every read, so drift from missed events heals
// itself.
type GetHistoryHandler struct {
	taskRepo   task.Repository
	ledgerRepo ledger.Repository
	logger     *slog.Logger
	now        func() time.Time
}

// NewGetHistoryHandler creates a new GetHistoryHandler.
func NewGetHistoryHandler(taskRepo task.Repository, ledgerRepo ledger.Repository, logger *slog.Logger) *GetHistoryHandler {
	return &GetHistoryHandler{taskRepo: taskRepo, ledgerRepo: ledgerRepo, logger: logger, now: time.Now}
}

// NewGetHistoryHandlerWithClock creates a handler with a fixed clock for
// tests.
func NewGetHistoryHandlerWithClock(taskRepo task.Repository, ledgerRepo ledger.Repository, logger *slog.Logger, now func() time.Time) *GetHistoryHandler {
	return &GetHistoryHandler{taskRepo: taskRepo, ledgerRepo: ledgerRepo, logger: logger, now: now}
}

// Handle executes the GetHistoryQuery.
func (h *GetHistoryHandler) Handle(ctx context.Context, q GetHistoryQuery) (*History, error) {
	days := q.Days
	if days <= 0 {
		days = DefaultHistoryDays
	}

	now := h.now().UTC()
	windowStart, _ := calendar.DateRange(now, days)

	tasks, err := h.taskRepo.FindByUserID(ctx, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for history: %w", err)
	}

	buckets := make(map[string]*DayActivity)
	bucket := func(day string) *DayActivity {
		b, ok := buckets[day]
		if !ok {
			b = &DayActivity{Date: day}
			buckets[day] = b
		}
		return b
	}

	for _, t := range tasks {
		inWindow := !t.CreatedAt().Before(windowStart) ||
			(t.CompletedAt() != nil && !t.CompletedAt().Before(windowStart))
		if !inWindow {
			continue
		}

		if !t.CreatedAt().Before(windowStart) {
			b := bucket(calendar.DayKey(t.CreatedAt()))
			b.Created = append(b.Created, t)
		}
		if t.Completed() && t.CompletedAt() != nil && !t.CompletedAt().Before(windowStart) {
			b := bucket(calendar.DayKey(*t.CompletedAt()))
			b.Completed = append(b.Completed, t)
			b.TimeSpent += t.TimeSpent()
		}
	}

	history := make([]DayActivity, 0, len(buckets))
	for _, b := range buckets {
		history = append(history, *b)
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].Date > history[j].Date
	})

	h.repairToday(ctx, q.UserID, now, buckets)

	todayKey := calendar.DayKey(now)
	lookbackKey := calendar.DayKey(calendar.AddDays(now, -ContinuityLookbackDays))
	entries, err := h.ledgerRepo.FindRange(ctx, q.UserID, lookbackKey, todayKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load activity ledger: %w", err)
	}

	return &History{
		Days:       history,
		Continuity: ComputeContinuity(entries, now, days),
	}, nil
}

// repairToday overwrites today's task-derived ledger counters with a fresh
// recount. A failed write degrades continuity by at most one day, so it is
// logged rather than failing the read.
func (h *GetHistoryHandler) repairToday(ctx context.Context, userID uuid.UUID, now time.Time, buckets map[string]*DayActivity) {
	todayKey := calendar.DayKey(now)
	counts := ledger.Counts{}
	if b, ok := buckets[todayKey]; ok {
		counts.TasksCreated = len(b.Created)
		counts.TasksCompleted = len(b.Completed)
		counts.TimeSpent = b.TimeSpent
	}
	if err := h.ledgerRepo.ReplaceCounts(ctx, userID, todayKey, counts); err != nil {
		h.logger.Warn("activity ledger repair failed", "day", todayKey, "error", err)
	}
}
