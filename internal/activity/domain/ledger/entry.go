// Package ledger holds the per-day activity counters that feed streak and
// continuity calculations.
package ledger

import (
	"github.com/google/uuid"
)

// Entry is one ledger row: the activity counters for a single user on a
// single calendar day. Day uses the YYYY-MM-DD key format.
type Entry struct {
	UserID             uuid.UUID
	Day                string
	TasksCreated       int
	TasksCompleted     int
	TimeSpent          float64
	PomodorosCompleted int
}

// IsActive reports whether any counter shows activity on this day.
func (e Entry) IsActive() bool {
	return e.TasksCreated > 0 || e.TasksCompleted > 0 || e.TimeSpent > 0 || e.PomodorosCompleted > 0
}

// Deltas are counter increments applied atomically to a day's entry.
type Deltas struct {
	TasksCreated       int
	TasksCompleted     int
	TimeSpent          float64
	PomodorosCompleted int
}

// Counts are absolute values for the task-derived counters. Pomodoros are
// deliberately absent: that counter is only ever incremented at session
// time and must survive a recount of the task-derived values.
type Counts struct {
	TasksCreated   int
	TasksCompleted int
	TimeSpent      float64
}
