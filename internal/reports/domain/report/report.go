// Package report holds the derived weekly productivity report. Reports are
// recomputed from the task and session stores, so they carry no domain
// events and can always be regenerated.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/pkg/calendar"
)

// WeeklyReport aggregates one week of productivity. The week is identified
// by its start day (Sunday) and is unique per user.
type WeeklyReport struct {
	id               uuid.UUID
	userID           uuid.UUID
	weekStart        time.Time
	tasksCompleted   int
	totalTimeSpent   float64
	expectedVsActual float64
	pomodoroCount    int
	generatedAt      time.Time
}

// NewWeeklyReport creates a report for the week starting at weekStart.
func NewWeeklyReport(userID uuid.UUID, weekStart time.Time, tasksCompleted int, totalTimeSpent, expectedVsActual float64, pomodoroCount int, generatedAt time.Time) *WeeklyReport {
	return &WeeklyReport{
		id:               uuid.New(),
		userID:           userID,
		weekStart:        calendar.StartOfDay(weekStart),
		tasksCompleted:   tasksCompleted,
		totalTimeSpent:   totalTimeSpent,
		expectedVsActual: expectedVsActual,
		pomodoroCount:    pomodoroCount,
		generatedAt:      generatedAt,
	}
}

func (r *WeeklyReport) ID() uuid.UUID             { return r.id }
func (r *WeeklyReport) UserID() uuid.UUID         { return r.userID }
func (r *WeeklyReport) WeekStart() time.Time      { return r.weekStart }
func (r *WeeklyReport) TasksCompleted() int       { return r.tasksCompleted }
func (r *WeeklyReport) TotalTimeSpent() float64   { return r.totalTimeSpent }
func (r *WeeklyReport) ExpectedVsActual() float64 { return r.expectedVsActual }
func (r *WeeklyReport) PomodoroCount() int        { return r.pomodoroCount }
func (r *WeeklyReport) GeneratedAt() time.Time    { return r.generatedAt }

// Rehydrate recreates a report from persisted state.
func Rehydrate(id, userID uuid.UUID, weekStart time.Time, tasksCompleted int, totalTimeSpent, expectedVsActual float64, pomodoroCount int, generatedAt time.Time) *WeeklyReport {
	return &WeeklyReport{
		id:               id,
		userID:           userID,
		weekStart:        weekStart,
		tasksCompleted:   tasksCompleted,
		totalTimeSpent:   totalTimeSpent,
		expectedVsActual: expectedVsActual,
		pomodoroCount:    pomodoroCount,
		generatedAt:      generatedAt,
	}
}
