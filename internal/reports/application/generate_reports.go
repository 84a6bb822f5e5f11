// Package application holds the report generation and read handlers.
package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/reports/domain/report"
	"github.com/pulsedev/pulse/internal/tasking/domain/pomodoro"
	"github.com/pulsedev/pulse/internal/tasking/domain/task"
	"github.com/pulsedev/pulse/pkg/calendar"
)

// GenerateReportsCommand recomputes the full weekly report series for a
// user, from the week of their earliest task through the current week.
type GenerateReportsCommand struct {
	UserID uuid.UUID
}

// WeekMetrics are the computed numbers for one report week.
type WeekMetrics struct {
	TasksCompleted   int
	TotalTimeSpent   float64
	ExpectedVsActual float64
	PomodoroCount    int
}

// BuildWeekMetrics computes the metrics for the week starting at weekStart.
//
// Completed-this-week matching is done on day keys so timezone drift inside
// a day cannot move a completion across a week boundary. Time spent sums
// the full accumulator of every task active during the week (created by
// week end and not completed before week start), matching how the time is
// surfaced elsewhere. The expected-vs-actual ratio only considers tasks
// completed this week that carry an estimate, and defaults to 1.
func BuildWeekMetrics(tasks []*task.Task, sessions []*pomodoro.Session, weekStart time.Time) WeekMetrics {
	weekStartKey := calendar.DayKey(weekStart)
	weekEndKey := calendar.DayKey(calendar.EndOfWeek(weekStart))

	var m WeekMetrics
	var totalExpected, totalActual float64
	estimated := 0

	for _, t := range tasks {
		completedKey := ""
		if t.CompletedAt() != nil {
			completedKey = calendar.DayKey(*t.CompletedAt())
		}

		completedThisWeek := completedKey != "" && completedKey >= weekStartKey && completedKey <= weekEndKey
		if completedThisWeek {
			m.TasksCompleted++
			if t.ExpectedTime() > 0 {
				estimated++
				totalExpected += t.ExpectedTime()
				totalActual += t.TimeSpent()
			}
		}

		createdByWeekEnd := calendar.DayKey(t.CreatedAt()) <= weekEndKey
		openOrCompletedAfterStart := completedKey == "" || completedKey >= weekStartKey
		if createdByWeekEnd && openOrCompletedAfterStart {
			m.TotalTimeSpent += t.TimeSpent()
		}
	}

	m.ExpectedVsActual = 1
	if estimated > 0 && totalExpected > 0 {
		m.ExpectedVsActual = totalActual / totalExpected
	}

	for _, s := range sessions {
		key := calendar.DayKey(s.Date())
		if key >= weekStartKey && key <= weekEndKey {
			m.PomodoroCount++
		}
	}

	return m
}

// GenerateReportsHandler handles the GenerateReportsCommand.
type GenerateReportsHandler struct {
	taskRepo    task.Repository
	sessionRepo pomodoro.Repository
	reportRepo  report.Repository
	now         func() time.Time
}

// NewGenerateReportsHandler creates a new GenerateReportsHandler.
func NewGenerateReportsHandler(taskRepo task.Repository, sessionRepo pomodoro.Repository, reportRepo report.Repository) *GenerateReportsHandler {
	return &GenerateReportsHandler{taskRepo: taskRepo, sessionRepo: sessionRepo, reportRepo: reportRepo, now: time.Now}
}

// NewGenerateReportsHandlerWithClock creates a handler with a fixed clock
// for tests.
func NewGenerateReportsHandlerWithClock(taskRepo task.Repository, sessionRepo pomodoro.Repository, reportRepo report.Repository, now func() time.Time) *GenerateReportsHandler {
	return &GenerateReportsHandler{taskRepo: taskRepo, sessionRepo: sessionRepo, reportRepo: reportRepo, now: now}
}

// Handle regenerates every week's report and returns them ascending by
// week. Each week is upserted independently so a mid-series failure leaves
// earlier weeks durably updated.
func (h *GenerateReportsHandler) Handle(ctx context.Context, cmd GenerateReportsCommand) ([]*report.WeeklyReport, error) {
	tasks, err := h.taskRepo.FindByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks for reports: %w", err)
	}
	if len(tasks) == 0 {
		return []*report.WeeklyReport{}, nil
	}

	sessions, err := h.sessionRepo.FindByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions for reports: %w", err)
	}

	earliest := tasks[0].CreatedAt()
	for _, t := range tasks[1:] {
		if t.CreatedAt().Before(earliest) {
			earliest = t.CreatedAt()
		}
	}

	now := h.now().UTC()
	weekStart := calendar.StartOfWeek(earliest)
	lastWeekStart := calendar.StartOfWeek(now)

	var reports []*report.WeeklyReport
	for !weekStart.After(lastWeekStart) {
		m := BuildWeekMetrics(tasks, sessions, weekStart)
		r := report.NewWeeklyReport(cmd.UserID, weekStart, m.TasksCompleted, m.TotalTimeSpent, m.ExpectedVsActual, m.PomodoroCount, now)
		if err := h.reportRepo.UpsertReplace(ctx, r); err != nil {
			return nil, fmt.Errorf("failed to save report for week %s: %w", calendar.DayKey(weekStart), err)
		}
		reports = append(reports, r)
		weekStart = calendar.AddDays(weekStart, 7)
	}

	return reports, nil
}
