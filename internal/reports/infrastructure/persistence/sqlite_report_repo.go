// Package persistence implements the weekly report repositories.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/reports/domain/report"
	"github.com/pulsedev/pulse/pkg/calendar"
)

// SQLiteReportRepository implements report.Repository using SQLite.
type SQLiteReportRepository struct {
	db *sql.DB
}

// NewSQLiteReportRepository creates a new SQLite report repository.
func NewSQLiteReportRepository(db *sql.DB) *SQLiteReportRepository {
	return &SQLiteReportRepository{db: db}
}

// UpsertReplace inserts or fully replaces the metrics for a week. The
// original row id survives a replace.
func (r *SQLiteReportRepository) UpsertReplace(ctx context.Context, rep *report.WeeklyReport) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO weekly_reports (
			id, user_id, week_start, tasks_completed, total_time_spent,
			expected_vs_actual, pomodoro_count, generated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, week_start) DO UPDATE SET
			tasks_completed = excluded.tasks_completed,
			total_time_spent = excluded.total_time_spent,
			expected_vs_actual = excluded.expected_vs_actual,
			pomodoro_count = excluded.pomodoro_count,
			generated_at = excluded.generated_at
	`,
		rep.ID().String(),
		rep.UserID().String(),
		calendar.DayKey(rep.WeekStart()),
		rep.TasksCompleted(),
		rep.TotalTimeSpent(),
		rep.ExpectedVsActual(),
		rep.PomodoroCount(),
		rep.GeneratedAt().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert weekly report: %w", err)
	}
	return nil
}

// FindByUserID retrieves all reports for a user, most recent week first.
func (r *SQLiteReportRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*report.WeeklyReport, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, week_start, tasks_completed, total_time_spent,
		       expected_vs_actual, pomodoro_count, generated_at
		FROM weekly_reports
		WHERE user_id = ?
		ORDER BY week_start DESC
	`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly reports: %w", err)
	}
	defer rows.Close()

	var reports []*report.WeeklyReport
	for rows.Next() {
		var (
			idStr, userIDStr, weekStartStr, generatedAtStr string
			tasksCompleted, pomodoroCount                  int
			totalTimeSpent, expectedVsActual               float64
		)
		if err := rows.Scan(&idStr, &userIDStr, &weekStartStr, &tasksCompleted, &totalTimeSpent, &expectedVsActual, &pomodoroCount, &generatedAtStr); err != nil {
			return nil, err
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt report id %q: %w", idStr, err)
		}
		uid, err := uuid.Parse(userIDStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt user id %q: %w", userIDStr, err)
		}
		weekStart, err := calendar.ParseDayKey(weekStartStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt week start %q: %w", weekStartStr, err)
		}
		generatedAt, _ := time.Parse(time.RFC3339, generatedAtStr)

		reports = append(reports, report.Rehydrate(id, uid, weekStart, tasksCompleted, totalTimeSpent, expectedVsActual, pomodoroCount, generatedAt))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}
