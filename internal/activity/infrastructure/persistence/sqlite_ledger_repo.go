// Package persistence implements the activity ledger repositories.
package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/activity/domain/ledger"
)

// SQLiteLedgerRepository implements ledger.Repository using SQLite.
type SQLiteLedgerRepository struct {
	db *sql.DB
}

// NewSQLiteLedgerRepository creates a new SQLite ledger repository.
func NewSQLiteLedgerRepository(db *sql.DB) *SQLiteLedgerRepository {
	return &SQLiteLedgerRepository{db: db}
}

// IncrementFor atomically adds deltas to a day's entry, creating it on
// first touch.
func (r *SQLiteLedgerRepository) IncrementFor(ctx context.Context, userID uuid.UUID, day string, d ledger.Deltas) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_ledger (user_id, day, tasks_created, tasks_completed, time_spent, pomodoros_completed)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, day) DO UPDATE SET
			tasks_created = tasks_created + excluded.tasks_created,
			tasks_completed = tasks_completed + excluded.tasks_completed,
			time_spent = time_spent + excluded.time_spent,
			pomodoros_completed = pomodoros_completed + excluded.pomodoros_completed
	`,
		userID.String(), day,
		d.TasksCreated, d.TasksCompleted, d.TimeSpent, d.PomodorosCompleted,
	)
	if err != nil {
		return fmt.Errorf("failed to increment activity ledger: %w", err)
	}
	return nil
}

// ReplaceCounts overwrites the task-derived counters. The pomodoro counter
// is left alone on conflict and starts at zero on insert.
func (r *SQLiteLedgerRepository) ReplaceCounts(ctx context.Context, userID uuid.UUID, day string, c ledger.Counts) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_ledger (user_id, day, tasks_created, tasks_completed, time_spent, pomodoros_completed)
		VALUES (?, ?, ?, ?, ?, 0)
		ON CONFLICT(user_id, day) DO UPDATE SET
			tasks_created = excluded.tasks_created,
			tasks_completed = excluded.tasks_completed,
			time_spent = excluded.time_spent
	`,
		userID.String(), day,
		c.TasksCreated, c.TasksCompleted, c.TimeSpent,
	)
	if err != nil {
		return fmt.Errorf("failed to replace activity counts: %w", err)
	}
	return nil
}

// FindRange returns entries within the inclusive day-key range, ascending.
func (r *SQLiteLedgerRepository) FindRange(ctx context.Context, userID uuid.UUID, fromDay, toDay string) ([]ledger.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, day, tasks_created, tasks_completed, time_spent, pomodoros_completed
		FROM activity_ledger
		WHERE user_id = ? AND day >= ? AND day <= ?
		ORDER BY day ASC
	`, userID.String(), fromDay, toDay)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity ledger: %w", err)
	}
	defer rows.Close()

	var entries []ledger.Entry
	for rows.Next() {
		var (
			userIDStr string
			e         ledger.Entry
		)
		if err := rows.Scan(&userIDStr, &e.Day, &e.TasksCreated, &e.TasksCompleted, &e.TimeSpent, &e.PomodorosCompleted); err != nil {
			return nil, err
		}
		uid, err := uuid.Parse(userIDStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt user id %q: %w", userIDStr, err)
		}
		e.UserID = uid
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
