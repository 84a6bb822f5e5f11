// Package persistence implements the tasking repositories for both backing
// stores.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/tasking/domain/task"
)

// SQLiteTaskRepository implements task.Repository using SQLite.
type SQLiteTaskRepository struct {
	db *sql.DB
}

// NewSQLiteTaskRepository creates a new SQLite task repository.
func NewSQLiteTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

// Save upserts a task and its dependency set.
func (r *SQLiteTaskRepository) Save(ctx context.Context, t *task.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tasks (
			id, user_id, title, completed, time_spent, expected_time,
			pomodoro_count, priority, is_recurring, recurring_type,
			last_completed_date, completed_at, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			completed = excluded.completed,
			time_spent = excluded.time_spent,
			expected_time = excluded.expected_time,
			pomodoro_count = excluded.pomodoro_count,
			priority = excluded.priority,
			is_recurring = excluded.is_recurring,
			recurring_type = excluded.recurring_type,
			last_completed_date = excluded.last_completed_date,
			completed_at = excluded.completed_at,
			updated_at = excluded.updated_at
	`

	var completedAt, lastCompleted sql.NullString
	if t.CompletedAt() != nil {
		completedAt = sql.NullString{String: t.CompletedAt().Format(time.RFC3339), Valid: true}
	}
	if t.LastCompletedDate() != nil {
		lastCompleted = sql.NullString{String: t.LastCompletedDate().Format(time.RFC3339), Valid: true}
	}

	if _, err := tx.ExecContext(ctx, query,
		t.ID().String(),
		t.UserID().String(),
		t.Title(),
		boolToInt(t.Completed()),
		t.TimeSpent(),
		t.ExpectedTime(),
		t.PomodoroCount(),
		int(t.Priority()),
		boolToInt(t.IsRecurring()),
		string(t.RecurringType()),
		lastCompleted,
		completedAt,
		t.CreatedAt().Format(time.RFC3339),
		t.UpdatedAt().Format(time.RFC3339),
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_dependencies WHERE task_id = ?`, t.ID().String()); err != nil {
		return err
	}
	for _, dep := range t.Dependencies() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO task_dependencies (task_id, depends_on) VALUES (?, ?)`,
			t.ID().String(), dep.String(),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

const taskColumns = `id, user_id, title, completed, time_spent, expected_time,
	pomodoro_count, priority, is_recurring, recurring_type,
	last_completed_date, completed_at, created_at, updated_at`

// FindByID retrieves a task owned by the given user, or nil.
func (r *SQLiteTaskRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*task.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ? AND user_id = ?`,
		id.String(), userID.String(),
	)

	t, err := r.scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	deps, err := r.loadDependencies(ctx, []uuid.UUID{t.ID()})
	if err != nil {
		return nil, err
	}
	return r.withDependencies(t, deps[t.ID()]), nil
}

// FindByUserID retrieves all tasks for a user.
func (r *SQLiteTaskRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? ORDER BY created_at DESC`,
		userID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*task.Task
	var ids []uuid.UUID
	for rows.Next() {
		t, err := r.scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
		ids = append(ids, t.ID())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	deps, err := r.loadDependencies(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i, t := range tasks {
		tasks[i] = r.withDependencies(t, deps[t.ID()])
	}
	return tasks, nil
}

// Delete removes a task. Dependency rows cascade via the schema.
func (r *SQLiteTaskRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND user_id = ?`,
		id.String(), userID.String(),
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// RemoveDependencyReferences strips a deleted task id from every other
// task's dependency set.
func (r *SQLiteTaskRepository) RemoveDependencyReferences(ctx context.Context, userID, deletedID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM task_dependencies
		WHERE depends_on = ?
		  AND task_id IN (SELECT id FROM tasks WHERE user_id = ?)
	`, deletedID.String(), userID.String())
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteTaskRepository) scanTask(row rowScanner) (*task.Task, error) {
	var (
		idStr, userIDStr, title, recurringType string
		completed, isRecurring, priority       int
		timeSpent, expectedTime                float64
		pomodoroCount                          int
		lastCompletedStr, completedAtStr       sql.NullString
		createdAtStr, updatedAtStr             string
	)

	if err := row.Scan(
		&idStr, &userIDStr, &title, &completed, &timeSpent, &expectedTime,
		&pomodoroCount, &priority, &isRecurring, &recurringType,
		&lastCompletedStr, &completedAtStr, &createdAtStr, &updatedAtStr,
	); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt task id %q: %w", idStr, err)
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt user id %q: %w", userIDStr, err)
	}

	createdAt, _ := time.Parse(time.RFC3339, createdAtStr)
	updatedAt, _ := time.Parse(time.RFC3339, updatedAtStr)
	completedAt := parseNullTime(completedAtStr)
	lastCompleted := parseNullTime(lastCompletedStr)

	return task.Rehydrate(
		id, userID, title,
		completed != 0, completedAt,
		timeSpent, expectedTime, pomodoroCount,
		nil,
		task.Priority(priority),
		isRecurring != 0, task.RecurringType(recurringType),
		lastCompleted,
		createdAt, updatedAt,
	), nil
}

func (r *SQLiteTaskRepository) loadDependencies(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	deps := make(map[uuid.UUID][]uuid.UUID, len(taskIDs))
	if len(taskIDs) == 0 {
		return deps, nil
	}

	for _, taskID := range taskIDs {
		rows, err := r.db.QueryContext(ctx,
			`SELECT depends_on FROM task_dependencies WHERE task_id = ?`,
			taskID.String(),
		)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var depStr string
			if err := rows.Scan(&depStr); err != nil {
				rows.Close()
				return nil, err
			}
			dep, err := uuid.Parse(depStr)
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("corrupt dependency id %q: %w", depStr, err)
			}
			deps[taskID] = append(deps[taskID], dep)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	return deps, nil
}

// withDependencies rebuilds the task with its dependency set attached.
func (r *SQLiteTaskRepository) withDependencies(t *task.Task, deps []uuid.UUID) *task.Task {
	if len(deps) == 0 {
		return t
	}
	return task.Rehydrate(
		t.ID(), t.UserID(), t.Title(),
		t.Completed(), t.CompletedAt(),
		t.TimeSpent(), t.ExpectedTime(), t.PomodoroCount(),
		deps,
		t.Priority(),
		t.IsRecurring(), t.RecurringType(),
		t.LastCompletedDate(),
		t.CreatedAt(), t.UpdatedAt(),
	)
}

func parseNullTime(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
