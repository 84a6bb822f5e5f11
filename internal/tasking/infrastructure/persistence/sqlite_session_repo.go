package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/tasking/domain/pomodoro"
)

// SQLiteSessionRepository implements pomodoro.Repository using SQLite.
type SQLiteSessionRepository struct {
	db *sql.DB
}

// NewSQLiteSessionRepository creates a new SQLite session repository.
func NewSQLiteSessionRepository(db *sql.DB) *SQLiteSessionRepository {
	return &SQLiteSessionRepository{db: db}
}

// Save inserts a session. Sessions are immutable records so the conflict
// branch only exists for replayed saves.
func (r *SQLiteSessionRepository) Save(ctx context.Context, s *pomodoro.Session) error {
	var taskID sql.NullString
	if s.TaskID() != nil {
		taskID = sql.NullString{String: s.TaskID().String(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pomodoro_sessions (id, user_id, task_id, date, duration, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			duration = excluded.duration
	`,
		s.ID().String(),
		s.UserID().String(),
		taskID,
		s.Date().Format(time.RFC3339),
		s.Duration(),
		s.CreatedAt().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// FindByUserID retrieves all sessions for a user.
func (r *SQLiteSessionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*pomodoro.Session, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, task_id, date, duration, created_at
		FROM pomodoro_sessions
		WHERE user_id = ?
		ORDER BY date DESC
	`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*pomodoro.Session
	for rows.Next() {
		var (
			idStr, userIDStr string
			taskIDStr        sql.NullString
			dateStr          string
			duration         float64
			createdAtStr     string
		)
		if err := rows.Scan(&idStr, &userIDStr, &taskIDStr, &dateStr, &duration, &createdAtStr); err != nil {
			return nil, err
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt session id %q: %w", idStr, err)
		}
		uid, err := uuid.Parse(userIDStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt user id %q: %w", userIDStr, err)
		}
		var taskID *uuid.UUID
		if taskIDStr.Valid {
			parsed, err := uuid.Parse(taskIDStr.String)
			if err != nil {
				return nil, fmt.Errorf("corrupt task id %q: %w", taskIDStr.String, err)
			}
			taskID = &parsed
		}

		date, _ := time.Parse(time.RFC3339, dateStr)
		createdAt, _ := time.Parse(time.RFC3339, createdAtStr)

		sessions = append(sessions, pomodoro.Rehydrate(id, uid, taskID, date, duration, createdAt))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}
