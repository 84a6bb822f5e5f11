package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/shared/infrastructure/eventbus"
	"github.com/pulsedev/pulse/internal/tasking/domain/pomodoro"
	"github.com/pulsedev/pulse/internal/tasking/domain/task"
)

// RecordPomodoroCommand appends a completed focus session. The session may
// be linked to a task, whose pomodoro counter is bumped alongside.
type RecordPomodoroCommand struct {
	UserID   uuid.UUID
	TaskID   *uuid.UUID
	Date     *time.Time
	Duration float64
}

// RecordPomodoroHandler handles the RecordPomodoroCommand.
type RecordPomodoroHandler struct {
	sessionRepo pomodoro.Repository
	taskRepo    task.Repository
	publisher   eventbus.Publisher
}

// NewRecordPomodoroHandler creates a new RecordPomodoroHandler.
func NewRecordPomodoroHandler(sessionRepo pomodoro.Repository, taskRepo task.Repository, publisher eventbus.Publisher) *RecordPomodoroHandler {
	return &RecordPomodoroHandler{sessionRepo: sessionRepo, taskRepo: taskRepo, publisher: publisher}
}

// Handle executes the RecordPomodoroCommand.
func (h *RecordPomodoroHandler) Handle(ctx context.Context, cmd RecordPomodoroCommand) (*pomodoro.Session, error) {
	date := time.Now().UTC()
	if cmd.Date != nil {
		date = cmd.Date.UTC()
	}

	session, err := pomodoro.NewSession(cmd.UserID, cmd.TaskID, date, cmd.Duration)
	if err != nil {
		return nil, err
	}

	if err := h.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if cmd.TaskID != nil {
		t, err := h.taskRepo.FindByID(ctx, cmd.UserID, *cmd.TaskID)
		if err != nil {
			return nil, fmt.Errorf("failed to find task: %w", err)
		}
		if t != nil {
			t.IncrementPomodoroCount()
			if err := h.taskRepo.Save(ctx, t); err != nil {
				return nil, fmt.Errorf("failed to update task pomodoro count: %w", err)
			}
		}
	}

	publishEvents(ctx, h.publisher, session)

	return session, nil
}
