package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/tasking/domain/task"
)

// LogTimeCommand adds elapsed work time to a task. The timer service flushes
// through this command periodically; the task's accumulator is the
// authoritative value, never the running timer itself.
type LogTimeCommand struct {
	UserID  uuid.UUID
	TaskID  uuid.UUID
	Seconds float64
}

// LogTimeHandler handles the LogTimeCommand.
type LogTimeHandler struct {
	taskRepo task.Repository
}

// NewLogTimeHandler creates a new LogTimeHandler.
func NewLogTimeHandler(taskRepo task.Repository) *LogTimeHandler {
	return &LogTimeHandler{taskRepo: taskRepo}
}

// Handle executes the LogTimeCommand.
func (h *LogTimeHandler) Handle(ctx context.Context, cmd LogTimeCommand) (*task.Task, error) {
	t, err := h.taskRepo.FindByID(ctx, cmd.UserID, cmd.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}

	if err := t.AddTime(cmd.Seconds); err != nil {
		return nil, err
	}

	if err := h.taskRepo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	return t, nil
}
