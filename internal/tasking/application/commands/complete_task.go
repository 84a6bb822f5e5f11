package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/shared/infrastructure/eventbus"
	"github.com/pulsedev/pulse/internal/tasking/domain/task"
)

// CompleteTaskCommand marks a task as completed. CompletedAt may be set by
// clients that backdate a completion; it defaults to now.
type CompleteTaskCommand struct {
	UserID      uuid.UUID
	TaskID      uuid.UUID
	CompletedAt *time.Time
}

// CompleteTaskHandler handles the CompleteTaskCommand.
type CompleteTaskHandler struct {
	taskRepo  task.Repository
	publisher eventbus.Publisher
}

// NewCompleteTaskHandler creates a new CompleteTaskHandler.
func NewCompleteTaskHandler(taskRepo task.Repository, publisher eventbus.Publisher) *CompleteTaskHandler {
	return &CompleteTaskHandler{taskRepo: taskRepo, publisher: publisher}
}

// Handle executes the CompleteTaskCommand.
func (h *CompleteTaskHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) (*task.Task, error) {
	t, err := h.taskRepo.FindByID(ctx, cmd.UserID, cmd.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}

	completedAt := time.Now().UTC()
	if cmd.CompletedAt != nil {
		completedAt = cmd.CompletedAt.UTC()
	}

	if err := t.Complete(completedAt); err != nil {
		return nil, err
	}

	if err := h.taskRepo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	publishEvents(ctx, h.publisher, t)

	return t, nil
}
