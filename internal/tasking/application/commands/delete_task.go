package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/tasking/domain/task"
)

// DeleteTaskCommand removes a task and strips it from every other task's
// dependency set.
type DeleteTaskCommand struct {
	UserID uuid.UUID
	TaskID uuid.UUID
}

// DeleteTaskHandler handles the DeleteTaskCommand.
type DeleteTaskHandler struct {
	taskRepo task.Repository
}

// NewDeleteTaskHandler creates a new DeleteTaskHandler.
func NewDeleteTaskHandler(taskRepo task.Repository) *DeleteTaskHandler {
	return &DeleteTaskHandler{taskRepo: taskRepo}
}

// Handle executes the DeleteTaskCommand. Tasks depending on the deleted one
// survive with the reference removed.
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd DeleteTaskCommand) error {
	deleted, err := h.taskRepo.Delete(ctx, cmd.UserID, cmd.TaskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return ErrTaskNotFound
	}

	if err := h.taskRepo.RemoveDependencyReferences(ctx, cmd.UserID, cmd.TaskID); err != nil {
		return fmt.Errorf("failed to remove dependency references: %w", err)
	}

	return nil
}
