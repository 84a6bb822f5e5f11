package queries

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/tasking/domain/task"
)

// GetTaskQuery fetches a single task by id.
type GetTaskQuery struct {
	UserID uuid.UUID
	TaskID uuid.UUID
}

// GetTaskHandler handles the GetTaskQuery.
type GetTaskHandler struct {
	taskRepo task.Repository
}

// NewGetTaskHandler creates a new GetTaskHandler.
func NewGetTaskHandler(taskRepo task.Repository) *GetTaskHandler {
	return &GetTaskHandler{taskRepo: taskRepo}
}

// Handle executes the GetTaskQuery.
func (h *GetTaskHandler) Handle(ctx context.Context, q GetTaskQuery) (*task.Task, error) {
	t, err := h.taskRepo.FindByID(ctx, q.UserID, q.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}
	return t, nil
}
