package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/tasking/domain/task"
)

// UpdateTaskCommand patches task fields. Nil fields are left untouched.
type UpdateTaskCommand struct {
	UserID        uuid.UUID
	TaskID        uuid.UUID
	Title         *string
	ExpectedTime  *float64
	Priority      *task.Priority
	IsRecurring   *bool
	RecurringType *task.RecurringType
	Dependencies  *[]uuid.UUID
}

// UpdateTaskHandler handles the UpdateTaskCommand.
type UpdateTaskHandler struct {
	taskRepo task.Repository
}

// NewUpdateTaskHandler creates a new UpdateTaskHandler.
func NewUpdateTaskHandler(taskRepo task.Repository) *UpdateTaskHandler {
	return &UpdateTaskHandler{taskRepo: taskRepo}
}

// Handle executes the UpdateTaskCommand.
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) (*task.Task, error) {
	t, err := h.taskRepo.FindByID(ctx, cmd.UserID, cmd.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}

	if cmd.Title != nil {
		if err := t.SetTitle(*cmd.Title); err != nil {
			return nil, err
		}
	}
	if cmd.ExpectedTime != nil {
		if err := t.SetExpectedTime(*cmd.ExpectedTime); err != nil {
			return nil, err
		}
	}
	if cmd.Priority != nil {
		if err := t.SetPriority(*cmd.Priority); err != nil {
			return nil, err
		}
	}
	if cmd.IsRecurring != nil {
		rt := t.RecurringType()
		if cmd.RecurringType != nil {
			rt = *cmd.RecurringType
		}
		if err := t.SetRecurring(*cmd.IsRecurring, rt); err != nil {
			return nil, err
		}
	} else if cmd.RecurringType != nil {
		if err := t.SetRecurring(t.IsRecurring(), *cmd.RecurringType); err != nil {
			return nil, err
		}
	}
	if cmd.Dependencies != nil {
		if err := t.SetDependencies(*cmd.Dependencies); err != nil {
			return nil, err
		}
	}

	if err := h.taskRepo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	return t, nil
}
