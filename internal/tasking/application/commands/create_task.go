package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/shared/infrastructure/eventbus"
	"github.com/pulsedev/pulse/internal/tasking/domain/task"
)

var ErrTaskNotFound = errors.New("task not found")

// CreateTaskCommand contains the data needed to create a task.
type CreateTaskCommand struct {
	UserID        uuid.UUID
	Title         string
	ExpectedTime  float64
	Priority      task.Priority
	IsRecurring   bool
	RecurringType task.RecurringType
	Dependencies  []uuid.UUID
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo  task.Repository
	publisher eventbus.Publisher
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(taskRepo task.Repository, publisher eventbus.Publisher) *CreateTaskHandler {
	return &CreateTaskHandler{taskRepo: taskRepo, publisher: publisher}
}

// Handle executes the CreateTaskCommand. Validation happens before any store
// write, so a rejected command is never partially applied.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*task.Task, error) {
	t, err := task.NewTask(cmd.UserID, cmd.Title)
	if err != nil {
		return nil, err
	}

	if cmd.ExpectedTime > 0 {
		if err := t.SetExpectedTime(cmd.ExpectedTime); err != nil {
			return nil, err
		}
	}
	if cmd.Priority != task.PriorityNormal {
		if err := t.SetPriority(cmd.Priority); err != nil {
			return nil, err
		}
	}
	if cmd.IsRecurring {
		if err := t.SetRecurring(true, cmd.RecurringType); err != nil {
			return nil, err
		}
	}
	if len(cmd.Dependencies) > 0 {
		if err := t.SetDependencies(cmd.Dependencies); err != nil {
			return nil, err
		}
	}

	if err := h.taskRepo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	publishEvents(ctx, h.publisher, t)

	return t, nil
}
