package queries

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/tasking/domain/task"
)

var ErrTaskNotFound = errors.New("task not found")

// ListTasksQuery fetches all tasks for a user.
type ListTasksQuery struct {
	UserID uuid.UUID
}

// ListTasksHandler handles the ListTasksQuery. Reading the list is also
// where recurring tasks get their lazy reset: completed recurring tasks
// whose cycle day has passed are reopened and persisted before the list is
// returned.
type ListTasksHandler struct {
	taskRepo task.Repository
	now      func() time.Time
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo task.Repository) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo, now: time.Now}
}

// NewListTasksHandlerWithClock creates a handler with a fixed clock for
// tests.
func NewListTasksHandlerWithClock(taskRepo task.Repository, now func() time.Time) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo, now: now}
}

// Handle executes the ListTasksQuery, newest first.
func (h *ListTasksHandler) Handle(ctx context.Context, q ListTasksQuery) ([]*task.Task, error) {
	tasks, err := h.taskRepo.FindByUserID(ctx, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	today := h.now().UTC()
	for _, t := range tasks {
		if !t.Completed() || !task.ShouldReset(t, today) {
			continue
		}
		// lastCompletedDate stays untouched; it only moves at completion.
		t.Reopen()
		if err := h.taskRepo.Save(ctx, t); err != nil {
			return nil, fmt.Errorf("failed to persist recurrence reset: %w", err)
		}
	}

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt().After(tasks[j].CreatedAt())
	})

	return tasks, nil
}
