package task

import (
	"time"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/shared/domain"
)

// Routing keys for task events.
const (
	RoutingKeyTaskCreated   = "task.created"
	RoutingKeyTaskCompleted = "task.completed"
)

// TaskCreated is raised when a new task is created.
type TaskCreated struct {
	domain.BaseEvent
	UserID uuid.UUID `json:"userId"`
	Title  string    `json:"title"`
}

// NewTaskCreated creates a TaskCreated event.
func NewTaskCreated(t *Task) *TaskCreated {
	return &TaskCreated{
		BaseEvent: domain.NewBaseEvent(t.ID(), RoutingKeyTaskCreated),
		UserID:    t.UserID(),
		Title:     t.Title(),
	}
}

// TaskCompleted is raised when a task is marked complete. It carries the
// completion timestamp and the task's accumulated time so the activity
// ledger can bucket the completion on the right calendar day.
type TaskCompleted struct {
	domain.BaseEvent
	UserID      uuid.UUID `json:"userId"`
	CompletedAt time.Time `json:"completedAt"`
	TimeSpent   float64   `json:"timeSpent"`
}

// NewTaskCompleted creates a TaskCompleted event.
func NewTaskCompleted(t *Task, completedAt time.Time) *TaskCompleted {
	return &TaskCompleted{
		BaseEvent:   domain.NewBaseEvent(t.ID(), RoutingKeyTaskCompleted),
		UserID:      t.UserID(),
		CompletedAt: completedAt,
		TimeSpent:   t.TimeSpent(),
	}
}
