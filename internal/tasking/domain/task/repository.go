package task

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for task persistence. Find methods return
// nil without error when no task matches; ownership is always part of the
// lookup key.
type Repository interface {
	Save(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Task, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Task, error)
	// Delete removes a task. Returns false when the task does not exist or
	// belongs to another user.
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
	// RemoveDependencyReferences strips the deleted task id from every other
	// task's dependency set.
	RemoveDependencyReferences(ctx context.Context, userID, deletedID uuid.UUID) error
}
