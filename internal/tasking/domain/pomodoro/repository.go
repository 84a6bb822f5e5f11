package pomodoro

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for session persistence.
type Repository interface {
	Save(ctx context.Context, session *Session) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Session, error)
}
