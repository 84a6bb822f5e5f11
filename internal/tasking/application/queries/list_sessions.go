package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/tasking/domain/pomodoro"
)

// ListSessionsQuery fetches all pomodoro sessions for a user.
type ListSessionsQuery struct {
	UserID uuid.UUID
}

// ListSessionsHandler handles the ListSessionsQuery.
type ListSessionsHandler struct {
	sessionRepo pomodoro.Repository
}

// NewListSessionsHandler creates a new ListSessionsHandler.
func NewListSessionsHandler(sessionRepo pomodoro.Repository) *ListSessionsHandler {
	return &ListSessionsHandler{sessionRepo: sessionRepo}
}

// Handle executes the ListSessionsQuery, most recent first.
func (h *ListSessionsHandler) Handle(ctx context.Context, q ListSessionsQuery) ([]*pomodoro.Session, error) {
	sessions, err := h.sessionRepo.FindByUserID(ctx, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Date().After(sessions[j].Date())
	})

	return sessions, nil
}
