package pomodoro

import (
	"time"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/shared/domain"
)

// RoutingKeySessionRecorded is the routing key for completed sessions.
const RoutingKeySessionRecorded = "pomodoro.completed"

// SessionRecorded is raised when a completed focus session is logged.
type SessionRecorded struct {
	domain.BaseEvent
	UserID   uuid.UUID `json:"userId"`
	Date     time.Time `json:"date"`
	Duration float64   `json:"duration"`
}

// NewSessionRecorded creates a SessionRecorded event.
func NewSessionRecorded(s *Session) *SessionRecorded {
	return &SessionRecorded{
		BaseEvent: domain.NewBaseEvent(s.ID(), RoutingKeySessionRecorded),
		UserID:    s.UserID(),
		Date:      s.Date(),
		Duration:  s.Duration(),
	}
}
