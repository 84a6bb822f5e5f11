// Package pomodoro holds the append-only log of completed focus sessions.
package pomodoro

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/shared/domain"
)

var ErrInvalidDuration = errors.New("session duration must be positive")

// Session records a completed Pomodoro work phase. Sessions are immutable
// once created.
type Session struct {
	domain.BaseAggregateRoot
	userID   uuid.UUID
	taskID   *uuid.UUID // optional link to the task worked on
	date     time.Time  // completion timestamp
	duration float64    // seconds
}

// NewSession creates a new completed session.
func NewSession(userID uuid.UUID, taskID *uuid.UUID, date time.Time, duration float64) (*Session, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	s := &Session{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		userID:            userID,
		taskID:            taskID,
		date:              date.UTC(),
		duration:          duration,
	}

	s.AddDomainEvent(NewSessionRecorded(s))

	return s, nil
}

func (s *Session) UserID() uuid.UUID  { return s.userID }
func (s *Session) TaskID() *uuid.UUID { return s.taskID }
func (s *Session) Date() time.Time    { return s.date }
func (s *Session) Duration() float64  { return s.duration }

// Rehydrate recreates a session from persisted state.
func Rehydrate(id, userID uuid.UUID, taskID *uuid.UUID, date time.Time, duration float64, createdAt time.Time) *Session {
	return &Session{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(domain.RehydrateBaseEntity(id, createdAt, createdAt)),
		userID:            userID,
		taskID:            taskID,
		date:              date,
		duration:          duration,
	}
}
