package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pulsedev/pulse/internal/shared/domain"
	"github.com/pulsedev/pulse/internal/tasking/domain/pomodoro"
	"github.com/pulsedev/pulse/internal/tasking/domain/task"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, userID, id)
	if t := args.Get(0); t != nil {
		return t.(*task.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTaskRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	args := m.Called(ctx, userID)
	if tasks := args.Get(0); tasks != nil {
		return tasks.([]*task.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTaskRepo) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockTaskRepo) RemoveDependencyReferences(ctx context.Context, userID, deletedID uuid.UUID) error {
	args := m.Called(ctx, userID, deletedID)
	return args.Error(0)
}

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) Save(ctx context.Context, s *pomodoro.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockSessionRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*pomodoro.Session, error) {
	args := m.Called(ctx, userID)
	if sessions := args.Get(0); sessions != nil {
		return sessions.([]*pomodoro.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
	published []domain.DomainEvent
}

func (m *mockPublisher) PublishEvent(ctx context.Context, event domain.DomainEvent) error {
	m.published = append(m.published, event)
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
