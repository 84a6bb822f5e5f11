package queries

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

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

func TestListTasksHandler_Handle(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()
	today := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return today }

	newRecurringDone := func(t *testing.T, completedAt time.Time) *task.Task {
		t.Helper()
		tk, err := task.NewTask(userID, "Morning review")
		require.NoError(t, err)
		require.NoError(t, tk.SetRecurring(true, task.RecurringDaily))
		require.NoError(t, tk.Complete(completedAt))
		tk.ClearDomainEvents()
		return tk
	}

	t.Run("reopens recurring tasks completed on earlier days", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewListTasksHandlerWithClock(repo, clock)

		stale := newRecurringDone(t, today.AddDate(0, 0, -1))

		repo.On("FindByUserID", ctx, userID).Return([]*task.Task{stale}, nil)
		repo.On("Save", ctx, stale).Return(nil)

		tasks, err := handler.Handle(ctx, ListTasksQuery{UserID: userID})

		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.False(t, tasks[0].Completed(), "stale recurring task is reopened")
		require.NotNil(t, tasks[0].LastCompletedDate(), "cycle date survives the reset")
		repo.AssertExpectations(t)
	})

	t.Run("leaves tasks completed today alone", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewListTasksHandlerWithClock(repo, clock)

		fresh := newRecurringDone(t, today.Add(-time.Hour))

		repo.On("FindByUserID", ctx, userID).Return([]*task.Task{fresh}, nil)

		tasks, err := handler.Handle(ctx, ListTasksQuery{UserID: userID})

		require.NoError(t, err)
		assert.True(t, tasks[0].Completed())
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("leaves completed non-recurring tasks alone", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewListTasksHandlerWithClock(repo, clock)

		tk, err := task.NewTask(userID, "One-off chore")
		require.NoError(t, err)
		require.NoError(t, tk.Complete(today.AddDate(0, 0, -3)))
		tk.ClearDomainEvents()

		repo.On("FindByUserID", ctx, userID).Return([]*task.Task{tk}, nil)

		tasks, err := handler.Handle(ctx, ListTasksQuery{UserID: userID})

		require.NoError(t, err)
		assert.True(t, tasks[0].Completed())
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("reset is idempotent within a day", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewListTasksHandlerWithClock(repo, clock)

		stale := newRecurringDone(t, today.AddDate(0, 0, -1))

		repo.On("FindByUserID", ctx, userID).Return([]*task.Task{stale}, nil)
		repo.On("Save", ctx, stale).Return(nil).Once()

		_, err := handler.Handle(ctx, ListTasksQuery{UserID: userID})
		require.NoError(t, err)

		// Second listing sees an open task; nothing to persist.
		_, err = handler.Handle(ctx, ListTasksQuery{UserID: userID})
		require.NoError(t, err)

		repo.AssertExpectations(t)
	})

	t.Run("sorts newest first", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewListTasksHandlerWithClock(repo, clock)

		older, err := task.NewTask(userID, "Older")
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
		newer, err := task.NewTask(userID, "Newer")
		require.NoError(t, err)

		repo.On("FindByUserID", ctx, userID).Return([]*task.Task{older, newer}, nil)

		tasks, err := handler.Handle(ctx, ListTasksQuery{UserID: userID})

		require.NoError(t, err)
		assert.Equal(t, "Newer", tasks[0].Title())
		assert.Equal(t, "Older", tasks[1].Title())
	})
}
