package commands

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

func TestCompleteTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()

	newStoredTask := func(t *testing.T, recurring bool) *task.Task {
		t.Helper()
		tk, err := task.NewTask(userID, "Morning review")
		require.NoError(t, err)
		if recurring {
			require.NoError(t, tk.SetRecurring(true, task.RecurringDaily))
		}
		tk.ClearDomainEvents()
		return tk
	}

	t.Run("completes with explicit timestamp", func(t *testing.T) {
		repo := new(mockTaskRepo)
		publisher := new(mockPublisher)
		handler := NewCompleteTaskHandler(repo, publisher)

		tk := newStoredTask(t, true)
		at := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)

		repo.On("FindByID", ctx, userID, tk.ID()).Return(tk, nil)
		repo.On("Save", ctx, tk).Return(nil)
		publisher.On("PublishEvent", ctx, mock.Anything).Return(nil)

		result, err := handler.Handle(ctx, CompleteTaskCommand{
			UserID:      userID,
			TaskID:      tk.ID(),
			CompletedAt: &at,
		})

		require.NoError(t, err)
		assert.True(t, result.Completed())
		require.NotNil(t, result.LastCompletedDate())
		assert.Equal(t, at, *result.LastCompletedDate())
		require.Len(t, publisher.published, 1)
		assert.Equal(t, task.RoutingKeyTaskCompleted, publisher.published[0].RoutingKey())
	})

	t.Run("defaults the timestamp to now", func(t *testing.T) {
		repo := new(mockTaskRepo)
		publisher := new(mockPublisher)
		handler := NewCompleteTaskHandler(repo, publisher)

		tk := newStoredTask(t, false)

		repo.On("FindByID", ctx, userID, tk.ID()).Return(tk, nil)
		repo.On("Save", ctx, tk).Return(nil)
		publisher.On("PublishEvent", ctx, mock.Anything).Return(nil)

		before := time.Now().UTC()
		result, err := handler.Handle(ctx, CompleteTaskCommand{UserID: userID, TaskID: tk.ID()})

		require.NoError(t, err)
		require.NotNil(t, result.CompletedAt())
		assert.False(t, result.CompletedAt().Before(before))
	})

	t.Run("returns ErrTaskNotFound for missing task", func(t *testing.T) {
		repo := new(mockTaskRepo)
		publisher := new(mockPublisher)
		handler := NewCompleteTaskHandler(repo, publisher)

		missing := uuid.New()
		repo.On("FindByID", ctx, userID, missing).Return(nil, nil)

		_, err := handler.Handle(ctx, CompleteTaskCommand{UserID: userID, TaskID: missing})

		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("rejects completing twice", func(t *testing.T) {
		repo := new(mockTaskRepo)
		publisher := new(mockPublisher)
		handler := NewCompleteTaskHandler(repo, publisher)

		tk := newStoredTask(t, false)
		require.NoError(t, tk.Complete(time.Now().UTC()))
		tk.ClearDomainEvents()

		repo.On("FindByID", ctx, userID, tk.ID()).Return(tk, nil)

		_, err := handler.Handle(ctx, CompleteTaskCommand{UserID: userID, TaskID: tk.ID()})

		assert.ErrorIs(t, err, task.ErrTaskAlreadyComplete)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestRecordPomodoroHandler_Handle(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()

	t.Run("records a session and bumps the linked task", func(t *testing.T) {
		sessionRepo := new(mockSessionRepo)
		taskRepo := new(mockTaskRepo)
		publisher := new(mockPublisher)
		handler := NewRecordPomodoroHandler(sessionRepo, taskRepo, publisher)

		tk, err := task.NewTask(userID, "Deep work")
		require.NoError(t, err)
		tk.ClearDomainEvents()
		taskID := tk.ID()

		sessionRepo.On("Save", ctx, mock.AnythingOfType("*pomodoro.Session")).Return(nil)
		taskRepo.On("FindByID", ctx, userID, taskID).Return(tk, nil)
		taskRepo.On("Save", ctx, tk).Return(nil)
		publisher.On("PublishEvent", ctx, mock.Anything).Return(nil)

		session, err := handler.Handle(ctx, RecordPomodoroCommand{
			UserID:   userID,
			TaskID:   &taskID,
			Duration: 1500,
		})

		require.NoError(t, err)
		assert.Equal(t, 1500.0, session.Duration())
		assert.Equal(t, 1, tk.PomodoroCount())
	})

	t.Run("session without a task skips the task update", func(t *testing.T) {
		sessionRepo := new(mockSessionRepo)
		taskRepo := new(mockTaskRepo)
		publisher := new(mockPublisher)
		handler := NewRecordPomodoroHandler(sessionRepo, taskRepo, publisher)

		sessionRepo.On("Save", ctx, mock.AnythingOfType("*pomodoro.Session")).Return(nil)
		publisher.On("PublishEvent", ctx, mock.Anything).Return(nil)

		_, err := handler.Handle(ctx, RecordPomodoroCommand{UserID: userID, Duration: 1500})

		require.NoError(t, err)
		taskRepo.AssertNotCalled(t, "FindByID")
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		sessionRepo := new(mockSessionRepo)
		taskRepo := new(mockTaskRepo)
		publisher := new(mockPublisher)
		handler := NewRecordPomodoroHandler(sessionRepo, taskRepo, publisher)

		_, err := handler.Handle(ctx, RecordPomodoroCommand{UserID: userID, Duration: 0})

		assert.Error(t, err)
		sessionRepo.AssertNotCalled(t, "Save")
	})
}
