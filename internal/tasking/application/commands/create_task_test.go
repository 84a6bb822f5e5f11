package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pulsedev/pulse/internal/tasking/domain/task"
)

func TestCreateTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()

	t.Run("creates and publishes", func(t *testing.T) {
		repo := new(mockTaskRepo)
		publisher := new(mockPublisher)
		handler := NewCreateTaskHandler(repo, publisher)

		repo.On("Save", ctx, mock.AnythingOfType("*task.Task")).Return(nil)
		publisher.On("PublishEvent", ctx, mock.Anything).Return(nil)

		result, err := handler.Handle(ctx, CreateTaskCommand{
			UserID: userID,
			Title:  "Write weekly summary",
		})

		require.NoError(t, err)
		assert.Equal(t, "Write weekly summary", result.Title())
		assert.Empty(t, result.DomainEvents(), "events are cleared after publishing")
		require.Len(t, publisher.published, 1)
		assert.Equal(t, task.RoutingKeyTaskCreated, publisher.published[0].RoutingKey())

		repo.AssertExpectations(t)
	})

	t.Run("applies optional fields", func(t *testing.T) {
		repo := new(mockTaskRepo)
		publisher := new(mockPublisher)
		handler := NewCreateTaskHandler(repo, publisher)

		repo.On("Save", ctx, mock.AnythingOfType("*task.Task")).Return(nil)
		publisher.On("PublishEvent", ctx, mock.Anything).Return(nil)

		dep := uuid.New()
		result, err := handler.Handle(ctx, CreateTaskCommand{
			UserID:        userID,
			Title:         "Morning review",
			ExpectedTime:  1800,
			Priority:      task.PriorityHigh,
			IsRecurring:   true,
			RecurringType: task.RecurringDaily,
			Dependencies:  []uuid.UUID{dep},
		})

		require.NoError(t, err)
		assert.Equal(t, 1800.0, result.ExpectedTime())
		assert.Equal(t, task.PriorityHigh, result.Priority())
		assert.True(t, result.IsRecurring())
		assert.Equal(t, []uuid.UUID{dep}, result.Dependencies())
	})

	t.Run("rejects invalid title before saving", func(t *testing.T) {
		repo := new(mockTaskRepo)
		publisher := new(mockPublisher)
		handler := NewCreateTaskHandler(repo, publisher)

		_, err := handler.Handle(ctx, CreateTaskCommand{UserID: userID, Title: "  "})

		assert.ErrorIs(t, err, task.ErrEmptyTitle)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("propagates save failure", func(t *testing.T) {
		repo := new(mockTaskRepo)
		publisher := new(mockPublisher)
		handler := NewCreateTaskHandler(repo, publisher)

		repo.On("Save", ctx, mock.AnythingOfType("*task.Task")).Return(errors.New("disk full"))

		_, err := handler.Handle(ctx, CreateTaskCommand{UserID: userID, Title: "Write weekly summary"})

		assert.Error(t, err)
		assert.Empty(t, publisher.published, "no events published for failed saves")
	})

	t.Run("publish failure does not fail the command", func(t *testing.T) {
		repo := new(mockTaskRepo)
		publisher := new(mockPublisher)
		handler := NewCreateTaskHandler(repo, publisher)

		repo.On("Save", ctx, mock.AnythingOfType("*task.Task")).Return(nil)
		publisher.On("PublishEvent", ctx, mock.Anything).Return(errors.New("broker down"))

		result, err := handler.Handle(ctx, CreateTaskCommand{UserID: userID, Title: "Write weekly summary"})

		require.NoError(t, err)
		assert.NotNil(t, result)
	})
}
