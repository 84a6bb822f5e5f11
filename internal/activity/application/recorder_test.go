package application

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pulsedev/pulse/internal/activity/domain/ledger"
	"github.com/pulsedev/pulse/internal/tasking/domain/pomodoro"
	"github.com/pulsedev/pulse/internal/tasking/domain/task"
)

type mockLedgerRepo struct {
	mock.Mock
}

func (m *mockLedgerRepo) IncrementFor(ctx context.Context, userID uuid.UUID, day string, d ledger.Deltas) error {
	args := m.Called(ctx, userID, day, d)
	return args.Error(0)
}

func (m *mockLedgerRepo) ReplaceCounts(ctx context.Context, userID uuid.UUID, day string, c ledger.Counts) error {
	args := m.Called(ctx, userID, day, c)
	return args.Error(0)
}

func (m *mockLedgerRepo) FindRange(ctx context.Context, userID uuid.UUID, fromDay, toDay string) ([]ledger.Entry, error) {
	args := m.Called(ctx, userID, fromDay, toDay)
	if entries := args.Get(0); entries != nil {
		return entries.([]ledger.Entry), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRecorder_Handle(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()
	logger := slog.Default()

	t.Run("task creation increments tasksCreated on the event day", func(t *testing.T) {
		repo := new(mockLedgerRepo)
		recorder := NewRecorder(repo, logger)

		tk, err := task.NewTask(userID, "Write weekly summary")
		require.NoError(t, err)
		event := tk.DomainEvents()[0]

		repo.On("IncrementFor", ctx, userID, mock.AnythingOfType("string"), ledger.Deltas{TasksCreated: 1}).Return(nil)

		require.NoError(t, recorder.Handle(ctx, event))
		repo.AssertExpectations(t)
	})

	t.Run("task completion buckets on the completion day", func(t *testing.T) {
		repo := new(mockLedgerRepo)
		recorder := NewRecorder(repo, logger)

		tk, err := task.NewTask(userID, "Refactor parser")
		require.NoError(t, err)
		tk.ClearDomainEvents()
		require.NoError(t, tk.AddTime(600))
		completedAt := time.Date(2026, 8, 30, 22, 15, 0, 0, time.UTC)
		require.NoError(t, tk.Complete(completedAt))

		repo.On("IncrementFor", ctx, userID, "2026-08-30", ledger.Deltas{
			TasksCompleted: 1,
			TimeSpent:      600,
		}).Return(nil)

		require.NoError(t, recorder.Handle(ctx, tk.DomainEvents()[0]))
		repo.AssertExpectations(t)
	})

	t.Run("session bumps only the pomodoro counter", func(t *testing.T) {
		repo := new(mockLedgerRepo)
		recorder := NewRecorder(repo, logger)

		date := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
		session, err := pomodoro.NewSession(userID, nil, date, 1500)
		require.NoError(t, err)

		// The session's duration must not leak into timeSpent; that counter
		// is task-derived and gets recounted from the task store.
		repo.On("IncrementFor", ctx, userID, "2026-08-31", ledger.Deltas{PomodorosCompleted: 1}).Return(nil)

		require.NoError(t, recorder.Handle(ctx, session.DomainEvents()[0]))
		repo.AssertExpectations(t)
	})

	t.Run("ledger failures are swallowed", func(t *testing.T) {
		repo := new(mockLedgerRepo)
		recorder := NewRecorder(repo, logger)

		tk, err := task.NewTask(userID, "Write weekly summary")
		require.NoError(t, err)

		repo.On("IncrementFor", ctx, userID, mock.AnythingOfType("string"), mock.Anything).Return(errors.New("db locked"))

		assert.NoError(t, recorder.Handle(ctx, tk.DomainEvents()[0]))
	})

	t.Run("routing keys cover all consumed events", func(t *testing.T) {
		recorder := NewRecorder(new(mockLedgerRepo), logger)

		assert.ElementsMatch(t, []string{
			task.RoutingKeyTaskCreated,
			task.RoutingKeyTaskCompleted,
			pomodoro.RoutingKeySessionRecorded,
		}, recorder.RoutingKeys())
	})
}
