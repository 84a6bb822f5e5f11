package application

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pulsedev/pulse/internal/activity/domain/ledger"
	"github.com/pulsedev/pulse/internal/tasking/domain/task"
	"github.com/pulsedev/pulse/pkg/calendar"
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

func TestGetHistoryHandler_Handle(t *testing.T) {
	userID := uuid.New()
	ctx := context.Background()
	logger := slog.Default()
	// Task creation stamps real wall-clock time, so the handler clock has
	// to agree with it for day bucketing to line up.
	today := time.Now().UTC()
	clock := func() time.Time { return today }
	todayKey := calendar.DayKey(today)

	completedTask := func(t *testing.T, title string, completedAt time.Time, timeSpent float64) *task.Task {
		t.Helper()
		tk, err := task.NewTask(userID, title)
		require.NoError(t, err)
		require.NoError(t, tk.AddTime(timeSpent))
		require.NoError(t, tk.Complete(completedAt))
		tk.ClearDomainEvents()
		return tk
	}

	t.Run("buckets tasks by day, newest first", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		ledgerRepo := new(mockLedgerRepo)
		handler := NewGetHistoryHandlerWithClock(taskRepo, ledgerRepo, logger, clock)

		doneYesterday := completedTask(t, "Refactor parser", today.AddDate(0, 0, -1), 1200)
		openToday, err := task.NewTask(userID, "Write weekly summary")
		require.NoError(t, err)
		openToday.ClearDomainEvents()

		taskRepo.On("FindByUserID", ctx, userID).Return([]*task.Task{doneYesterday, openToday}, nil)
		ledgerRepo.On("ReplaceCounts", ctx, userID, todayKey, mock.Anything).Return(nil)
		ledgerRepo.On("FindRange", ctx, userID, mock.Anything, todayKey).Return([]ledger.Entry{}, nil)

		h, err := handler.Handle(ctx, GetHistoryQuery{UserID: userID, Days: 7})

		require.NoError(t, err)
		require.Len(t, h.Days, 2)
		assert.Equal(t, todayKey, h.Days[0].Date)
		assert.Len(t, h.Days[0].Created, 2, "both tasks were created today")
		assert.Empty(t, h.Days[0].Completed)
		assert.Len(t, h.Days[1].Completed, 1)
		assert.Equal(t, 1200.0, h.Days[1].TimeSpent)
	})

	t.Run("window is day-aligned and inclusive of the start day", func(t *testing.T) {
		fixedNow := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
		fixedKey := calendar.DayKey(fixedNow)

		taskRepo := new(mockTaskRepo)
		ledgerRepo := new(mockLedgerRepo)
		handler := NewGetHistoryHandlerWithClock(taskRepo, ledgerRepo, logger, func() time.Time { return fixedNow })

		stored := func(createdAt time.Time) *task.Task {
			return task.Rehydrate(uuid.New(), userID, "stored task", false, nil, 0, 0, 0, nil,
				task.PriorityNormal, false, task.RecurringDaily, nil, createdAt, createdAt)
		}
		// A 7-day window ending 2026-08-31 starts at 2026-08-25 midnight.
		onBoundary := stored(time.Date(2026, 8, 25, 23, 0, 0, 0, time.UTC))
		beforeBoundary := stored(time.Date(2026, 8, 24, 23, 0, 0, 0, time.UTC))

		taskRepo.On("FindByUserID", ctx, userID).Return([]*task.Task{onBoundary, beforeBoundary}, nil)
		ledgerRepo.On("ReplaceCounts", ctx, userID, fixedKey, ledger.Counts{}).Return(nil)
		ledgerRepo.On("FindRange", ctx, userID, mock.Anything, fixedKey).Return([]ledger.Entry{}, nil)

		h, err := handler.Handle(ctx, GetHistoryQuery{UserID: userID, Days: 7})

		require.NoError(t, err)
		require.Len(t, h.Days, 1)
		assert.Equal(t, "2026-08-25", h.Days[0].Date)
	})

	t.Run("repairs today's counters from source", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		ledgerRepo := new(mockLedgerRepo)
		handler := NewGetHistoryHandlerWithClock(taskRepo, ledgerRepo, logger, clock)

		doneToday := completedTask(t, "Deep work", today, 3600)

		taskRepo.On("FindByUserID", ctx, userID).Return([]*task.Task{doneToday}, nil)
		ledgerRepo.On("ReplaceCounts", ctx, userID, todayKey, ledger.Counts{
			TasksCreated:   1,
			TasksCompleted: 1,
			TimeSpent:      3600,
		}).Return(nil)
		ledgerRepo.On("FindRange", ctx, userID, mock.Anything, todayKey).Return([]ledger.Entry{}, nil)

		_, err := handler.Handle(ctx, GetHistoryQuery{UserID: userID, Days: 7})

		require.NoError(t, err)
		ledgerRepo.AssertExpectations(t)
	})

	t.Run("continuity comes from the ledger, not the buckets", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		ledgerRepo := new(mockLedgerRepo)
		handler := NewGetHistoryHandlerWithClock(taskRepo, ledgerRepo, logger, clock)

		taskRepo.On("FindByUserID", ctx, userID).Return([]*task.Task{}, nil)
		ledgerRepo.On("ReplaceCounts", ctx, userID, todayKey, ledger.Counts{}).Return(nil)
		ledgerRepo.On("FindRange", ctx, userID, mock.Anything, todayKey).Return([]ledger.Entry{
			{UserID: userID, Day: todayKey, PomodorosCompleted: 2},
		}, nil)

		h, err := handler.Handle(ctx, GetHistoryQuery{UserID: userID, Days: 7})

		require.NoError(t, err)
		assert.Empty(t, h.Days)
		assert.Equal(t, 1, h.Continuity.CurrentStreak)
	})

	t.Run("defaults the window", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		ledgerRepo := new(mockLedgerRepo)
		handler := NewGetHistoryHandlerWithClock(taskRepo, ledgerRepo, logger, clock)

		taskRepo.On("FindByUserID", ctx, userID).Return([]*task.Task{}, nil)
		ledgerRepo.On("ReplaceCounts", ctx, userID, todayKey, ledger.Counts{}).Return(nil)
		ledgerRepo.On("FindRange", ctx, userID, mock.Anything, todayKey).Return([]ledger.Entry{}, nil)

		h, err := handler.Handle(ctx, GetHistoryQuery{UserID: userID})

		require.NoError(t, err)
		assert.Equal(t, DefaultHistoryDays, h.Continuity.TotalDays)
	})
}
