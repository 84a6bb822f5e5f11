package task

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	userID := uuid.New()

	t.Run("creates a pending task with defaults", func(t *testing.T) {
		tk, err := NewTask(userID, "Write weekly summary")

		require.NoError(t, err)
		assert.Equal(t, "Write weekly summary", tk.Title())
		assert.False(t, tk.Completed())
		assert.Nil(t, tk.CompletedAt())
		assert.Equal(t, PriorityNormal, tk.Priority())
		assert.False(t, tk.IsRecurring())
		assert.Zero(t, tk.TimeSpent())
		assert.Nil(t, tk.LastCompletedDate())
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		tk, err := NewTask(userID, "  Buy groceries  ")

		require.NoError(t, err)
		assert.Equal(t, "Buy groceries", tk.Title())
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewTask(userID, "   ")
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("rejects title over the limit", func(t *testing.T) {
		_, err := NewTask(userID, strings.Repeat("x", MaxTitleLength+1))
		assert.ErrorIs(t, err, ErrTitleTooLong)
	})

	t.Run("raises TaskCreated", func(t *testing.T) {
		tk, err := NewTask(userID, "Read book")

		require.NoError(t, err)
		events := tk.DomainEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(*TaskCreated)
		require.True(t, ok)
		assert.Equal(t, userID, created.UserID)
		assert.Equal(t, "Read book", created.Title)
	})
}

func TestTask_Complete(t *testing.T) {
	userID := uuid.New()
	at := time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

	t.Run("stamps completedAt", func(t *testing.T) {
		tk, _ := NewTask(userID, "One-off chore")

		require.NoError(t, tk.Complete(at))

		assert.True(t, tk.Completed())
		require.NotNil(t, tk.CompletedAt())
		assert.Equal(t, at, *tk.CompletedAt())
		assert.Nil(t, tk.LastCompletedDate(), "non-recurring tasks never stamp the cycle date")
	})

	t.Run("recurring completion stamps lastCompletedDate", func(t *testing.T) {
		tk, _ := NewTask(userID, "Morning review")
		require.NoError(t, tk.SetRecurring(true, RecurringDaily))

		require.NoError(t, tk.Complete(at))

		require.NotNil(t, tk.LastCompletedDate())
		assert.Equal(t, at, *tk.LastCompletedDate())
	})

	t.Run("rejects double completion", func(t *testing.T) {
		tk, _ := NewTask(userID, "One-off chore")
		require.NoError(t, tk.Complete(at))

		assert.ErrorIs(t, tk.Complete(at.Add(time.Hour)), ErrTaskAlreadyComplete)
	})

	t.Run("raises TaskCompleted with accumulated time", func(t *testing.T) {
		tk, _ := NewTask(userID, "Refactor parser")
		tk.ClearDomainEvents()
		require.NoError(t, tk.AddTime(900))

		require.NoError(t, tk.Complete(at))

		events := tk.DomainEvents()
		require.Len(t, events, 1)
		completed, ok := events[0].(*TaskCompleted)
		require.True(t, ok)
		assert.Equal(t, at, completed.CompletedAt)
		assert.Equal(t, 900.0, completed.TimeSpent)
	})
}

func TestTask_Reopen(t *testing.T) {
	userID := uuid.New()
	at := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

	t.Run("clears completion but keeps the cycle date", func(t *testing.T) {
		tk, _ := NewTask(userID, "Morning review")
		require.NoError(t, tk.SetRecurring(true, RecurringDaily))
		require.NoError(t, tk.Complete(at))

		tk.Reopen()

		assert.False(t, tk.Completed())
		assert.Nil(t, tk.CompletedAt())
		require.NotNil(t, tk.LastCompletedDate(), "lastCompletedDate only moves at completion")
		assert.Equal(t, at, *tk.LastCompletedDate())
	})

	t.Run("keeps accumulated time", func(t *testing.T) {
		tk, _ := NewTask(userID, "Morning review")
		require.NoError(t, tk.SetRecurring(true, RecurringDaily))
		require.NoError(t, tk.AddTime(1200))
		require.NoError(t, tk.Complete(at))

		tk.Reopen()

		assert.Equal(t, 1200.0, tk.TimeSpent())
	})
}

func TestTask_Dependencies(t *testing.T) {
	userID := uuid.New()

	t.Run("rejects self dependency", func(t *testing.T) {
		tk, _ := NewTask(userID, "Ship release")

		err := tk.SetDependencies([]uuid.UUID{uuid.New(), tk.ID()})
		assert.ErrorIs(t, err, ErrSelfDependency)
	})

	t.Run("deduplicates the set", func(t *testing.T) {
		tk, _ := NewTask(userID, "Ship release")
		dep := uuid.New()

		require.NoError(t, tk.SetDependencies([]uuid.UUID{dep, dep}))
		assert.Len(t, tk.Dependencies(), 1)
	})

	t.Run("removes a single dependency", func(t *testing.T) {
		tk, _ := NewTask(userID, "Ship release")
		keep := uuid.New()
		drop := uuid.New()
		require.NoError(t, tk.SetDependencies([]uuid.UUID{keep, drop}))

		assert.True(t, tk.RemoveDependency(drop))
		assert.False(t, tk.RemoveDependency(drop))
		assert.Equal(t, []uuid.UUID{keep}, tk.Dependencies())
	})
}

func TestTask_Time(t *testing.T) {
	userID := uuid.New()

	t.Run("accumulates fractional seconds", func(t *testing.T) {
		tk, _ := NewTask(userID, "Deep work")

		require.NoError(t, tk.AddTime(1.5))
		require.NoError(t, tk.AddTime(2.25))
		assert.Equal(t, 3.75, tk.TimeSpent())
	})

	t.Run("rejects negative time", func(t *testing.T) {
		tk, _ := NewTask(userID, "Deep work")
		assert.ErrorIs(t, tk.AddTime(-1), ErrNegativeTime)
	})

	t.Run("rejects negative estimate", func(t *testing.T) {
		tk, _ := NewTask(userID, "Deep work")
		assert.ErrorIs(t, tk.SetExpectedTime(-10), ErrNegativeTime)
	})
}

func TestTask_SetRecurring(t *testing.T) {
	userID := uuid.New()

	t.Run("rejects unknown cadence", func(t *testing.T) {
		tk, _ := NewTask(userID, "Morning review")
		assert.ErrorIs(t, tk.SetRecurring(true, RecurringType("yearly")), ErrInvalidRecurringType)
	})

	t.Run("turning recurrence off keeps the cadence", func(t *testing.T) {
		tk, _ := NewTask(userID, "Morning review")
		require.NoError(t, tk.SetRecurring(true, RecurringWeekly))
		require.NoError(t, tk.SetRecurring(false, RecurringType("ignored")))

		assert.False(t, tk.IsRecurring())
		assert.Equal(t, RecurringWeekly, tk.RecurringType())
	})
}

func TestParsePriority(t *testing.T) {
	cases := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"", PriorityNormal, false},
		{"normal", PriorityNormal, false},
		{"Medium", PriorityMedium, false},
		{" high ", PriorityHigh, false},
		{"urgent", PriorityNormal, true},
	}
	for _, tc := range cases {
		got, err := ParsePriority(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrInvalidPriority, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
