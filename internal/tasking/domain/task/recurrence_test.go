package task

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldReset(t *testing.T) {
	userID := uuid.New()
	today := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	newRecurring := func(t *testing.T) *Task {
		t.Helper()
		tk, err := NewTask(userID, "Morning review")
		require.NoError(t, err)
		require.NoError(t, tk.SetRecurring(true, RecurringDaily))
		return tk
	}

	t.Run("non-recurring tasks never reset", func(t *testing.T) {
		tk, err := NewTask(userID, "One-off chore")
		require.NoError(t, err)
		require.NoError(t, tk.Complete(today.AddDate(0, 0, -1)))

		assert.False(t, ShouldReset(tk, today))
	})

	t.Run("recurring task never completed resets", func(t *testing.T) {
		tk := newRecurring(t)
		assert.True(t, ShouldReset(tk, today))
	})

	t.Run("completed on a previous day resets", func(t *testing.T) {
		tk := newRecurring(t)
		require.NoError(t, tk.Complete(today.AddDate(0, 0, -1)))

		assert.True(t, ShouldReset(tk, today))
	})

	t.Run("completed today does not reset", func(t *testing.T) {
		tk := newRecurring(t)
		require.NoError(t, tk.Complete(today.Add(-2*time.Hour)))

		assert.False(t, ShouldReset(tk, today))
	})

	t.Run("midnight boundary flips the answer", func(t *testing.T) {
		tk := newRecurring(t)
		require.NoError(t, tk.Complete(time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC)))

		assert.False(t, ShouldReset(tk, time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC)))
		assert.True(t, ShouldReset(tk, time.Date(2026, 8, 31, 0, 0, 1, 0, time.UTC)))
	})

	t.Run("weekly cadence still resets on day granularity", func(t *testing.T) {
		tk, err := NewTask(userID, "Weekly planning")
		require.NoError(t, err)
		require.NoError(t, tk.SetRecurring(true, RecurringWeekly))
		require.NoError(t, tk.Complete(today.AddDate(0, 0, -1)))

		assert.True(t, ShouldReset(tk, today))
	})
}
