package task

import (
	"time"

	"github.com/pulsedev/pulse/pkg/calendar"
)

// ShouldReset decides whether a recurring task is due for a fresh cycle on
// the given day. Resets are lazy: the list query calls this on every read
// instead of a background sweep, so a reset becomes visible the next time
// the owner's task list is fetched.
//
// A recurring task with no lastCompletedDate has never been explicitly
// cycled and always resets. All recurrence types reset at day granularity;
// recurringType is stored but deliberately not consulted here, matching the
// behavior the rest of the system was built against.
func ShouldReset(t *Task, today time.Time) bool {
	if !t.IsRecurring() {
		return false
	}
	last := t.LastCompletedDate()
	if last == nil {
		return true
	}
	return !calendar.SameDay(*last, today)
}
