// Package application holds the activity read side: the event-driven ledger
// recorder, the continuity calculator and the history query.
package application

import (
	"math"
	"sort"
	"time"

	"github.com/pulsedev/pulse/internal/activity/domain/ledger"
	"github.com/pulsedev/pulse/pkg/calendar"
)

// ContinuityLookbackDays bounds how far back streaks are computed. Entries
// older than this never affect the current streak or the percentage.
const ContinuityLookbackDays = 60

// Continuity summarises how consistently a user has been active.
type Continuity struct {
	CurrentStreak        int             `json:"currentStreak"`
	LongestStreak        int             `json:"longestStreak"`
	ActiveDays           int             `json:"activeDays"`
	TotalDays            int             `json:"totalDays"`
	ContinuityPercentage int             `json:"continuityPercentage"`
	ActivityByDate       map[string]bool `json:"activityByDate"`
}

// ComputeContinuity derives streaks and the continuity percentage from
// ledger entries. The window is the user-requested day span, capped at the
// lookback bound. An inactive today means a current streak of zero; the
// longest streak only counts consecutive calendar days.
func ComputeContinuity(entries []ledger.Entry, today time.Time, windowDays int) Continuity {
	window := windowDays
	if window > ContinuityLookbackDays {
		window = ContinuityLookbackDays
	}
	if window < 1 {
		window = 1
	}

	active := make(map[string]bool, len(entries))
	activeDays := 0
	for _, e := range entries {
		isActive := e.IsActive()
		active[e.Day] = isActive
		if isActive {
			activeDays++
		}
	}

	currentStreak := 0
	day := calendar.StartOfDay(today)
	earliest := calendar.AddDays(day, -ContinuityLookbackDays)
	for !day.Before(earliest) {
		if !active[calendar.DayKey(day)] {
			break
		}
		currentStreak++
		day = calendar.AddDays(day, -1)
	}

	keys := make([]string, 0, len(active))
	for k := range active {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	longestStreak := 0
	run := 0
	inStreak := false
	for i, key := range keys {
		if !active[key] {
			inStreak = false
			continue
		}
		if !inStreak {
			inStreak = true
			run = 1
		} else {
			prev, prevErr := calendar.ParseDayKey(keys[i-1])
			cur, curErr := calendar.ParseDayKey(key)
			if prevErr == nil && curErr == nil && calendar.DaysBetween(prev, cur) == 1 {
				run++
			} else {
				run = 1
			}
		}
		if run > longestStreak {
			longestStreak = run
		}
	}

	percentage := int(math.Round(float64(activeDays) / float64(window) * 100))

	return Continuity{
		CurrentStreak:        currentStreak,
		LongestStreak:        longestStreak,
		ActiveDays:           activeDays,
		TotalDays:            window,
		ContinuityPercentage: percentage,
		ActivityByDate:       active,
	}
}
