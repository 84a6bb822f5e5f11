package task

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pulsedev/pulse/internal/shared/domain"
)

var (
	ErrEmptyTitle           = errors.New("task title cannot be empty")
	ErrTitleTooLong         = errors.New("task title cannot be more than 100 characters")
	ErrSelfDependency       = errors.New("task cannot depend on itself")
	ErrTaskAlreadyComplete  = errors.New("task is already completed")
	ErrNegativeTime         = errors.New("time spent cannot be negative")
	ErrInvalidPriority      = errors.New("invalid priority")
	ErrInvalidRecurringType = errors.New("invalid recurring type")
)

// MaxTitleLength is the maximum task title length.
const MaxTitleLength = 100

// Priority represents task urgency: normal, medium, or high.
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityMedium
	PriorityHigh
)

// IsValid checks if the priority is one of the supported levels.
func (p Priority) IsValid() bool {
	return p >= PriorityNormal && p <= PriorityHigh
}

func (p Priority) String() string {
	switch p {
	case PriorityNormal:
		return "normal"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParsePriority maps the string form back to a Priority. An empty string
// means the default.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return PriorityNormal, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return PriorityNormal, ErrInvalidPriority
	}
}

// RecurringType represents the cadence of a recurring task.
type RecurringType string

const (
	RecurringDaily   RecurringType = "daily"
	RecurringWeekly  RecurringType = "weekly"
	RecurringMonthly RecurringType = "monthly"
)

// IsValid checks if the recurring type is valid.
func (r RecurringType) IsValid() bool {
	switch r {
	case RecurringDaily, RecurringWeekly, RecurringMonthly:
		return true
	default:
		return false
	}
}

// Task is a unit of work with accumulated time tracking and optional
// recurrence.
type Task struct {
	domain.BaseAggregateRoot
	userID            uuid.UUID
	title             string
	completed         bool
	completedAt       *time.Time
	timeSpent         float64 // seconds, fractional accumulator
	expectedTime      float64 // seconds; 0 means no estimate
	pomodoroCount     int
	dependencies      []uuid.UUID
	priority          Priority
	isRecurring       bool
	recurringType     RecurringType
	lastCompletedDate *time.Time
}

// NewTask creates a new pending task.
func NewTask(userID uuid.UUID, title string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return nil, ErrTitleTooLong
	}

	t := &Task{
		BaseAggregateRoot: domain.NewBaseAggregateRoot(),
		userID:            userID,
		title:             title,
		priority:          PriorityNormal,
		recurringType:     RecurringDaily,
	}

	t.AddDomainEvent(NewTaskCreated(t))

	return t, nil
}

// Getters

func (t *Task) UserID() uuid.UUID             { return t.userID }
func (t *Task) Title() string                 { return t.title }
func (t *Task) Completed() bool               { return t.completed }
func (t *Task) CompletedAt() *time.Time       { return t.completedAt }
func (t *Task) TimeSpent() float64            { return t.timeSpent }
func (t *Task) ExpectedTime() float64         { return t.expectedTime }
func (t *Task) PomodoroCount() int            { return t.pomodoroCount }
func (t *Task) Priority() Priority            { return t.priority }
func (t *Task) IsRecurring() bool             { return t.isRecurring }
func (t *Task) RecurringType() RecurringType  { return t.recurringType }
func (t *Task) LastCompletedDate() *time.Time { return t.lastCompletedDate }

// Dependencies returns a copy of the dependency set.
func (t *Task) Dependencies() []uuid.UUID {
	deps := make([]uuid.UUID, len(t.dependencies))
	copy(deps, t.dependencies)
	return deps
}

// SetTitle updates the task title.
func (t *Task) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	t.title = title
	t.Touch()
	return nil
}

// SetExpectedTime updates the time estimate in seconds. Zero clears it.
func (t *Task) SetExpectedTime(seconds float64) error {
	if seconds < 0 {
		return ErrNegativeTime
	}
	t.expectedTime = seconds
	t.Touch()
	return nil
}

// SetPriority updates the task priority.
func (t *Task) SetPriority(p Priority) error {
	if !p.IsValid() {
		return ErrInvalidPriority
	}
	t.priority = p
	t.Touch()
	return nil
}

// SetRecurring marks the task as recurring with the given cadence.
func (t *Task) SetRecurring(recurring bool, rt RecurringType) error {
	if recurring && !rt.IsValid() {
		return ErrInvalidRecurringType
	}
	t.isRecurring = recurring
	if recurring {
		t.recurringType = rt
	}
	t.Touch()
	return nil
}

// SetDependencies replaces the dependency set. A task can never depend on
// itself.
func (t *Task) SetDependencies(deps []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(deps))
	unique := make([]uuid.UUID, 0, len(deps))
	for _, dep := range deps {
		if dep == t.ID() {
			return ErrSelfDependency
		}
		if _, ok := seen[dep]; ok {
			continue
		}
		seen[dep] = struct{}{}
		unique = append(unique, dep)
	}
	t.dependencies = unique
	t.Touch()
	return nil
}

// RemoveDependency strips a task id from the dependency set. Returns true
// when the set changed.
func (t *Task) RemoveDependency(id uuid.UUID) bool {
	for i, dep := range t.dependencies {
		if dep == id {
			t.dependencies = append(t.dependencies[:i], t.dependencies[i+1:]...)
			t.Touch()
			return true
		}
	}
	return false
}

// AddTime accumulates elapsed work time in seconds.
func (t *Task) AddTime(seconds float64) error {
	if seconds < 0 {
		return ErrNegativeTime
	}
	t.timeSpent += seconds
	t.Touch()
	return nil
}

// Complete marks the task as completed at the given time. Recurring tasks
// additionally stamp lastCompletedDate, which drives the next reset cycle.
func (t *Task) Complete(at time.Time) error {
	if t.completed {
		return ErrTaskAlreadyComplete
	}

	at = at.UTC()
	t.completed = true
	t.completedAt = &at
	if t.isRecurring {
		t.lastCompletedDate = &at
	}
	t.Touch()

	t.AddDomainEvent(NewTaskCompleted(t, at))

	return nil
}

// Reopen clears the completed state without touching lastCompletedDate.
func (t *Task) Reopen() {
	t.completed = false
	t.completedAt = nil
	t.Touch()
}

// IncrementPomodoroCount bumps the number of completed pomodoros.
func (t *Task) IncrementPomodoroCount() {
	t.pomodoroCount++
	t.Touch()
}

// Rehydrate recreates a task from persisted state without raising events.
func Rehydrate(
	id uuid.UUID,
	userID uuid.UUID,
	title string,
	completed bool,
	completedAt *time.Time,
	timeSpent float64,
	expectedTime float64,
	pomodoroCount int,
	dependencies []uuid.UUID,
	priority Priority,
	isRecurring bool,
	recurringType RecurringType,
	lastCompletedDate *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) *Task {
	return &Task{
		BaseAggregateRoot: domain.RehydrateBaseAggregateRoot(domain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		userID:            userID,
		title:             title,
		completed:         completed,
		completedAt:       completedAt,
		timeSpent:         timeSpent,
		expectedTime:      expectedTime,
		pomodoroCount:     pomodoroCount,
		dependencies:      dependencies,
		priority:          priority,
		isRecurring:       isRecurring,
		recurringType:     recurringType,
		lastCompletedDate: lastCompletedDate,
	}
}
