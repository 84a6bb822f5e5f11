// Package services holds the work-timer support around task time tracking.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrTimerAlreadyRunning = errors.New("a timer is already running for this task")
	ErrTimerNotRunning     = errors.New("no timer is running for this task")
)

// Elapsed returns the seconds elapsed between a timer's start and now. The
// running timer is never the source of truth: the authoritative value is
// always the task's persisted accumulator plus Elapsed of the active start
// timestamp.
func Elapsed(start, now time.Time) float64 {
	d := now.Sub(start).Seconds()
	if d < 0 {
		return 0
	}
	return d
}

// TimerStore persists active timer start timestamps keyed by user and task.
type TimerStore interface {
	// Put records a timer start. Fails if a timer is already running.
	Put(ctx context.Context, userID, taskID uuid.UUID, start time.Time) error
	// Take removes and returns the timer start. Returns ErrTimerNotRunning
	// when no timer is active.
	Take(ctx context.Context, userID, taskID uuid.UUID) (time.Time, error)
	// Get returns the active start without removing it.
	Get(ctx context.Context, userID, taskID uuid.UUID) (time.Time, bool, error)
}

// MemoryTimerStore keeps timer state in process memory. Used when no Redis
// is configured; timers do not survive a restart.
type MemoryTimerStore struct {
	mu     sync.Mutex
	timers map[string]time.Time
}

// NewMemoryTimerStore creates an empty in-memory store.
func NewMemoryTimerStore() *MemoryTimerStore {
	return &MemoryTimerStore{timers: make(map[string]time.Time)}
}

func timerKey(userID, taskID uuid.UUID) string {
	return fmt.Sprintf("timer:user:%s:task:%s:start", userID, taskID)
}

// Put records a timer start.
func (s *MemoryTimerStore) Put(ctx context.Context, userID, taskID uuid.UUID, start time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := timerKey(userID, taskID)
	if _, ok := s.timers[key]; ok {
		return ErrTimerAlreadyRunning
	}
	s.timers[key] = start
	return nil
}

// Take removes and returns the timer start.
func (s *MemoryTimerStore) Take(ctx context.Context, userID, taskID uuid.UUID) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := timerKey(userID, taskID)
	start, ok := s.timers[key]
	if !ok {
		return time.Time{}, ErrTimerNotRunning
	}
	delete(s.timers, key)
	return start, nil
}

// Get returns the active start without removing it.
func (s *MemoryTimerStore) Get(ctx context.Context, userID, taskID uuid.UUID) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start, ok := s.timers[timerKey(userID, taskID)]
	return start, ok, nil
}

// RedisTimerStore keeps timer state in Redis so a timer survives process
// restarts and is visible to other sessions.
type RedisTimerStore struct {
	client *redis.Client
}

// NewRedisTimerStore creates a Redis-backed store.
func NewRedisTimerStore(client *redis.Client) *RedisTimerStore {
	return &RedisTimerStore{client: client}
}

// Put records a timer start with SETNX semantics.
func (s *RedisTimerStore) Put(ctx context.Context, userID, taskID uuid.UUID, start time.Time) error {
	ok, err := s.client.SetNX(ctx, timerKey(userID, taskID), start.UTC().Format(time.RFC3339Nano), 0).Result()
	if err != nil {
		return fmt.Errorf("failed to store timer start: %w", err)
	}
	if !ok {
		return ErrTimerAlreadyRunning
	}
	return nil
}

// Take removes and returns the timer start.
func (s *RedisTimerStore) Take(ctx context.Context, userID, taskID uuid.UUID) (time.Time, error) {
	key := timerKey(userID, taskID)
	val, err := s.client.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, ErrTimerNotRunning
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to take timer start: %w", err)
	}
	start, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt timer start %q: %w", val, err)
	}
	return start, nil
}

// Get returns the active start without removing it.
func (s *RedisTimerStore) Get(ctx context.Context, userID, taskID uuid.UUID) (time.Time, bool, error) {
	val, err := s.client.Get(ctx, timerKey(userID, taskID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read timer start: %w", err)
	}
	start, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("corrupt timer start %q: %w", val, err)
	}
	return start, true, nil
}

// Timer coordinates start/stop of the per-task work timer.
type Timer struct {
	store TimerStore
	now   func() time.Time
}

// NewTimer creates a timer service over the given store.
func NewTimer(store TimerStore) *Timer {
	return &Timer{store: store, now: time.Now}
}

// NewTimerWithClock creates a timer service with a fixed clock for tests.
func NewTimerWithClock(store TimerStore, now func() time.Time) *Timer {
	return &Timer{store: store, now: now}
}

// Start begins tracking work on a task.
func (t *Timer) Start(ctx context.Context, userID, taskID uuid.UUID) error {
	return t.store.Put(ctx, userID, taskID, t.now().UTC())
}

// Stop ends tracking and returns the elapsed seconds to be flushed into the
// task's accumulator.
func (t *Timer) Stop(ctx context.Context, userID, taskID uuid.UUID) (float64, error) {
	start, err := t.store.Take(ctx, userID, taskID)
	if err != nil {
		return 0, err
	}
	return Elapsed(start, t.now().UTC()), nil
}

// Running reports the elapsed seconds of an active timer, if any.
func (t *Timer) Running(ctx context.Context, userID, taskID uuid.UUID) (float64, bool, error) {
	start, ok, err := t.store.Get(ctx, userID, taskID)
	if err != nil || !ok {
		return 0, ok, err
	}
	return Elapsed(start, t.now().UTC()), true, nil
}
