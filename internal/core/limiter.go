package core

// limiter.go bounds how many quality checks run at once in the server.
//
// The limiter uses a semaphore pattern. When all slots are occupied, new
// callers wait up to maxWait before failing with ErrTooManyChecks.
// WaitForDrain supports graceful shutdown.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyChecks is returned when all check slots stay occupied for the
// whole wait period.
var ErrTooManyChecks = errors.New("too many concurrent checks, please try again later")

const (
	// DefaultMaxConcurrentChecks is the default limit for parallel checks.
	DefaultMaxConcurrentChecks = 4

	// DefaultMaxWaitTime is how long to wait for a slot before rejecting.
	DefaultMaxWaitTime = 10 * time.Second
)

// CheckLimiter controls how many checks may run concurrently.
type CheckLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewCheckLimiter creates a limiter allowing at most maxConcurrent checks.
// Non-positive arguments fall back to the defaults.
func NewCheckLimiter(maxConcurrent int, maxWait time.Duration) *CheckLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentChecks
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}

	return &CheckLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire waits for a slot. It returns ErrTooManyChecks when maxWait elapses
// and ctx.Err() when ctx ends first. Callers must Release after success.
func (l *CheckLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyChecks
	}
}

// Release frees a slot taken by Acquire.
func (l *CheckLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of running checks.
func (l *CheckLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// WaitForDrain blocks until no checks are running or ctx ends.
func (l *CheckLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// CheckLimiterStatus is a snapshot of the limiter's state.
type CheckLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state for monitoring.
func (l *CheckLimiter) Status() CheckLimiterStatus {
	l.mu.RLock()
	active := l.active
	l.mu.RUnlock()

	return CheckLimiterStatus{
		Active:        active,
		Available:     cap(l.semaphore) - len(l.semaphore),
		MaxConcurrent: cap(l.semaphore),
	}
}
