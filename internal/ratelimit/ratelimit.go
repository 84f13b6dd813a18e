// Package ratelimit implements per-user sliding-window rate limiters.
//
// State is in-memory only and resets on process restart: the limiters are
// a soft anti-abuse control, not a security boundary.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter allows up to max events per rolling window per user id.
type Limiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	events map[int64][]time.Time

	// now is replaced in tests.
	now func() time.Time
}

// New creates a Limiter accepting max events per window for each user.
func New(window time.Duration, max int) *Limiter {
	return &Limiter{
		window: window,
		max:    max,
		events: make(map[int64][]time.Time),
		now:    time.Now,
	}
}

// Allow records an event for the user when capacity remains and reports
// whether it was accepted. On rejection, retryAfter is the time until the
// oldest event exits the window and a slot frees up.
func (l *Limiter) Allow(userID int64) (ok bool, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.events[userID][:0]
	for _, ts := range l.events[userID] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.max {
		l.events[userID] = kept
		oldest := kept[0]
		return false, oldest.Sub(cutoff)
	}

	l.events[userID] = append(kept, now)
	return true, 0
}

// Configure retunes the window and cap on a live limiter. Events already
// recorded stay counted against the new settings.
func (l *Limiter) Configure(window time.Duration, max int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.window = window
	l.max = max
}

// Reset clears the recorded events for one user.
func (l *Limiter) Reset(userID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.events, userID)
}
