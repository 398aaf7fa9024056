package ratelimit

import (
	"sync"
	"time"
)

// Limit describes an endpoint class budget: MaxRequests admissions per
// fixed Window. The window is not sliding; it resets to now+Window on the
// first request after expiry, so bursts at window boundaries can admit up
// to twice the budget in a short span.
type Limit struct {
	MaxRequests int
	Window      time.Duration
}

// Decision is the outcome of an admission check.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

type record struct {
	count   int
	resetAt time.Time
}

// Limiter is a process-local fixed-window admission controller. State is
// never persisted or shared across instances; each server process enforces
// its own independent limits and loses them on restart.
type Limiter struct {
	mu      sync.Mutex
	records map[string]*record
	now     func() time.Time
}

// NewLimiter creates an empty Limiter.
func NewLimiter() *Limiter {
	return &Limiter{
		records: make(map[string]*record),
		now:     time.Now,
	}
}

// Admit checks and updates the window for key. Expired records for every
// key are swept before the check; the key space is small and short-lived,
// so the linear sweep stays cheap.
func (l *Limiter) Admit(key string, limit Limit) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for k, r := range l.records {
		if !now.Before(r.resetAt) {
			delete(l.records, k)
		}
	}

	r, ok := l.records[key]
	if !ok {
		r = &record{count: 1, resetAt: now.Add(limit.Window)}
		l.records[key] = r
		return Decision{Allowed: true, Remaining: limit.MaxRequests - 1, ResetAt: r.resetAt}
	}

	if r.count < limit.MaxRequests {
		r.count++
		return Decision{Allowed: true, Remaining: limit.MaxRequests - r.count, ResetAt: r.resetAt}
	}

	return Decision{Allowed: false, Remaining: 0, ResetAt: r.resetAt}
}
