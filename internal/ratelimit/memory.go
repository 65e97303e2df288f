package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// Memory is a process-local fixed-window limiter. Counters live only in this
// process; instances behind a load balancer do not share budgets.
type Memory struct {
	mu      sync.Mutex
	windows map[string]window
	limit   int
	period  time.Duration
	now     func() time.Time
}

// NewMemory returns a limiter allowing limit attempts per period for each key.
func NewMemory(limit int, period time.Duration) *Memory {
	if limit <= 0 {
		limit = 5
	}
	if period <= 0 {
		period = time.Minute
	}
	return &Memory{
		windows: make(map[string]window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// Allow increments the key's counter and reports whether the attempt is within
// budget. Increment and check happen under one lock so two concurrent
// attempts cannot both slip under the threshold.
func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.windows[key]
	if !ok || now.After(w.resetAt) {
		w = window{resetAt: now.Add(m.period)}
	}
	w.count++
	m.windows[key] = w

	return w.count <= m.limit, nil
}

// Prune drops expired windows. Call periodically from a background goroutine
// to keep memory bounded under many distinct keys.
func (m *Memory) Prune() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, w := range m.windows {
		if now.After(w.resetAt) {
			delete(m.windows, key)
		}
	}
}
