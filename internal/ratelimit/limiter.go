// Package ratelimit throttles login attempts per client key over a fixed
// window. The Limiter interface exists so the in-memory implementation can be
// swapped for the Redis-backed one in multi-instance deployments without
// touching calling code.
package ratelimit

import "context"

// Limiter gates an attempt for a key. Allow counts the attempt as a side
// effect; once the per-window budget is spent, it keeps returning false for
// that key until the window resets.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
