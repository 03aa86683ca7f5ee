// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resource

import (
	"sync"
	"time"
)

// RateLimiter tracks the last request time per resource and enforces the
// minimum inter-request interval derived from a resource's configured
// requests-per-minute. It is advisory: Allow never blocks and Record
// never rejects; the caller decides how to react to a violation.
//
// State is created lazily on first Record, so delegated resources — which
// are never dialed by the generic client — are never tracked.
type RateLimiter struct {
	mu   sync.Mutex
	last map[string]time.Time

	now func() time.Time // test hook
}

// NewRateLimiter returns an empty limiter.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		last: make(map[string]time.Time),
		now:  time.Now,
	}
}

// Allow reports whether a request to the resource would respect its
// configured requests-per-minute. A resource with no tracked state is
// always allowed. Allow records nothing; call Record after the attempt.
func (rl *RateLimiter) Allow(resourceID string, perMinute int) bool {
	return rl.Remaining(resourceID, perMinute) <= 0
}

// Remaining returns how long until the next request to the resource would
// be allowed, or zero when it is allowed now.
func (rl *RateLimiter) Remaining(resourceID string, perMinute int) time.Duration {
	if perMinute <= 0 {
		return 0
	}
	rl.mu.Lock()
	last, ok := rl.last[resourceID]
	rl.mu.Unlock()
	if !ok {
		return 0
	}
	interval := time.Minute / time.Duration(perMinute)
	elapsed := rl.now().Sub(last)
	if elapsed >= interval {
		return 0
	}
	return interval - elapsed
}

// Record notes a request attempt at time t. Failed attempts count against
// the rate budget exactly like successful ones.
func (rl *RateLimiter) Record(resourceID string, t time.Time) {
	rl.mu.Lock()
	rl.last[resourceID] = t
	rl.mu.Unlock()
}
