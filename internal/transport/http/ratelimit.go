package http

import (
	"sync"
	"time"
)

// rateLimiter is a fixed-window counter shared by the auth endpoints.
// A limit of zero or less disables it.
type rateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Time
	count  int
}

func newRateLimiter(limit int) *rateLimiter {
	return &rateLimiter{limit: limit}
}

func (r *rateLimiter) allow() bool {
	if r == nil || r.limit <= 0 {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if now.Sub(r.window) >= time.Minute {
		r.window = now
		r.count = 0
	}
	r.count++
	return r.count <= r.limit
}
