package util

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// RateLimiter is a sliding-window limiter keyed by client identifier. A limit of zero
// disables it.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu       sync.Mutex
	requests map[string][]time.Time
}

// NewRateLimiter allows at most limit requests per key within window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		window:   window,
		now:      time.Now,
		requests: make(map[string][]time.Time),
	}
}

// RateLimitError reports when the caller may try again.
type RateLimitError struct {
	Limit      int
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded: maximum %d submissions per minute. Please wait %v before trying again", e.Limit, e.RetryAfter)
}

// Allow records a request for key, or returns a *RateLimitError if the key is over its limit.
func (l *RateLimiter) Allow(key string) error {
	if l == nil || l.limit <= 0 {
		return nil
	}
	key = strings.ToLower(strings.TrimSpace(key))

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	valid := prune(l.requests[key], now.Add(-l.window))

	if len(valid) >= l.limit {
		retry := valid[0].Add(l.window).Sub(now)
		l.requests[key] = valid
		return &RateLimitError{Limit: l.limit, RetryAfter: retry.Round(time.Second)}
	}

	l.requests[key] = append(valid, now)
	return nil
}

// Cleanup drops keys whose requests have all left the window.
func (l *RateLimiter) Cleanup() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	for key, requests := range l.requests {
		valid := prune(requests, cutoff)
		if len(valid) == 0 {
			delete(l.requests, key)
		} else {
			l.requests[key] = valid
		}
	}
}

func prune(requests []time.Time, cutoff time.Time) []time.Time {
	valid := requests[:0]
	for _, t := range requests {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	return valid
}
