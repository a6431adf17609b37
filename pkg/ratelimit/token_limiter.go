package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter enforces a tokens-per-minute budget for AI provider calls.
// The budget refills at the start of each minute window. Wait blocks until
// the requested amount fits in the current window or ctx is cancelled.
type TokenLimiter struct {
	mu           sync.Mutex
	maxPerMinute int
	remaining    int
	windowEnd    time.Time
}

// NewTokenLimiter creates a limiter with the given per-minute token budget.
func NewTokenLimiter(maxPerMinute int) *TokenLimiter {
	return &TokenLimiter{
		maxPerMinute: maxPerMinute,
		remaining:    maxPerMinute,
		windowEnd:    time.Now().Add(time.Minute),
	}
}

// GetRemaining returns the tokens left in the current window.
func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refill()
	return l.remaining
}

// Wait consumes the given number of tokens, blocking until the current
// window has capacity. Requests larger than the whole budget are allowed
// through once the window is fresh, rather than blocking forever.
func (l *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	for {
		l.mu.Lock()
		l.refill()
		if tokens >= l.maxPerMinute && l.remaining == l.maxPerMinute {
			l.remaining = 0
			l.mu.Unlock()
			return nil
		}
		if tokens <= l.remaining {
			l.remaining -= tokens
			l.mu.Unlock()
			return nil
		}
		wait := time.Until(l.windowEnd)
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// refill resets the budget when the window has rolled over. Callers must
// hold l.mu.
func (l *TokenLimiter) refill() {
	now := time.Now()
	if now.After(l.windowEnd) {
		l.remaining = l.maxPerMinute
		l.windowEnd = now.Add(time.Minute)
	}
}
