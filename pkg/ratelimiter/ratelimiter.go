package ratelimiter

import (
	"context"
	"sync"
	"time"
)

type RateLimiter interface {
	TakeToken() bool
	Wait(ctx context.Context) error
}

var _ RateLimiter = (*TokenBucket)(nil)

type TokenBucket struct {
	capacity   int64
	tokens     int64
	refillRate int64
	lastRefill time.Time
	mu         sync.Mutex
}

func NewTokenBucket(capacity, refillRate int64) *TokenBucket {
	if capacity <= 0 {
		capacity = 1
	}
	if refillRate <= 0 {
		refillRate = 1
	}

	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

func (tb *TokenBucket) TakeToken() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)

	// Only whole seconds refill; keep the remainder for the next call.
	tokensToAdd := int64(elapsed/time.Second) * tb.refillRate
	if tokensToAdd > 0 {
		tb.tokens = min(tb.capacity, tb.tokens+tokensToAdd)
		tb.lastRefill = tb.lastRefill.Add(time.Duration(tokensToAdd/tb.refillRate) * time.Second)
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// Wait blocks until a token is available or ctx is done.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	waitTime := time.Second / time.Duration(tb.refillRate)
	if waitTime < 100*time.Millisecond {
		waitTime = 100 * time.Millisecond
	}

	for !tb.TakeToken() {
		timer := time.NewTimer(waitTime)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
