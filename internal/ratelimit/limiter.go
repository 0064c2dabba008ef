// Package ratelimit provides named per-provider rate limiters.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limiter wraps rate.Limiter with a provider name for error messages.
type Limiter struct {
	limiter *rate.Limiter
	name    string
}

// New creates a rate limiter allowing requestsPerSecond, with a burst of
// the same size.
func New(name string, requestsPerSecond int) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		name:    name,
	}
}

// Wait blocks until the limiter allows a request to proceed.
// Returns an error if the context is cancelled while waiting.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait for %s: %w", l.name, err)
	}
	return nil
}

// Name returns the name of this rate limiter.
func (l *Limiter) Name() string {
	return l.name
}
