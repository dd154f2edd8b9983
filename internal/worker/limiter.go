// Package worker provides rate limiting for the generation backend.
package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles calls to the generation backend so a burst of claim
// submissions cannot overload a single local model.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a backend rate limiter
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 2
	}
	if burst <= 0 {
		burst = 5
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait blocks until the next backend call is allowed or the context is
// cancelled
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow checks if a call is allowed without waiting
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
