package ai

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"concierge/pkg/errors"
)

// RateLimiter bounds per-provider request rates.
type RateLimiter struct {
	limiter  *rate.Limiter
	provider ProviderName
}

// NewRateLimiter creates a limiter allowing reqPerMinute requests per minute
// with a burst of 10% of the per-minute budget.
func NewRateLimiter(provider ProviderName, reqPerMinute float64) *RateLimiter {
	if reqPerMinute <= 0 {
		reqPerMinute = 60
	}

	burst := int(reqPerMinute / 10)
	if burst < 1 {
		burst = 1
	}

	return &RateLimiter{
		limiter:  rate.NewLimiter(rate.Limit(reqPerMinute/60.0), burst),
		provider: provider,
	}
}

// Wait blocks until the limiter allows a request or the context is cancelled.
func (l *RateLimiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return errors.Wrapf(err, "rate limiter %s", l.provider)
	}
	return nil
}

// classifyContextErr maps a cancelled or expired context to the matching
// domain error. A limiter Wait that failed because the caller's deadline
// passed is a timeout, not a provider rate limit.
func classifyContextErr(ctx context.Context, provider string) error {
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return errors.Wrapf(errors.ErrTimeout, "%s request deadline reached", provider)
	case context.Canceled:
		return errors.Wrapf(context.Canceled, "%s request cancelled", provider)
	default:
		return nil
	}
}

// Allow checks if a request is allowed without blocking.
func (l *RateLimiter) Allow() bool {
	return l.limiter.Allow()
}

// Limit returns the configured requests-per-minute budget.
func (l *RateLimiter) Limit() float64 {
	return float64(l.limiter.Limit()) * 60.0
}

// RateLimitError wraps provider quota and rate limit failures so callers can
// distinguish them from transport errors.
type RateLimitError struct {
	Provider ProviderName
	Err      error
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

// Unwrap exposes the underlying error.
func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// Is matches ErrRateLimited regardless of the wrapped provider error.
func (e *RateLimitError) Is(target error) bool {
	return target == errors.ErrRateLimited
}
