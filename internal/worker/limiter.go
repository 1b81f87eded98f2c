package worker

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles calls against the embedding provider. One limiter is
// shared by all embed workers so the configured rate bounds the whole
// process, not each goroutine.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a rate limiter allowing requestsPerSecond with the
// given burst.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait blocks until the next request is allowed or the context ends.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// WaitWithDelay waits for rate limit clearance and then an additional fixed
// delay, used to spread retries after provider backpressure.
func (l *Limiter) WaitWithDelay(ctx context.Context, additionalDelay time.Duration) error {
	if err := l.Wait(ctx); err != nil {
		return err
	}
	if additionalDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(additionalDelay):
		}
	}
	return nil
}
