// Package resilience guards the two outbound collaborators: bounded
// retries and a circuit breaker for Supabase reads, a breaker plus a
// bulkhead capping concurrent Gemini calls.
package resilience

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/sony/gobreaker"

	"github.com/mayordomia/mayordomia-go/internal/domain"
)

// Config holds the retry and concurrency knobs, loaded from env.
type Config struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int
}

// backoff returns the jittered wait before the given retry attempt:
// InitialBackoff doubled per attempt, plus up to 50% random jitter.
func (c Config) backoff(attempt int) time.Duration {
	base := c.InitialBackoff << uint(attempt)
	return base + time.Duration(rand.Int63n(int64(base/2)+1))
}

// RetryWithBackoff runs fn up to MaxRetries+1 times. Only reads go
// through here; replaying a failed insert could duplicate rows.
func RetryWithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt == cfg.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cfg.backoff(attempt)):
		}
	}
	return lastErr
}

// NewCircuitBreaker builds a breaker for one collaborator. Tuned for
// the two backends this service talks to: a short open window so a
// recovered Supabase or Gemini comes back quickly.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,                // probes allowed while half-open
		Interval:    30 * time.Second, // counter reset period while closed
		Timeout:     10 * time.Second, // open -> half-open
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
	})
}

// MapBreakerErr converts gobreaker's open-state sentinels into the
// typed domain error so the HTTP layer answers 503 instead of 502.
func MapBreakerErr(service string, err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &domain.ErrCircuitOpen{Service: service}
	}
	return err
}

// Bulkhead caps concurrent calls to a collaborator with a buffered
// channel as semaphore.
type Bulkhead struct {
	slots chan struct{}
}

// NewBulkhead creates a bulkhead admitting maxConcurrency callers.
func NewBulkhead(maxConcurrency int) *Bulkhead {
	return &Bulkhead{slots: make(chan struct{}, maxConcurrency)}
}

// Acquire blocks until a slot frees up or the context is cancelled.
func (b *Bulkhead) Acquire(ctx context.Context) error {
	select {
	case b.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot taken by Acquire.
func (b *Bulkhead) Release() {
	<-b.slots
}
