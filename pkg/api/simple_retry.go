package api

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/valyala/fasthttp"
)

var (
	// ErrBadResponse marks a body that could not be decoded.
	ErrBadResponse = errors.New("bad metrics response")
	// ErrNoEndpoint is returned by a live client configured without URLs.
	ErrNoEndpoint = errors.New("no metrics endpoint configured")
)

// StatusError is a non-200 answer from the metrics endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("metrics api returned status %d", e.Code)
	}
	return fmt.Sprintf("metrics api returned status %d: %s", e.Code, e.Body)
}

// Retryable is true for rate limits and server-side failures.
func (e *StatusError) Retryable() bool {
	return e.Code == fasthttp.StatusTooManyRequests || e.Code >= 500
}

// IsRetryable classifies lookup errors. Auth failures, other client errors,
// undecodable bodies and an open breaker are final; network errors,
// timeouts, 429 and 5xx are retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrCircuitOpen) || errors.Is(err, ErrBadResponse) || errors.Is(err, ErrNoEndpoint) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	return true
}

// SimpleRetry retries with exponential backoff
type SimpleRetry struct {
	maxRetries        int
	retryDelay        time.Duration
	backoffMultiplier float64
	retryable         func(error) bool
}

// NewSimpleRetry creates a retry policy; maxRetries counts extra attempts.
func NewSimpleRetry(maxRetries int, retryDelay time.Duration) *SimpleRetry {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &SimpleRetry{
		maxRetries:        maxRetries,
		retryDelay:        retryDelay,
		backoffMultiplier: 2.0,
		retryable:         IsRetryable,
	}
}

// Execute runs fn until it succeeds, returns a final error, the attempts run
// out or ctx is done.
func (sr *SimpleRetry) Execute(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= sr.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == sr.maxRetries || !sr.retryable(err) {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sr.delay(attempt)):
		}
	}

	return lastErr
}

func (sr *SimpleRetry) delay(attempt int) time.Duration {
	return time.Duration(float64(sr.retryDelay) * math.Pow(sr.backoffMultiplier, float64(attempt)))
}
