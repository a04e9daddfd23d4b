package api

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"campaignkit-go/pkg/logger"
)

// ErrLimiterTimeout is returned when no permit frees up within the acquire
// timeout.
var ErrLimiterTimeout = errors.New("concurrency permit timeout")

// ConcurrencyLimiter caps in-flight metrics requests across all callers
// sharing one client. Permits are counted with compare-and-swap.
type ConcurrencyLimiter struct {
	maxConcurrent  int64
	current        int64
	acquireTimeout time.Duration
	log            *logger.Logger

	totalAcquires   int64
	totalReleases   int64
	timeoutFailures int64
}

func NewConcurrencyLimiter(maxConcurrent int, acquireTimeout time.Duration) *ConcurrencyLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	if acquireTimeout <= 0 {
		acquireTimeout = 5 * time.Second
	}
	return &ConcurrencyLimiter{
		maxConcurrent:  int64(maxConcurrent),
		acquireTimeout: acquireTimeout,
		log:            logger.GetLogger().Component("concurrency_limiter"),
	}
}

// Acquire blocks until a permit is free, ctx is done or the acquire
// timeout passes. Every successful Acquire must be paired with Release.
func (l *ConcurrencyLimiter) Acquire(ctx context.Context) error {
	atomic.AddInt64(&l.totalAcquires, 1)
	if l.tryAcquire() {
		return nil
	}

	timer := time.NewTimer(l.acquireTimeout)
	defer timer.Stop()

	for attempt := 1; ; attempt++ {
		delay := min(time.Duration(attempt)*7*time.Millisecond, 50*time.Millisecond)
		select {
		case <-ctx.Done():
			atomic.AddInt64(&l.timeoutFailures, 1)
			return ctx.Err()
		case <-timer.C:
			atomic.AddInt64(&l.timeoutFailures, 1)
			current := atomic.LoadInt64(&l.current)
			l.log.WithFields(map[string]interface{}{
				"current_concurrent": current,
				"max_concurrent":     atomic.LoadInt64(&l.maxConcurrent),
				"attempts":           attempt,
			}).Warn("Failed to acquire concurrency permit within timeout")
			return fmt.Errorf("%w after %v (current: %d)", ErrLimiterTimeout, l.acquireTimeout, current)
		case <-time.After(delay):
		}
		if l.tryAcquire() {
			return nil
		}
	}
}

func (l *ConcurrencyLimiter) tryAcquire() bool {
	for {
		current := atomic.LoadInt64(&l.current)
		if current >= atomic.LoadInt64(&l.maxConcurrent) {
			return false
		}
		if atomic.CompareAndSwapInt64(&l.current, current, current+1) {
			return true
		}
	}
}

func (l *ConcurrencyLimiter) Release() {
	for {
		current := atomic.LoadInt64(&l.current)
		if current <= 0 {
			l.log.Warn("Attempted to release permit when none were held")
			return
		}
		if atomic.CompareAndSwapInt64(&l.current, current, current-1) {
			atomic.AddInt64(&l.totalReleases, 1)
			return
		}
	}
}

// SetMax changes the cap; permits already held are not revoked.
func (l *ConcurrencyLimiter) SetMax(n int) {
	if n <= 0 {
		return
	}
	atomic.StoreInt64(&l.maxConcurrent, int64(n))
}

type ConcurrencyStats struct {
	MaxConcurrent   int   `json:"max_concurrent"`
	CurrentActive   int   `json:"current_active"`
	TotalAcquires   int64 `json:"total_acquires"`
	TotalReleases   int64 `json:"total_releases"`
	TimeoutFailures int64 `json:"timeout_failures"`
}

func (l *ConcurrencyLimiter) Stats() ConcurrencyStats {
	return ConcurrencyStats{
		MaxConcurrent:   int(atomic.LoadInt64(&l.maxConcurrent)),
		CurrentActive:   int(atomic.LoadInt64(&l.current)),
		TotalAcquires:   atomic.LoadInt64(&l.totalAcquires),
		TotalReleases:   atomic.LoadInt64(&l.totalReleases),
		TimeoutFailures: atomic.LoadInt64(&l.timeoutFailures),
	}
}

// UtilizationRate is the share of permits in use, 0-100.
func (s ConcurrencyStats) UtilizationRate() float64 {
	if s.MaxConcurrent == 0 {
		return 0
	}
	return float64(s.CurrentActive) / float64(s.MaxConcurrent) * 100
}
