package api

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestConcurrencyLimiter_AcquireRelease(t *testing.T) {
	limiter := NewConcurrencyLimiter(2, time.Second)
	ctx := context.Background()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("second acquire: %v", err)
	}

	short, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	if err := limiter.Acquire(short); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded at capacity, got %v", err)
	}

	limiter.Release()
	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}

	stats := limiter.Stats()
	if stats.CurrentActive != 2 || stats.TimeoutFailures != 1 || stats.TotalAcquires != 4 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.UtilizationRate() != 100 {
		t.Errorf("expected full utilization, got %v", stats.UtilizationRate())
	}

	limiter.Release()
	limiter.Release()
	limiter.Release() // extra release must not underflow
	if got := limiter.Stats().CurrentActive; got != 0 {
		t.Errorf("expected 0 active, got %d", got)
	}
}

func TestConcurrencyLimiter_AcquireTimeout(t *testing.T) {
	limiter := NewConcurrencyLimiter(1, 30*time.Millisecond)
	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	err := limiter.Acquire(context.Background())
	if !errors.Is(err, ErrLimiterTimeout) {
		t.Fatalf("expected ErrLimiterTimeout, got %v", err)
	}
}

func TestConcurrencyLimiter_NeverExceedsMax(t *testing.T) {
	const limit = 3
	limiter := NewConcurrencyLimiter(limit, 5*time.Second)

	var active, peak int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := limiter.Acquire(context.Background()); err != nil {
				t.Error(err)
				return
			}
			n := atomic.AddInt64(&active, 1)
			for {
				p := atomic.LoadInt64(&peak)
				if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&active, -1)
			limiter.Release()
		}()
	}
	wg.Wait()

	if peak > limit {
		t.Errorf("peak concurrency %d exceeds %d", peak, limit)
	}
	if got := limiter.Stats().TotalReleases; got != 20 {
		t.Errorf("expected 20 releases, got %d", got)
	}
}

func TestConcurrencyLimiter_SetMax(t *testing.T) {
	limiter := NewConcurrencyLimiter(1, 20*time.Millisecond)
	limiter.SetMax(0)
	if limiter.Stats().MaxConcurrent != 1 {
		t.Fatal("non-positive max must be ignored")
	}
	limiter.SetMax(2)
	ctx := context.Background()
	if err := limiter.Acquire(ctx); err != nil {
		t.Fatal(err)
	}
	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("raised cap should admit a second permit: %v", err)
	}
}
