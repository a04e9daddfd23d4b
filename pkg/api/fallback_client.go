package api

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"campaignkit-go/pkg/logger"
)

// ErrNoHealthyClient is returned when every client in the chain failed or
// is cooling down.
var ErrNoHealthyClient = errors.New("no healthy metrics client available")

// FallbackClient tries its clients in order, typically the live endpoint
// then the estimator. A client that fails is skipped until the health
// window elapses.
type FallbackClient struct {
	clients      []MetricsClient
	healthy      []bool
	healthWindow time.Duration
	lastCheck    time.Time
	mu           sync.Mutex
	log          *logger.Logger
}

func NewFallbackClient(clients ...MetricsClient) *FallbackClient {
	healthy := make([]bool, len(clients))
	for i := range healthy {
		healthy[i] = true
	}
	return &FallbackClient{
		clients:      clients,
		healthy:      healthy,
		healthWindow: 30 * time.Second,
		lastCheck:    time.Now(),
		log:          logger.GetLogger().Component("metrics_fallback"),
	}
}

// SetLogger replaces the component logger
func (f *FallbackClient) SetLogger(l *logger.Logger) {
	f.log = l.Component("metrics_fallback")
}

func (f *FallbackClient) Lookup(ctx context.Context, keywords []string, country string) (*MetricsResponse, error) {
	f.checkHealth()

	var errs []error
	for i, client := range f.clients {
		if !f.isHealthy(i) {
			continue
		}
		resp, err := client.Lookup(ctx, keywords, country)
		if err == nil {
			f.setHealth(i, true)
			if i > 0 {
				f.log.WithFields(map[string]interface{}{
					"client": i,
					"source": string(resp.Source),
				}).Debug("Metrics served by fallback client")
			}
			return resp, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		f.setHealth(i, false)
		f.log.WithError(err).WithField("client", i).Warn("Metrics client failed, trying next")
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil, ErrNoHealthyClient
	}
	return nil, fmt.Errorf("%w: %w", ErrNoHealthyClient, errors.Join(errs...))
}

func (f *FallbackClient) isHealthy(i int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.healthy[i]
}

func (f *FallbackClient) setHealth(i int, healthy bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.healthy[i] = healthy
}

// checkHealth marks every client healthy again once the window elapsed
func (f *FallbackClient) checkHealth() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if time.Since(f.lastCheck) > f.healthWindow {
		for i := range f.healthy {
			f.healthy[i] = true
		}
		f.lastCheck = time.Now()
	}
}
