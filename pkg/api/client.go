package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"

	"campaignkit-go/pkg/logger"
)

// ClientConfig configures the live metrics client. Endpoints is a single
// URL or a comma-separated list used round-robin.
type ClientConfig struct {
	Endpoints       string           `json:"endpoints" mapstructure:"endpoints"`
	APIKey          string           `json:"api_key" mapstructure:"api_key"`
	BatchSize       int              `json:"batch_size" mapstructure:"batch_size"`
	MaxRetries      int              `json:"max_retries" mapstructure:"max_retries"`
	RetryDelay      time.Duration    `json:"retry_delay" mapstructure:"retry_delay"`
	BreakerFailures int              `json:"breaker_failures" mapstructure:"breaker_failures"`
	BreakerReset    time.Duration    `json:"breaker_reset" mapstructure:"breaker_reset"`
	MaxConcurrent   int              `json:"max_concurrent" mapstructure:"max_concurrent"`
	AcquireTimeout  time.Duration    `json:"acquire_timeout" mapstructure:"acquire_timeout"`
	DefaultCPC      decimal.Decimal  `json:"default_cpc" mapstructure:"-"`
	Connection      ConnectionConfig `json:"connection" mapstructure:"connection"`
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BatchSize:       20,
		MaxRetries:      2,
		RetryDelay:      500 * time.Millisecond,
		BreakerFailures: 5,
		BreakerReset:    30 * time.Second,
		MaxConcurrent:   4,
		AcquireTimeout:  5 * time.Second,
		DefaultCPC:      decimal.RequireFromString("1.50"),
		Connection:      DefaultConnectionConfig(),
	}
}

// ClientStats is a snapshot of the client's request counters.
type ClientStats struct {
	TotalRequests  uint64           `json:"total_requests"`
	FailedRequests uint64           `json:"failed_requests"`
	AvgLatencyMs   uint64           `json:"avg_latency_ms"`
	LastError      string           `json:"last_error,omitempty"`
	BreakerState   string           `json:"breaker_state"`
	Concurrency    ConcurrencyStats `json:"concurrency"`
}

// HTTPMetricsClient queries a keyword metrics endpoint over fasthttp
type HTTPMetricsClient struct {
	urlPool     *URLPool
	apiKey      string
	batchSize   int
	connManager *ConnectionManager
	retry       *SimpleRetry
	breaker     *CircuitBreaker
	limiter     *ConcurrencyLimiter
	parser      *MetricsParser
	log         *logger.Logger

	totalRequests  uint64
	failedRequests uint64
	totalLatency   uint64
	lastError      atomic.Value
}

func NewHTTPMetricsClient(cfg ClientConfig) *HTTPMetricsClient {
	defaults := DefaultClientConfig()
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaults.BatchSize
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaults.RetryDelay
	}
	if cfg.BreakerReset <= 0 {
		cfg.BreakerReset = defaults.BreakerReset
	}
	if cfg.DefaultCPC.IsZero() {
		cfg.DefaultCPC = defaults.DefaultCPC
	}

	return &HTTPMetricsClient{
		urlPool:     NewURLPool(cfg.Endpoints),
		apiKey:      cfg.APIKey,
		batchSize:   cfg.BatchSize,
		connManager: NewConnectionManager(cfg.Connection),
		retry:       NewSimpleRetry(cfg.MaxRetries, cfg.RetryDelay),
		breaker:     NewCircuitBreaker(cfg.BreakerFailures, cfg.BreakerReset),
		limiter:     NewConcurrencyLimiter(cfg.MaxConcurrent, cfg.AcquireTimeout),
		parser:      NewMetricsParser(cfg.DefaultCPC),
		log:         logger.GetLogger().Component("metrics_client"),
	}
}

// SetLogger replaces the component logger
func (c *HTTPMetricsClient) SetLogger(l *logger.Logger) {
	c.log = l.Component("metrics_client")
}

// Lookup queries keywords in batches and merges the batches into one live
// response. Any failed batch fails the lookup.
func (c *HTTPMetricsClient) Lookup(ctx context.Context, keywords []string, country string) (*MetricsResponse, error) {
	if c.urlPool.IsEmpty() {
		return nil, ErrNoEndpoint
	}
	keywords = uniqueKeywords(keywords)
	merged := newMetricsResponse(SourceLive, len(keywords))
	if len(keywords) == 0 {
		return merged, nil
	}

	for start := 0; start < len(keywords); start += c.batchSize {
		batch := keywords[start:min(start+c.batchSize, len(keywords))]
		resp, err := c.query(ctx, batch, country)
		if err != nil {
			return nil, err
		}
		for _, m := range resp.Keywords {
			merged.put(m)
		}
	}

	c.log.WithFields(map[string]interface{}{
		"requested": len(keywords),
		"found":     len(merged.Keywords),
		"country":   country,
	}).Debug("Metrics lookup completed")
	return merged, nil
}

func (c *HTTPMetricsClient) query(ctx context.Context, batch []string, country string) (*MetricsResponse, error) {
	if err := c.limiter.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("metrics lookup: %w", err)
	}
	defer c.limiter.Release()

	atomic.AddUint64(&c.totalRequests, 1)
	start := time.Now()
	defer func() {
		atomic.AddUint64(&c.totalLatency, uint64(time.Since(start).Milliseconds()))
	}()

	var result *MetricsResponse
	err := c.retry.Execute(ctx, func() error {
		return c.breaker.Execute(func() error {
			var err error
			result, err = c.doQuery(ctx, batch, country)
			return err
		})
	})
	if err != nil {
		atomic.AddUint64(&c.failedRequests, 1)
		c.lastError.Store(err.Error())
		c.log.WithError(err).WithField("keywords_count", len(batch)).Warn("Metrics query failed")
		return nil, fmt.Errorf("metrics lookup: %w", err)
	}
	return result, nil
}

func (c *HTTPMetricsClient) doQuery(ctx context.Context, batch []string, country string) (*MetricsResponse, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(buildQueryURL(c.urlPool.Next(), batch, country))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	if err := c.connManager.GetFastHTTPClient().DoTimeout(req, resp, c.connManager.Timeout(ctx)); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		body := string(resp.Body())
		if len(body) > 200 {
			body = body[:200]
		}
		return nil, &StatusError{Code: resp.StatusCode(), Body: body}
	}

	return c.parser.ParseResponse(resp.Body())
}

// buildQueryURL appends keyword=a,b and country. A base already ending in
// "?keyword=" is treated as a template.
func buildQueryURL(base string, keywords []string, country string) string {
	param := url.QueryEscape(strings.Join(keywords, ","))
	var full string
	switch {
	case strings.HasSuffix(base, "?keyword="), strings.HasSuffix(base, "&keyword="):
		full = base + param
	case strings.Contains(base, "?"):
		full = base + "&keyword=" + param
	default:
		full = base + "?keyword=" + param
	}
	if country != "" {
		full += "&country=" + url.QueryEscape(strings.ToUpper(country))
	}
	return full
}

func uniqueKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		key := metricsKey(k)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}

// Stats returns the request counters
func (c *HTTPMetricsClient) Stats() ClientStats {
	total := atomic.LoadUint64(&c.totalRequests)
	stats := ClientStats{
		TotalRequests:  total,
		FailedRequests: atomic.LoadUint64(&c.failedRequests),
		BreakerState:   c.breaker.State().String(),
		Concurrency:    c.limiter.Stats(),
	}
	if total > 0 {
		stats.AvgLatencyMs = atomic.LoadUint64(&c.totalLatency) / total
	}
	if v, ok := c.lastError.Load().(string); ok {
		stats.LastError = v
	}
	return stats
}

func (c *HTTPMetricsClient) Close() {
	c.connManager.Close()
}
