package api

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

const testMetricsBody = `{
	"status": "success",
	"data": [
		{"keyword": "plumber", "metrics": {"avg_monthly_searches": 2400, "competition": "HIGH", "latest_searches": 2900, "cpc": "3.20"}},
		{"keyword": "drain cleaning", "metrics": {"avg_monthly_searches": 90, "competition": "LOW", "latest_searches": 70}}
	]
}`

func newTestClient(t *testing.T, cfg ClientConfig, handler fasthttp.RequestHandler) *HTTPMetricsClient {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: handler}
	go srv.Serve(ln)
	t.Cleanup(func() { ln.Close() })

	if cfg.Endpoints == "" {
		cfg.Endpoints = "http://metrics.test/v1/keywords"
	}
	cfg.RetryDelay = time.Millisecond
	c := NewHTTPMetricsClient(cfg)
	c.connManager.client.Dial = func(string) (net.Conn, error) { return ln.Dial() }
	return c
}

func TestHTTPMetricsClient_LookupBatches(t *testing.T) {
	var requests int32
	var sawAuth, sawCountry atomic.Bool
	cfg := DefaultClientConfig()
	cfg.APIKey = "secret"
	cfg.BatchSize = 2

	c := newTestClient(t, cfg, func(ctx *fasthttp.RequestCtx) {
		atomic.AddInt32(&requests, 1)
		if string(ctx.Request.Header.Peek("Authorization")) == "Bearer secret" {
			sawAuth.Store(true)
		}
		if string(ctx.QueryArgs().Peek("country")) == "US" {
			sawCountry.Store(true)
		}
		if strings.Contains(string(ctx.QueryArgs().Peek("keyword")), "plumber") {
			ctx.SetBodyString(testMetricsBody)
			return
		}
		ctx.SetBodyString(`{"status":"success","data":[]}`)
	})

	resp, err := c.Lookup(context.Background(), []string{"plumber", "Drain  Cleaning", "plumber", "water heater"}, "us")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if got := atomic.LoadInt32(&requests); got != 2 {
		t.Errorf("Expected 2 batched requests, got %d", got)
	}
	if !sawAuth.Load() || !sawCountry.Load() {
		t.Error("Expected bearer auth and upper-cased country on the request")
	}
	if resp.Source != SourceLive {
		t.Errorf("Expected live source, got %s", resp.Source)
	}

	m, ok := resp.Get("PLUMBER")
	if !ok {
		t.Fatal("Expected metrics for plumber")
	}
	if m.Searches != 2400 || m.Competition != 0.8 || m.CPC.String() != "3.2" {
		t.Errorf("Unexpected plumber metrics %+v", m)
	}
	if d, _ := resp.Get("drain cleaning"); d.CPC.String() != "1.5" {
		t.Errorf("Expected default CPC for drain cleaning, got %s", d.CPC)
	}
	if _, ok := resp.Get("water heater"); ok {
		t.Error("Expected no metrics for water heater")
	}

	if stats := c.Stats(); stats.TotalRequests != 2 || stats.FailedRequests != 0 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestHTTPMetricsClient_RetriesServerErrors(t *testing.T) {
	var requests int32
	cfg := DefaultClientConfig()
	cfg.MaxRetries = 2

	c := newTestClient(t, cfg, func(ctx *fasthttp.RequestCtx) {
		if atomic.AddInt32(&requests, 1) < 3 {
			ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
			return
		}
		ctx.SetBodyString(testMetricsBody)
	})

	resp, err := c.Lookup(context.Background(), []string{"plumber"}, "")
	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if atomic.LoadInt32(&requests) != 3 {
		t.Errorf("Expected 3 attempts, got %d", requests)
	}
	if _, ok := resp.Get("plumber"); !ok {
		t.Error("Expected plumber metrics")
	}
}

func TestHTTPMetricsClient_AuthErrorNotRetried(t *testing.T) {
	var requests int32
	cfg := DefaultClientConfig()
	cfg.MaxRetries = 3

	c := newTestClient(t, cfg, func(ctx *fasthttp.RequestCtx) {
		atomic.AddInt32(&requests, 1)
		ctx.SetStatusCode(fasthttp.StatusUnauthorized)
		ctx.SetBodyString("bad key")
	})

	_, err := c.Lookup(context.Background(), []string{"plumber"}, "")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != fasthttp.StatusUnauthorized {
		t.Fatalf("Expected 401 StatusError, got %v", err)
	}
	if atomic.LoadInt32(&requests) != 1 {
		t.Errorf("Expected a single attempt, got %d", requests)
	}
	if c.Stats().LastError == "" {
		t.Error("Expected last error to be recorded")
	}
}

func TestHTTPMetricsClient_BreakerOpens(t *testing.T) {
	var requests int32
	cfg := DefaultClientConfig()
	cfg.MaxRetries = 0
	cfg.BreakerFailures = 2
	cfg.BreakerReset = time.Hour

	c := newTestClient(t, cfg, func(ctx *fasthttp.RequestCtx) {
		atomic.AddInt32(&requests, 1)
		ctx.SetStatusCode(fasthttp.StatusBadGateway)
	})

	for i := 0; i < 2; i++ {
		if _, err := c.Lookup(context.Background(), []string{"plumber"}, ""); err == nil {
			t.Fatal("Expected failure")
		}
	}
	_, err := c.Lookup(context.Background(), []string{"plumber"}, "")
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("Expected ErrCircuitOpen, got %v", err)
	}
	if atomic.LoadInt32(&requests) != 2 {
		t.Errorf("Expected the open breaker to short-circuit, got %d requests", requests)
	}
	if c.Stats().BreakerState != "open" {
		t.Errorf("Expected open breaker, got %s", c.Stats().BreakerState)
	}
}

func TestHTTPMetricsClient_NoEndpoint(t *testing.T) {
	c := NewHTTPMetricsClient(DefaultClientConfig())
	if _, err := c.Lookup(context.Background(), []string{"plumber"}, ""); !errors.Is(err, ErrNoEndpoint) {
		t.Errorf("Expected ErrNoEndpoint, got %v", err)
	}
}

func TestBuildQueryURL(t *testing.T) {
	tests := []struct {
		base, country, want string
	}{
		{"https://m.example.com/v1", "", "https://m.example.com/v1?keyword=a%2Cb+c"},
		{"https://m.example.com/v1?keyword=", "us", "https://m.example.com/v1?keyword=a%2Cb+c&country=US"},
		{"https://m.example.com/v1?lang=en", "", "https://m.example.com/v1?lang=en&keyword=a%2Cb+c"},
	}
	for _, tt := range tests {
		if got := buildQueryURL(tt.base, []string{"a", "b c"}, tt.country); got != tt.want {
			t.Errorf("buildQueryURL(%s) = %s, want %s", tt.base, got, tt.want)
		}
	}
}

func TestMetricsParser(t *testing.T) {
	p := NewMetricsParser(DefaultClientConfig().DefaultCPC)

	resp, err := p.ParseResponse([]byte(testMetricsBody))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(resp.Keywords) != 2 {
		t.Fatalf("Expected 2 keywords, got %d", len(resp.Keywords))
	}
	d, _ := resp.Get("drain cleaning")
	if d.Competition != 0.3 || d.CompetitionLevel != "LOW" || d.LatestSearches != 70 {
		t.Errorf("Unexpected drain cleaning metrics %+v", d)
	}

	if _, err := p.ParseResponse([]byte(`{"status":"error","message":"quota exceeded"}`)); !errors.Is(err, ErrBadResponse) {
		t.Errorf("Expected ErrBadResponse for error status, got %v", err)
	}
	if _, err := p.ParseResponse([]byte(`not json`)); !errors.Is(err, ErrBadResponse) {
		t.Errorf("Expected ErrBadResponse for invalid body, got %v", err)
	}
	if mapCompetitionValue("unknown") != 0.5 {
		t.Error("Expected unknown competition to map to medium")
	}
}
