package api

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

const testLandingPage = `<!doctype html>
<html><head>
<title>Austin Emergency Plumber &amp; Drain Service</title>
<meta name="description" content="Licensed plumbing repairs, 24/7.">
<style>body { color: red }</style>
</head>
<body>
<h1>Emergency <b>Plumbing</b></h1>
<h2>Call now for a free estimate</h2>
<script>var tracking = "buy now";</script>
<p>Fast plumber service across Austin.</p>
</body></html>`

func newTestFetcher(t *testing.T, handler fasthttp.RequestHandler) *PageFetcher {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: handler}
	go srv.Serve(ln)
	t.Cleanup(func() { ln.Close() })

	f := NewPageFetcher(DefaultConnectionConfig())
	f.connManager.client.Dial = func(string) (net.Conn, error) { return ln.Dial() }
	return f
}

func TestExtractSignals(t *testing.T) {
	s := ExtractSignals("https://austin.example.com", testLandingPage)

	if s.Title != "Austin Emergency Plumber & Drain Service" {
		t.Errorf("unexpected title %q", s.Title)
	}
	if s.Description != "Licensed plumbing repairs, 24/7." {
		t.Errorf("unexpected description %q", s.Description)
	}
	if len(s.Headings) != 2 || s.Headings[0] != "Emergency Plumbing" {
		t.Errorf("unexpected headings %q", s.Headings)
	}
	if strings.Contains(s.Body, "tracking") || strings.Contains(s.Body, "color") {
		t.Errorf("script and style content leaked into body: %q", s.Body)
	}
	if !strings.Contains(s.Body, "Fast plumber service across Austin.") {
		t.Errorf("body text missing: %q", s.Body)
	}
}

func TestExtractSignals_TruncatesOnRuneBoundary(t *testing.T) {
	page := "<body>" + strings.Repeat("é", maxBodyChars) + "</body>"
	s := ExtractSignals("", page)
	if len(s.Body) > maxBodyChars {
		t.Errorf("body not truncated: %d bytes", len(s.Body))
	}
	if strings.ContainsRune(s.Body, '�') || !strings.HasSuffix(s.Body, "é") {
		t.Error("body cut mid-rune")
	}
}

func TestPageFetcher_Fetch(t *testing.T) {
	var path string
	f := newTestFetcher(t, func(ctx *fasthttp.RequestCtx) {
		path = string(ctx.Path())
		ctx.SetContentType("text/html; charset=utf-8")
		ctx.SetBodyString(testLandingPage)
	})

	s, err := f.Fetch(context.Background(), "http://austin.example.com/plumbing")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if path != "/plumbing" {
		t.Errorf("unexpected request path %q", path)
	}
	if s.URL != "http://austin.example.com/plumbing" {
		t.Errorf("unexpected url %q", s.URL)
	}
	if s.Title == "" {
		t.Error("expected a title")
	}
}

func TestNormalizePageURL(t *testing.T) {
	tests := map[string]string{
		"":                       "",
		"example.com":            "https://example.com",
		" http://example.com/a ": "http://example.com/a",
		"https://example.com":    "https://example.com",
	}
	for in, want := range tests {
		if got := normalizePageURL(in); got != want {
			t.Errorf("normalizePageURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPageFetcher_StatusError(t *testing.T) {
	f := newTestFetcher(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	})

	_, err := f.Fetch(context.Background(), "http://missing.example.com")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != fasthttp.StatusNotFound {
		t.Fatalf("expected 404 StatusError, got %v", err)
	}

	if _, err := f.Fetch(context.Background(), "  "); !errors.Is(err, ErrNoSignals) {
		t.Errorf("expected ErrNoSignals for empty url, got %v", err)
	}
}

func TestPageDetector_FetchesURLOnlySignals(t *testing.T) {
	f := newTestFetcher(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString(testLandingPage)
	})
	d := NewPageDetector(f, NewKeywordDetector(nil))

	det, err := d.Detect(context.Background(), Signals{URL: "http://austin.example.com"})
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if det.Vertical != "home_services" {
		t.Errorf("expected home_services, got %q", det.Vertical)
	}
	if det.IntentID != "call" {
		t.Errorf("expected call intent, got %q", det.IntentID)
	}
}

func TestPageDetector_FallsBackToURLWords(t *testing.T) {
	f := newTestFetcher(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
	})
	d := NewPageDetector(f, NewKeywordDetector(nil))

	det, err := d.Detect(context.Background(), Signals{URL: "http://example.com/hotel-deals"})
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if det.Vertical != "travel" {
		t.Errorf("expected travel from url words, got %q", det.Vertical)
	}
}
