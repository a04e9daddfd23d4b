package api

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/valyala/fasthttp"

	"campaignkit-go/pkg/logger"
)

const (
	defaultUserAgent = "Mozilla/5.0 (compatible; campaignkit/1.0; +https://example.com/bot)"
	maxBodyChars     = 4000
	maxHeadings      = 20
)

var (
	titlePattern       = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	descriptionPattern = regexp.MustCompile(`(?is)<meta[^>]+name=["']description["'][^>]*content=["']([^"']*)["']`)
	headingPattern     = regexp.MustCompile(`(?is)<h[1-3][^>]*>(.*?)</h[1-3]>`)
	bodyPattern        = regexp.MustCompile(`(?is)<body[^>]*>(.*)</body>`)
	scriptPattern      = regexp.MustCompile(`(?is)<(script|style|noscript)[^>]*>.*?</(script|style|noscript)>`)
	tagPattern         = regexp.MustCompile(`(?s)<[^>]+>`)
)

// PageFetcher downloads a landing page and reduces it to detector signals.
type PageFetcher struct {
	connManager *ConnectionManager
	userAgent   string
	log         *logger.Logger
}

func NewPageFetcher(cfg ConnectionConfig) *PageFetcher {
	return &PageFetcher{
		connManager: NewConnectionManager(cfg),
		userAgent:   defaultUserAgent,
		log:         logger.GetLogger().Component("page_fetcher"),
	}
}

func (f *PageFetcher) SetLogger(l *logger.Logger) {
	f.log = l.Component("page_fetcher")
}

// Fetch returns the page's title, meta description, h1-h3 headings and
// visible body text.
func (f *PageFetcher) Fetch(ctx context.Context, pageURL string) (*Signals, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	target := normalizePageURL(pageURL)
	if target == "" {
		return nil, ErrNoSignals
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(target)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip")

	if err := f.connManager.GetFastHTTPClient().DoRedirects(req, resp, 3); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode()}
	}

	body := resp.Body()
	if strings.EqualFold(string(resp.Header.Peek(fasthttp.HeaderContentEncoding)), "gzip") {
		unzipped, err := resp.BodyGunzip()
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", target, err)
		}
		body = unzipped
	}

	signals := ExtractSignals(target, string(body))
	f.log.WithFields(map[string]interface{}{
		"url":      target,
		"bytes":    len(body),
		"headings": len(signals.Headings),
	}).Debug("Fetched landing page")
	return signals, nil
}

func (f *PageFetcher) Close() {
	f.connManager.Close()
}

// ExtractSignals parses raw HTML with tolerant patterns rather than a full
// DOM; broken markup still yields whatever matched.
func ExtractSignals(pageURL, page string) *Signals {
	s := &Signals{URL: pageURL}
	if m := titlePattern.FindStringSubmatch(page); m != nil {
		s.Title = cleanText(m[1])
	}
	if m := descriptionPattern.FindStringSubmatch(page); m != nil {
		s.Description = cleanText(m[1])
	}
	for _, m := range headingPattern.FindAllStringSubmatch(page, maxHeadings) {
		if h := cleanText(m[1]); h != "" {
			s.Headings = append(s.Headings, h)
		}
	}

	body := page
	if m := bodyPattern.FindStringSubmatch(page); m != nil {
		body = m[1]
	}
	body = cleanText(scriptPattern.ReplaceAllString(body, " "))
	if len(body) > maxBodyChars {
		body = body[:maxBodyChars]
		for !utf8.ValidString(body) {
			body = body[:len(body)-1]
		}
	}
	s.Body = body
	return s
}

func cleanText(s string) string {
	s = html.UnescapeString(tagPattern.ReplaceAllString(s, " "))
	return strings.Join(strings.Fields(s), " ")
}

func normalizePageURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	return raw
}

// PageDetector fills in page content for URL-only signals before handing
// them to the wrapped detector.
type PageDetector struct {
	fetcher *PageFetcher
	next    IntentDetector
	log     *logger.Logger
}

func NewPageDetector(fetcher *PageFetcher, next IntentDetector) *PageDetector {
	return &PageDetector{
		fetcher: fetcher,
		next:    next,
		log:     logger.GetLogger().Component("page_detector"),
	}
}

func (d *PageDetector) Detect(ctx context.Context, signals Signals) (*Detection, error) {
	if signals.URL != "" && signals.Title == "" && signals.Body == "" && len(signals.Headings) == 0 {
		fetched, err := d.fetcher.Fetch(ctx, signals.URL)
		if err != nil {
			// URL words alone can still classify the page
			d.log.WithError(err).WithField("url", signals.URL).Warn("Landing page fetch failed")
		} else {
			if fetched.Description == "" {
				fetched.Description = signals.Description
			}
			signals = *fetched
		}
	}
	return d.next.Detect(ctx, signals)
}
