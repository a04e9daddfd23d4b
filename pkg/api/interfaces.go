package api

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Source tells the caller how trustworthy a metrics response is.
type Source string

const (
	SourceLive      Source = "live"
	SourceEstimated Source = "estimated"
	SourceLocal     Source = "local"
)

// KeywordMetrics is the per-keyword payload of a lookup.
type KeywordMetrics struct {
	Keyword          string          `json:"keyword"`
	Searches         int             `json:"searches"`
	LatestSearches   int             `json:"latest_searches,omitempty"`
	Competition      float64         `json:"competition"`
	CompetitionLevel string          `json:"competition_level,omitempty"`
	CPC              decimal.Decimal `json:"cpc"`
}

// MetricsResponse holds the metrics found for a lookup, keyed by the
// lowercased keyword text.
type MetricsResponse struct {
	Source   Source                    `json:"source"`
	Keywords map[string]KeywordMetrics `json:"keywords"`
	Message  string                    `json:"message,omitempty"`
}

func newMetricsResponse(source Source, capacity int) *MetricsResponse {
	return &MetricsResponse{Source: source, Keywords: make(map[string]KeywordMetrics, capacity)}
}

// Get looks a keyword up case-insensitively.
func (r *MetricsResponse) Get(keyword string) (KeywordMetrics, bool) {
	if r == nil {
		return KeywordMetrics{}, false
	}
	m, ok := r.Keywords[metricsKey(keyword)]
	return m, ok
}

func (r *MetricsResponse) put(m KeywordMetrics) {
	r.Keywords[metricsKey(m.Keyword)] = m
}

func metricsKey(keyword string) string {
	return strings.ToLower(strings.Join(strings.Fields(keyword), " "))
}

// MetricsClient looks up search metrics for undecorated keyword texts.
type MetricsClient interface {
	Lookup(ctx context.Context, keywords []string, country string) (*MetricsResponse, error)
}

// Signals is what a detector sees of the advertiser's landing page.
type Signals struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Headings    []string `json:"headings"`
	Body        string   `json:"body"`
}

var urlSeparators = strings.NewReplacer("/", " ", ":", " ", ".", " ", "-", " ", "?", " ", "=", " ", "&", " ")

func (s Signals) text() string {
	parts := append([]string{urlSeparators.Replace(s.URL), s.Title, s.Description}, s.Headings...)
	parts = append(parts, s.Body)
	return strings.ToLower(strings.Join(parts, " "))
}

// Detection is a detector verdict. IntentID is one of the ranking intent
// IDs (call, lead, purchase, visit, info).
type Detection struct {
	Vertical   string  `json:"vertical"`
	IntentID   string  `json:"intent_id"`
	CTALabel   string  `json:"cta_label"`
	Confidence float64 `json:"confidence"`
}

// IntentDetector infers the vertical and conversion intent of a page.
type IntentDetector interface {
	Detect(ctx context.Context, signals Signals) (*Detection, error)
}
