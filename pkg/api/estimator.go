package api

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"campaignkit-go/pkg/keyword"
)

// searchesByLength is the estimated monthly search count by phrase length;
// longer phrases past the table get the last value.
var searchesByLength = []int{0, 8000, 2400, 880, 320, 140, 70}

var cpcFactor = map[string]decimal.Decimal{
	"HIGH":   decimal.RequireFromString("1.6"),
	"MEDIUM": decimal.NewFromInt(1),
	"LOW":    decimal.RequireFromString("0.5"),
}

// Estimator answers lookups offline from phrase length and intent cues. It
// never fails and marks its responses as estimated.
type Estimator struct {
	baseCPC decimal.Decimal
}

func NewEstimator(baseCPC decimal.Decimal) *Estimator {
	if baseCPC.IsZero() {
		baseCPC = keyword.DefaultCPC
	}
	return &Estimator{baseCPC: baseCPC}
}

func (e *Estimator) Lookup(ctx context.Context, keywords []string, _ string) (*MetricsResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	resp := newMetricsResponse(SourceEstimated, len(keywords))
	for _, k := range uniqueKeywords(keywords) {
		resp.put(e.estimate(k))
	}
	return resp, nil
}

func (e *Estimator) estimate(text string) KeywordMetrics {
	words := len(strings.Fields(text))
	searches := searchesByLength[min(words, len(searchesByLength)-1)]

	level := "MEDIUM"
	switch keyword.ClassifyIntent(text, "") {
	case keyword.IntentCommercial, keyword.IntentTransactional:
		level = "HIGH"
	case keyword.IntentLocal:
		searches = searches * 3 / 4
	case keyword.IntentInformational:
		level = "LOW"
	}

	return KeywordMetrics{
		Keyword:          text,
		Searches:         searches,
		Competition:      mapCompetitionValue(level),
		CompetitionLevel: level,
		CPC:              e.baseCPC.Mul(cpcFactor[level]).Round(2),
	}
}
