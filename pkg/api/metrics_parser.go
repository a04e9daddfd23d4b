package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Competition levels reported by the metrics endpoint and the index each
// maps to.
var competitionIndex = map[string]float64{
	"LOW":    0.3,
	"MEDIUM": 0.5,
	"HIGH":   0.8,
}

// metricsPayload is the wire format of the keyword metrics endpoint:
//
//	{"status":"success","data":[{"keyword":"plumber","metrics":{
//	  "avg_monthly_searches":1000,"competition":"LOW","latest_searches":800,"cpc":"2.10"}}]}
type metricsPayload struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    []struct {
		Keyword string `json:"keyword"`
		Metrics struct {
			AvgMonthlySearches int                 `json:"avg_monthly_searches"`
			Competition        string              `json:"competition"`
			LatestSearches     int                 `json:"latest_searches"`
			CPC                decimal.NullDecimal `json:"cpc"`
		} `json:"metrics"`
	} `json:"data"`
}

// MetricsParser decodes metrics endpoint bodies.
type MetricsParser struct {
	// DefaultCPC fills keywords the endpoint reports without a CPC.
	DefaultCPC decimal.Decimal
}

func NewMetricsParser(defaultCPC decimal.Decimal) *MetricsParser {
	return &MetricsParser{DefaultCPC: defaultCPC}
}

// ParseResponse converts a body into a live MetricsResponse. A status other
// than "success" is an error; an empty data list is not.
func (p *MetricsParser) ParseResponse(body []byte) (*MetricsResponse, error) {
	var payload metricsPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if !strings.EqualFold(payload.Status, "success") {
		msg := payload.Message
		if msg == "" {
			msg = "status " + payload.Status
		}
		return nil, fmt.Errorf("%w: %s", ErrBadResponse, msg)
	}

	resp := newMetricsResponse(SourceLive, len(payload.Data))
	for _, d := range payload.Data {
		if strings.TrimSpace(d.Keyword) == "" {
			continue
		}
		level := strings.ToUpper(strings.TrimSpace(d.Metrics.Competition))
		cpc := p.DefaultCPC
		if d.Metrics.CPC.Valid {
			cpc = d.Metrics.CPC.Decimal
		}
		resp.put(KeywordMetrics{
			Keyword:          d.Keyword,
			Searches:         d.Metrics.AvgMonthlySearches,
			LatestSearches:   d.Metrics.LatestSearches,
			Competition:      mapCompetitionValue(level),
			CompetitionLevel: level,
			CPC:              cpc,
		})
	}
	return resp, nil
}

// mapCompetitionValue maps a competition level onto [0,1]; unknown levels
// are treated as medium.
func mapCompetitionValue(level string) float64 {
	if v, ok := competitionIndex[strings.ToUpper(level)]; ok {
		return v
	}
	return competitionIndex["MEDIUM"]
}
