package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the generator's prometheus collectors.
type Metrics struct {
	Runs              *prometheus.CounterVec
	KeywordsGenerated prometheus.Histogram
	MetricsLookups    *prometheus.CounterVec
	StageDuration     *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered, which tests rely on.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaignkit_pipeline_runs_total",
				Help: "Pipeline runs by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		KeywordsGenerated: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "campaignkit_keywords_generated",
				Help:    "Validated base keywords per run",
				Buckets: []float64{10, 30, 60, 100, 150, 200, 300, 500},
			},
		),
		MetricsLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaignkit_metrics_lookups_total",
				Help: "Keyword metrics lookups by source",
			},
			[]string{"source"},
		),
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "campaignkit_stage_duration_seconds",
				Help:    "Pipeline stage latency in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"stage"},
		),
	}
}
