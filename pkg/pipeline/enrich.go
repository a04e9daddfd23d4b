package pipeline

import (
	"context"

	"campaignkit-go/pkg/api"
	"campaignkit-go/pkg/keyword"
	"campaignkit-go/pkg/logger"
)

// enrich replaces default metrics with collaborator data. A failed or
// non-live lookup keeps the defaults and flags the result as degraded.
func (g *Generator) enrich(ctx context.Context, res *KeywordResult, country string, log *logger.Logger) {
	texts := make([]string, len(res.Base))
	for i, k := range res.Base {
		texts[i] = k.BaseText()
	}

	lookupCtx, cancel := context.WithTimeout(ctx, g.opts.MetricsTimeout)
	defer cancel()

	resp, err := g.opts.Metrics.Lookup(lookupCtx, texts, country)
	if err != nil {
		res.MetricsSource = api.SourceLocal
		res.Degraded = true
		g.metrics.MetricsLookups.WithLabelValues(string(api.SourceLocal)).Inc()
		log.WithError(err).Warn("Metrics lookup failed, keeping default keyword metrics")
		return
	}

	res.MetricsSource = resp.Source
	res.Degraded = resp.Source != api.SourceLive
	g.metrics.MetricsLookups.WithLabelValues(string(resp.Source)).Inc()
	if res.Degraded {
		log.WithField("source", string(resp.Source)).Warn("Keyword metrics are not live, quality degraded")
	}

	applied := applyMetrics(res.Base, resp) + applyMetrics(res.Keywords, resp)
	log.WithFields(map[string]interface{}{
		"source":  string(resp.Source),
		"found":   len(resp.Keywords),
		"applied": applied,
	}).Debug("Applied keyword metrics")
}

// applyMetrics updates keywords in place by base text.
func applyMetrics(keywords []keyword.Keyword, resp *api.MetricsResponse) int {
	applied := 0
	for i := range keywords {
		m, ok := resp.Get(keywords[i].BaseText())
		if !ok {
			continue
		}
		keywords[i].Searches = m.Searches
		keywords[i].Volume = keyword.VolumeFromSearches(m.Searches)
		keywords[i].Competition = m.Competition
		if m.CPC.IsPositive() {
			keywords[i].CPC = m.CPC
		}
		applied++
	}
	return applied
}
