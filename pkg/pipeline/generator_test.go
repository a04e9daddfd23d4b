package pipeline

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignkit-go/pkg/api"
	"campaignkit-go/pkg/campaign"
	"campaignkit-go/pkg/creative"
	"campaignkit-go/pkg/export"
	"campaignkit-go/pkg/keyword"
	"campaignkit-go/pkg/logger"
	"campaignkit-go/pkg/structure"
)

type stubMetrics struct {
	source api.Source
	err    error
}

func (s stubMetrics) Lookup(_ context.Context, keywords []string, _ string) (*api.MetricsResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	resp := &api.MetricsResponse{Source: s.source, Keywords: make(map[string]api.KeywordMetrics)}
	for _, k := range keywords {
		resp.Keywords[k] = api.KeywordMetrics{Keyword: k, Searches: 2400, Competition: 0.8, CPC: decimal.RequireFromString("4.25")}
	}
	return resp, nil
}

func newTestGenerator(opts Options) *Generator {
	opts.Logger = logger.Nop()
	return NewGenerator(opts)
}

func plumberRequest() *Request {
	return &Request{
		CampaignName: "Austin Plumbing",
		Seeds:        []string{"plumber", "drain cleaning"},
		Vertical:     "plumbing",
		Intent:       "call",
		MinKeywords:  30,
		MaxKeywords:  60,
		FinalURL:     "austinplumbing.example.com",
		BusinessName: "Austin Plumbing",
		DailyBudget:  decimal.NewFromInt(50),
		Locations:    campaign.LocationTargets{Cities: []string{"Austin"}},
	}
}

func TestGenerateKeywords_BoundsAndVertical(t *testing.T) {
	g := newTestGenerator(Options{})

	res, err := g.GenerateKeywords(context.Background(), plumberRequest())
	require.NoError(t, err)

	assert.Equal(t, "home_services", res.Vertical)
	assert.GreaterOrEqual(t, len(res.Base), 30)
	assert.LessOrEqual(t, len(res.Base), 60)
	assert.Len(t, res.Keywords, len(res.Base)*3)
	assert.Empty(t, res.MetricsSource)
	assert.NotEmpty(t, res.RunID)

	ids := make(map[string]bool)
	for _, k := range res.Keywords {
		assert.False(t, ids[k.ID], "duplicate id %s", k.ID)
		ids[k.ID] = true
		assert.True(t, k.CPC.Equal(keyword.DefaultCPC))
	}
}

func TestGenerateKeywords_InvalidInput(t *testing.T) {
	g := newTestGenerator(Options{})

	_, err := g.GenerateKeywords(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = g.GenerateKeywords(context.Background(), &Request{Seeds: []string{"x"}})
	assert.ErrorIs(t, err, keyword.ErrInsufficientInput)

	_, err = g.GenerateKeywords(context.Background(), &Request{Seeds: []string{"plumber"}, MinKeywords: 50, MaxKeywords: 10})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestGenerateKeywords_MetricsEnrichment(t *testing.T) {
	g := newTestGenerator(Options{Metrics: stubMetrics{source: api.SourceLive}})

	res, err := g.GenerateKeywords(context.Background(), plumberRequest())
	require.NoError(t, err)

	assert.Equal(t, api.SourceLive, res.MetricsSource)
	assert.False(t, res.Degraded)
	for _, k := range res.Keywords {
		assert.Equal(t, "4.25", k.CPC.StringFixed(2))
		assert.Equal(t, keyword.VolumeHigh, k.Volume)
		assert.Equal(t, 2400, k.Searches)
	}
}

func TestGenerateKeywords_MetricsFailureKeepsDefaults(t *testing.T) {
	g := newTestGenerator(Options{Metrics: stubMetrics{err: errors.New("metrics down")}})

	res, err := g.GenerateKeywords(context.Background(), plumberRequest())
	require.NoError(t, err)

	assert.Equal(t, api.SourceLocal, res.MetricsSource)
	assert.True(t, res.Degraded)
	for _, k := range res.Keywords {
		assert.True(t, k.CPC.Equal(keyword.DefaultCPC))
		assert.Equal(t, keyword.VolumeMedium, k.Volume)
	}

	skipped := plumberRequest()
	skipped.SkipMetrics = true
	res, err = g.GenerateKeywords(context.Background(), skipped)
	require.NoError(t, err)
	assert.Empty(t, res.MetricsSource)
}

func TestGenerateKeywords_ShuffleIsSeeded(t *testing.T) {
	first := newTestGenerator(Options{Rand: rand.New(rand.NewSource(7))})
	second := newTestGenerator(Options{Rand: rand.New(rand.NewSource(7))})
	plain := newTestGenerator(Options{})

	a, err := first.GenerateKeywords(context.Background(), plumberRequest())
	require.NoError(t, err)
	b, err := second.GenerateKeywords(context.Background(), plumberRequest())
	require.NoError(t, err)
	c, err := plain.GenerateKeywords(context.Background(), plumberRequest())
	require.NoError(t, err)

	assert.Equal(t, keyword.Texts(a.Keywords), keyword.Texts(b.Keywords))
	assert.ElementsMatch(t, keyword.Texts(a.Keywords), keyword.Texts(c.Keywords))
}

func TestGenerate_RecommendedStructureAndExport(t *testing.T) {
	g := newTestGenerator(Options{})

	res, err := g.Generate(context.Background(), plumberRequest())
	require.NoError(t, err)

	// home_services + call favours geo
	assert.Equal(t, structure.Geo, res.Structure.ID)
	assert.Equal(t, structure.Geo, res.Ranking[0].ID)
	assert.Equal(t, "Call Now", res.Detection.CTALabel)

	c := res.Campaign
	require.NotEmpty(t, c.AdGroups)
	assert.Equal(t, "Austin Plumbing", c.Name)
	assert.Equal(t, structure.Geo, c.StructureID)
	for _, group := range c.AdGroups {
		_, ok := group.Creatives.Ad(creative.KindResponsive)
		assert.True(t, ok, group.Name)
		_, ok = group.Creatives.Ad(creative.KindCallOnly)
		assert.False(t, ok, "call-only needs a phone number")
	}
	assert.NotEmpty(t, res.Warnings)

	data, stats, err := export.NewSerializer(export.Options{}).Bytes(c)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\xEF\xBB\xBF")))
	assert.Equal(t, len(c.AdGroups), stats.ByKind[export.KindAdGroup])
}

func TestGenerate_ExplicitStructureAndExtensions(t *testing.T) {
	g := newTestGenerator(Options{})
	req := plumberRequest()
	req.StructureID = "SKAG"
	req.PhoneNumber = "(512) 555-0100"
	req.Extensions = []creative.ExtensionSpec{
		{Type: "callout", Text: "Licensed & Insured"},
		{Type: "hologram", Text: "?"},
	}
	req.GroupExtensions = []creative.ExtensionSpec{{Type: "sitelink", Text: "Book Online", FinalURL: "https://austinplumbing.example.com/book"}}

	res, err := g.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, structure.SKAG, res.Structure.ID)
	assert.LessOrEqual(t, len(res.Campaign.AdGroups), structure.DefaultSKAGCap)
	for _, group := range res.Campaign.AdGroups {
		assert.Len(t, group.Creatives.Ads(), 3)
		assert.Len(t, group.Creatives.ExtensionsOf(creative.KindSitelink), 1)
	}
	assert.Len(t, res.Campaign.Extensions.ExtensionsOf(creative.KindCallout), 1)

	var fields []string
	for _, w := range res.Warnings {
		fields = append(fields, w.Field)
	}
	assert.Contains(t, fields, "extensions[1].type")
}

func TestGenerate_DetectorFillsMissingVertical(t *testing.T) {
	g := newTestGenerator(Options{Detector: api.NewKeywordDetector(nil)})
	req := plumberRequest()
	req.Vertical = ""
	req.Intent = ""
	req.MinKeywords = 10
	req.Signals = &api.Signals{Title: "Hotel rooms downtown", Body: "Book your stay and buy gift cards"}

	res, err := g.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "travel", res.Vertical)
	assert.Equal(t, structure.IntentPurchase, res.Detection.IntentID)
	assert.Equal(t, structure.Funnel, res.Structure.ID)
}

func TestGenerator_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	g := newTestGenerator(Options{Registerer: reg})

	_, err := g.GenerateKeywords(context.Background(), plumberRequest())
	require.NoError(t, err)
	_, err = g.GenerateKeywords(context.Background(), &Request{})
	require.Error(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	runs := make(map[string]float64)
	for _, mf := range families {
		if mf.GetName() != "campaignkit_pipeline_runs_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			var outcome string
			for _, l := range m.GetLabel() {
				if l.GetName() == "outcome" {
					outcome = l.GetValue()
				}
			}
			runs[outcome] += m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{"ok": 1, "error": 1}, runs)
}

func TestGenerate_ExportedAdGroupsAreDistinct(t *testing.T) {
	g := newTestGenerator(Options{})
	ser := export.NewSerializer(export.Options{})

	for _, id := range []string{structure.SKAG, structure.STAG, structure.Hybrid, structure.NGram, ""} {
		req := plumberRequest()
		req.StructureID = id
		res, err := g.Generate(context.Background(), req)
		require.NoError(t, err, id)

		rows, _, err := ser.Rows(res.Campaign)
		require.NoError(t, err, id)

		groupRows := make(map[string]int)
		adTypes := make(map[string]map[string]int)
		criteria := make(map[string]bool)
		for _, row := range rows {
			name := row.Get(export.ColAdGroup)
			switch row.Kind {
			case export.KindAdGroup:
				groupRows[name]++
			case export.KindKeyword:
				criteria[row.Get(export.ColCriterionType)] = true
			case export.KindAd:
				if adTypes[name] == nil {
					adTypes[name] = make(map[string]int)
				}
				adTypes[name][row.Get(export.ColAdType)]++
			}
		}

		assert.Len(t, groupRows, len(res.Campaign.AdGroups), id)
		for name, n := range groupRows {
			assert.Equal(t, 1, n, "%s: ad group %q exported %d times", id, name, n)
		}
		for name, types := range adTypes {
			total := 0
			for adType, n := range types {
				assert.Equal(t, 1, n, "%s: ad group %q has %d %s ads", id, name, n, adType)
				total += n
			}
			assert.LessOrEqual(t, total, creative.MaxAdsPerGroup, id)
		}
		assert.Equal(t, map[string]bool{"Broad": true, "Phrase": true, "Exact": true}, criteria, id)
	}
}

func TestGenerate_EmptyRankerFallsBackToSlices(t *testing.T) {
	g := newTestGenerator(Options{Ranker: structure.NewRanker(nil, nil, structure.Deltas{}, structure.Deltas{})})

	res, err := g.Generate(context.Background(), plumberRequest())
	require.NoError(t, err)
	assert.Empty(t, res.Ranking)
	assert.Equal(t, structure.FallbackStrategy.ID, res.Structure.ID)
	require.NotEmpty(t, res.Campaign.AdGroups)
	assert.Equal(t, "Ad Group 1", res.Campaign.AdGroups[0].Name)
}
