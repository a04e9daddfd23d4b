package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"campaignkit-go/pkg/api"
	"campaignkit-go/pkg/binder"
	"campaignkit-go/pkg/campaign"
	"campaignkit-go/pkg/catalog"
	"campaignkit-go/pkg/creative"
	"campaignkit-go/pkg/keyword"
	"campaignkit-go/pkg/logger"
	"campaignkit-go/pkg/structure"
)

const DefaultMetricsTimeout = 5 * time.Second

type Options struct {
	Catalog   *catalog.Catalog
	Keywords  keyword.ValidatorConfig
	Expander  keyword.ExpanderOptions
	Structure structure.Config
	Ranker    *structure.Ranker
	// Metrics is the optional search metrics collaborator.
	Metrics        api.MetricsClient
	MetricsTimeout time.Duration
	Detector       api.IntentDetector
	// Rand shuffles the final keyword order; nil keeps generation order.
	Rand       *rand.Rand
	Registerer prometheus.Registerer
	Logger     *logger.Logger
}

// KeywordResult is the output of keyword generation alone.
type KeywordResult struct {
	RunID    string            `json:"run_id"`
	Seeds    []string          `json:"seeds"`
	Vertical string            `json:"vertical"`
	Base     []keyword.Keyword `json:"base"`
	Keywords []keyword.Keyword `json:"keywords"`
	Negative []keyword.Keyword `json:"negative_keywords"`
	Report   keyword.Report    `json:"report"`
	// MetricsSource is empty when no lookup ran.
	MetricsSource api.Source `json:"metrics_source,omitempty"`
	Degraded      bool       `json:"degraded"`
}

// Result is a fully assembled campaign with everything that shaped it.
type Result struct {
	*KeywordResult
	Campaign  *campaign.Campaign `json:"campaign"`
	Structure structure.Strategy `json:"structure"`
	Ranking   []structure.Ranked `json:"ranking"`
	Detection *api.Detection     `json:"detection,omitempty"`
	Warnings  []creative.Warning `json:"warnings,omitempty"`
	Duration  time.Duration      `json:"duration"`
}

// Generator runs the keyword, structure and creative stages. It is safe
// for concurrent use.
type Generator struct {
	opts     Options
	assigner *structure.Assigner
	binder   *binder.Binder
	ranker   *structure.Ranker
	metrics  *Metrics
	log      *logger.Logger
	randMu   sync.Mutex
}

func NewGenerator(opts Options) *Generator {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Keywords.MaxKeywords == 0 {
		opts.Keywords = keyword.DefaultValidatorConfig()
	}
	if opts.Ranker == nil {
		opts.Ranker = structure.NewRanker(structure.Strategies, opts.Catalog, structure.VerticalDeltas, structure.IntentDeltas)
	}
	if opts.MetricsTimeout <= 0 {
		opts.MetricsTimeout = DefaultMetricsTimeout
	}
	log := opts.Logger
	if log == nil {
		log = logger.GetLogger()
	}

	assigner := structure.NewAssigner(opts.Structure)
	assigner.SetLogger(log)
	b := binder.New()
	b.SetLogger(log)

	return &Generator{
		opts:     opts,
		assigner: assigner,
		binder:   b,
		ranker:   opts.Ranker,
		metrics:  NewMetrics(opts.Registerer),
		log:      log.Component("generator"),
	}
}

func (g *Generator) Catalog() *catalog.Catalog {
	return g.opts.Catalog
}

func (g *Generator) Ranker() *structure.Ranker {
	return g.ranker
}

// GenerateKeywords expands, validates and enriches the request's seeds.
func (g *Generator) GenerateKeywords(ctx context.Context, req *Request) (*KeywordResult, error) {
	res, err := g.generateKeywords(ctx, req, g.opts.Catalog.Resolve(req.Vertical))
	g.observe("keywords", err)
	return res, err
}

func (g *Generator) generateKeywords(ctx context.Context, req *Request, vertical string) (*KeywordResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	seeds := keyword.NormalizeSeeds(req.Seeds)
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: no seed between %d and %d characters", keyword.ErrInsufficientInput, keyword.MinSeedLength, keyword.MaxSeedLength)
	}
	hint := req.intentHint()
	runID := uuid.NewString()
	log := g.log.WithField("run_id", runID)

	expOpts := g.opts.Expander
	if req.City != "" {
		expOpts.City = req.City
	}
	expander := keyword.NewExpander(g.opts.Catalog, expOpts)
	expander.SetLogger(log)

	start := time.Now()
	candidates, err := expander.ExpandParallel(ctx, seeds, vertical, hint)
	if err != nil {
		return nil, fmt.Errorf("expand seeds: %w", err)
	}
	g.stage("expand", start)

	start = time.Now()
	validator := keyword.NewValidator(g.validatorConfig(req))
	validator.SetLogger(log)
	refined, err := validator.Refine(candidates, seeds, expander.Source(vertical, hint))
	if err != nil {
		return nil, err
	}
	g.stage("validate", start)

	res := &KeywordResult{
		RunID:    runID,
		Seeds:    seeds,
		Vertical: vertical,
		Base:     refined.Base,
		Keywords: refined.Keywords,
		Negative: keyword.NegativeKeywords(req.NegativeKeywords),
		Report:   refined.Report,
	}

	if g.opts.Metrics != nil && !req.SkipMetrics {
		start = time.Now()
		g.enrich(ctx, res, req.Country, log)
		g.stage("metrics", start)
	}

	res.Keywords = g.shuffle(res.Keywords)
	g.metrics.KeywordsGenerated.Observe(float64(len(res.Base)))

	log.WithFields(map[string]interface{}{
		"seeds":    len(seeds),
		"vertical": vertical,
		"base":     len(res.Base),
		"keywords": len(res.Keywords),
		"rejected": res.Report.Rejected,
	}).Info("Keywords generated")
	return res, nil
}

// Generate runs the whole pipeline and assembles the campaign.
func (g *Generator) Generate(ctx context.Context, req *Request) (*Result, error) {
	started := time.Now()
	res, err := g.generate(ctx, req)
	if res != nil {
		res.Duration = time.Since(started)
	}
	g.observe("campaign", err)
	return res, err
}

func (g *Generator) generate(ctx context.Context, req *Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	detection := g.detect(ctx, req)
	vertical := g.opts.Catalog.Resolve(detection.Vertical)

	kw, err := g.generateKeywords(ctx, req, vertical)
	if err != nil {
		return nil, err
	}
	log := g.log.WithField("run_id", kw.RunID)

	ranking := g.ranker.Rank(vertical, detection.IntentID)
	strategy := structure.FallbackStrategy
	if len(ranking) > 0 {
		strategy = ranking[0].Strategy
	} else {
		log.Warn("Ranker returned no strategies, using even slices")
	}
	if req.StructureID != "" {
		if id, ok := structure.ParseID(req.StructureID); ok {
			strategy, _ = structure.Lookup(id)
		} else {
			log.WithField("structure", req.StructureID).Warn("Unknown structure requested, using recommendation")
		}
	}

	start := time.Now()
	groups := g.assigner.Assign(kw.Keywords, strategy.ID)
	g.stage("assign", start)

	result := &Result{
		KeywordResult: kw,
		Structure:     strategy,
		Ranking:       ranking,
		Detection:     detection,
	}

	groupExts, warnings := extensions(req.GroupExtensions, "group_extensions")
	result.Warnings = append(result.Warnings, warnings...)
	campaignExts, warnings := extensions(req.Extensions, "extensions")
	result.Warnings = append(result.Warnings, warnings...)

	start = time.Now()
	bound := g.binder.Bind(groups, req.mix(), req.binderContext(groupExts))
	result.Warnings = append(result.Warnings, bound.Warnings...)

	c := &campaign.Campaign{
		Name:             campaignName(req, kw.Seeds),
		DailyBudget:      req.DailyBudget,
		StructureID:      strategy.ID,
		FinalURL:         strings.TrimSpace(req.FinalURL),
		AdGroups:         bound.Groups,
		NegativeKeywords: kw.Negative,
		Locations:        req.Locations.Normalized(),
		DateRange:        req.dateRange(),
	}
	if req.City != "" && len(c.Locations.Cities) == 0 {
		c.Locations.Add(campaign.LocationCity, req.City)
	}
	extBound := g.binder.BindExtensions(&c.Extensions, campaignExts)
	result.Warnings = append(result.Warnings, extBound.Warnings...)
	g.stage("bind", start)

	result.Campaign = c
	log.WithFields(map[string]interface{}{
		"structure": strategy.ID,
		"groups":    len(c.AdGroups),
		"ads":       c.AdCount(),
		"warnings":  len(result.Warnings),
	}).Info("Campaign assembled")
	return result, nil
}

// Rank exposes the ranker for the structure endpoints.
func (g *Generator) Rank(vertical, intent string) []structure.Ranked {
	return g.ranker.Rank(vertical, intent)
}

// detect fills vertical and intent from the request, asking the detector
// only for what the request leaves empty.
func (g *Generator) detect(ctx context.Context, req *Request) *api.Detection {
	det := &api.Detection{Vertical: req.Vertical, IntentID: structure.NormalizeIntent(req.Intent)}
	signals := req.Signals
	if signals == nil && strings.TrimSpace(req.FinalURL) != "" {
		signals = &api.Signals{URL: strings.TrimSpace(req.FinalURL)}
	}
	if (det.Vertical != "" && det.IntentID != "") || g.opts.Detector == nil || signals == nil {
		if det.Vertical == "" {
			det.Vertical = catalog.DefaultVertical
		}
		det.CTALabel = api.CTALabel(det.IntentID)
		return det
	}

	found, err := g.opts.Detector.Detect(ctx, *signals)
	if err != nil {
		g.log.WithError(err).Warn("Intent detection failed, using defaults")
		found = &api.Detection{Vertical: catalog.DefaultVertical}
	}
	if det.Vertical == "" {
		det.Vertical = found.Vertical
	}
	if det.IntentID == "" {
		det.IntentID = structure.NormalizeIntent(found.IntentID)
	}
	if det.Vertical == "" {
		det.Vertical = catalog.DefaultVertical
	}
	det.CTALabel = api.CTALabel(det.IntentID)
	det.Confidence = found.Confidence
	return det
}

func (g *Generator) validatorConfig(req *Request) keyword.ValidatorConfig {
	cfg := g.opts.Keywords
	if req.MinKeywords > 0 {
		cfg.MinKeywords = req.MinKeywords
	}
	if req.MaxKeywords > 0 {
		cfg.MaxKeywords = req.MaxKeywords
	}
	if mts := req.matchTypes(); len(mts) > 0 {
		cfg.MatchTypes = mts
	}
	cfg.NegativeKeywords = append(append([]string(nil), cfg.NegativeKeywords...), req.NegativeKeywords...)
	return cfg
}

func (g *Generator) shuffle(keywords []keyword.Keyword) []keyword.Keyword {
	if g.opts.Rand == nil {
		return keywords
	}
	g.randMu.Lock()
	defer g.randMu.Unlock()
	return keyword.Shuffle(keywords, g.opts.Rand)
}

func (g *Generator) stage(name string, start time.Time) {
	g.metrics.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
}

func (g *Generator) observe(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	g.metrics.Runs.WithLabelValues(operation, outcome).Inc()
}

// campaignName defaults to the first seed, e.g. "plumber search".
func campaignName(req *Request, seeds []string) string {
	if name := strings.TrimSpace(req.CampaignName); name != "" {
		return name
	}
	if len(seeds) == 0 {
		return ""
	}
	return seeds[0] + " search"
}
