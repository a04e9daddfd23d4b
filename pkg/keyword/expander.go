package keyword

import (
	"context"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"campaignkit-go/pkg/catalog"
	"campaignkit-go/pkg/logger"
)

// DefaultCPC is the placeholder cost-per-click stamped on candidates until
// live metrics replace it.
var DefaultCPC = decimal.RequireFromString("1.50")

// GenericModifiers is the last-resort template set applied to every seed
// when vertical filler patterns cannot reach the minimum.
var GenericModifiers = []string{
	"[seed] near me",
	"best [seed]",
	"cheap [seed]",
	"24/7 [seed]",
	"[seed] online",
	"free [seed]",
	"top [seed]",
	"local [seed]",
	"affordable [seed]",
	"same day [seed]",
}

const (
	categoryFiller  = "filler"
	categoryGeneric = "generic"
)

var (
	unresolvedPlaceholder = regexp.MustCompile(`\[[a-z_]+\]`)
	multiSpace            = regexp.MustCompile(`\s+`)
)

type ExpanderOptions struct {
	// City fills [city] placeholders; templates needing it are dropped
	// when empty.
	City          string
	DefaultCPC    decimal.Decimal
	DefaultVolume Volume
	// Workers bounds ExpandParallel; zero means runtime.NumCPU capped at 8.
	Workers int
}

// Expander substitutes seeds into the vertical pattern tables.
type Expander struct {
	catalog *catalog.Catalog
	opts    ExpanderOptions
	log     *logger.Logger
}

// NewExpander binds an expander to an explicit catalog.
func NewExpander(c *catalog.Catalog, opts ExpanderOptions) *Expander {
	if c == nil {
		c = catalog.Default()
	}
	if opts.DefaultCPC.IsZero() {
		opts.DefaultCPC = DefaultCPC
	}
	if opts.DefaultVolume == "" {
		opts.DefaultVolume = VolumeMedium
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
		if opts.Workers > 8 {
			opts.Workers = 8
		}
	}
	opts.City = strings.Join(strings.Fields(strings.ToLower(opts.City)), " ")
	return &Expander{
		catalog: c,
		opts:    opts,
		log:     logger.GetLogger().Component("expander"),
	}
}

// SetLogger replaces the component logger
func (e *Expander) SetLogger(l *logger.Logger) {
	e.log = l.Component("expander")
}

// Catalog returns the catalog the expander was built with.
func (e *Expander) Catalog() *catalog.Catalog {
	return e.catalog
}

// Expand produces raw candidates for every seed and every primary pattern,
// seed-major then category order. The same input always yields the same
// output.
func (e *Expander) Expand(seeds []string, vertical string, hint IntentClass) []Keyword {
	patterns := e.catalog.Lookup(vertical)
	out := make([]Keyword, 0, len(seeds)*patterns.Size())
	for _, seed := range seeds {
		out = append(out, e.expandSeed(seed, patterns, hint)...)
	}
	return out
}

// ExpandParallel expands seeds on a bounded set of goroutines and merges
// per-seed results back in seed order, so the output equals Expand.
func (e *Expander) ExpandParallel(ctx context.Context, seeds []string, vertical string, hint IntentClass) ([]Keyword, error) {
	if len(seeds) == 0 {
		return []Keyword{}, nil
	}
	patterns := e.catalog.Lookup(vertical)

	workers := e.opts.Workers
	if workers > len(seeds) {
		workers = len(seeds)
	}

	results := make([][]Keyword, len(seeds))
	progress := logger.NewProgressReporter(e.log, len(seeds), "seed expansion", 2*time.Second)
	indexChan := make(chan int, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexChan {
				results[idx] = e.expandSeed(seeds[idx], patterns, hint)
				progress.Update(1)
			}
		}()
	}

	func() {
		defer close(indexChan)
		for i := range seeds {
			select {
			case indexChan <- i:
			case <-ctx.Done():
				return
			}
		}
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	merged := make([]Keyword, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged, nil
}

// FillerPass applies the vertical's filler table to seed variants for one
// top-up pass: 0 uses the seed itself, 1 its singular/plural twin, 2 its
// head word. Passes past 2 yield nothing.
func (e *Expander) FillerPass(seeds []string, vertical string, pass int, hint IntentClass) []Keyword {
	filler := e.catalog.Lookup(vertical).Filler
	var out []Keyword
	for _, seed := range seeds {
		variant, ok := seedVariant(seed, pass)
		if !ok {
			continue
		}
		out = append(out, e.applyTemplates(variant, seed, filler, categoryFiller, hint)...)
	}
	return out
}

// Generic applies GenericModifiers to every seed.
func (e *Expander) Generic(seeds []string, hint IntentClass) []Keyword {
	var out []Keyword
	for _, seed := range seeds {
		out = append(out, e.applyTemplates(seed, seed, GenericModifiers, categoryGeneric, hint)...)
	}
	return out
}

func (e *Expander) expandSeed(seed string, patterns catalog.Patterns, hint IntentClass) []Keyword {
	out := make([]Keyword, 0, patterns.Size())
	for _, cat := range catalog.Categories {
		out = append(out, e.applyTemplates(seed, seed, patterns.Category(cat), string(cat), hint)...)
	}
	return out
}

func (e *Expander) applyTemplates(term, seed string, templates []string, category string, hint IntentClass) []Keyword {
	out := make([]Keyword, 0, len(templates))
	for _, tmpl := range templates {
		text, ok := e.substitute(tmpl, term)
		if !ok {
			continue
		}
		out = append(out, Keyword{
			Text:      text,
			MatchType: Broad,
			Intent:    ClassifyIntent(text, hint),
			Volume:    e.opts.DefaultVolume,
			CPC:       e.opts.DefaultCPC,
			Seed:      seed,
			Category:  category,
		})
	}
	return out
}

func (e *Expander) substitute(template, seed string) (string, bool) {
	text := strings.ReplaceAll(template, catalog.SeedPlaceholder, seed)
	if e.opts.City != "" {
		text = strings.ReplaceAll(text, catalog.CityPlaceholder, e.opts.City)
	}
	if unresolvedPlaceholder.MatchString(text) {
		return "", false
	}
	text = strings.TrimSpace(multiSpace.ReplaceAllString(strings.ToLower(text), " "))
	return text, text != ""
}

func seedVariant(seed string, pass int) (string, bool) {
	switch pass {
	case 0:
		return seed, true
	case 1:
		words := strings.Fields(seed)
		words[len(words)-1] = togglePlural(words[len(words)-1])
		return strings.Join(words, " "), true
	case 2:
		words := strings.Fields(seed)
		if len(words) < 2 {
			return "", false
		}
		return words[len(words)-1], true
	}
	return "", false
}

var (
	commercialCues    = map[string]bool{"best": true, "top": true, "cost": true, "price": true, "prices": true, "cheap": true, "affordable": true, "deals": true, "rates": true, "fees": true}
	transactionalCues = map[string]bool{"call": true, "book": true, "buy": true, "order": true, "hire": true, "schedule": true, "reserve": true, "enroll": true, "apply": true}
	questionWords     = map[string]bool{"how": true, "what": true, "where": true, "when": true, "why": true, "who": true, "which": true}
	questionLeaders   = map[string]bool{"does": true, "can": true, "is": true, "should": true}
)

// ClassifyIntent tags text with a coarse intent class. Cues are checked in
// order local, commercial, transactional, informational; with no cue the
// hint is used, and without a hint the class is Commercial.
func ClassifyIntent(text string, hint IntentClass) IntentClass {
	padded := " " + strings.ToLower(text) + " "
	words := strings.Fields(padded)

	if strings.Contains(padded, " near me ") {
		return IntentLocal
	}
	for _, w := range words {
		if w == "local" || w == "nearby" {
			return IntentLocal
		}
	}
	for _, w := range words {
		if commercialCues[w] {
			return IntentCommercial
		}
	}
	for _, w := range words {
		if transactionalCues[w] {
			return IntentTransactional
		}
	}
	for i, w := range words {
		if questionWords[w] || (i == 0 && questionLeaders[w]) {
			return IntentInformational
		}
	}
	if hint != "" {
		return hint
	}
	return IntentCommercial
}
