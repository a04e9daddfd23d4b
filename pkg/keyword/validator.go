package keyword

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"campaignkit-go/pkg/logger"
)

// ErrInsufficientInput is returned when there is nothing to expand or no
// candidate survives validation and top-up.
var ErrInsufficientInput = errors.New("insufficient input")

const (
	DefaultMinKeywords  = 30
	DefaultMaxKeywords  = 300
	DefaultMaxAttempts  = 2000
	DefaultFillerPasses = 3

	reasonDuplicate = "duplicate"
	reasonNegative  = "negative_keyword"
)

type ValidatorConfig struct {
	MinKeywords      int         `json:"min_keywords" mapstructure:"min_keywords"`
	MaxKeywords      int         `json:"max_keywords" mapstructure:"max_keywords"`
	MaxAttempts      int         `json:"max_attempts" mapstructure:"max_attempts"`
	FillerPasses     int         `json:"filler_passes" mapstructure:"filler_passes"`
	NegativeKeywords []string    `json:"negative_keywords" mapstructure:"negative_keywords"`
	MatchTypes       []MatchType `json:"match_types" mapstructure:"match_types"`
}

// DefaultValidatorConfig returns the reference bounds with all three
// positive match types enabled.
func DefaultValidatorConfig() ValidatorConfig {
	return ValidatorConfig{
		MinKeywords:  DefaultMinKeywords,
		MaxKeywords:  DefaultMaxKeywords,
		MaxAttempts:  DefaultMaxAttempts,
		FillerPasses: DefaultFillerPasses,
		MatchTypes:   append([]MatchType(nil), PositiveMatchTypes...),
	}
}

// TopUpSource supplies extra candidates when validation leaves the pool
// short. *Expander satisfies it through a vertical-bound adapter.
type TopUpSource interface {
	FillerPass(seeds []string, pass int) []Keyword
	Generic(seeds []string) []Keyword
}

// Report summarises one Refine run.
type Report struct {
	Candidates   int            `json:"candidates"`
	Accepted     int            `json:"accepted"`
	Rejected     map[string]int `json:"rejected"`
	ToppedUp     int            `json:"topped_up"`
	UsedFallback bool           `json:"used_fallback"`
	Truncated    int            `json:"truncated"`
	Attempts     int            `json:"attempts"`
}

func newReport() Report {
	return Report{Rejected: make(map[string]int)}
}

// Result is the validated keyword set: Base holds one undecorated entry per
// phrase, Keywords the decorated match-type variants with run-unique IDs.
type Result struct {
	Base     []Keyword `json:"base"`
	Keywords []Keyword `json:"keywords"`
	Report   Report    `json:"report"`
}

// Validator applies the rule chain, deduplication, top-up and truncation.
type Validator struct {
	rules  []Rule
	config ValidatorConfig
	log    *logger.Logger
}

// NewValidator creates a validator with the default rule chain.
func NewValidator(config ValidatorConfig) *Validator {
	if config.MaxKeywords <= 0 {
		config.MaxKeywords = DefaultMaxKeywords
	}
	if config.MinKeywords < 0 {
		config.MinKeywords = 0
	}
	if config.MinKeywords > config.MaxKeywords {
		config.MinKeywords = config.MaxKeywords
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultMaxAttempts
	}
	if config.FillerPasses <= 0 {
		config.FillerPasses = DefaultFillerPasses
	}
	if len(config.MatchTypes) == 0 {
		config.MatchTypes = append([]MatchType(nil), PositiveMatchTypes...)
	}
	return &Validator{
		rules:  DefaultRules(),
		config: config,
		log:    logger.GetLogger().Component("validator"),
	}
}

// SetRules replaces the rule chain
func (v *Validator) SetRules(rules []Rule) {
	v.rules = rules
}

// SetLogger replaces the component logger
func (v *Validator) SetLogger(l *logger.Logger) {
	v.log = l.Component("validator")
}

func (v *Validator) Config() ValidatorConfig {
	return v.config
}

// Check runs the rule chain on one base phrase and returns the name of the
// first rule that fires.
func (v *Validator) Check(text string, ctx *RuleContext) (string, bool) {
	base := strings.ToLower(strings.Join(strings.Fields(StripDecoration(text)), " "))
	words := strings.Fields(base)
	for _, rule := range v.rules {
		if rule.Reject(base, words, ctx) {
			return rule.Name(), false
		}
	}
	return "", true
}

// Refine validates candidates for the given seeds, tops the pool up from
// source when below MinKeywords, truncates to MaxKeywords in generation
// order and expands match types.
func (v *Validator) Refine(candidates []Keyword, seeds []string, source TopUpSource) (*Result, error) {
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: no seed terms", ErrInsufficientInput)
	}

	report := newReport()
	ctx := &RuleContext{ServiceTerms: ServiceTerms(seeds)}
	dedup := NewDeduplicator(v.config.NegativeKeywords)

	accepted := v.admitUntil(candidates, ctx, dedup, &report, len(candidates), len(candidates), false)

	if len(accepted) < v.config.MinKeywords && source != nil {
		before := len(accepted)
		for pass := 0; pass < v.config.FillerPasses && len(accepted) < v.config.MinKeywords; pass++ {
			budget := v.config.MaxAttempts - report.Attempts
			if budget <= 0 {
				break
			}
			extra := source.FillerPass(seeds, pass)
			accepted = append(accepted, v.admitUntil(extra, ctx, dedup, &report, budget, v.config.MinKeywords-len(accepted), true)...)
		}
		if len(accepted) < v.config.MinKeywords {
			report.UsedFallback = true
			extra := source.Generic(seeds)
			accepted = append(accepted, v.admitUntil(extra, ctx, dedup, &report, len(extra), v.config.MinKeywords-len(accepted), false)...)
		}
		report.ToppedUp = len(accepted) - before
		v.log.WithFields(map[string]interface{}{
			"topped_up": report.ToppedUp,
			"fallback":  report.UsedFallback,
			"total":     len(accepted),
		}).Debug("Topped up keyword pool")
	}

	if len(accepted) == 0 {
		return nil, fmt.Errorf("%w: no keyword survived validation", ErrInsufficientInput)
	}
	if len(accepted) < v.config.MinKeywords {
		v.log.WithFields(map[string]interface{}{
			"total": len(accepted),
			"min":   v.config.MinKeywords,
		}).Warn("Keyword pool below minimum after top-up")
	}

	if len(accepted) > v.config.MaxKeywords {
		report.Truncated = len(accepted) - v.config.MaxKeywords
		accepted = accepted[:v.config.MaxKeywords]
	}
	report.Accepted = len(accepted)

	keywords := ExpandMatchTypes(accepted, v.config.MatchTypes, v.config.NegativeKeywords)
	AssignIDs(keywords)

	return &Result{Base: accepted, Keywords: keywords, Report: report}, nil
}

// admitUntil admits candidates until want keywords were accepted or budget
// candidates were examined. Filler attempts count against MaxAttempts.
func (v *Validator) admitUntil(candidates []Keyword, ctx *RuleContext, dedup *Deduplicator, report *Report, budget, want int, attempt bool) []Keyword {
	out := make([]Keyword, 0, want)
	for i, c := range candidates {
		if i >= budget || len(out) >= want {
			break
		}
		if attempt {
			report.Attempts++
		}
		report.Candidates++

		c.Text = strings.ToLower(strings.Join(strings.Fields(c.BaseText()), " "))
		c.MatchType = Broad
		if rule, ok := v.Check(c.Text, ctx); !ok {
			report.Rejected[rule]++
			continue
		}
		if ok, reason := dedup.Admit(c); !ok {
			report.Rejected[reason]++
			continue
		}
		out = append(out, c)
	}
	return out
}

// Deduplicator rejects repeated display texts and texts containing a
// negative keyword.
type Deduplicator struct {
	seen      map[string]bool
	negatives []string
}

// NewDeduplicator normalizes the negative list to lowercase base text.
func NewDeduplicator(negatives []string) *Deduplicator {
	return &Deduplicator{
		seen:      make(map[string]bool),
		negatives: normalizeNegatives(negatives),
	}
}

// Admit records k and reports whether it is new and clean.
func (d *Deduplicator) Admit(k Keyword) (bool, string) {
	if d.ContainsNegative(k.BaseText()) {
		return false, reasonNegative
	}
	key := strings.ToLower(k.Text)
	if d.seen[key] {
		return false, reasonDuplicate
	}
	d.seen[key] = true
	return true, ""
}

// ContainsNegative reports whether text contains any negative keyword as a
// case-insensitive substring.
func (d *Deduplicator) ContainsNegative(text string) bool {
	lower := strings.ToLower(StripDecoration(text))
	for _, n := range d.negatives {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

func normalizeNegatives(negatives []string) []string {
	out := make([]string, 0, len(negatives))
	for _, n := range negatives {
		base := strings.ToLower(strings.Join(strings.Fields(StripDecoration(n)), " "))
		if base != "" {
			out = append(out, base)
		}
	}
	return out
}

// NegativeKeywords turns user-entered negatives into keyword records. The
// match type is read from decoration: quotes for phrase, brackets for
// exact, bare for broad. Repeats are dropped.
func NegativeKeywords(entries []string) []Keyword {
	seen := make(map[string]bool)
	out := make([]Keyword, 0, len(entries))
	for _, e := range entries {
		base := strings.ToLower(strings.Join(strings.Fields(StripDecoration(e)), " "))
		if base == "" {
			continue
		}
		mt := DetectMatchType(e).Negative()
		k := Keyword{Text: Decorate(base, mt), MatchType: mt}
		key := string(mt) + "|" + base
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, k)
	}
	for i := range out {
		out[i].ID = fmt.Sprintf("neg-%04d", i+1)
	}
	return out
}

// AssignIDs numbers keywords sequentially in place.
func AssignIDs(keywords []Keyword) {
	for i := range keywords {
		keywords[i].ID = fmt.Sprintf("kw-%04d", i+1)
	}
}

// Shuffle returns a shuffled copy using the supplied source. A nil source
// returns an unshuffled copy.
func Shuffle(keywords []Keyword, r *rand.Rand) []Keyword {
	out := append([]Keyword(nil), keywords...)
	if r == nil {
		return out
	}
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
