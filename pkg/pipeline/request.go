package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"campaignkit-go/pkg/api"
	"campaignkit-go/pkg/binder"
	"campaignkit-go/pkg/campaign"
	"campaignkit-go/pkg/creative"
	"campaignkit-go/pkg/keyword"
)

// Request is one wizard submission. Empty fields fall back to the
// generator's configured defaults.
type Request struct {
	CampaignName string   `json:"campaign_name"`
	Seeds        []string `json:"seeds"`
	Vertical     string   `json:"vertical,omitempty"`
	// Intent is the conversion goal used for ranking (call, lead, ...).
	Intent string `json:"intent,omitempty"`
	// IntentHint tags keywords with no lexical cue (Local, Commercial, ...).
	IntentHint string `json:"intent_hint,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
	// StructureID picks the grouping; empty uses the top-ranked strategy.
	StructureID      string   `json:"structure,omitempty"`
	MatchTypes       []string `json:"match_types,omitempty"`
	NegativeKeywords []string `json:"negative_keywords,omitempty"`
	MinKeywords      int      `json:"min_keywords,omitempty"`
	MaxKeywords      int      `json:"max_keywords,omitempty"`
	AdTypes          []string `json:"ad_types,omitempty"`

	BusinessName    string `json:"business_name,omitempty"`
	PhoneNumber     string `json:"phone_number,omitempty"`
	CountryCode     string `json:"country_code,omitempty"`
	FinalURL        string `json:"final_url"`
	VerificationURL string `json:"verification_url,omitempty"`

	DailyBudget decimal.Decimal          `json:"daily_budget"`
	StartDate   string                   `json:"start_date,omitempty"`
	EndDate     string                   `json:"end_date,omitempty"`
	Locations   campaign.LocationTargets `json:"locations"`
	// Extensions are campaign-level; GroupExtensions go on every ad group.
	Extensions      []creative.ExtensionSpec `json:"extensions,omitempty"`
	GroupExtensions []creative.ExtensionSpec `json:"group_extensions,omitempty"`
	// Signals are read by the detector when Vertical or Intent is empty.
	Signals *api.Signals `json:"signals,omitempty"`
	// SkipMetrics disables the metrics lookup for this run.
	SkipMetrics bool `json:"skip_metrics,omitempty"`
}

// ErrInvalidRequest wraps request problems detected before generation.
var ErrInvalidRequest = errors.New("invalid request")

// Validate checks what generation cannot default.
func (r *Request) Validate() error {
	if len(r.Seeds) == 0 {
		return fmt.Errorf("%w: seeds are required", ErrInvalidRequest)
	}
	if r.MinKeywords < 0 || r.MaxKeywords < 0 {
		return fmt.Errorf("%w: keyword bounds must not be negative", ErrInvalidRequest)
	}
	if r.MaxKeywords > 0 && r.MinKeywords > r.MaxKeywords {
		return fmt.Errorf("%w: min_keywords %d exceeds max_keywords %d", ErrInvalidRequest, r.MinKeywords, r.MaxKeywords)
	}
	if r.DailyBudget.IsNegative() {
		return fmt.Errorf("%w: daily_budget must not be negative", ErrInvalidRequest)
	}
	return nil
}

func (r *Request) matchTypes() []keyword.MatchType {
	var out []keyword.MatchType
	for _, s := range r.MatchTypes {
		if mt, ok := keyword.ParseMatchType(s); ok && !mt.IsNegative() {
			out = append(out, mt)
		}
	}
	return out
}

func (r *Request) intentHint() keyword.IntentClass {
	hint, _ := keyword.ParseIntentClass(r.IntentHint)
	return hint
}

func (r *Request) mix() binder.Mix {
	if len(r.AdTypes) == 0 {
		return binder.DefaultMix()
	}
	return binder.ParseMix(r.AdTypes)
}

func (r *Request) binderContext(groupExtensions []creative.Extension) binder.Context {
	return binder.Context{
		BusinessName:    strings.TrimSpace(r.BusinessName),
		PhoneNumber:     strings.TrimSpace(r.PhoneNumber),
		CountryCode:     r.CountryCode,
		FinalURL:        strings.TrimSpace(r.FinalURL),
		VerificationURL: r.VerificationURL,
		Extensions:      groupExtensions,
	}
}

func (r *Request) dateRange() *campaign.DateRange {
	d := &campaign.DateRange{Start: strings.TrimSpace(r.StartDate), End: strings.TrimSpace(r.EndDate)}
	if d.Empty() {
		return nil
	}
	return d
}

// extensions narrows extension specs; unknown types become warnings.
func extensions(specs []creative.ExtensionSpec, field string) ([]creative.Extension, []creative.Warning) {
	var out []creative.Extension
	var warnings []creative.Warning
	for i, spec := range specs {
		ext, err := spec.ToExtension()
		if err != nil {
			warnings = append(warnings, creative.Warning{
				Field:    fmt.Sprintf("%s[%d].type", field, i),
				Original: spec.Type,
			})
			continue
		}
		out = append(out, ext)
	}
	return out, warnings
}
