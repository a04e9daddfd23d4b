package structure

import (
	"fmt"
	"sort"
	"strings"

	"campaignkit-go/pkg/catalog"
)

const (
	baseScore      = 1.0
	tieBreakBonus  = 0.5
	defaultProfile = catalog.DefaultVertical
)

// Intent identifiers accepted by the ranker.
const (
	IntentCall     = "call"
	IntentLead     = "lead"
	IntentPurchase = "purchase"
	IntentVisit    = "visit"
	IntentInfo     = "info"
)

var intentAliases = map[string]string{
	"phone": IntentCall, "calls": IntentCall, "call_now": IntentCall,
	"form": IntentLead, "leads": IntentLead, "quote": IntentLead, "signup": IntentLead, "contact": IntentLead,
	"buy": IntentPurchase, "shop": IntentPurchase, "order": IntentPurchase, "sale": IntentPurchase, "purchases": IntentPurchase,
	"directions": IntentVisit, "store_visit": IntentVisit, "visits": IntentVisit,
	"information": IntentInfo, "informational": IntentInfo, "research": IntentInfo,
}

// NormalizeIntent maps intent ids and aliases onto the ranker's intent
// ids. Unknown values return "".
func NormalizeIntent(intent string) string {
	norm := strings.ToLower(strings.TrimSpace(intent))
	norm = strings.ReplaceAll(strings.ReplaceAll(norm, "-", "_"), " ", "_")
	switch norm {
	case IntentCall, IntentLead, IntentPurchase, IntentVisit, IntentInfo:
		return norm
	}
	return intentAliases[norm]
}

// Deltas maps a profile (vertical or intent) to per-strategy score changes.
type Deltas map[string]map[string]float64

// VerticalDeltas favor strategies per canonical catalog vertical.
var VerticalDeltas = Deltas{
	"travel":        {Funnel: 3, Seasonal: 3, Intent: 2, Geo: 1},
	"home_services": {Geo: 3, Intent: 2, SKAG: 2},
	"legal":         {SKAG: 2, Intent: 2, Geo: 2, Competitor: 1},
	"medical":       {Geo: 2, Intent: 2, STAG: 1},
	"automotive":    {Geo: 2, BrandSplit: 2, Intent: 1},
	"restaurant":    {Geo: 3, Seasonal: 1, Intent: 1},
	"real_estate":   {Geo: 3, Funnel: 1, LongTail: 1},
	"ecommerce":     {BrandSplit: 3, Funnel: 2, MLCluster: 1, Competitor: 1, Seasonal: 1},
	"education":     {Funnel: 2, LongTail: 2, Intent: 1},
	"finance":       {Funnel: 2, Competitor: 2, AlphaBeta: 1},
	defaultProfile:  {STAG: 1, Hybrid: 1},
}

// IntentDeltas favor strategies per conversion intent.
var IntentDeltas = Deltas{
	IntentCall:     {Geo: 2, SKAG: 2},
	IntentLead:     {Funnel: 2, STAG: 2},
	IntentPurchase: {Funnel: 2, BrandSplit: 2},
	IntentVisit:    {Geo: 2, Intent: 1},
	IntentInfo:     {LongTail: 2, NGram: 1},
}

// Ranked is one scored strategy with the adjustments that produced it.
type Ranked struct {
	Strategy
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons,omitempty"`
}

// Ranker scores the strategy catalog for a vertical and intent.
type Ranker struct {
	strategies []Strategy
	catalog    *catalog.Catalog
	vertical   Deltas
	intent     Deltas
}

// NewRanker builds a ranker over an explicit strategy list and delta
// tables. A nil catalog resolves verticals with the built-in aliases.
func NewRanker(strategies []Strategy, verticals *catalog.Catalog, vertical, intent Deltas) *Ranker {
	if verticals == nil {
		verticals = catalog.Default()
	}
	return &Ranker{strategies: strategies, catalog: verticals, vertical: vertical, intent: intent}
}

// DefaultRanker ranks the built-in catalog with the built-in deltas.
func DefaultRanker() *Ranker {
	return NewRanker(Strategies, nil, VerticalDeltas, IntentDeltas)
}

// Rank scores every strategy from 1, applies vertical then intent deltas
// and sorts descending with catalog order kept among equals. When the top
// two tie exactly, the first of them gets a 0.5 bonus.
func (r *Ranker) Rank(vertical, intent string) []Ranked {
	profile := r.catalog.Resolve(vertical)
	intentID := NormalizeIntent(intent)

	ranked := make([]Ranked, len(r.strategies))
	for i, s := range r.strategies {
		ranked[i] = Ranked{Strategy: s, Score: baseScore}
		if d, ok := r.vertical[profile][s.ID]; ok {
			ranked[i].Score += d
			ranked[i].Reasons = append(ranked[i].Reasons, fmt.Sprintf("vertical %s %+g", profile, d))
		}
		if intentID == "" {
			continue
		}
		if d, ok := r.intent[intentID][s.ID]; ok {
			ranked[i].Score += d
			ranked[i].Reasons = append(ranked[i].Reasons, fmt.Sprintf("intent %s %+g", intentID, d))
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) >= 2 && ranked[0].Score == ranked[1].Score {
		ranked[0].Score += tieBreakBonus
		ranked[0].Reasons = append(ranked[0].Reasons, fmt.Sprintf("tie-break %+g", tieBreakBonus))
	}
	return ranked
}

// Recommend returns the top-ranked strategy.
func (r *Ranker) Recommend(vertical, intent string) (Ranked, bool) {
	ranked := r.Rank(vertical, intent)
	if len(ranked) == 0 {
		return Ranked{}, false
	}
	return ranked[0], true
}

// Rank ranks the built-in catalog.
func Rank(vertical, intent string) []Ranked {
	return DefaultRanker().Rank(vertical, intent)
}
