package structure

import "strings"

// Strategy identifiers, in catalog order.
const (
	SKAG       = "skag"
	STAG       = "stag"
	Intent     = "intent"
	AlphaBeta  = "alpha_beta"
	MatchType  = "match_type"
	Geo        = "geo"
	Funnel     = "funnel"
	BrandSplit = "brand_split"
	Competitor = "competitor"
	NGram      = "ngram"
	LongTail   = "long_tail"
	Seasonal   = "seasonal"
	Hybrid     = "hybrid"
	MLCluster  = "ml_cluster"
)

// Strategy describes one way of partitioning keywords into ad groups.
type Strategy struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Strategies is the fixed catalog. Its order breaks ranking ties.
var Strategies = []Strategy{
	{SKAG, "Single Keyword Ad Groups", "One ad group per keyword for maximum ad relevance."},
	{STAG, "Single Theme Ad Groups", "Keywords sharing a leading word are grouped together."},
	{Intent, "Intent-Based", "Groups split by searcher intent: local, commercial, transactional, informational."},
	{AlphaBeta, "Alpha/Beta", "Exact-match winners in Alpha, broad discovery in Beta with Alpha terms negated."},
	{MatchType, "Match Type Split", "One ad group per match type."},
	{Geo, "Geo-Segmented", "Local-intent keywords separated from general demand."},
	{Funnel, "Funnel Stage", "Awareness, consideration and conversion groups."},
	{BrandSplit, "Brand Split", "Branded and non-branded traffic kept apart."},
	{Competitor, "Competitor", "Competitor terms isolated for separate bidding."},
	{NGram, "N-Gram Clusters", "Groups built around shared leading word pairs."},
	{LongTail, "Long Tail", "Specific four-plus word queries separated from head terms."},
	{Seasonal, "Seasonal", "Groups aligned to seasonal demand windows."},
	{Hybrid, "Hybrid", "Theme groups with the top keyword of each theme promoted to its own group."},
	{MLCluster, "ML-Assisted Clusters", "Semantic clusters for large keyword sets."},
}

// FallbackStrategy is the even slicer used when no ranked strategy is
// available. It is not part of the ranked catalog.
var FallbackStrategy = Strategy{
	ID:          "slices",
	Name:        "Even Slices",
	Description: "Keywords cut into up to eight contiguous groups of equal size.",
}

var idAliases = map[string]string{
	"single_keyword":           SKAG,
	"single_keyword_per_group": SKAG,
	"single_theme":             STAG,
	"single_theme_per_group":   STAG,
	"intent_based":             Intent,
	"alphabeta":                AlphaBeta,
	"match_type_split":         MatchType,
	"geo_segmented":            Geo,
	"funnel_stage":             Funnel,
	"brand":                    BrandSplit,
	"n_gram":                   NGram,
	"longtail":                 LongTail,
	"ml":                       MLCluster,
}

// ParseID normalizes a strategy id or alias. Unknown ids report false.
func ParseID(id string) (string, bool) {
	norm := strings.ToLower(strings.TrimSpace(id))
	norm = strings.NewReplacer("-", "_", " ", "_", "/", "_").Replace(norm)
	if alias, ok := idAliases[norm]; ok {
		return alias, true
	}
	for _, s := range Strategies {
		if s.ID == norm {
			return norm, true
		}
	}
	return "", false
}

// Lookup returns the catalog entry for id.
func Lookup(id string) (Strategy, bool) {
	norm, ok := ParseID(id)
	if !ok {
		return Strategy{}, false
	}
	for _, s := range Strategies {
		if s.ID == norm {
			return s, true
		}
	}
	return Strategy{}, false
}
