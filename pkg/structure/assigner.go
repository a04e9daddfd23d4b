package structure

import (
	"fmt"
	"strings"

	"campaignkit-go/pkg/campaign"
	"campaignkit-go/pkg/creative"
	"campaignkit-go/pkg/keyword"
	"campaignkit-go/pkg/logger"
)

const (
	DefaultSKAGCap         = 20
	DefaultThemeGroupCap   = 10
	DefaultThemeKeywordCap = 20
	DefaultSliceCount      = 8
	DefaultNameLimit       = 50
)

type Config struct {
	SKAGCap         int `json:"skag_cap" mapstructure:"skag_cap"`
	ThemeGroupCap   int `json:"theme_group_cap" mapstructure:"theme_group_cap"`
	ThemeKeywordCap int `json:"theme_keyword_cap" mapstructure:"theme_keyword_cap"`
	SliceCount      int `json:"slice_count" mapstructure:"slice_count"`
	NameLimit       int `json:"name_limit" mapstructure:"name_limit"`
}

func DefaultConfig() Config {
	return Config{
		SKAGCap:         DefaultSKAGCap,
		ThemeGroupCap:   DefaultThemeGroupCap,
		ThemeKeywordCap: DefaultThemeKeywordCap,
		SliceCount:      DefaultSliceCount,
		NameLimit:       DefaultNameLimit,
	}
}

// Assigner partitions a validated keyword set into ad groups.
type Assigner struct {
	config Config
	log    *logger.Logger
}

func NewAssigner(config Config) *Assigner {
	def := DefaultConfig()
	if config.SKAGCap <= 0 {
		config.SKAGCap = def.SKAGCap
	}
	if config.ThemeGroupCap <= 0 {
		config.ThemeGroupCap = def.ThemeGroupCap
	}
	if config.ThemeKeywordCap <= 0 {
		config.ThemeKeywordCap = def.ThemeKeywordCap
	}
	if config.SliceCount <= 0 {
		config.SliceCount = def.SliceCount
	}
	if config.NameLimit <= 0 {
		config.NameLimit = def.NameLimit
	}
	return &Assigner{config: config, log: logger.GetLogger().Component("assigner")}
}

// SetLogger replaces the component logger
func (a *Assigner) SetLogger(l *logger.Logger) {
	a.log = l.Component("assigner")
}

// Assign groups keywords with the strategy named by structureID. Unknown
// ids use the default slicer; empty input yields no groups. The input
// slice is not modified.
//
// Strategies other than match_type and alpha_beta group base keywords:
// caps count base texts and every match-type variant of a base lands in
// the same group. Group names are unique, case-insensitively.
func (a *Assigner) Assign(keywords []keyword.Keyword, structureID string) []campaign.AdGroup {
	if len(keywords) == 0 {
		return []campaign.AdGroup{}
	}

	id, ok := ParseID(structureID)
	if !ok && structureID != FallbackStrategy.ID {
		a.log.WithField("structure", structureID).Warn("Unknown structure, using default grouping")
	}

	set := newKeywordSet(keywords)
	leads := set.leads
	perBase := true

	var groups []campaign.AdGroup
	switch id {
	case SKAG:
		groups = a.skag(leads)
	case STAG:
		groups = a.stag(leads)
	case Intent:
		groups = bucketBy(leads, func(k keyword.Keyword) string { return string(intentOf(k)) },
			func(key string) string { return key + " Intent" }, 0, 0, false)
	case MatchType:
		perBase = false
		groups = bucketBy(set.all, func(k keyword.Keyword) string { return string(matchTypeOf(k)) },
			func(key string) string { return key + " Match" }, 0, 0, false)
	case AlphaBeta:
		perBase = false
		groups = a.alphaBeta(set.all)
	case Geo:
		groups = bucketBy(leads, geoBucket, identity, 0, 0, false)
	case Funnel:
		groups = bucketBy(leads, funnelStage, identity, 0, 0, false)
	case LongTail:
		groups = bucketBy(leads, tailBucket, identity, 0, 0, false)
	case NGram:
		groups = bucketBy(leads, leadingBigram, identity, a.config.ThemeGroupCap, a.config.ThemeKeywordCap, true)
	case Hybrid:
		groups = a.hybrid(leads)
	default:
		groups = a.slices(leads)
	}
	if perBase {
		set.attachVariants(groups)
	}
	a.uniqueNames(groups)

	for i := range groups {
		groups[i].ID = fmt.Sprintf("ag-%03d", i+1)
	}
	a.log.WithFields(map[string]interface{}{
		"structure": id,
		"keywords":  len(set.all),
		"bases":     len(leads),
		"groups":    len(groups),
	}).Debug("Assigned ad groups")
	return groups
}

// skag puts each of the first SKAGCap keywords into its own group.
func (a *Assigner) skag(keywords []keyword.Keyword) []campaign.AdGroup {
	n := min(len(keywords), a.config.SKAGCap)
	groups := make([]campaign.AdGroup, 0, n)
	for i := 0; i < n; i++ {
		groups = append(groups, campaign.AdGroup{
			Name:     a.groupName(keywords[i].BaseText(), i+1),
			Keywords: []keyword.Keyword{keywords[i]},
		})
	}
	return groups
}

func (a *Assigner) stag(keywords []keyword.Keyword) []campaign.AdGroup {
	return bucketBy(keywords, firstWord, identity, a.config.ThemeGroupCap, a.config.ThemeKeywordCap, true)
}

// slices cuts keywords into at most SliceCount contiguous runs of
// ceil(n/SliceCount).
func (a *Assigner) slices(keywords []keyword.Keyword) []campaign.AdGroup {
	size := (len(keywords) + a.config.SliceCount - 1) / a.config.SliceCount
	groups := make([]campaign.AdGroup, 0, a.config.SliceCount)
	for start := 0; start < len(keywords); start += size {
		end := min(start+size, len(keywords))
		groups = append(groups, campaign.AdGroup{
			Name:     fmt.Sprintf("Ad Group %d", len(groups)+1),
			Keywords: append([]keyword.Keyword(nil), keywords[start:end]...),
		})
	}
	return groups
}

// alphaBeta sends exact-match keywords to Alpha and the rest to Beta,
// which negates every Alpha term so traffic funnels to the winners.
func (a *Assigner) alphaBeta(keywords []keyword.Keyword) []campaign.AdGroup {
	var alpha, beta []keyword.Keyword
	for _, k := range keywords {
		if matchTypeOf(k) == keyword.Exact {
			alpha = append(alpha, k)
		} else {
			beta = append(beta, k)
		}
	}

	groups := make([]campaign.AdGroup, 0, 2)
	if len(alpha) > 0 {
		groups = append(groups, campaign.AdGroup{Name: "Alpha", Keywords: alpha})
	}
	if len(beta) > 0 {
		g := campaign.AdGroup{Name: "Beta", Keywords: beta}
		for i, k := range alpha {
			neg := k.WithMatchType(keyword.NegativeExact)
			neg.ID = fmt.Sprintf("neg-ab-%04d", i+1)
			g.NegativeKeywords = append(g.NegativeKeywords, neg)
		}
		groups = append(groups, g)
	}
	return groups
}

// hybrid builds theme buckets and promotes the top keyword of each bucket
// to its own group until SKAGCap promotions have been made.
func (a *Assigner) hybrid(keywords []keyword.Keyword) []campaign.AdGroup {
	themes := a.stag(keywords)
	groups := make([]campaign.AdGroup, 0, len(themes)*2)
	promoted := 0
	for _, theme := range themes {
		rest := theme.Keywords
		if promoted < a.config.SKAGCap && len(rest) > 1 {
			top := rest[0]
			groups = append(groups, campaign.AdGroup{
				Name:     a.groupName(top.BaseText(), len(groups)+1),
				Keywords: []keyword.Keyword{top},
			})
			promoted++
			rest = rest[1:]
		}
		groups = append(groups, campaign.AdGroup{Name: theme.Name, Keywords: rest})
	}
	return groups
}

func (a *Assigner) groupName(base string, position int) string {
	name, _ := creative.Truncate(strings.TrimSpace(base), a.config.NameLimit)
	if name == "" {
		return fmt.Sprintf("Ad Group %d", position)
	}
	return name
}

// uniqueNames suffixes repeated names with a counter, keeping the result
// within NameLimit.
func (a *Assigner) uniqueNames(groups []campaign.AdGroup) {
	used := make(map[string]bool, len(groups))
	for i := range groups {
		name := groups[i].Name
		for n := 2; used[strings.ToLower(name)]; n++ {
			suffix := fmt.Sprintf(" %d", n)
			head, _ := creative.Truncate(groups[i].Name, max(a.config.NameLimit-len(suffix), 1))
			name = head + suffix
		}
		used[strings.ToLower(name)] = true
		groups[i].Name = name
	}
}

// keywordSet indexes keywords by lowercased base text. leads holds the
// first keyword of every base in discovery order; all drops repeated
// (match type, base) pairs and keeps the rest in input order.
type keywordSet struct {
	leads    []keyword.Keyword
	all      []keyword.Keyword
	variants map[string][]keyword.Keyword
}

func newKeywordSet(keywords []keyword.Keyword) keywordSet {
	set := keywordSet{
		all:      make([]keyword.Keyword, 0, len(keywords)),
		variants: make(map[string][]keyword.Keyword),
	}
	seen := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		base := baseKey(k)
		if base == "" {
			continue
		}
		key := variantKey(k)
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, ok := set.variants[base]; !ok {
			set.leads = append(set.leads, k)
		}
		set.variants[base] = append(set.variants[base], k)
		set.all = append(set.all, k)
	}
	return set
}

// attachVariants replaces each group's lead keywords with all variants of
// their base texts.
func (s keywordSet) attachVariants(groups []campaign.AdGroup) {
	for i := range groups {
		var expanded []keyword.Keyword
		for _, lead := range groups[i].Keywords {
			expanded = append(expanded, s.variants[baseKey(lead)]...)
		}
		groups[i].Keywords = expanded
	}
}

func baseKey(k keyword.Keyword) string {
	return strings.ToLower(strings.TrimSpace(k.BaseText()))
}

func variantKey(k keyword.Keyword) string {
	return string(matchTypeOf(k)) + "|" + baseKey(k)
}

// bucketBy groups keywords by key in discovery order. A zero groupCap or
// keywordCap means unlimited; uniqueBase skips repeated (match type, base
// text) pairs inside a bucket.
func bucketBy(keywords []keyword.Keyword, key func(keyword.Keyword) string, name func(string) string, groupCap, keywordCap int, uniqueBase bool) []campaign.AdGroup {
	var order []string
	buckets := make(map[string][]keyword.Keyword)
	seen := make(map[string]map[string]bool)

	for _, k := range keywords {
		bucket := key(k)
		if bucket == "" {
			continue
		}
		if _, ok := buckets[bucket]; !ok {
			if groupCap > 0 && len(order) >= groupCap {
				continue
			}
			order = append(order, bucket)
			buckets[bucket] = nil
			seen[bucket] = make(map[string]bool)
		}
		if keywordCap > 0 && len(buckets[bucket]) >= keywordCap {
			continue
		}
		if uniqueBase {
			vk := variantKey(k)
			if seen[bucket][vk] {
				continue
			}
			seen[bucket][vk] = true
		}
		buckets[bucket] = append(buckets[bucket], k)
	}

	groups := make([]campaign.AdGroup, 0, len(order))
	for _, b := range order {
		if len(buckets[b]) == 0 {
			continue
		}
		groups = append(groups, campaign.AdGroup{Name: name(b), Keywords: buckets[b]})
	}
	return groups
}

func identity(s string) string { return s }

func firstWord(k keyword.Keyword) string {
	words := strings.Fields(strings.ToLower(k.BaseText()))
	if len(words) == 0 {
		return ""
	}
	return words[0]
}

func leadingBigram(k keyword.Keyword) string {
	words := strings.Fields(strings.ToLower(k.BaseText()))
	if len(words) > 2 {
		words = words[:2]
	}
	return strings.Join(words, " ")
}

func matchTypeOf(k keyword.Keyword) keyword.MatchType {
	if k.MatchType == "" {
		return keyword.DetectMatchType(k.Text)
	}
	return k.MatchType
}

func intentOf(k keyword.Keyword) keyword.IntentClass {
	if k.Intent == "" {
		return keyword.ClassifyIntent(k.BaseText(), "")
	}
	return k.Intent
}

func geoBucket(k keyword.Keyword) string {
	if intentOf(k) == keyword.IntentLocal {
		return "Local"
	}
	return "General"
}

func funnelStage(k keyword.Keyword) string {
	switch intentOf(k) {
	case keyword.IntentInformational:
		return "Awareness"
	case keyword.IntentTransactional:
		return "Conversion"
	default:
		return "Consideration"
	}
}

func tailBucket(k keyword.Keyword) string {
	if len(strings.Fields(k.BaseText())) >= 4 {
		return "Long Tail"
	}
	return "Head Terms"
}
