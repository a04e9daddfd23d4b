package keyword

import "strings"

// ExpandMatchTypes decorates each base keyword once per enabled positive
// match type, in Broad, Phrase, Exact order. Every variant is re-checked
// against the negatives on its stripped base text and deduplicated on
// (display text, match type).
func ExpandMatchTypes(base []Keyword, enabled []MatchType, negatives []string) []Keyword {
	types := enabledPositive(enabled)
	dedup := NewDeduplicator(negatives)
	seen := make(map[string]bool, len(base)*len(types))

	out := make([]Keyword, 0, len(base)*len(types))
	for _, k := range base {
		for _, mt := range types {
			variant := k.WithMatchType(mt)
			if dedup.ContainsNegative(variant.BaseText()) {
				continue
			}
			key := string(mt) + "|" + strings.ToLower(variant.Text)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, variant)
		}
	}
	return out
}

// enabledPositive filters enabled down to positive match types in
// canonical order; an empty list enables all three.
func enabledPositive(enabled []MatchType) []MatchType {
	if len(enabled) == 0 {
		return PositiveMatchTypes
	}
	on := make(map[MatchType]bool, len(enabled))
	for _, m := range enabled {
		on[m.Positive()] = true
	}
	out := make([]MatchType, 0, 3)
	for _, m := range PositiveMatchTypes {
		if on[m] {
			out = append(out, m)
		}
	}
	return out
}

// expanderSource binds an Expander to one vertical and intent hint.
type expanderSource struct {
	e        *Expander
	vertical string
	hint     IntentClass
}

// Source returns a TopUpSource drawing from the vertical's filler table and
// the generic modifiers.
func (e *Expander) Source(vertical string, hint IntentClass) TopUpSource {
	return expanderSource{e: e, vertical: vertical, hint: hint}
}

func (s expanderSource) FillerPass(seeds []string, pass int) []Keyword {
	return s.e.FillerPass(seeds, s.vertical, pass, s.hint)
}

func (s expanderSource) Generic(seeds []string) []Keyword {
	return s.e.Generic(seeds, s.hint)
}
