package keyword

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MatchType is the matching strictness of a keyword, including the
// negative variants that exclude queries.
type MatchType string

const (
	Broad          MatchType = "Broad"
	Phrase         MatchType = "Phrase"
	Exact          MatchType = "Exact"
	NegativeBroad  MatchType = "NegativeBroad"
	NegativePhrase MatchType = "NegativePhrase"
	NegativeExact  MatchType = "NegativeExact"
)

// PositiveMatchTypes lists the match types a base keyword expands into, in
// expansion order.
var PositiveMatchTypes = []MatchType{Broad, Phrase, Exact}

// ParseMatchType accepts both the enum names and the bulk-file labels.
func ParseMatchType(s string) (MatchType, bool) {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "broad":
		return Broad, true
	case "phrase":
		return Phrase, true
	case "exact":
		return Exact, true
	case "negativebroad", "negative broad":
		return NegativeBroad, true
	case "negativephrase", "negative phrase":
		return NegativePhrase, true
	case "negativeexact", "negative exact":
		return NegativeExact, true
	}
	return "", false
}

// Label returns the criterion-type value used by the bulk import file.
func (m MatchType) Label() string {
	switch m {
	case Broad:
		return "Broad"
	case Phrase:
		return "Phrase"
	case Exact:
		return "Exact"
	case NegativeBroad:
		return "Negative broad"
	case NegativePhrase:
		return "Negative phrase"
	case NegativeExact:
		return "Negative exact"
	}
	return "Broad"
}

func (m MatchType) IsNegative() bool {
	return m == NegativeBroad || m == NegativePhrase || m == NegativeExact
}

// Negative maps a positive match type onto its negative counterpart.
func (m MatchType) Negative() MatchType {
	switch m {
	case Phrase, NegativePhrase:
		return NegativePhrase
	case Exact, NegativeExact:
		return NegativeExact
	default:
		return NegativeBroad
	}
}

// Positive maps a negative match type onto its positive counterpart.
func (m MatchType) Positive() MatchType {
	switch m {
	case Phrase, NegativePhrase:
		return Phrase
	case Exact, NegativeExact:
		return Exact
	default:
		return Broad
	}
}

// IntentClass is the coarse searcher intent derived from lexical cues.
type IntentClass string

const (
	IntentLocal         IntentClass = "Local"
	IntentCommercial    IntentClass = "Commercial"
	IntentTransactional IntentClass = "Transactional"
	IntentInformational IntentClass = "Informational"
)

// ParseIntentClass is case-insensitive; unknown values report false.
func ParseIntentClass(s string) (IntentClass, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local":
		return IntentLocal, true
	case "commercial":
		return IntentCommercial, true
	case "transactional":
		return IntentTransactional, true
	case "informational":
		return IntentInformational, true
	}
	return "", false
}

// Volume is a coarse search-volume bucket.
type Volume string

const (
	VolumeLow    Volume = "Low"
	VolumeMedium Volume = "Medium"
	VolumeHigh   Volume = "High"
)

// VolumeFromSearches buckets an average monthly search count.
func VolumeFromSearches(searches int) Volume {
	switch {
	case searches >= 1000:
		return VolumeHigh
	case searches >= 100:
		return VolumeMedium
	default:
		return VolumeLow
	}
}

// Keyword is one search term. Text carries match-type decoration
// ("plumber", "\"plumber\"", "[plumber]") and never changes after
// validation.
type Keyword struct {
	ID          string          `json:"id"`
	Text        string          `json:"text"`
	MatchType   MatchType       `json:"match_type"`
	Intent      IntentClass     `json:"intent"`
	Volume      Volume          `json:"volume"`
	Searches    int             `json:"searches,omitempty"`
	Competition float64         `json:"competition,omitempty"`
	CPC         decimal.Decimal `json:"cpc"`
	Seed        string          `json:"seed,omitempty"`
	Category    string          `json:"category,omitempty"`
}

// BaseText returns the keyword text with match-type decoration removed.
func (k Keyword) BaseText() string {
	return StripDecoration(k.Text)
}

// WithMatchType returns a copy decorated for the given match type.
func (k Keyword) WithMatchType(m MatchType) Keyword {
	k.Text = Decorate(k.BaseText(), m)
	k.MatchType = m
	return k
}

// Decorate renders base text the way the match type is written:
// phrase in quotes, exact in brackets, broad bare.
func Decorate(base string, m MatchType) string {
	base = StripDecoration(base)
	switch m {
	case Phrase, NegativePhrase:
		return `"` + base + `"`
	case Exact, NegativeExact:
		return "[" + base + "]"
	default:
		return base
	}
}

// StripDecoration removes quoting or bracket decoration and the legacy
// broad-match modifier prefix.
func StripDecoration(text string) string {
	t := strings.TrimSpace(text)
	for {
		switch {
		case len(t) >= 2 && t[0] == '"' && t[len(t)-1] == '"':
			t = strings.TrimSpace(t[1 : len(t)-1])
			continue
		case len(t) >= 2 && t[0] == '[' && t[len(t)-1] == ']':
			t = strings.TrimSpace(t[1 : len(t)-1])
			continue
		}
		break
	}
	if strings.Contains(t, "+") {
		words := strings.Fields(t)
		for i, w := range words {
			words[i] = strings.TrimPrefix(w, "+")
		}
		t = strings.Join(words, " ")
	}
	return t
}

// DetectMatchType infers the match type from decoration alone.
func DetectMatchType(text string) MatchType {
	t := strings.TrimSpace(text)
	switch {
	case len(t) >= 2 && t[0] == '"' && t[len(t)-1] == '"':
		return Phrase
	case len(t) >= 2 && t[0] == '[' && t[len(t)-1] == ']':
		return Exact
	default:
		return Broad
	}
}

// Texts returns the display text of every keyword in order.
func Texts(keywords []Keyword) []string {
	out := make([]string, len(keywords))
	for i, k := range keywords {
		out[i] = k.Text
	}
	return out
}
