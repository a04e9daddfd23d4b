package creative

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Platform character limits, enforced when text is written.
const (
	HeadlineLimit            = 30
	DescriptionLimit         = 90
	PathLimit                = 15
	SitelinkTextLimit        = 25
	SitelinkDescriptionLimit = 35
	CalloutLimit             = 25
	SnippetValueLimit        = 25
	BusinessNameLimit        = 25
	PriceHeaderLimit         = 25
	PriceDescriptionLimit    = 25
	PromotionItemLimit       = 20
	ImageNameLimit           = 25

	MaxHeadlines     = 15
	MaxDescriptions  = 4
	MaxPaths         = 2
	MaxSnippetValues = 10
	MaxPriceItems    = 8
)

// Warning reports a value that was shortened or dropped to fit the platform.
type Warning struct {
	Field     string `json:"field"`
	Limit     int    `json:"limit"`
	Original  string `json:"original"`
	Truncated string `json:"truncated"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s truncated to %d characters: %q -> %q", w.Field, w.Limit, w.Original, w.Truncated)
}

// Truncate cuts s to at most limit runes, trimming trailing spaces left by
// the cut. It reports whether anything was removed.
func Truncate(s string, limit int) (string, bool) {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s, false
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:limit]), " "), true
}

// clamper collects warnings while clamping the fields of one value.
type clamper struct {
	warnings []Warning
}

func (c *clamper) clamp(field string, value string, limit int) string {
	out, cut := Truncate(value, limit)
	if cut {
		c.warnings = append(c.warnings, Warning{Field: field, Limit: limit, Original: value, Truncated: out})
	}
	return out
}

func (c *clamper) clampAll(field string, values []string, limit int) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = c.clamp(fmt.Sprintf("%s_%d", field, i+1), v, limit)
	}
	return out
}

// capCount drops entries past max and records one warning for them.
func (c *clamper) capCount(field string, values []string, max int) []string {
	if len(values) <= max {
		return values
	}
	c.warnings = append(c.warnings, Warning{
		Field:     field,
		Limit:     max,
		Original:  strings.Join(values, " | "),
		Truncated: strings.Join(values[:max], " | "),
	})
	return values[:max]
}
