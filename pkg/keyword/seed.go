package keyword

import (
	"strings"
	"unicode/utf8"
)

const (
	MinSeedLength = 2
	MaxSeedLength = 50
)

// NormalizeSeed lowercases, trims and collapses inner whitespace. Seeds
// outside the 2-50 character range are rejected.
func NormalizeSeed(raw string) (string, bool) {
	seed := strings.Join(strings.Fields(strings.ToLower(raw)), " ")
	n := utf8.RuneCountInString(seed)
	if n < MinSeedLength || n > MaxSeedLength {
		return "", false
	}
	return seed, true
}

// NormalizeSeeds splits comma or newline separated input, normalizes each
// entry and drops invalid or repeated seeds, keeping first-seen order.
func NormalizeSeeds(inputs []string) []string {
	seen := make(map[string]bool)
	seeds := make([]string, 0, len(inputs))
	for _, input := range inputs {
		parts := strings.FieldsFunc(input, func(r rune) bool {
			return r == ',' || r == '\n' || r == '\r' || r == ';'
		})
		for _, part := range parts {
			seed, ok := NormalizeSeed(part)
			if !ok || seen[seed] {
				continue
			}
			seen[seed] = true
			seeds = append(seeds, seed)
		}
	}
	return seeds
}

var stopWords = map[string]bool{
	"the": true, "and": true, "or": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "with": true,
	"by": true, "from": true, "a": true, "an": true, "as": true,
	"is": true, "was": true, "are": true, "were": true, "my": true,
}

// ServiceTerms collects the content words of every seed, with a naive
// singular/plural twin for each, so that top-up variants still count as
// on-topic.
func ServiceTerms(seeds []string) map[string]bool {
	terms := make(map[string]bool)
	for _, seed := range seeds {
		for _, w := range strings.Fields(seed) {
			if stopWords[w] || utf8.RuneCountInString(w) < 2 {
				continue
			}
			terms[w] = true
			terms[togglePlural(w)] = true
		}
	}
	return terms
}

func togglePlural(word string) string {
	switch {
	case strings.HasSuffix(word, "ss"):
		return word + "es"
	case strings.HasSuffix(word, "s") && len(word) > 3:
		return strings.TrimSuffix(word, "s")
	default:
		return word + "s"
	}
}
