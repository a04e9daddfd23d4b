package export

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"campaignkit-go/pkg/creative"
)

// DefaultDateLayout is the literal date format of the import file.
const DefaultDateLayout = "2006-01-02"

// acceptedDateLayouts are tried in order when parsing input dates.
var acceptedDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"20060102",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// ParseDate accepts the common input layouts.
func ParseDate(value string) (time.Time, bool) {
	v := strings.TrimSpace(value)
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeURL adds https:// when the scheme is missing.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	switch {
	case u == "":
		return ""
	case strings.Contains(u, "://"):
		return u
	case strings.HasPrefix(u, "//"):
		return "https:" + u
	default:
		return "https://" + u
	}
}

var (
	bracketMarker = regexp.MustCompile(`\[([^\[\]]+)\]`)
	braceMarker   = regexp.MustCompile(`(?i)\{\s*keyword\s*(?::\s*([^{}]*?))?\s*\}`)
	// platformMarker matches already rewritten markers; group 1 is the
	// default text.
	platformMarker = regexp.MustCompile(`\{KeyWord:([^{}]*)\}`)
)

// markerRewriter turns inline insertion markers into {KeyWord:Default Text}.
type markerRewriter struct {
	title cases.Caser
}

func newMarkerRewriter() *markerRewriter {
	return &markerRewriter{title: cases.Title(language.English)}
}

func (m *markerRewriter) marker(defaultText string) string {
	return "{KeyWord:" + m.title.String(strings.Join(strings.Fields(defaultText), " ")) + "}"
}

// Rewrite converts "[term]" and "{keyword:term}" markers. A bare
// "{keyword}" takes fallback as its default text. Text already in
// platform form passes through unchanged.
func (m *markerRewriter) Rewrite(text, fallback string) string {
	if text == "" {
		return text
	}
	out := braceMarker.ReplaceAllStringFunc(text, func(match string) string {
		if strings.HasPrefix(match, "{KeyWord:") {
			return match
		}
		sub := braceMarker.FindStringSubmatch(match)
		def := sub[1]
		if strings.TrimSpace(def) == "" {
			def = fallback
		}
		return m.marker(def)
	})
	return bracketMarker.ReplaceAllStringFunc(out, func(match string) string {
		return m.marker(match[1 : len(match)-1])
	})
}

// clampMarked cuts text to limit runes. When a marker is present its
// default text absorbs the overflow so the marker stays well-formed.
func clampMarked(text string, limit int) (string, bool) {
	if utf8.RuneCountInString(text) <= limit {
		return text, false
	}
	loc := platformMarker.FindStringSubmatchIndex(text)
	if loc == nil {
		return creative.Truncate(text, limit)
	}

	over := utf8.RuneCountInString(text) - limit
	def := []rune(text[loc[2]:loc[3]])
	if keep := len(def) - over; keep >= 1 {
		shrunk := strings.TrimRight(string(def[:keep]), " ")
		if shrunk != "" {
			return text[:loc[2]] + shrunk + text[loc[3]:], true
		}
	}
	plain := text[:loc[0]] + string(def) + text[loc[1]:]
	return creative.Truncate(plain, limit)
}
