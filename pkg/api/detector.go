package api

import (
	"context"
	"errors"
	"strings"

	"campaignkit-go/pkg/catalog"
)

// ErrNoSignals is returned when a detector is given nothing to read.
var ErrNoSignals = errors.New("no page signals")

// CTA labels per intent ID.
var ctaLabels = map[string]string{
	"call":     "Call Now",
	"lead":     "Get a Quote",
	"purchase": "Shop Now",
	"visit":    "Get Directions",
	"info":     "Learn More",
}

// intentCues are checked in this order; the first intent with a hit wins.
var intentCues = []struct {
	intent string
	cues   []string
}{
	{"call", []string{"call", "phone", "emergency", "24/7"}},
	{"purchase", []string{"buy", "cart", "checkout", "shop", "order", "sale"}},
	{"lead", []string{"quote", "estimate", "consultation", "contact", "appointment", "book"}},
	{"visit", []string{"directions", "visit", "hours", "location", "menu"}},
}

// CTALabel returns the call-to-action wording for an intent ID.
func CTALabel(intentID string) string {
	if l, ok := ctaLabels[intentID]; ok {
		return l
	}
	return ctaLabels["info"]
}

// StaticDetector returns a fixed verdict, used when the user picked the
// vertical and goal explicitly.
type StaticDetector struct {
	Detection Detection
}

func (d StaticDetector) Detect(ctx context.Context, _ Signals) (*Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := d.Detection
	if out.Vertical == "" {
		out.Vertical = catalog.DefaultVertical
	}
	if out.IntentID == "" {
		out.IntentID = "info"
	}
	if out.CTALabel == "" {
		out.CTALabel = CTALabel(out.IntentID)
	}
	out.Confidence = 1
	return &out, nil
}

// KeywordDetector scores verticals by counting page words that resolve to
// a catalog vertical or alias.
type KeywordDetector struct {
	catalog *catalog.Catalog
}

func NewKeywordDetector(c *catalog.Catalog) *KeywordDetector {
	if c == nil {
		c = catalog.Default()
	}
	return &KeywordDetector{catalog: c}
}

func (d *KeywordDetector) Detect(ctx context.Context, signals Signals) (*Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text := signals.text()
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' || r == '/')
	})
	if len(words) == 0 {
		return nil, ErrNoSignals
	}

	scores := make(map[string]int)
	total := 0
	for _, w := range words {
		if v := d.catalog.Resolve(w); v != catalog.DefaultVertical {
			scores[v]++
			total++
		}
	}

	vertical := catalog.DefaultVertical
	best := 0
	for _, v := range d.catalog.Verticals() {
		if scores[v] > best {
			vertical, best = v, scores[v]
		}
	}

	intent := detectIntent(" " + strings.Join(words, " ") + " ")
	det := &Detection{
		Vertical: vertical,
		IntentID: intent,
		CTALabel: CTALabel(intent),
	}
	if total > 0 {
		det.Confidence = float64(best) / float64(total)
	}
	return det, nil
}

func detectIntent(padded string) string {
	for _, ic := range intentCues {
		for _, cue := range ic.cues {
			if strings.Contains(padded, " "+cue+" ") {
				return ic.intent
			}
		}
	}
	return "info"
}
