package campaign

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"campaignkit-go/pkg/creative"
	"campaignkit-go/pkg/keyword"
)

// AdGroup is a named bucket of keywords sharing creatives.
type AdGroup struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Keywords         []keyword.Keyword `json:"keywords"`
	NegativeKeywords []keyword.Keyword `json:"negative_keywords,omitempty"`
	Creatives        creative.Set      `json:"creatives"`
}

// Theme is the text creatives are written around: the group's first
// keyword base text, or its name.
func (g AdGroup) Theme() string {
	if len(g.Keywords) > 0 {
		return g.Keywords[0].BaseText()
	}
	return g.Name
}

// DateRange holds the raw campaign dates. The exporter parses and
// reformats them.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

func (d *DateRange) Empty() bool {
	return d == nil || (d.Start == "" && d.End == "")
}

// Campaign is the root aggregate handed to the exporter.
type Campaign struct {
	Name             string            `json:"name"`
	DailyBudget      decimal.Decimal   `json:"daily_budget"`
	StructureID      string            `json:"structure_id"`
	FinalURL         string            `json:"final_url"`
	AdGroups         []AdGroup         `json:"ad_groups"`
	NegativeKeywords []keyword.Keyword `json:"negative_keywords,omitempty"`
	Locations        LocationTargets   `json:"locations"`
	DateRange        *DateRange        `json:"date_range,omitempty"`
	Extensions       creative.Set      `json:"extensions"`
}

// Validate checks the fields the export format cannot do without.
func (c *Campaign) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return missing("campaign.name")
	}
	if c.DailyBudget.IsNegative() {
		return &FieldError{Field: "campaign.daily_budget", Reason: "must not be negative"}
	}
	names := make(map[string]int, len(c.AdGroups))
	for i, g := range c.AdGroups {
		field := fmt.Sprintf("ad_groups[%d]", i)
		if strings.TrimSpace(g.Name) == "" {
			return missing(field + ".name")
		}
		// the import file identifies ad groups by name
		key := strings.ToLower(strings.TrimSpace(g.Name))
		if first, ok := names[key]; ok {
			return &FieldError{Field: field + ".name", Reason: fmt.Sprintf("duplicates ad_groups[%d] name %q", first, g.Name)}
		}
		names[key] = i
		for j, ad := range g.Creatives.Ads() {
			adField := fmt.Sprintf("%s.ads[%d]", field, j)
			switch a := ad.(type) {
			case creative.CallOnlyAd:
				if strings.TrimSpace(a.PhoneNumber) == "" {
					return missing(adField + ".phone_number")
				}
			default:
				if strings.TrimSpace(ad.URL()) == "" && strings.TrimSpace(c.FinalURL) == "" {
					return missing(adField + ".final_url")
				}
			}
		}
	}
	return nil
}

// KeywordCount counts positive keywords across all groups.
func (c *Campaign) KeywordCount() int {
	n := 0
	for _, g := range c.AdGroups {
		n += len(g.Keywords)
	}
	return n
}

// AdCount counts ads across all groups.
func (c *Campaign) AdCount() int {
	n := 0
	for _, g := range c.AdGroups {
		n += len(g.Creatives.Ads())
	}
	return n
}
