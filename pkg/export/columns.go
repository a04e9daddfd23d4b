package export

import "fmt"

// Column names shared by both schemas.
const (
	ColCampaign         = "Campaign"
	ColCampaignType     = "Campaign Type"
	ColCampaignStatus   = "Campaign Status"
	ColBudget           = "Budget"
	ColBudgetType       = "Budget type"
	ColBidStrategy      = "Bid Strategy Type"
	ColNetworks         = "Networks"
	ColLanguages        = "Languages"
	ColStartDate        = "Start Date"
	ColEndDate          = "End Date"
	ColStructure        = "Campaign Structure"
	ColAdGroup          = "Ad Group"
	ColAdGroupStatus    = "Ad Group Status"
	ColMaxCPC           = "Max CPC"
	ColKeyword          = "Keyword"
	ColCriterionType    = "Criterion Type"
	ColKeywordStatus    = "Keyword Status"
	ColKeywordMaxCPC    = "Keyword Max CPC"
	ColSearchVolume     = "Search Volume"
	ColCompetition      = "Competition"
	ColIntent           = "Intent"
	ColAdType           = "Ad type"
	ColAdStatus         = "Ad Status"
	ColFinalURL         = "Final URL"
	ColPath1            = "Path 1"
	ColPath2            = "Path 2"
	ColPhoneNumber      = "Phone Number"
	ColCountryCode      = "Country code"
	ColBusinessName     = "Business name"
	ColVerificationURL  = "Verification URL"
	ColAssetLevel       = "Asset level"
	ColLinkText         = "Link Text"
	ColDescriptionLine1 = "Description Line 1"
	ColDescriptionLine2 = "Description Line 2"
	ColSitelinkURL      = "Sitelink Final URL"
	ColCalloutText      = "Callout text"
	ColSnippetHeader    = "Header"
	ColSnippetValues    = "Snippet Values"
	ColPriceType        = "Price type"
	ColPriceQualifier   = "Price qualifier"
	ColCurrency         = "Currency"
	ColOccasion         = "Occasion"
	ColPromotionTarget  = "Promotion target"
	ColPercentOff       = "Percent off"
	ColMoneyOff         = "Money amount off"
	ColPromotionCode    = "Promotion code"
	ColPromotionStart   = "Promotion start"
	ColPromotionEnd     = "Promotion end"
	ColPromotionURL     = "Promotion Final URL"
	ColImageURL         = "Image URL"
	ColImageName        = "Image name"
	ColImageAltText     = "Image alt text"
	ColAddressLine1     = "Address line 1"
	ColAddressCity      = "Address city"
	ColAddressPostal    = "Address postal code"
	ColAddressCountry   = "Address country code"
	ColLocation         = "Location"
	ColLocationType     = "Location type"
)

// Headline returns the column name of the n-th headline, 1-based.
func Headline(n int) string { return fmt.Sprintf("Headline %d", n) }

// Description returns the column name of the n-th description, 1-based.
func Description(n int) string { return fmt.Sprintf("Description %d", n) }

// PriceItemColumn names the field of the n-th price item, e.g.
// "Price item 2 header".
func PriceItemColumn(n int, field string) string {
	return fmt.Sprintf("Price item %d %s", n, field)
}

var priceItemFields = []string{"header", "description", "price", "unit", "final URL"}

// Schema is an ordered list of column names.
type Schema struct {
	Name    string
	Columns []string
	index   map[string]int
}

func newSchema(name string, columns []string) *Schema {
	s := &Schema{Name: name, Columns: columns, index: make(map[string]int, len(columns))}
	for i, c := range columns {
		if _, dup := s.index[c]; dup {
			panic(fmt.Sprintf("export: duplicate column %q in schema %s", c, name))
		}
		s.index[c] = i
	}
	return s
}

// Index returns the position of column, or -1.
func (s *Schema) Index(column string) int {
	if i, ok := s.index[column]; ok {
		return i
	}
	return -1
}

func (s *Schema) Has(column string) bool {
	_, ok := s.index[column]
	return ok
}

var (
	// Standard carries the core columns of every row kind.
	Standard = newSchema("standard", standardColumns())
	// Extended is the full 183-column superset.
	Extended = newSchema("extended", extendedColumns())
)

// SchemaByName resolves "standard" or "extended"; anything else is
// Standard.
func SchemaByName(name string) *Schema {
	if name == Extended.Name {
		return Extended
	}
	return Standard
}

func standardColumns() []string {
	return []string{
		ColCampaign, ColBudget, ColStartDate, ColEndDate,
		ColAdGroup,
		ColKeyword, ColCriterionType,
		ColAdType, ColFinalURL,
		Headline(1), Headline(2), Headline(3),
		Description(1), Description(2),
		ColPath1, ColPath2,
		ColPhoneNumber, ColBusinessName, ColVerificationURL,
		ColLinkText, ColDescriptionLine1, ColDescriptionLine2, ColSitelinkURL,
		ColCalloutText,
		ColSnippetHeader, ColSnippetValues,
		ColPriceType, ColCurrency,
		PriceItemColumn(1, "header"), PriceItemColumn(1, "price"), PriceItemColumn(1, "final URL"),
		ColPromotionTarget, ColPercentOff, ColMoneyOff, ColPromotionCode,
		ColImageURL,
		ColLocation,
	}
}

func extendedColumns() []string {
	cols := []string{
		ColCampaign, ColCampaignType, ColCampaignStatus, ColBudget, ColBudgetType,
		ColBidStrategy, ColNetworks, ColLanguages, ColStartDate, ColEndDate,
		"Ad Schedule", "Ad rotation", "Delivery method", "Targeting method", "Exclusion method",
		"Tracking template", "Final URL suffix", "Custom parameters", "Campaign Labels", ColStructure,
		ColAdGroup, "Ad Group Type", ColAdGroupStatus, ColMaxCPC, "Max CPM",
		"Target CPA", "Target ROAS", "Ad Group Labels",
		ColKeyword, ColCriterionType, ColKeywordStatus, ColKeywordMaxCPC,
		"First page bid", "Top of page bid", "Quality score",
		ColSearchVolume, ColCompetition, ColIntent, "Keyword Final URL", "Keyword Final mobile URL", "Keyword Labels",
		ColAdType, ColAdStatus, ColFinalURL, "Final mobile URL", "Ad Final URL suffix", "Ad Tracking template",
	}
	for i := 1; i <= 15; i++ {
		cols = append(cols, Headline(i))
	}
	for i := 1; i <= 15; i++ {
		cols = append(cols, fmt.Sprintf("Headline %d position", i))
	}
	for i := 1; i <= 4; i++ {
		cols = append(cols, Description(i))
	}
	for i := 1; i <= 4; i++ {
		cols = append(cols, fmt.Sprintf("Description %d position", i))
	}
	cols = append(cols,
		ColPath1, ColPath2,
		ColPhoneNumber, ColCountryCode, ColBusinessName, ColVerificationURL,
		"Call reporting", "Conversion action", "Device preference", "Ad Labels",
		ColAssetLevel,
		ColLinkText, ColDescriptionLine1, ColDescriptionLine2, ColSitelinkURL, "Sitelink Final mobile URL", "Sitelink Final URL suffix",
		ColCalloutText,
		ColSnippetHeader, ColSnippetValues,
		ColPriceType, ColPriceQualifier, ColCurrency,
	)
	for i := 1; i <= 8; i++ {
		for _, f := range priceItemFields {
			cols = append(cols, PriceItemColumn(i, f))
		}
	}
	cols = append(cols,
		ColOccasion, ColPromotionTarget, ColPercentOff, ColMoneyOff, ColPromotionCode,
		"Orders over amount", ColPromotionStart, ColPromotionEnd, ColPromotionURL, "Promotion language",
		ColImageURL, ColImageName, ColImageAltText,
		ColAddressLine1, ColAddressCity, ColAddressPostal, ColAddressCountry,
		"Asset start date", "Asset end date", "Asset scheduling", "Asset labels",
		ColLocation, ColLocationType, "Location ID", "Radius", "Unit", "Bid Modifier", "Reach",
		"Campaign ID", "Ad Group ID", "Keyword ID", "Ad ID",
		"Device", "Audience segment", "Comment",
	)
	return cols
}
