package creative

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ExtensionKind identifies an extension variant. The values double as the
// bulk-file extension types.
type ExtensionKind string

const (
	KindSitelink          ExtensionKind = "Sitelink"
	KindCallout           ExtensionKind = "Callout"
	KindStructuredSnippet ExtensionKind = "Structured snippet"
	KindCall              ExtensionKind = "Call"
	KindPrice             ExtensionKind = "Price"
	KindPromotion         ExtensionKind = "Promotion"
	KindImage             ExtensionKind = "Image"
	KindLocation          ExtensionKind = "Location"
)

// ExtensionKinds lists the variants in export order.
var ExtensionKinds = []ExtensionKind{
	KindSitelink, KindCallout, KindStructuredSnippet, KindCall,
	KindPrice, KindPromotion, KindImage, KindLocation,
}

// Extension is an ad asset. Key is derived from content and, together with
// Kind, decides whether two extensions are duplicates.
type Extension interface {
	Kind() ExtensionKind
	Key() string
	Display() string
	Clamp() (Extension, []Warning)
	isExtension()
}

func normKey(parts ...string) string {
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.Join(strings.Fields(p), " "))
	}
	return strings.Join(parts, "|")
}

type Sitelink struct {
	Text         string `json:"text"`
	Description1 string `json:"description1,omitempty"`
	Description2 string `json:"description2,omitempty"`
	FinalURL     string `json:"final_url"`
}

func (Sitelink) Kind() ExtensionKind { return KindSitelink }
func (Sitelink) isExtension()        {}
func (s Sitelink) Key() string       { return normKey(s.Text) }
func (s Sitelink) Display() string   { return s.Text }

func (s Sitelink) Clamp() (Extension, []Warning) {
	var c clamper
	return Sitelink{
		Text:         c.clamp("sitelink_text", s.Text, SitelinkTextLimit),
		Description1: c.clamp("sitelink_description_1", s.Description1, SitelinkDescriptionLimit),
		Description2: c.clamp("sitelink_description_2", s.Description2, SitelinkDescriptionLimit),
		FinalURL:     s.FinalURL,
	}, c.warnings
}

type Callout struct {
	Text string `json:"text"`
}

func (Callout) Kind() ExtensionKind { return KindCallout }
func (Callout) isExtension()        {}
func (c Callout) Key() string       { return normKey(c.Text) }
func (c Callout) Display() string   { return c.Text }

func (c Callout) Clamp() (Extension, []Warning) {
	var cl clamper
	return Callout{Text: cl.clamp("callout_text", c.Text, CalloutLimit)}, cl.warnings
}

// SnippetHeaders are the headers the platform accepts for structured
// snippets.
var SnippetHeaders = []string{
	"Amenities", "Brands", "Courses", "Degree programs", "Destinations",
	"Featured hotels", "Insurance coverage", "Models", "Neighborhoods",
	"Service catalog", "Shows", "Styles", "Types",
}

// DefaultSnippetHeader replaces headers the platform would reject.
const DefaultSnippetHeader = "Service catalog"

// CanonicalSnippetHeader matches header case-insensitively against
// SnippetHeaders.
func CanonicalSnippetHeader(header string) (string, bool) {
	h := strings.Join(strings.Fields(header), " ")
	for _, known := range SnippetHeaders {
		if strings.EqualFold(known, h) {
			return known, true
		}
	}
	if strings.EqualFold(h, "services") {
		return DefaultSnippetHeader, true
	}
	return DefaultSnippetHeader, false
}

type StructuredSnippet struct {
	Header string   `json:"header"`
	Values []string `json:"values"`
}

func (StructuredSnippet) Kind() ExtensionKind { return KindStructuredSnippet }
func (StructuredSnippet) isExtension()        {}

func (s StructuredSnippet) Key() string {
	return normKey(s.Header, strings.Join(s.Values, ";"))
}

func (s StructuredSnippet) Display() string {
	return s.Header + ": " + strings.Join(s.Values, ", ")
}

func (s StructuredSnippet) Clamp() (Extension, []Warning) {
	var c clamper
	header, known := CanonicalSnippetHeader(s.Header)
	if !known {
		c.warnings = append(c.warnings, Warning{Field: "snippet_header", Original: s.Header, Truncated: header})
	}
	values := c.clampAll("snippet_value", c.capCount("snippet_values", s.Values, MaxSnippetValues), SnippetValueLimit)
	return StructuredSnippet{Header: header, Values: values}, c.warnings
}

type CallExtension struct {
	PhoneNumber string `json:"phone_number"`
	CountryCode string `json:"country_code,omitempty"`
}

func (CallExtension) Kind() ExtensionKind { return KindCall }
func (CallExtension) isExtension()        {}
func (c CallExtension) Key() string       { return Digits(c.PhoneNumber) }
func (c CallExtension) Display() string   { return c.PhoneNumber }

func (c CallExtension) Clamp() (Extension, []Warning) {
	return c, nil
}

type PriceItem struct {
	Header      string          `json:"header"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit,omitempty"`
	FinalURL    string          `json:"final_url,omitempty"`
}

type PriceExtension struct {
	PriceType string      `json:"price_type"`
	Qualifier string      `json:"qualifier,omitempty"`
	Currency  string      `json:"currency"`
	Items     []PriceItem `json:"items"`
}

func (PriceExtension) Kind() ExtensionKind { return KindPrice }
func (PriceExtension) isExtension()        {}

func (p PriceExtension) Key() string {
	headers := make([]string, len(p.Items))
	for i, it := range p.Items {
		headers[i] = it.Header
	}
	return normKey(p.PriceType, strings.Join(headers, ";"))
}

// Display renders the first item, e.g. "Drain cleaning from USD 99".
func (p PriceExtension) Display() string {
	if len(p.Items) == 0 {
		return p.PriceType
	}
	it := p.Items[0]
	qualifier := p.Qualifier
	if qualifier == "" {
		qualifier = "from"
	}
	return fmt.Sprintf("%s %s %s %s", it.Header, strings.ToLower(qualifier), p.Currency, it.Price.StringFixedBank(2))
}

func (p PriceExtension) Clamp() (Extension, []Warning) {
	var c clamper
	out := PriceExtension{PriceType: p.PriceType, Qualifier: p.Qualifier, Currency: p.Currency}
	items := p.Items
	if len(items) > MaxPriceItems {
		c.warnings = append(c.warnings, Warning{Field: "price_items", Limit: MaxPriceItems})
		items = items[:MaxPriceItems]
	}
	for i, it := range items {
		it.Header = c.clamp(fmt.Sprintf("price_header_%d", i+1), it.Header, PriceHeaderLimit)
		it.Description = c.clamp(fmt.Sprintf("price_description_%d", i+1), it.Description, PriceDescriptionLimit)
		out.Items = append(out.Items, it)
	}
	return out, c.warnings
}

type PromotionExtension struct {
	Occasion   string          `json:"occasion,omitempty"`
	Item       string          `json:"item"`
	PercentOff decimal.Decimal `json:"percent_off"`
	MoneyOff   decimal.Decimal `json:"money_off"`
	Currency   string          `json:"currency,omitempty"`
	PromoCode  string          `json:"promo_code,omitempty"`
	FinalURL   string          `json:"final_url"`
	StartDate  string          `json:"start_date,omitempty"`
	EndDate    string          `json:"end_date,omitempty"`
}

func (PromotionExtension) Kind() ExtensionKind { return KindPromotion }
func (PromotionExtension) isExtension()        {}

func (p PromotionExtension) Key() string {
	return normKey(p.Item, p.PercentOff.String(), p.MoneyOff.String(), p.PromoCode)
}

// Display renders "20% off Drain cleaning" or "USD 50 off Drain cleaning".
func (p PromotionExtension) Display() string {
	if p.PercentOff.IsPositive() {
		return fmt.Sprintf("%s%% off %s", p.PercentOff.String(), p.Item)
	}
	if p.MoneyOff.IsPositive() {
		return fmt.Sprintf("%s %s off %s", p.Currency, p.MoneyOff.StringFixedBank(2), p.Item)
	}
	return p.Item
}

func (p PromotionExtension) Clamp() (Extension, []Warning) {
	var c clamper
	p.Item = c.clamp("promotion_item", p.Item, PromotionItemLimit)
	return p, c.warnings
}

type ImageExtension struct {
	ImageURL string `json:"image_url"`
	Name     string `json:"name,omitempty"`
	AltText  string `json:"alt_text,omitempty"`
}

func (ImageExtension) Kind() ExtensionKind { return KindImage }
func (ImageExtension) isExtension()        {}
func (i ImageExtension) Key() string       { return normKey(i.ImageURL) }

func (i ImageExtension) Display() string {
	if i.Name != "" {
		return i.Name
	}
	return i.ImageURL
}

func (i ImageExtension) Clamp() (Extension, []Warning) {
	var c clamper
	i.Name = c.clamp("image_name", i.Name, ImageNameLimit)
	return i, c.warnings
}

type LocationExtension struct {
	BusinessName string `json:"business_name"`
	Address      string `json:"address"`
	City         string `json:"city,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
}

func (LocationExtension) Kind() ExtensionKind { return KindLocation }
func (LocationExtension) isExtension()        {}

func (l LocationExtension) Key() string {
	return normKey(l.Address, l.City, l.PostalCode, l.CountryCode)
}

func (l LocationExtension) Display() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Address, l.City, l.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func (l LocationExtension) Clamp() (Extension, []Warning) {
	var c clamper
	l.BusinessName = c.clamp("location_business_name", l.BusinessName, BusinessNameLimit)
	return l, c.warnings
}
