package creative

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ExtensionSpec is the loosely typed wire form of an extension as accepted
// by the HTTP API and CLI request files. ToExtension narrows it to the
// variant named by Type.
type ExtensionSpec struct {
	Type         string          `json:"type"`
	Text         string          `json:"text,omitempty"`
	Description1 string          `json:"description1,omitempty"`
	Description2 string          `json:"description2,omitempty"`
	FinalURL     string          `json:"final_url,omitempty"`
	Header       string          `json:"header,omitempty"`
	Values       []string        `json:"values,omitempty"`
	PhoneNumber  string          `json:"phone_number,omitempty"`
	CountryCode  string          `json:"country_code,omitempty"`
	PriceType    string          `json:"price_type,omitempty"`
	Qualifier    string          `json:"qualifier,omitempty"`
	Currency     string          `json:"currency,omitempty"`
	Items        []PriceItem     `json:"items,omitempty"`
	Occasion     string          `json:"occasion,omitempty"`
	Item         string          `json:"item,omitempty"`
	PercentOff   decimal.Decimal `json:"percent_off,omitempty"`
	MoneyOff     decimal.Decimal `json:"money_off,omitempty"`
	PromoCode    string          `json:"promo_code,omitempty"`
	StartDate    string          `json:"start_date,omitempty"`
	EndDate      string          `json:"end_date,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
	Name         string          `json:"name,omitempty"`
	AltText      string          `json:"alt_text,omitempty"`
	BusinessName string          `json:"business_name,omitempty"`
	Address      string          `json:"address,omitempty"`
	City         string          `json:"city,omitempty"`
	PostalCode   string          `json:"postal_code,omitempty"`
}

// ErrUnknownExtension is wrapped when a spec names no known variant.
var ErrUnknownExtension = errors.New("unknown extension type")

// ParseExtensionKind matches the bulk-file label or a snake_case alias.
func ParseExtensionKind(s string) (ExtensionKind, bool) {
	norm := strings.ToLower(strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(s)))
	norm = strings.TrimSuffix(norm, " extension")
	switch norm {
	case "sitelink":
		return KindSitelink, true
	case "callout":
		return KindCallout, true
	case "structured snippet", "snippet":
		return KindStructuredSnippet, true
	case "call", "phone":
		return KindCall, true
	case "price":
		return KindPrice, true
	case "promotion", "promo":
		return KindPromotion, true
	case "image":
		return KindImage, true
	case "location":
		return KindLocation, true
	}
	return "", false
}

// ToExtension builds the variant named by Type. Unknown types return an
// error wrapping ErrUnknownExtension so callers can skip them.
func (s ExtensionSpec) ToExtension() (Extension, error) {
	kind, ok := ParseExtensionKind(s.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, s.Type)
	}
	switch kind {
	case KindSitelink:
		return Sitelink{Text: s.Text, Description1: s.Description1, Description2: s.Description2, FinalURL: s.FinalURL}, nil
	case KindCallout:
		return Callout{Text: s.Text}, nil
	case KindStructuredSnippet:
		return StructuredSnippet{Header: s.Header, Values: s.Values}, nil
	case KindCall:
		return CallExtension{PhoneNumber: s.PhoneNumber, CountryCode: s.CountryCode}, nil
	case KindPrice:
		return PriceExtension{PriceType: s.PriceType, Qualifier: s.Qualifier, Currency: s.Currency, Items: s.Items}, nil
	case KindPromotion:
		return PromotionExtension{
			Occasion:   s.Occasion,
			Item:       s.Item,
			PercentOff: s.PercentOff,
			MoneyOff:   s.MoneyOff,
			Currency:   s.Currency,
			PromoCode:  s.PromoCode,
			FinalURL:   s.FinalURL,
			StartDate:  s.StartDate,
			EndDate:    s.EndDate,
		}, nil
	case KindImage:
		return ImageExtension{ImageURL: s.ImageURL, Name: s.Name, AltText: s.AltText}, nil
	default:
		return LocationExtension{
			BusinessName: s.BusinessName,
			Address:      s.Address,
			City:         s.City,
			PostalCode:   s.PostalCode,
			CountryCode:  s.CountryCode,
		}, nil
	}
}
