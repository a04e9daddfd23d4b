package creative

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	out, cut := Truncate("Emergency Plumbing Service Available Now", HeadlineLimit)
	assert.True(t, cut)
	assert.LessOrEqual(t, utf8.RuneCountInString(out), HeadlineLimit)
	assert.Equal(t, "Emergency Plumbing Service Ava", out)

	out, cut = Truncate("Plumber", HeadlineLimit)
	assert.False(t, cut)
	assert.Equal(t, "Plumber", out)

	out, _ = Truncate("Ünïcödé ßtraße", 5)
	assert.Equal(t, "Ünïcö", out)
}

func TestSet_OneAdPerVariant(t *testing.T) {
	var s Set
	res, _ := s.AddAd(ResponsiveAd{Headlines: []string{"A"}, FinalURL: "example.com"})
	assert.Equal(t, Added, res)

	res, _ = s.AddAd(ResponsiveAd{Headlines: []string{"B"}, FinalURL: "example.com"})
	assert.Equal(t, AlreadyExists, res)

	res, _ = s.AddAd(DynamicKeywordAd{Headline1: "[Plumber]", FinalURL: "example.com"})
	assert.Equal(t, Added, res)
	res, _ = s.AddAd(CallOnlyAd{Headline1: "Call Now", PhoneNumber: "555-0100"})
	assert.Equal(t, Added, res)

	require.Len(t, s.Ads(), MaxAdsPerGroup)
	ad, ok := s.Ad(KindResponsive)
	require.True(t, ok)
	assert.Equal(t, "A", ad.(ResponsiveAd).Headlines[0])
}

func TestSet_AddAdClampsWithWarnings(t *testing.T) {
	var s Set
	long := strings.Repeat("x", 40)
	res, warnings := s.AddAd(ResponsiveAd{
		Headlines:    []string{long, "Short"},
		Descriptions: []string{strings.Repeat("d", 100)},
		Paths:        []string{"emergency-plumbing", "24-7"},
	})
	assert.Equal(t, Added, res)
	require.Len(t, warnings, 3)
	assert.Equal(t, "headline_1", warnings[0].Field)
	assert.Equal(t, HeadlineLimit, warnings[0].Limit)
	assert.Equal(t, long, warnings[0].Original)
	assert.Equal(t, "description_1", warnings[1].Field)
	assert.Equal(t, "path_1", warnings[2].Field)

	ad, _ := s.Ad(KindResponsive)
	rsa := ad.(ResponsiveAd)
	assert.Len(t, rsa.Headlines[0], HeadlineLimit)
	assert.Len(t, rsa.Descriptions[0], DescriptionLimit)
	assert.Len(t, rsa.Paths[0], PathLimit)
}

func TestSet_ExtensionDedup(t *testing.T) {
	var s Set
	res, _ := s.AddExtension(Sitelink{Text: "Contact Us", FinalURL: "example.com/contact"})
	assert.Equal(t, Added, res)
	res, _ = s.AddExtension(Sitelink{Text: "contact  us", FinalURL: "example.com/other"})
	assert.Equal(t, AlreadyExists, res)

	res, _ = s.AddExtension(Callout{Text: "Contact Us"})
	assert.Equal(t, Added, res, "same text under another kind is distinct")

	res, _ = s.AddExtension(StructuredSnippet{Header: "Types", Values: []string{"Drains", "Leaks"}})
	assert.Equal(t, Added, res)
	res, _ = s.AddExtension(StructuredSnippet{Header: "types", Values: []string{"drains", "leaks"}})
	assert.Equal(t, AlreadyExists, res)
	res, _ = s.AddExtension(StructuredSnippet{Header: "Types", Values: []string{"Leaks", "Drains"}})
	assert.Equal(t, Added, res)

	assert.Len(t, s.Extensions(), 4)
	assert.Len(t, s.ExtensionsOf(KindStructuredSnippet), 2)
}

func TestExtensionClamps(t *testing.T) {
	ext, warnings := Sitelink{
		Text:         strings.Repeat("s", 30),
		Description1: strings.Repeat("d", 40),
	}.Clamp()
	sl := ext.(Sitelink)
	assert.Len(t, sl.Text, SitelinkTextLimit)
	assert.Len(t, sl.Description1, SitelinkDescriptionLimit)
	assert.Len(t, warnings, 2)

	ext, warnings = Callout{Text: strings.Repeat("c", 26)}.Clamp()
	assert.Len(t, ext.(Callout).Text, CalloutLimit)
	assert.Len(t, warnings, 1)

	ext, warnings = StructuredSnippet{Header: "Our Stuff", Values: []string{"A"}}.Clamp()
	assert.Equal(t, DefaultSnippetHeader, ext.(StructuredSnippet).Header)
	require.Len(t, warnings, 1)
	assert.Equal(t, "snippet_header", warnings[0].Field)
}

func TestExtensionDisplay(t *testing.T) {
	price := PriceExtension{
		PriceType: "Services",
		Currency:  "USD",
		Items:     []PriceItem{{Header: "Drain cleaning", Price: decimal.RequireFromString("99")}},
	}
	assert.Equal(t, "Drain cleaning from USD 99.00", price.Display())

	promo := PromotionExtension{Item: "Water heaters", PercentOff: decimal.NewFromInt(20)}
	assert.Equal(t, "20% off Water heaters", promo.Display())

	snippet := StructuredSnippet{Header: "Types", Values: []string{"Drains", "Leaks"}}
	assert.Equal(t, "Types: Drains, Leaks", snippet.Display())

	assert.Equal(t, "+15550100", CallExtension{PhoneNumber: "+1 (555) 0100"}.Key())
}

func TestFingerprints(t *testing.T) {
	a := ResponsiveAd{Headlines: []string{"A", "B", "C", "D"}, Descriptions: []string{"X", "Y", "Z"}}
	b := ResponsiveAd{Headlines: []string{"a", "b", "c", "other"}, Descriptions: []string{"x", "y"}}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	c1 := CallOnlyAd{Headline1: "Call", Headline2: "Now", PhoneNumber: "555-0100"}
	c2 := CallOnlyAd{Headline1: "Call", Headline2: "Now", PhoneNumber: "(555) 0100", Description1: "different"}
	assert.Equal(t, c1.Fingerprint(), c2.Fingerprint())
}

func TestExtensionSpec(t *testing.T) {
	ext, err := ExtensionSpec{Type: "structured_snippet", Header: "Types", Values: []string{"A"}}.ToExtension()
	require.NoError(t, err)
	assert.Equal(t, KindStructuredSnippet, ext.Kind())

	ext, err = ExtensionSpec{Type: "Sitelink extension", Text: "Book"}.ToExtension()
	require.NoError(t, err)
	assert.Equal(t, KindSitelink, ext.Kind())

	_, err = ExtensionSpec{Type: "hologram"}.ToExtension()
	assert.True(t, errors.Is(err, ErrUnknownExtension))
}

func TestSet_MarshalJSONTagsVariants(t *testing.T) {
	var s Set
	s.AddAd(CallOnlyAd{Headline1: "Call Now", PhoneNumber: "555"})
	s.AddExtension(Callout{Text: "Free Estimates"})

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded struct {
		Ads        []map[string]interface{} `json:"ads"`
		Extensions []map[string]interface{} `json:"extensions"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Ads, 1)
	assert.Equal(t, string(KindCallOnly), decoded.Ads[0]["type"])
	require.Len(t, decoded.Extensions, 1)
	assert.Equal(t, "Callout", decoded.Extensions[0]["type"])
}
