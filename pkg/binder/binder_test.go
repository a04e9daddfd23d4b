package binder

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignkit-go/pkg/campaign"
	"campaignkit-go/pkg/creative"
	"campaignkit-go/pkg/keyword"
)

func testGroups() []campaign.AdGroup {
	return []campaign.AdGroup{
		{ID: "ag-001", Name: "plumber", Keywords: []keyword.Keyword{{Text: "[plumber near me]"}, {Text: "plumber cost"}}},
		{ID: "ag-002", Name: "electrician", Keywords: []keyword.Keyword{{Text: "electrician near me"}}},
	}
}

func testContext() Context {
	return Context{
		BusinessName: "Acme Plumbing",
		PhoneNumber:  "(555) 010-0100",
		FinalURL:     "acme.example/plumbing",
		Extensions: []creative.Extension{
			creative.Callout{Text: "Free Estimates"},
			creative.Callout{Text: "free estimates"},
		},
	}
}

func TestBind_FullMix(t *testing.T) {
	res := New().Bind(testGroups(), DefaultMix(), testContext())

	require.Len(t, res.Groups, 2)
	assert.Equal(t, 2*3+2, res.Added)
	assert.Equal(t, 2, res.Existing)

	g := res.Groups[0]
	ads := g.Creatives.Ads()
	require.Len(t, ads, 3)
	assert.Equal(t, creative.KindResponsive, ads[0].Kind())
	assert.Equal(t, creative.KindDynamicKeyword, ads[1].Kind())
	assert.Equal(t, creative.KindCallOnly, ads[2].Kind())

	rsa := ads[0].(creative.ResponsiveAd)
	assert.Equal(t, "Plumber Near Me", rsa.Headlines[0])
	assert.Contains(t, rsa.Headlines, "Acme Plumbing")
	assert.Equal(t, []string{"plumber", "near"}, rsa.Paths)
	assert.Equal(t, "acme.example/plumbing", rsa.FinalURL)
	for _, h := range rsa.Headlines {
		assert.LessOrEqual(t, utf8.RuneCountInString(h), creative.HeadlineLimit)
	}

	dki := ads[1].(creative.DynamicKeywordAd)
	assert.Equal(t, "[Plumber Near Me]", dki.Headline1)

	call := ads[2].(creative.CallOnlyAd)
	assert.Equal(t, "Call Acme Plumbing", call.Headline2)
	assert.Equal(t, "acme.example/plumbing", call.VerificationURL)

	assert.Len(t, g.Creatives.Extensions(), 1)
}

func TestBind_IsIdempotentPerVariant(t *testing.T) {
	b := New()
	first := b.Bind(testGroups(), DefaultMix(), testContext())
	second := b.Bind(first.Groups, DefaultMix(), testContext())

	assert.Zero(t, second.Added)
	for _, g := range second.Groups {
		assert.Len(t, g.Creatives.Ads(), creative.MaxAdsPerGroup)
	}
}

func TestBind_DoesNotMutateInput(t *testing.T) {
	groups := testGroups()
	New().Bind(groups, DefaultMix(), testContext())
	for _, g := range groups {
		assert.True(t, g.Creatives.Empty())
	}
}

func TestBind_CallOnlyNeedsPhone(t *testing.T) {
	ctx := testContext()
	ctx.PhoneNumber = ""
	res := New().Bind(testGroups(), Mix{CallOnly: true}, ctx)

	assert.Equal(t, 2, res.Skipped)
	for _, g := range res.Groups {
		assert.Empty(t, g.Creatives.Ads())
	}
	require.NotEmpty(t, res.Warnings)
	assert.Equal(t, "plumber.call_only.phone_number", res.Warnings[0].Field)
}

func TestBind_LongThemeIsClampedWithWarning(t *testing.T) {
	groups := []campaign.AdGroup{{Name: "long", Keywords: []keyword.Keyword{{Text: "emergency water heater replacement service"}}}}
	res := New().Bind(groups, Mix{Responsive: true}, Context{FinalURL: "example.com"})

	require.NotEmpty(t, res.Warnings)
	assert.Equal(t, "headline_1", res.Warnings[0].Field)
	rsa := res.Groups[0].Creatives.Ads()[0].(creative.ResponsiveAd)
	assert.LessOrEqual(t, utf8.RuneCountInString(rsa.Headlines[0]), creative.HeadlineLimit)
}

func TestParseMix(t *testing.T) {
	m := ParseMix([]string{"responsive", "CALL", "hologram"})
	assert.True(t, m.Responsive)
	assert.True(t, m.CallOnly)
	assert.False(t, m.DynamicKeyword)
	assert.True(t, ParseMix(nil).Empty())
}
