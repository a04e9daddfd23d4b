package campaign

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campaignkit-go/pkg/creative"
	"campaignkit-go/pkg/keyword"
)

func TestLocationTargets_AddDedupsInOrder(t *testing.T) {
	var l LocationTargets
	l.Add(LocationCity, "Austin", " austin ", "Dallas", "")
	l.Add(LocationCountry, "US")
	l.Add("planet", "Mars")

	assert.Equal(t, []string{"Austin", "Dallas"}, l.Cities)
	assert.Equal(t, []string{"US"}, l.Countries)
	assert.Equal(t, 3, l.Len())
}

func TestLocationTargets_SelectClearsOtherKinds(t *testing.T) {
	var l LocationTargets
	l.Add(LocationCity, "Austin")
	l.Add(LocationState, "TX")

	l.Select(LocationZipCode, "78701", "78702")
	assert.Empty(t, l.Cities)
	assert.Empty(t, l.States)
	assert.Equal(t, []string{"78701", "78702"}, l.Values(LocationZipCode))
}

func validCampaign() *Campaign {
	c := &Campaign{
		Name:        "Plumbing",
		DailyBudget: decimal.NewFromInt(50),
		FinalURL:    "example.com",
		AdGroups: []AdGroup{{
			ID:       "ag-001",
			Name:     "plumber",
			Keywords: []keyword.Keyword{{Text: "[plumber near me]", MatchType: keyword.Exact}},
		}},
	}
	c.AdGroups[0].Creatives.AddAd(creative.ResponsiveAd{Headlines: []string{"Plumber"}})
	return c
}

func TestValidate(t *testing.T) {
	c := validCampaign()
	require.NoError(t, c.Validate())
	assert.Equal(t, "plumber near me", c.AdGroups[0].Theme())
	assert.Equal(t, 1, c.KeywordCount())
	assert.Equal(t, 1, c.AdCount())

	c.Name = " "
	err := c.Validate()
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "campaign.name", fe.Field)
	assert.ErrorIs(t, err, ErrMissingField)

	c = validCampaign()
	c.FinalURL = ""
	err = c.Validate()
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "ad_groups[0].ads[0].final_url", fe.Field)

	c = validCampaign()
	c.AdGroups[0].Name = ""
	require.True(t, errors.As(c.Validate(), &fe))
	assert.Equal(t, "ad_groups[0].name", fe.Field)

	c = validCampaign()
	c.AdGroups[0].Creatives.AddAd(creative.CallOnlyAd{Headline1: "Call"})
	require.True(t, errors.As(c.Validate(), &fe))
	assert.Equal(t, "ad_groups[0].ads[1].phone_number", fe.Field)

	c = validCampaign()
	c.AdGroups = append(c.AdGroups, AdGroup{ID: "ag-002", Name: " Plumber "})
	err = c.Validate()
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "ad_groups[1].name", fe.Field)
	assert.ErrorIs(t, err, ErrInvalidField)

	c = validCampaign()
	c.DailyBudget = decimal.NewFromInt(-1)
	err = c.Validate()
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "campaign.daily_budget", fe.Field)
	assert.ErrorIs(t, err, ErrInvalidField)
	assert.False(t, errors.Is(err, ErrMissingField))
}
