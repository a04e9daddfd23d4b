package export

import (
	"fmt"
	"strings"

	"campaignkit-go/pkg/campaign"
	"campaignkit-go/pkg/creative"
)

// field clamps one ad text value after marker rewriting and records a
// warning when it had to be cut.
func (r *run) field(group, column, value, fallback string, limit int) string {
	text := r.markers.Rewrite(value, fallback)
	out, cut := clampMarked(text, limit)
	if cut {
		r.stats.Warnings = append(r.stats.Warnings, creative.Warning{
			Field:     group + "." + column,
			Limit:     limit,
			Original:  text,
			Truncated: out,
		})
	}
	return out
}

func (r *run) finalURL(url string) string {
	if strings.TrimSpace(url) == "" {
		url = r.c.FinalURL
	}
	return NormalizeURL(url)
}

func (r *run) adRows() {
	for _, g := range r.c.AdGroups {
		r.groupAdRows(g, g.Creatives.Ads())
	}
}

// groupAdRows writes ad rows for one group. Responsive rows are capped and
// every variant is deduplicated by its content fingerprint.
func (r *run) groupAdRows(g campaign.AdGroup, ads []creative.Ad) {
	theme := g.Theme()
	responsive := 0
	seen := make(map[string]bool)

	for i, ad := range ads {
		var row Row
		var fingerprint string

		switch a := ad.(type) {
		case creative.ResponsiveAd:
			if responsive >= MaxResponsiveRowsPerGroup {
				r.stats.CappedAds++
				continue
			}
			row, fingerprint = r.responsiveRow(g, a, theme)
		case creative.DynamicKeywordAd:
			row, fingerprint = r.dynamicRow(g, a, theme)
		case creative.CallOnlyAd:
			row, fingerprint = r.callOnlyRow(g, a, theme)
		default:
			continue
		}

		key := string(ad.Kind()) + "#" + fingerprint
		if seen[key] {
			r.stats.DuplicateAds++
			continue
		}
		seen[key] = true
		if ad.Kind() == creative.KindResponsive {
			responsive++
		}
		r.add(row.Set("Ad ID", fmt.Sprintf("%s-ad-%d", g.ID, i+1)))
	}
}

func (r *run) adRow(g campaign.AdGroup, kind creative.AdKind) Row {
	return newRow(KindAd).
		Set(ColCampaign, r.campaign).
		Set(ColAdGroup, g.Name).
		Set(ColAdType, string(kind)).
		Set(ColAdStatus, "Enabled")
}

func (r *run) responsiveRow(g campaign.AdGroup, a creative.ResponsiveAd, theme string) (Row, string) {
	row := r.adRow(g, a.Kind()).Set(ColFinalURL, r.finalURL(a.FinalURL))
	out := creative.ResponsiveAd{}
	for i, h := range a.Headlines {
		if i >= creative.MaxHeadlines {
			break
		}
		v := r.field(g.Name, Headline(i+1), h, theme, creative.HeadlineLimit)
		out.Headlines = append(out.Headlines, v)
		row = row.Set(Headline(i+1), v)
	}
	for i, d := range a.Descriptions {
		if i >= creative.MaxDescriptions {
			break
		}
		v := r.field(g.Name, Description(i+1), d, theme, creative.DescriptionLimit)
		out.Descriptions = append(out.Descriptions, v)
		row = row.Set(Description(i+1), v)
	}
	row = row.
		Set(ColPath1, r.field(g.Name, ColPath1, creative.At(a.Paths, 0), theme, creative.PathLimit)).
		Set(ColPath2, r.field(g.Name, ColPath2, creative.At(a.Paths, 1), theme, creative.PathLimit))
	return row, out.Fingerprint()
}

func (r *run) dynamicRow(g campaign.AdGroup, a creative.DynamicKeywordAd, theme string) (Row, string) {
	out := creative.DynamicKeywordAd{
		Headline1:    r.field(g.Name, Headline(1), a.Headline1, theme, creative.HeadlineLimit),
		Headline2:    r.field(g.Name, Headline(2), a.Headline2, theme, creative.HeadlineLimit),
		Headline3:    r.field(g.Name, Headline(3), a.Headline3, theme, creative.HeadlineLimit),
		Description1: r.field(g.Name, Description(1), a.Description1, theme, creative.DescriptionLimit),
		Description2: r.field(g.Name, Description(2), a.Description2, theme, creative.DescriptionLimit),
	}
	row := r.adRow(g, a.Kind()).
		Set(ColFinalURL, r.finalURL(a.FinalURL)).
		Set(Headline(1), out.Headline1).
		Set(Headline(2), out.Headline2).
		Set(Headline(3), out.Headline3).
		Set(Description(1), out.Description1).
		Set(Description(2), out.Description2).
		Set(ColPath1, r.field(g.Name, ColPath1, a.Path1, theme, creative.PathLimit)).
		Set(ColPath2, r.field(g.Name, ColPath2, a.Path2, theme, creative.PathLimit))
	return row, out.Fingerprint()
}

func (r *run) callOnlyRow(g campaign.AdGroup, a creative.CallOnlyAd, theme string) (Row, string) {
	out := creative.CallOnlyAd{
		Headline1:   r.field(g.Name, Headline(1), a.Headline1, theme, creative.HeadlineLimit),
		Headline2:   r.field(g.Name, Headline(2), a.Headline2, theme, creative.HeadlineLimit),
		PhoneNumber: strings.TrimSpace(a.PhoneNumber),
	}
	row := r.adRow(g, a.Kind()).
		Set(Headline(1), out.Headline1).
		Set(Headline(2), out.Headline2).
		Set(Description(1), r.field(g.Name, Description(1), a.Description1, theme, creative.DescriptionLimit)).
		Set(Description(2), r.field(g.Name, Description(2), a.Description2, theme, creative.DescriptionLimit)).
		Set(ColPhoneNumber, out.PhoneNumber).
		Set(ColCountryCode, a.CountryCode).
		Set(ColBusinessName, r.field(g.Name, ColBusinessName, a.BusinessName, theme, creative.BusinessNameLimit)).
		Set(ColVerificationURL, r.finalURL(a.VerificationURL))
	return row, out.Fingerprint()
}

// extensionRows writes campaign-level then group-level extensions, one
// kind at a time.
func (r *run) extensionRows() error {
	for _, kind := range creative.ExtensionKinds {
		for _, ext := range r.c.Extensions.ExtensionsOf(kind) {
			if err := r.extensionRow("", "Campaign", ext); err != nil {
				return err
			}
		}
		for _, g := range r.c.AdGroups {
			for _, ext := range g.Creatives.ExtensionsOf(kind) {
				if err := r.extensionRow(g.Name, "Ad group", ext); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (r *run) extensionRow(group, level string, ext creative.Extension) error {
	clamped, warnings := ext.Clamp()
	r.stats.Warnings = append(r.stats.Warnings, warnings...)

	row := newRow(KindExtension).
		Set(ColCampaign, r.campaign).
		Set(ColAdGroup, group).
		Set(ColAssetLevel, level)

	switch e := clamped.(type) {
	case creative.Sitelink:
		row = row.
			Set(ColLinkText, e.Text).
			Set(ColDescriptionLine1, e.Description1).
			Set(ColDescriptionLine2, e.Description2).
			Set(ColSitelinkURL, r.finalURL(e.FinalURL))
	case creative.Callout:
		row = row.Set(ColCalloutText, e.Text)
	case creative.StructuredSnippet:
		row = row.
			Set(ColSnippetHeader, e.Header).
			Set(ColSnippetValues, strings.Join(e.Values, ";"))
	case creative.CallExtension:
		row = row.
			Set(ColPhoneNumber, strings.TrimSpace(e.PhoneNumber)).
			Set(ColCountryCode, e.CountryCode)
	case creative.PriceExtension:
		row = row.
			Set(ColPriceType, e.PriceType).
			Set(ColPriceQualifier, e.Qualifier).
			Set(ColCurrency, e.Currency)
		for i, it := range e.Items {
			n := i + 1
			row = row.
				Set(PriceItemColumn(n, "header"), it.Header).
				Set(PriceItemColumn(n, "description"), it.Description).
				Set(PriceItemColumn(n, "price"), it.Price.StringFixed(2)).
				Set(PriceItemColumn(n, "unit"), it.Unit).
				Set(PriceItemColumn(n, "final URL"), r.finalURL(it.FinalURL))
		}
	case creative.PromotionExtension:
		start, err := r.date("extensions.promotion.start_date", e.StartDate)
		if err != nil {
			return err
		}
		end, err := r.date("extensions.promotion.end_date", e.EndDate)
		if err != nil {
			return err
		}
		row = row.
			Set(ColOccasion, e.Occasion).
			Set(ColPromotionTarget, e.Item).
			Set(ColMoneyOff, money(e.MoneyOff)).
			Set(ColCurrency, e.Currency).
			Set(ColPromotionCode, e.PromoCode).
			Set(ColPromotionStart, start).
			Set(ColPromotionEnd, end).
			Set(ColPromotionURL, r.finalURL(e.FinalURL))
		if e.PercentOff.IsPositive() {
			row = row.Set(ColPercentOff, e.PercentOff.String()+"%")
		}
	case creative.ImageExtension:
		row = row.
			Set(ColImageURL, NormalizeURL(e.ImageURL)).
			Set(ColImageName, e.Name).
			Set(ColImageAltText, e.AltText)
	case creative.LocationExtension:
		row = row.
			Set(ColBusinessName, e.BusinessName).
			Set(ColAddressLine1, e.Address).
			Set(ColAddressCity, e.City).
			Set(ColAddressPostal, e.PostalCode).
			Set(ColAddressCountry, e.CountryCode)
	}
	r.add(row)
	return nil
}

var locationLabels = map[campaign.LocationKind]string{
	campaign.LocationCountry: "Country",
	campaign.LocationState:   "State",
	campaign.LocationCity:    "City",
	campaign.LocationZipCode: "Postal code",
}

func (r *run) locationRows() {
	targets := r.c.Locations.Normalized()
	for _, kind := range campaign.LocationKinds {
		for _, v := range targets.Values(kind) {
			r.add(newRow(KindLocation).
				Set(ColCampaign, r.campaign).
				Set(ColLocation, v).
				Set(ColLocationType, locationLabels[kind]))
		}
	}
}
