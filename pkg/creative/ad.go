package creative

import "campaignkit-go/pkg/utils"

// AdKind identifies an ad variant. The values are the bulk-file ad types.
type AdKind string

const (
	KindResponsive     AdKind = "Responsive search ad"
	KindDynamicKeyword AdKind = "Expanded text ad"
	KindCallOnly       AdKind = "Call-only ad"
)

// AdKinds lists the ad variants in binding order.
var AdKinds = []AdKind{KindResponsive, KindDynamicKeyword, KindCallOnly}

// ParseAdKind accepts short names ("responsive", "dki", "call") as well as
// the bulk-file labels.
func ParseAdKind(s string) (AdKind, bool) {
	switch s {
	case "responsive", "rsa", string(KindResponsive):
		return KindResponsive, true
	case "dynamic_keyword", "dki", "dynamic", string(KindDynamicKeyword):
		return KindDynamicKeyword, true
	case "call_only", "call", string(KindCallOnly):
		return KindCallOnly, true
	}
	return "", false
}

// Ad is one creative. Only the variants in this package implement it.
type Ad interface {
	Kind() AdKind
	// Clamp returns a copy with every text field cut to its limit.
	Clamp() (Ad, []Warning)
	// Fingerprint identifies the ad content for export deduplication.
	Fingerprint() string
	URL() string
	isAd()
}

// ResponsiveAd rotates up to 15 headlines and 4 descriptions.
type ResponsiveAd struct {
	Headlines    []string `json:"headlines"`
	Descriptions []string `json:"descriptions"`
	Paths        []string `json:"paths,omitempty"`
	FinalURL     string   `json:"final_url"`
}

func (ResponsiveAd) Kind() AdKind { return KindResponsive }
func (ResponsiveAd) isAd()        {}
func (a ResponsiveAd) URL() string { return a.FinalURL }

func (a ResponsiveAd) Clamp() (Ad, []Warning) {
	var c clamper
	out := ResponsiveAd{FinalURL: a.FinalURL}
	out.Headlines = c.clampAll("headline", c.capCount("headlines", a.Headlines, MaxHeadlines), HeadlineLimit)
	out.Descriptions = c.clampAll("description", c.capCount("descriptions", a.Descriptions, MaxDescriptions), DescriptionLimit)
	out.Paths = c.clampAll("path", c.capCount("paths", a.Paths, MaxPaths), PathLimit)
	return out, c.warnings
}

// Fingerprint covers the first three headlines and first two descriptions.
func (a ResponsiveAd) Fingerprint() string {
	return utils.Fingerprint(
		At(a.Headlines, 0), At(a.Headlines, 1), At(a.Headlines, 2),
		At(a.Descriptions, 0), At(a.Descriptions, 1),
	)
}

// DynamicKeywordAd carries fixed headline and description slots. Headlines
// may contain a [default text] insertion marker.
type DynamicKeywordAd struct {
	Headline1    string `json:"headline1"`
	Headline2    string `json:"headline2"`
	Headline3    string `json:"headline3,omitempty"`
	Description1 string `json:"description1"`
	Description2 string `json:"description2,omitempty"`
	Path1        string `json:"path1,omitempty"`
	Path2        string `json:"path2,omitempty"`
	FinalURL     string `json:"final_url"`
}

func (DynamicKeywordAd) Kind() AdKind  { return KindDynamicKeyword }
func (DynamicKeywordAd) isAd()         {}
func (a DynamicKeywordAd) URL() string { return a.FinalURL }

func (a DynamicKeywordAd) Clamp() (Ad, []Warning) {
	var c clamper
	return DynamicKeywordAd{
		Headline1:    c.clamp("headline_1", a.Headline1, HeadlineLimit),
		Headline2:    c.clamp("headline_2", a.Headline2, HeadlineLimit),
		Headline3:    c.clamp("headline_3", a.Headline3, HeadlineLimit),
		Description1: c.clamp("description_1", a.Description1, DescriptionLimit),
		Description2: c.clamp("description_2", a.Description2, DescriptionLimit),
		Path1:        c.clamp("path_1", a.Path1, PathLimit),
		Path2:        c.clamp("path_2", a.Path2, PathLimit),
		FinalURL:     a.FinalURL,
	}, c.warnings
}

func (a DynamicKeywordAd) Fingerprint() string {
	return utils.Fingerprint(a.Headline1, a.Headline2, a.Headline3, a.Description1, a.Description2)
}

// CallOnlyAd drives phone calls instead of site visits.
type CallOnlyAd struct {
	Headline1       string `json:"headline1"`
	Headline2       string `json:"headline2"`
	Description1    string `json:"description1"`
	Description2    string `json:"description2,omitempty"`
	PhoneNumber     string `json:"phone_number"`
	BusinessName    string `json:"business_name"`
	VerificationURL string `json:"verification_url"`
	CountryCode     string `json:"country_code,omitempty"`
}

func (CallOnlyAd) Kind() AdKind  { return KindCallOnly }
func (CallOnlyAd) isAd()         {}
func (a CallOnlyAd) URL() string { return a.VerificationURL }

func (a CallOnlyAd) Clamp() (Ad, []Warning) {
	var c clamper
	return CallOnlyAd{
		Headline1:       c.clamp("headline_1", a.Headline1, HeadlineLimit),
		Headline2:       c.clamp("headline_2", a.Headline2, HeadlineLimit),
		Description1:    c.clamp("description_1", a.Description1, DescriptionLimit),
		Description2:    c.clamp("description_2", a.Description2, DescriptionLimit),
		PhoneNumber:     a.PhoneNumber,
		BusinessName:    c.clamp("business_name", a.BusinessName, BusinessNameLimit),
		VerificationURL: a.VerificationURL,
		CountryCode:     a.CountryCode,
	}, c.warnings
}

// Fingerprint covers both headlines and the dialled digits.
func (a CallOnlyAd) Fingerprint() string {
	return utils.Fingerprint(a.Headline1, a.Headline2, Digits(a.PhoneNumber))
}

// At returns values[i] or "" when out of range.
func At(values []string, i int) string {
	if i < 0 || i >= len(values) {
		return ""
	}
	return values[i]
}

// Digits keeps the digits of a phone number and a leading plus.
func Digits(phone string) string {
	out := make([]rune, 0, len(phone))
	for i, r := range phone {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			out = append(out, r)
		}
	}
	return string(out)
}
