package binder

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"campaignkit-go/pkg/campaign"
	"campaignkit-go/pkg/creative"
	"campaignkit-go/pkg/logger"
)

// Mix selects which ad variants each group receives.
type Mix struct {
	Responsive     bool `json:"responsive" mapstructure:"responsive"`
	DynamicKeyword bool `json:"dynamic_keyword" mapstructure:"dynamic_keyword"`
	CallOnly       bool `json:"call_only" mapstructure:"call_only"`
}

// DefaultMix enables all three variants.
func DefaultMix() Mix {
	return Mix{Responsive: true, DynamicKeyword: true, CallOnly: true}
}

// ParseMix builds a mix from ad kind names. Unknown names are ignored.
func ParseMix(kinds []string) Mix {
	var m Mix
	for _, k := range kinds {
		kind, ok := creative.ParseAdKind(strings.ToLower(strings.TrimSpace(k)))
		if !ok {
			continue
		}
		switch kind {
		case creative.KindResponsive:
			m.Responsive = true
		case creative.KindDynamicKeyword:
			m.DynamicKeyword = true
		case creative.KindCallOnly:
			m.CallOnly = true
		}
	}
	return m
}

func (m Mix) Empty() bool {
	return !m.Responsive && !m.DynamicKeyword && !m.CallOnly
}

// Context is the business data creatives are written from.
type Context struct {
	BusinessName    string `json:"business_name"`
	PhoneNumber     string `json:"phone_number"`
	CountryCode     string `json:"country_code"`
	FinalURL        string `json:"final_url"`
	VerificationURL string `json:"verification_url"`
	// Extensions are attached to every group.
	Extensions []creative.Extension `json:"-"`
}

// Result carries the bound groups and what happened while binding.
type Result struct {
	Groups   []campaign.AdGroup `json:"groups"`
	Added    int                `json:"added"`
	Existing int                `json:"existing"`
	Skipped  int                `json:"skipped"`
	Warnings []creative.Warning `json:"warnings,omitempty"`
}

func (r *Result) record(res creative.AddResult, warnings []creative.Warning) {
	switch res {
	case creative.Added:
		r.Added++
	case creative.AlreadyExists:
		r.Existing++
	default:
		r.Skipped++
	}
	r.Warnings = append(r.Warnings, warnings...)
}

// Binder writes ads and extensions onto ad groups.
type Binder struct {
	log *logger.Logger
}

func New() *Binder {
	return &Binder{log: logger.GetLogger().Component("binder")}
}

// SetLogger replaces the component logger
func (b *Binder) SetLogger(l *logger.Logger) {
	b.log = l.Component("binder")
}

// Bind returns copies of groups with the requested ads and the context
// extensions added. Groups that already hold a variant keep it.
func (b *Binder) Bind(groups []campaign.AdGroup, mix Mix, ctx Context) Result {
	res := Result{Groups: make([]campaign.AdGroup, len(groups))}
	title := cases.Title(language.English)
	for i, g := range groups {
		g.Creatives = g.Creatives.Clone()
		theme := title.String(strings.TrimSpace(g.Theme()))

		if mix.Responsive {
			res.record(g.Creatives.AddAd(b.responsive(theme, ctx)))
		}
		if mix.DynamicKeyword {
			res.record(g.Creatives.AddAd(b.dynamicKeyword(theme, ctx)))
		}
		if mix.CallOnly {
			if strings.TrimSpace(ctx.PhoneNumber) == "" {
				res.Skipped++
				res.Warnings = append(res.Warnings, creative.Warning{Field: fmt.Sprintf("%s.call_only.phone_number", g.Name)})
			} else {
				res.record(g.Creatives.AddAd(b.callOnly(theme, ctx)))
			}
		}
		for _, ext := range ctx.Extensions {
			res.record(g.Creatives.AddExtension(ext))
		}
		res.Groups[i] = g
	}

	b.log.WithFields(map[string]interface{}{
		"groups":   len(groups),
		"added":    res.Added,
		"existing": res.Existing,
		"skipped":  res.Skipped,
		"warnings": len(res.Warnings),
	}).Debug("Bound creatives")
	return res
}

// BindExtensions adds extensions to a campaign-level set.
func (b *Binder) BindExtensions(set *creative.Set, extensions []creative.Extension) Result {
	var res Result
	for _, ext := range extensions {
		res.record(set.AddExtension(ext))
	}
	return res
}

var stockHeadlines = []string{
	"Fast, Reliable Service",
	"Free Quotes Available",
	"Licensed & Insured Pros",
	"Book Online Today",
	"Same Day Appointments",
	"Satisfaction Guaranteed",
	"Upfront, Honest Pricing",
}

func (b *Binder) headlines(theme string, ctx Context) []string {
	candidates := []string{"Top Rated " + theme, theme + " Experts"}
	if ctx.BusinessName != "" {
		candidates = append(candidates, ctx.BusinessName)
	}
	if ctx.PhoneNumber != "" {
		candidates = append(candidates, "Call "+ctx.PhoneNumber)
	}
	candidates = append(candidates, stockHeadlines...)

	out := []string{theme}
	for _, h := range candidates {
		if utf8.RuneCountInString(h) <= creative.HeadlineLimit && !containsFold(out, h) {
			out = append(out, h)
		}
	}
	if len(out) > creative.MaxHeadlines {
		out = out[:creative.MaxHeadlines]
	}
	return out
}

func (b *Binder) descriptions(theme string, ctx Context) []string {
	who := ctx.BusinessName
	if who == "" {
		who = "Our team"
	}
	lower := strings.ToLower(theme)
	return []string{
		fmt.Sprintf("Looking for %s? %s delivers fast, reliable service you can trust.", lower, who),
		"Get a free quote today. Friendly experts, upfront pricing and no hidden fees.",
		"Call now or book online. Same-day appointments available in your area.",
		fmt.Sprintf("Trusted by local customers for quality %s. Contact us today.", lower),
	}
}

func paths(theme string) []string {
	words := strings.Fields(strings.ToLower(theme))
	if len(words) > creative.MaxPaths {
		words = words[:creative.MaxPaths]
	}
	return words
}

func (b *Binder) responsive(theme string, ctx Context) creative.Ad {
	return creative.ResponsiveAd{
		Headlines:    b.headlines(theme, ctx),
		Descriptions: b.descriptions(theme, ctx),
		Paths:        paths(theme),
		FinalURL:     ctx.FinalURL,
	}
}

// dynamicKeyword puts the theme in an insertion marker so the matched
// query replaces it at serving time.
func (b *Binder) dynamicKeyword(theme string, ctx Context) creative.Ad {
	second := ctx.BusinessName
	if second == "" || utf8.RuneCountInString(second) > creative.HeadlineLimit {
		second = "Trusted Local Experts"
	}
	desc := b.descriptions(theme, ctx)
	p := paths(theme)
	return creative.DynamicKeywordAd{
		Headline1:    "[" + theme + "]",
		Headline2:    second,
		Headline3:    "Book Online Today",
		Description1: desc[0],
		Description2: desc[1],
		Path1:        creative.At(p, 0),
		Path2:        creative.At(p, 1),
		FinalURL:     ctx.FinalURL,
	}
}

func (b *Binder) callOnly(theme string, ctx Context) creative.Ad {
	second := "Call Today"
	if ctx.BusinessName != "" && utf8.RuneCountInString("Call "+ctx.BusinessName) <= creative.HeadlineLimit {
		second = "Call " + ctx.BusinessName
	}
	verification := ctx.VerificationURL
	if verification == "" {
		verification = ctx.FinalURL
	}
	desc := b.descriptions(theme, ctx)
	return creative.CallOnlyAd{
		Headline1:       theme,
		Headline2:       second,
		Description1:    desc[2],
		Description2:    desc[1],
		PhoneNumber:     ctx.PhoneNumber,
		BusinessName:    ctx.BusinessName,
		VerificationURL: verification,
		CountryCode:     ctx.CountryCode,
	}
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
