package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/shopspring/decimal"

	"campaignkit-go/pkg/campaign"
	"campaignkit-go/pkg/creative"
	"campaignkit-go/pkg/keyword"
	"campaignkit-go/pkg/logger"
)

// FieldError, ErrMissingField and ErrInvalidField are the aggregate
// validation errors the serializer returns.
type FieldError = campaign.FieldError

var (
	ErrMissingField = campaign.ErrMissingField
	ErrInvalidField = campaign.ErrInvalidField
)

// MaxResponsiveRowsPerGroup caps responsive ad rows per ad group.
const MaxResponsiveRowsPerGroup = 3

type Options struct {
	Schema     *Schema `json:"-"`
	DateLayout string  `json:"date_layout" mapstructure:"date_layout"`
	// BOM prefixes Write output with a UTF-8 byte-order mark. Bytes always
	// does.
	BOM bool `json:"bom" mapstructure:"bom"`
}

// Stats describes one serialization.
type Stats struct {
	Schema       string             `json:"schema"`
	Columns      int                `json:"columns"`
	Rows         int                `json:"rows"`
	ByKind       map[Kind]int       `json:"by_kind"`
	DuplicateAds int                `json:"duplicate_ads"`
	CappedAds    int                `json:"capped_ads"`
	Warnings     []creative.Warning `json:"warnings,omitempty"`
}

// Serializer flattens a campaign into bulk-import rows. It holds no
// per-call state and is safe for concurrent use.
type Serializer struct {
	opts Options
	log  *logger.Logger
}

func NewSerializer(opts Options) *Serializer {
	if opts.Schema == nil {
		opts.Schema = Standard
	}
	if opts.DateLayout == "" {
		opts.DateLayout = DefaultDateLayout
	}
	return &Serializer{opts: opts, log: logger.GetLogger().Component("exporter")}
}

// SetLogger replaces the component logger
func (s *Serializer) SetLogger(l *logger.Logger) {
	s.log = l.Component("exporter")
}

func (s *Serializer) Schema() *Schema {
	return s.opts.Schema
}

// run holds the state of one serialization.
type run struct {
	s        *Serializer
	c        *campaign.Campaign
	markers  *markerRewriter
	rows     []Row
	stats    *Stats
	campaign string
}

// Rows builds the rows of c in file order: campaign, ad groups, keywords,
// negatives (group then campaign), ads, extensions, locations.
func (s *Serializer) Rows(c *campaign.Campaign) ([]Row, *Stats, error) {
	if c == nil {
		return nil, nil, &FieldError{Field: "campaign"}
	}
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	r := s.newRun(c)

	if err := r.campaignRow(); err != nil {
		return nil, nil, err
	}
	r.adGroupRows()
	r.keywordRows()
	r.negativeRows()
	r.adRows()
	if err := r.extensionRows(); err != nil {
		return nil, nil, err
	}
	r.locationRows()

	r.stats.Rows = len(r.rows)
	if len(r.stats.Warnings) > 0 {
		s.log.WithFields(map[string]interface{}{
			"campaign": r.campaign,
			"warnings": len(r.stats.Warnings),
		}).Warn("Export truncated fields to platform limits")
	}
	return r.rows, r.stats, nil
}

// Records returns the header followed by one record per row.
func (s *Serializer) Records(c *campaign.Campaign) ([][]string, *Stats, error) {
	rows, stats, err := s.Rows(c)
	if err != nil {
		return nil, nil, err
	}
	records := make([][]string, 0, len(rows)+1)
	records = append(records, append([]string(nil), s.opts.Schema.Columns...))
	for _, row := range rows {
		records = append(records, row.Record(s.opts.Schema))
	}
	return records, stats, nil
}

// Write serializes c as CSV into w.
func (s *Serializer) Write(w io.Writer, c *campaign.Campaign) (*Stats, error) {
	return s.write(w, c, s.opts.BOM)
}

// Bytes returns the file as a single BOM-prefixed blob.
func (s *Serializer) Bytes(c *campaign.Campaign) ([]byte, *Stats, error) {
	var buf bytes.Buffer
	stats, err := s.write(&buf, c, true)
	if err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), stats, nil
}

func (s *Serializer) write(w io.Writer, c *campaign.Campaign, bom bool) (*Stats, error) {
	records, stats, err := s.Records(c)
	if err != nil {
		return nil, err
	}

	out := w
	var tw *transform.Writer
	if bom {
		tw = transform.NewWriter(w, xunicode.UTF8BOM.NewEncoder())
		out = tw
	}
	cw := csv.NewWriter(out)
	if err := cw.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	if tw != nil {
		if err := tw.Close(); err != nil {
			return nil, fmt.Errorf("failed to flush csv: %w", err)
		}
	}
	return stats, nil
}

var filenameUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// Filename builds campaign_<name>_<timestamp>.csv.
func Filename(campaignName string, now time.Time) string {
	slug := strings.Trim(filenameUnsafe.ReplaceAllString(strings.ToLower(campaignName), "_"), "_")
	if slug == "" {
		slug = "export"
	}
	return fmt.Sprintf("campaign_%s_%s.csv", slug, now.Format("20060102_150405"))
}

func (s *Serializer) newRun(c *campaign.Campaign) *run {
	return &run{
		s:        s,
		c:        c,
		markers:  newMarkerRewriter(),
		campaign: strings.TrimSpace(c.Name),
		stats: &Stats{
			Schema:  s.opts.Schema.Name,
			Columns: len(s.opts.Schema.Columns),
			ByKind:  make(map[Kind]int, len(Kinds)),
		},
	}
}

func (r *run) add(row Row) {
	r.rows = append(r.rows, row)
	r.stats.ByKind[row.Kind]++
}

func (r *run) date(field, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	t, ok := ParseDate(value)
	if !ok {
		return "", &FieldError{Field: field, Reason: fmt.Sprintf("unrecognized date %q", value)}
	}
	return t.Format(r.s.opts.DateLayout), nil
}

func money(d decimal.Decimal) string {
	if !d.IsPositive() {
		return ""
	}
	return d.StringFixed(2)
}

func (r *run) campaignRow() error {
	row := newRow(KindCampaign).
		Set(ColCampaign, r.campaign).
		Set(ColCampaignType, "Search").
		Set(ColCampaignStatus, "Enabled").
		Set(ColBudget, money(r.c.DailyBudget)).
		Set(ColBudgetType, "Daily").
		Set(ColBidStrategy, "Manual CPC").
		Set(ColNetworks, "Google search").
		Set(ColLanguages, "en").
		Set(ColStructure, r.c.StructureID)

	if !r.c.DateRange.Empty() {
		start, err := r.date("campaign.date_range.start", r.c.DateRange.Start)
		if err != nil {
			return err
		}
		end, err := r.date("campaign.date_range.end", r.c.DateRange.End)
		if err != nil {
			return err
		}
		row = row.Set(ColStartDate, start).Set(ColEndDate, end)
	}
	r.add(row)
	return nil
}

func (r *run) adGroupRows() {
	for _, g := range r.c.AdGroups {
		maxCPC := decimal.Zero
		for _, k := range g.Keywords {
			if k.CPC.GreaterThan(maxCPC) {
				maxCPC = k.CPC
			}
		}
		r.add(newRow(KindAdGroup).
			Set(ColCampaign, r.campaign).
			Set(ColAdGroup, g.Name).
			Set(ColAdGroupStatus, "Enabled").
			Set(ColMaxCPC, money(maxCPC)).
			Set("Ad Group ID", g.ID))
	}
}

func (r *run) keywordRows() {
	for _, g := range r.c.AdGroups {
		for _, k := range g.Keywords {
			volume := string(k.Volume)
			if k.Searches > 0 {
				volume = strconv.Itoa(k.Searches)
			}
			row := newRow(KindKeyword).
				Set(ColCampaign, r.campaign).
				Set(ColAdGroup, g.Name).
				Set(ColKeyword, k.BaseText()).
				Set(ColCriterionType, criterion(k, false)).
				Set(ColKeywordStatus, "Enabled").
				Set(ColKeywordMaxCPC, money(k.CPC)).
				Set(ColSearchVolume, volume).
				Set(ColIntent, string(k.Intent)).
				Set("Keyword ID", k.ID)
			if k.Competition > 0 {
				row = row.Set(ColCompetition, strconv.FormatFloat(k.Competition, 'f', 2, 64))
			}
			r.add(row)
		}
	}
}

func (r *run) negativeRows() {
	for _, g := range r.c.AdGroups {
		for _, k := range g.NegativeKeywords {
			r.add(newRow(KindNegativeKeyword).
				Set(ColCampaign, r.campaign).
				Set(ColAdGroup, g.Name).
				Set(ColKeyword, k.BaseText()).
				Set(ColCriterionType, criterion(k, true)))
		}
	}
	for _, k := range r.c.NegativeKeywords {
		r.add(newRow(KindNegativeKeyword).
			Set(ColCampaign, r.campaign).
			Set(ColKeyword, k.BaseText()).
			Set(ColCriterionType, criterion(k, true)))
	}
}

// criterion labels k, deriving the match type from decoration when unset.
func criterion(k keyword.Keyword, negative bool) string {
	mt := k.MatchType
	if mt == "" {
		mt = keyword.DetectMatchType(k.Text)
	}
	if negative && !mt.IsNegative() {
		mt = mt.Negative()
	}
	if !negative && mt.IsNegative() {
		mt = mt.Positive()
	}
	return mt.Label()
}
