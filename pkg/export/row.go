package export

// Kind is the logical record type of a row.
type Kind string

const (
	KindCampaign        Kind = "campaign"
	KindAdGroup         Kind = "ad_group"
	KindKeyword         Kind = "keyword"
	KindNegativeKeyword Kind = "negative_keyword"
	KindAd              Kind = "ad"
	KindExtension       Kind = "extension"
	KindLocation        Kind = "location"
)

// Kinds lists row kinds in file order.
var Kinds = []Kind{KindCampaign, KindAdGroup, KindKeyword, KindNegativeKeyword, KindAd, KindExtension, KindLocation}

// Row is one physical line. Only the columns relevant to its kind are set;
// the schema decides which of them are written and where.
type Row struct {
	Kind   Kind
	fields map[string]string
}

func newRow(kind Kind) Row {
	return Row{Kind: kind, fields: make(map[string]string)}
}

// Set stores a value; empty values are not stored.
func (r Row) Set(column, value string) Row {
	if value != "" {
		r.fields[column] = value
	}
	return r
}

func (r Row) Get(column string) string {
	return r.fields[column]
}

// Columns returns the number of populated columns.
func (r Row) Columns() int {
	return len(r.fields)
}

// Record projects the row onto the schema's column order.
func (r Row) Record(s *Schema) []string {
	rec := make([]string, len(s.Columns))
	for col, v := range r.fields {
		if i := s.Index(col); i >= 0 {
			rec[i] = v
		}
	}
	return rec
}
