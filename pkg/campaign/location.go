package campaign

import "strings"

// LocationKind is one targeting tab.
type LocationKind string

const (
	LocationCountry LocationKind = "country"
	LocationState   LocationKind = "state"
	LocationCity    LocationKind = "city"
	LocationZipCode LocationKind = "zip"
)

// LocationKinds lists the kinds in export order.
var LocationKinds = []LocationKind{LocationCountry, LocationState, LocationCity, LocationZipCode}

// LocationTargets holds ordered, duplicate-free location sets. Any
// combination is valid; Select gives the single-tab behaviour.
type LocationTargets struct {
	Countries []string `json:"countries,omitempty"`
	States    []string `json:"states,omitempty"`
	Cities    []string `json:"cities,omitempty"`
	ZipCodes  []string `json:"zip_codes,omitempty"`
}

func (l *LocationTargets) list(kind LocationKind) *[]string {
	switch kind {
	case LocationCountry:
		return &l.Countries
	case LocationState:
		return &l.States
	case LocationCity:
		return &l.Cities
	case LocationZipCode:
		return &l.ZipCodes
	}
	return nil
}

// Add appends trimmed values of kind, skipping case-insensitive repeats.
func (l *LocationTargets) Add(kind LocationKind, values ...string) {
	dst := l.list(kind)
	if dst == nil {
		return
	}
	for _, v := range values {
		v = strings.Join(strings.Fields(v), " ")
		if v == "" || containsFold(*dst, v) {
			continue
		}
		*dst = append(*dst, v)
	}
}

// Select replaces all targeting with values of a single kind.
func (l *LocationTargets) Select(kind LocationKind, values ...string) {
	*l = LocationTargets{}
	l.Add(kind, values...)
}

// Values returns the entries of one kind.
func (l LocationTargets) Values(kind LocationKind) []string {
	dst := l.list(kind)
	if dst == nil {
		return nil
	}
	return append([]string(nil), *dst...)
}

func (l LocationTargets) Len() int {
	return len(l.Countries) + len(l.States) + len(l.Cities) + len(l.ZipCodes)
}

// Normalized returns a copy rebuilt through Add, for input that bypassed it.
func (l LocationTargets) Normalized() LocationTargets {
	var out LocationTargets
	for _, kind := range LocationKinds {
		out.Add(kind, l.Values(kind)...)
	}
	return out
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
