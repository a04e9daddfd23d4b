package creative

import "encoding/json"

// MaxAdsPerGroup bounds the ads bound to one ad group.
const MaxAdsPerGroup = 3

// AddResult reports what an Add call did. Neither non-added outcome is an
// error.
type AddResult int

const (
	Added AddResult = iota
	AlreadyExists
	LimitReached
)

func (r AddResult) String() string {
	switch r {
	case Added:
		return "added"
	case AlreadyExists:
		return "already exists"
	case LimitReached:
		return "limit reached"
	}
	return "unknown"
}

// Set holds the creatives of one ad group or campaign: at most one ad per
// variant, at most MaxAdsPerGroup ads, and extensions unique by kind and
// key. The zero value is ready to use.
type Set struct {
	ads        []Ad
	extensions []Extension
}

// AddAd clamps ad and stores it unless an ad of the same variant is
// already present or the set is full.
func (s *Set) AddAd(ad Ad) (AddResult, []Warning) {
	if ad == nil {
		return LimitReached, nil
	}
	for _, existing := range s.ads {
		if existing.Kind() == ad.Kind() {
			return AlreadyExists, nil
		}
	}
	if len(s.ads) >= MaxAdsPerGroup {
		return LimitReached, nil
	}
	clamped, warnings := ad.Clamp()
	s.ads = append(s.ads, clamped)
	return Added, warnings
}

// AddExtension clamps ext and stores it unless an extension with the same
// kind and key exists.
func (s *Set) AddExtension(ext Extension) (AddResult, []Warning) {
	if ext == nil {
		return LimitReached, nil
	}
	clamped, warnings := ext.Clamp()
	for _, existing := range s.extensions {
		if existing.Kind() == clamped.Kind() && existing.Key() == clamped.Key() {
			return AlreadyExists, nil
		}
	}
	s.extensions = append(s.extensions, clamped)
	return Added, warnings
}

// Clone returns a set that shares no backing arrays with s.
func (s Set) Clone() Set {
	return Set{ads: s.Ads(), extensions: s.Extensions()}
}

// Ads returns the bound ads in insertion order.
func (s Set) Ads() []Ad {
	return append([]Ad(nil), s.ads...)
}

// Ad returns the ad of the given variant, if bound.
func (s Set) Ad(kind AdKind) (Ad, bool) {
	for _, a := range s.ads {
		if a.Kind() == kind {
			return a, true
		}
	}
	return nil, false
}

// Extensions returns the bound extensions in insertion order.
func (s Set) Extensions() []Extension {
	return append([]Extension(nil), s.extensions...)
}

// ExtensionsOf returns the extensions of one kind in insertion order.
func (s Set) ExtensionsOf(kind ExtensionKind) []Extension {
	var out []Extension
	for _, e := range s.extensions {
		if e.Kind() == kind {
			out = append(out, e)
		}
	}
	return out
}

func (s Set) Empty() bool {
	return len(s.ads) == 0 && len(s.extensions) == 0
}

type taggedValue struct {
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

// MarshalJSON tags every ad and extension with its kind.
func (s Set) MarshalJSON() ([]byte, error) {
	out := struct {
		Ads        []taggedValue `json:"ads"`
		Extensions []taggedValue `json:"extensions"`
	}{
		Ads:        make([]taggedValue, 0, len(s.ads)),
		Extensions: make([]taggedValue, 0, len(s.extensions)),
	}
	for _, a := range s.ads {
		out.Ads = append(out.Ads, taggedValue{Type: string(a.Kind()), Value: a})
	}
	for _, e := range s.extensions {
		out.Extensions = append(out.Extensions, taggedValue{Type: string(e.Kind()), Value: e})
	}
	return json.Marshal(out)
}
