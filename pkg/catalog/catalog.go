package catalog

import (
	"sort"
	"strings"
)

// Placeholders recognised inside pattern templates.
const (
	SeedPlaceholder = "[seed]"
	CityPlaceholder = "[city]"
)

// DefaultVertical is the catalog entry used for any unknown vertical.
const DefaultVertical = "default"

// Category names one of the six ordered phrase-template lists.
type Category string

const (
	CategoryLocal         Category = "local"
	CategoryPrice         Category = "price"
	CategoryQuality       Category = "quality"
	CategoryUrgency       Category = "urgency"
	CategoryService       Category = "service"
	CategoryTransactional Category = "transactional"
)

// Categories lists the template categories in expansion order.
var Categories = []Category{
	CategoryLocal,
	CategoryPrice,
	CategoryQuality,
	CategoryUrgency,
	CategoryService,
	CategoryTransactional,
}

// Patterns holds the phrase templates for one vertical. Filler is the
// secondary, larger table consumed only when the validated pool is short.
type Patterns struct {
	Local         []string `json:"local" mapstructure:"local"`
	Price         []string `json:"price" mapstructure:"price"`
	Quality       []string `json:"quality" mapstructure:"quality"`
	Urgency       []string `json:"urgency" mapstructure:"urgency"`
	Service       []string `json:"service" mapstructure:"service"`
	Transactional []string `json:"transactional" mapstructure:"transactional"`
	Filler        []string `json:"filler" mapstructure:"filler"`
}

// Category returns the template list for the given category.
func (p Patterns) Category(c Category) []string {
	switch c {
	case CategoryLocal:
		return p.Local
	case CategoryPrice:
		return p.Price
	case CategoryQuality:
		return p.Quality
	case CategoryUrgency:
		return p.Urgency
	case CategoryService:
		return p.Service
	case CategoryTransactional:
		return p.Transactional
	default:
		return nil
	}
}

// Size returns the number of primary templates (filler excluded).
func (p Patterns) Size() int {
	n := 0
	for _, c := range Categories {
		n += len(p.Category(c))
	}
	return n
}

// Catalog is a read-only lookup of vertical name to Patterns. It is built
// once and passed to the expander; nothing is resolved lazily.
type Catalog struct {
	verticals map[string]Patterns
	aliases   map[string]string
}

// New builds a catalog from an explicit vertical map. A "default" entry is
// added from the built-in tables when the map does not provide one, so
// Lookup stays total.
func New(verticals map[string]Patterns) *Catalog {
	c := &Catalog{
		verticals: make(map[string]Patterns, len(verticals)+1),
		aliases:   make(map[string]string),
	}
	for name, p := range verticals {
		c.verticals[NormalizeVertical(name)] = p
	}
	if _, ok := c.verticals[DefaultVertical]; !ok {
		c.verticals[DefaultVertical] = builtinVerticals[DefaultVertical]
	}
	return c
}

// Default returns the catalog with every built-in vertical and alias.
func Default() *Catalog {
	c := New(builtinVerticals)
	for alias, target := range builtinAliases {
		c.aliases[alias] = target
	}
	return c
}

// WithAlias maps an alternative vertical name onto an existing entry.
func (c *Catalog) WithAlias(alias, target string) *Catalog {
	c.aliases[NormalizeVertical(alias)] = NormalizeVertical(target)
	return c
}

// Resolve returns the canonical vertical name that Lookup would use.
func (c *Catalog) Resolve(vertical string) string {
	name := NormalizeVertical(vertical)
	if target, ok := c.aliases[name]; ok {
		name = target
	}
	if _, ok := c.verticals[name]; ok {
		return name
	}
	return DefaultVertical
}

// Lookup returns the patterns for a vertical, falling back to the default
// catalog. It never fails.
func (c *Catalog) Lookup(vertical string) Patterns {
	return c.verticals[c.Resolve(vertical)]
}

// Verticals lists the known vertical names in sorted order.
func (c *Catalog) Verticals() []string {
	names := make([]string, 0, len(c.verticals))
	for name := range c.verticals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizeVertical lowercases a vertical name and folds spaces, dashes and
// slashes into underscores.
func NormalizeVertical(vertical string) string {
	v := strings.ToLower(strings.TrimSpace(vertical))
	v = strings.NewReplacer(" ", "_", "-", "_", "/", "_", "&", "and").Replace(v)
	for strings.Contains(v, "__") {
		v = strings.ReplaceAll(v, "__", "_")
	}
	return strings.Trim(v, "_")
}
