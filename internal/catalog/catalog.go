package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCatalog is returned when reference data fails validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Locale selects display strings. Only de and en are supported.
type Locale string

const (
	LocaleDE Locale = "de"
	LocaleEN Locale = "en"
)

// ParseLocale normalizes a language tag, defaulting to German.
func ParseLocale(raw string) Locale {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "en", "en-us", "en-gb":
		return LocaleEN
	default:
		return LocaleDE
	}
}

// Text holds localized product copy.
type Text struct {
	Name             string `yaml:"name" json:"name"`
	ShortDescription string `yaml:"shortDescription" json:"shortDescription"`
	Description      string `yaml:"description" json:"description"`
}

// Product is a candidate in the recommendation catalog.
type Product struct {
	ID          string          `yaml:"id"`
	LogoURL     string          `yaml:"logoUrl"`
	DemoURL     string          `yaml:"demoUrl"`
	CalendarURL string          `yaml:"calendarUrl"`
	Texts       map[Locale]Text `yaml:"names"`
}

// Name returns the display name, falling back to the id.
func (p Product) Name(locale Locale) string {
	return p.Text(locale).Name
}

// Text returns localized copy with the id as last-resort name.
func (p Product) Text(locale Locale) Text {
	t, ok := p.Texts[locale]
	if !ok {
		t = p.Texts[LocaleDE]
	}
	if strings.TrimSpace(t.Name) == "" {
		t.Name = p.ID
	}
	return t
}

// Feature is a capability compared across products.
type Feature struct {
	ID       string            `yaml:"id"`
	Category string            `yaml:"-"`
	Names    map[Locale]string `yaml:"names"`
	Flags    map[string]Flag   `yaml:"flags"`
}

// Name returns the localized feature name or the raw id.
func (f Feature) Name(locale Locale) string {
	if name := strings.TrimSpace(f.Names[locale]); name != "" {
		return name
	}
	return f.ID
}

// FlagFor returns the product's flag. Catalog validation guarantees presence.
func (f Feature) FlagFor(productID string) Flag {
	return f.Flags[productID]
}

// SupportedBy reports whether productID supports the feature.
func (f Feature) SupportedBy(productID string) bool {
	return f.Flags[productID].Supported()
}

// Category groups features for display. Categories never affect scoring.
type Category struct {
	ID       string            `yaml:"id"`
	Names    map[Locale]string `yaml:"names"`
	Features []Feature         `yaml:"features"`
}

// Name returns the localized category name or the raw id.
func (c Category) Name(locale Locale) string {
	if name := strings.TrimSpace(c.Names[locale]); name != "" {
		return name
	}
	return c.ID
}

// Catalog is the immutable product and feature reference data.
type Catalog struct {
	products   []Product
	categories []Category
	features   []Feature
	productIdx map[string]int
	featureIdx map[string]int
}

// New validates the reference data and builds a catalog. Inputs are copied.
func New(products []Product, categories []Category) (*Catalog, error) {
	c := &Catalog{
		products:   make([]Product, 0, len(products)),
		categories: make([]Category, 0, len(categories)),
		productIdx: make(map[string]int, len(products)),
		featureIdx: make(map[string]int),
	}
	for _, p := range products {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: product with empty id", ErrInvalidCatalog)
		}
		if _, dup := c.productIdx[id]; dup {
			return nil, fmt.Errorf("%w: duplicate product %q", ErrInvalidCatalog, id)
		}
		p.ID = id
		p.Texts = copyTexts(p.Texts)
		c.productIdx[id] = len(c.products)
		c.products = append(c.products, p)
	}

	for _, cat := range categories {
		if strings.TrimSpace(cat.ID) == "" {
			return nil, fmt.Errorf("%w: category with empty id", ErrInvalidCatalog)
		}
		copied := Category{ID: cat.ID, Names: copyNames(cat.Names), Features: make([]Feature, 0, len(cat.Features))}
		for _, f := range cat.Features {
			if err := c.validateFeature(f); err != nil {
				return nil, err
			}
			f.Category = cat.ID
			f.Names = copyNames(f.Names)
			f.Flags = copyFlags(f.Flags)
			c.featureIdx[f.ID] = len(c.features)
			c.features = append(c.features, f)
			copied.Features = append(copied.Features, f)
		}
		c.categories = append(c.categories, copied)
	}
	return c, nil
}

func (c *Catalog) validateFeature(f Feature) error {
	if strings.TrimSpace(f.ID) == "" {
		return fmt.Errorf("%w: feature with empty id", ErrInvalidCatalog)
	}
	if _, dup := c.featureIdx[f.ID]; dup {
		return fmt.Errorf("%w: duplicate feature %q", ErrInvalidCatalog, f.ID)
	}
	for productID, flag := range f.Flags {
		if _, ok := c.productIdx[productID]; !ok {
			return fmt.Errorf("%w: feature %q flags unknown product %q", ErrInvalidCatalog, f.ID, productID)
		}
		if flag.State == SupportedWithNote && strings.TrimSpace(flag.Note) == "" {
			return fmt.Errorf("%w: feature %q has an empty note for %q", ErrInvalidCatalog, f.ID, productID)
		}
	}
	for _, p := range c.products {
		if _, ok := f.Flags[p.ID]; !ok {
			return fmt.Errorf("%w: feature %q has no flag for product %q", ErrInvalidCatalog, f.ID, p.ID)
		}
	}
	return nil
}

// Products returns all products in catalog order.
func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

// Product looks up a product by id.
func (c *Catalog) Product(id string) (Product, bool) {
	i, ok := c.productIdx[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Index returns the catalog position of a product, or -1.
func (c *Catalog) Index(id string) int {
	if i, ok := c.productIdx[id]; ok {
		return i
	}
	return -1
}

// Feature looks up a feature by id.
func (c *Catalog) Feature(id string) (Feature, bool) {
	i, ok := c.featureIdx[id]
	if !ok {
		return Feature{}, false
	}
	return c.features[i], true
}

// Features returns every feature in category order.
func (c *Catalog) Features() []Feature {
	return append([]Feature(nil), c.features...)
}

// Categories returns the display grouping of features.
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

func copyTexts(in map[Locale]Text) map[Locale]Text {
	out := make(map[Locale]Text, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyNames(in map[Locale]string) map[Locale]string {
	out := make(map[Locale]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyFlags(in map[string]Flag) map[string]Flag {
	out := make(map[string]Flag, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
