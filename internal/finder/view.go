package finder

import (
	"productfinder-backend/internal/catalog"
	"productfinder-backend/internal/quiz"
	"productfinder-backend/internal/recommend"
	"productfinder-backend/internal/valueprop"
)

// ProductView is a product rendered for one locale.
type ProductView struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ShortDescription string `json:"shortDescription,omitempty"`
	Description      string `json:"description,omitempty"`
	LogoURL          string `json:"logoUrl,omitempty"`
	DemoURL          string `json:"demoUrl,omitempty"`
	CalendarURL      string `json:"calendarUrl,omitempty"`
}

// FeatureView is a feature name rendered for one locale.
type FeatureView struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Name     string `json:"name"`
}

// Recommendation is the localized recommendation payload.
type Recommendation struct {
	Locale            catalog.Locale          `json:"lang"`
	TopProduct        ProductView             `json:"topProduct"`
	Alternatives      []ProductView           `json:"alternatives"`
	RelevantFeatures  []FeatureView           `json:"relevantFeatures"`
	MissingFeatures   []FeatureView           `json:"missingFeatures"`
	DesiredFeatures   []string                `json:"desiredFeatures"`
	ValuePropositions []valueprop.Proposition `json:"valuePropositions"`
	Maturity          quiz.Maturity           `json:"maturity"`
	Scores            []recommend.Score       `json:"scores"`
	Fallback          bool                    `json:"fallback"`
}

// ComparisonRow lists every product's flag for one feature.
type ComparisonRow struct {
	FeatureView
	Support map[string]catalog.Flag `json:"support"`
}

// CategoryView groups comparison rows under a localized heading.
type CategoryView struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Features []ComparisonRow `json:"features"`
}

// CatalogView backs the comparison table.
type CatalogView struct {
	Locale     catalog.Locale `json:"lang"`
	Products   []ProductView  `json:"products"`
	Categories []CategoryView `json:"categories"`
}

func productView(p catalog.Product, locale catalog.Locale) ProductView {
	text := p.Text(locale)
	return ProductView{
		ID:               p.ID,
		Name:             text.Name,
		ShortDescription: text.ShortDescription,
		Description:      text.Description,
		LogoURL:          p.LogoURL,
		DemoURL:          p.DemoURL,
		CalendarURL:      p.CalendarURL,
	}
}

func productViews(products []catalog.Product, locale catalog.Locale) []ProductView {
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, productView(p, locale))
	}
	return out
}

func featureViews(features []catalog.Feature, locale catalog.Locale) []FeatureView {
	out := make([]FeatureView, 0, len(features))
	for _, f := range features {
		out = append(out, FeatureView{ID: f.ID, Category: f.Category, Name: f.Name(locale)})
	}
	return out
}
