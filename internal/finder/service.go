package finder

import (
	"errors"
	"strings"
	"time"

	"productfinder-backend/internal/catalog"
	"productfinder-backend/internal/quiz"
	"productfinder-backend/internal/recommend"
	"productfinder-backend/internal/shared/metrics"
	"productfinder-backend/internal/shared/telemetry"
	"productfinder-backend/internal/valueprop"
)

// ErrUnknownProduct is returned when a product id is not in the catalog.
var ErrUnknownProduct = errors.New("unknown product")

// Service composes the engine, the value-proposition calculator and the
// maturity assessment into localized payloads.
type Service struct {
	engine        *recommend.Engine
	defaultLocale catalog.Locale
}

// NewService constructs a Service. An empty defaultLocale means German.
func NewService(engine *recommend.Engine, defaultLocale string) *Service {
	return &Service{engine: engine, defaultLocale: catalog.ParseLocale(defaultLocale)}
}

// Catalog returns the catalog backing the engine.
func (s *Service) Catalog() *catalog.Catalog {
	return s.engine.Catalog()
}

// Locale resolves a requested language, using the service default when blank.
func (s *Service) Locale(raw string) catalog.Locale {
	if strings.TrimSpace(raw) == "" {
		return s.defaultLocale
	}
	return catalog.ParseLocale(raw)
}

// Steps returns the quiz structure.
func (s *Service) Steps() []quiz.Step {
	return quiz.Steps()
}

// Recommend ranks products for answers and renders the result for locale.
func (s *Service) Recommend(answers quiz.Answers, locale catalog.Locale) Recommendation {
	start := time.Now()
	result := s.engine.Recommend(answers)
	props := valueprop.Calculate(answers, result.TopProduct, locale)
	took := time.Since(start)

	metrics.ObserveRecommendation(result.TopProduct.ID, result.Fallback, took)
	for _, p := range props {
		metrics.IncValueProposition(string(p.Type))
	}
	telemetry.Info("recommendation.computed", map[string]any{
		"top_product":  result.TopProduct.ID,
		"alternatives": len(result.Alternatives),
		"desired":      len(result.DesiredFeatures),
		"fallback":     result.Fallback,
		"lang":         string(locale),
	})

	return Recommendation{
		Locale:            locale,
		TopProduct:        productView(result.TopProduct, locale),
		Alternatives:      productViews(result.Alternatives, locale),
		RelevantFeatures:  featureViews(result.RelevantFeatures, locale),
		MissingFeatures:   featureViews(result.MissingFeatures, locale),
		DesiredFeatures:   result.DesiredFeatures,
		ValuePropositions: props,
		Maturity:          quiz.AssessMaturity(answers, locale),
		Scores:            result.Scores,
		Fallback:          result.Fallback,
	}
}

// ValuePropositions estimates benefits for a specific product rather than
// the engine's pick.
func (s *Service) ValuePropositions(answers quiz.Answers, productID string, locale catalog.Locale) ([]valueprop.Proposition, error) {
	product, ok := s.Catalog().Product(strings.TrimSpace(productID))
	if !ok {
		return nil, ErrUnknownProduct
	}
	props := valueprop.Calculate(answers, product, locale)
	for _, p := range props {
		metrics.IncValueProposition(string(p.Type))
	}
	return props, nil
}

// CatalogView renders products and the per-category comparison table.
func (s *Service) CatalogView(locale catalog.Locale) CatalogView {
	cat := s.Catalog()
	products := cat.Products()
	view := CatalogView{
		Locale:   locale,
		Products: productViews(products, locale),
	}
	for _, category := range cat.Categories() {
		cv := CategoryView{ID: category.ID, Name: category.Name(locale)}
		for _, f := range category.Features {
			support := make(map[string]catalog.Flag, len(products))
			for _, p := range products {
				support[p.ID] = f.FlagFor(p.ID)
			}
			cv.Features = append(cv.Features, ComparisonRow{
				FeatureView: FeatureView{ID: f.ID, Category: category.ID, Name: f.Name(locale)},
				Support:     support,
			})
		}
		view.Categories = append(view.Categories, cv)
	}
	return view
}
