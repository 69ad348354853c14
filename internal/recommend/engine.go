package recommend

import (
	"productfinder-backend/internal/catalog"
	"productfinder-backend/internal/quiz"
)

// Engine maps quiz answers to a ranked product recommendation. It holds only
// immutable reference data and is safe for concurrent use.
type Engine struct {
	catalog *catalog.Catalog
	needs   quiz.NeedMap
}

// New builds an engine over a catalog and a feature-need mapping.
func New(cat *catalog.Catalog, needs quiz.NeedMap) *Engine {
	copied := make(quiz.NeedMap, len(needs))
	for k, v := range needs {
		copied[k] = v
	}
	return &Engine{catalog: cat, needs: copied}
}

// Catalog returns the reference data the engine ranks.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Recommend ranks the eligible products for the answers. It never fails:
// malformed answers degrade to neutral scores and an empty candidate set
// yields the fallback recommendation.
func (e *Engine) Recommend(answers quiz.Answers) Result {
	candidates := Eligible(e.catalog, answers)
	if len(candidates) == 0 {
		return e.fallback()
	}

	desired := DesiredFeatures(e.catalog, e.needs, answers)
	ranked := Combine(
		candidates,
		BaseScores(candidates, answers),
		FeatureScores(e.catalog, candidates, desired),
	)

	top, _ := e.catalog.Product(ranked[0].ProductID)
	alternatives := make([]catalog.Product, 0, maxAlternatives)
	for _, s := range ranked[1:min(len(ranked), maxAlternatives+1)] {
		if s.ProductID == top.ID {
			continue
		}
		p, _ := e.catalog.Product(s.ProductID)
		alternatives = append(alternatives, p)
	}

	result := Result{
		TopProduct:       top,
		Alternatives:     alternatives,
		RelevantFeatures: []catalog.Feature{},
		MissingFeatures:  []catalog.Feature{},
		DesiredFeatures:  desired,
		Scores:           ranked,
	}
	for _, f := range e.catalog.Features() {
		if !contains(desired, f.ID) {
			continue
		}
		if f.SupportedBy(top.ID) {
			result.RelevantFeatures = append(result.RelevantFeatures, f)
		} else {
			result.MissingFeatures = append(result.MissingFeatures, f)
		}
	}
	return result
}

func (e *Engine) fallback() Result {
	products := e.catalog.Products()
	result := Result{
		Alternatives:     []catalog.Product{},
		RelevantFeatures: []catalog.Feature{},
		MissingFeatures:  []catalog.Feature{},
		DesiredFeatures:  []string{},
		Scores:           []Score{},
		Fallback:         true,
	}
	if len(products) == 0 {
		return result
	}
	top, ok := e.catalog.Product(fallbackProduct)
	if !ok {
		top = products[0]
	}
	result.TopProduct = top
	for _, p := range products {
		if p.ID == top.ID {
			continue
		}
		if len(result.Alternatives) == maxAlternatives {
			break
		}
		result.Alternatives = append(result.Alternatives, p)
	}
	return result
}
