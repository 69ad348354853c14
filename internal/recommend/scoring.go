package recommend

import (
	"sort"

	"productfinder-backend/internal/catalog"
	"productfinder-backend/internal/quiz"
)

// BaseScores assigns each product a firmographic fit score. Every product
// starts at 50 and all applicable adjustments stack. A missing or
// non-positive lawyer count contributes no size adjustment.
func BaseScores(products []catalog.Product, answers quiz.Answers) map[string]int {
	lawyers, ok := answers.Int(quiz.QuestionLawyerCount)
	hasSize := ok && lawyers > 0
	focus := normalized(answers, quiz.QuestionWorkFocus)
	billing := normalized(answers, quiz.QuestionBillingType)
	notary := answers.IsYes(quiz.QuestionNotary)

	scores := make(map[string]int, len(products))
	for _, p := range products {
		score := neutralScore
		if hasSize {
			score += sizeAdjustment(p.ID, lawyers)
		}
		score += focusAdjustment(p.ID, focus)
		score += billingAdjustment(p.ID, billing)
		score += notaryAdjustment(p.ID, notary)
		scores[p.ID] = score
	}
	return scores
}

// DesiredFeatures derives the features a firm lacks from its "No" answers.
// Mapped feature ids that are not in the catalog are dropped and duplicates
// are collapsed. Output is ordered by question id.
func DesiredFeatures(cat *catalog.Catalog, needs quiz.NeedMap, answers quiz.Answers) []string {
	questionIDs := make([]string, 0, len(needs))
	for id := range needs {
		questionIDs = append(questionIDs, id)
	}
	sort.Strings(questionIDs)

	seen := make(map[string]bool, len(questionIDs))
	out := make([]string, 0, len(questionIDs))
	for _, questionID := range questionIDs {
		if !answers.IsNo(questionID) {
			continue
		}
		featureID := needs[questionID]
		if _, ok := cat.Feature(featureID); !ok || seen[featureID] {
			continue
		}
		seen[featureID] = true
		out = append(out, featureID)
	}
	return out
}

// FeatureScores is the percentage of desired features each product
// supports, or 0 for every product when nothing is desired.
func FeatureScores(cat *catalog.Catalog, products []catalog.Product, desired []string) map[string]float64 {
	scores := make(map[string]float64, len(products))
	for _, p := range products {
		if len(desired) == 0 {
			scores[p.ID] = 0
			continue
		}
		matched := 0
		for _, featureID := range desired {
			if f, ok := cat.Feature(featureID); ok && f.SupportedBy(p.ID) {
				matched++
			}
		}
		scores[p.ID] = float64(matched) / float64(len(desired)) * 100
	}
	return scores
}

// Combine blends both scores and ranks products. Ties keep input order.
func Combine(products []catalog.Product, base map[string]int, feature map[string]float64) []Score {
	ranked := make([]Score, 0, len(products))
	for _, p := range products {
		b, ok := base[p.ID]
		if !ok {
			b = neutralScore
		}
		f := feature[p.ID]
		ranked = append(ranked, Score{
			ProductID: p.ID,
			Base:      b,
			Feature:   f,
			Combined:  float64(b)*baseWeight + f*featureWeight,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Combined > ranked[j].Combined
	})
	return ranked
}
