package recommend

import (
	"strings"

	"productfinder-backend/internal/catalog"
	"productfinder-backend/internal/quiz"
)

// Eligible narrows the catalog by jurisdiction and practice focus. The
// first matching rule wins; products keep catalog order.
func Eligible(cat *catalog.Catalog, answers quiz.Answers) []catalog.Product {
	var allowed []string
	switch {
	case strings.EqualFold(answers.String(quiz.QuestionLocation), "ch"):
		allowed = swissProducts
	case normalized(answers, quiz.QuestionWorkFocus) == "consulting":
		allowed = consultingProducts
	case normalized(answers, quiz.QuestionWorkFocus) == "forensic":
		allowed = forensicProducts
	default:
		allowed = defaultProducts
	}

	out := make([]catalog.Product, 0, len(allowed))
	for _, p := range cat.Products() {
		if contains(allowed, p.ID) {
			out = append(out, p)
		}
	}
	return out
}

func normalized(answers quiz.Answers, id string) string {
	return strings.ToLower(answers.String(id))
}
