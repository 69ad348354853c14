package recommend

import "productfinder-backend/internal/catalog"

// Score is the ranking breakdown for one eligible product.
type Score struct {
	ProductID string  `json:"productId"`
	Base      int     `json:"baseScore"`
	Feature   float64 `json:"featureScore"`
	Combined  float64 `json:"combinedScore"`
}

// Result is a ranked recommendation with explainable feature gaps.
type Result struct {
	TopProduct   catalog.Product
	Alternatives []catalog.Product
	// RelevantFeatures are desired features the top product supports.
	RelevantFeatures []catalog.Feature
	// MissingFeatures are desired features the top product lacks.
	MissingFeatures []catalog.Feature
	DesiredFeatures []string
	// Scores is in rank order and empty on the fallback path.
	Scores   []Score
	Fallback bool
}
