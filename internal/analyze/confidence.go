package analyze

import "github.com/veritaslab/veritas/internal/model"

// AdjustConfidence applies category-specific corrections to the raw
// confidence score. Mathematical claims are either near-certain or
// discounted; medical claims are capped conservatively; opinion claims
// never exceed 60; weak scientific claims are discounted.
func AdjustConfidence(confidence float64, category model.Category) float64 {
	switch category {
	case model.CategoryMathematical:
		if confidence > 90 {
			if confidence > 99.5 {
				return 99.5
			}
			return confidence
		}
		return confidence * 0.8

	case model.CategoryMedical:
		adjusted := confidence * 0.9
		if adjusted > 85 {
			return 85
		}
		return adjusted

	case model.CategoryOpinionBased:
		if confidence > 60 {
			return 60
		}
		return confidence

	case model.CategoryScientific:
		if confidence < 70 {
			return confidence * 0.85
		}
		return confidence

	default:
		return confidence
	}
}
