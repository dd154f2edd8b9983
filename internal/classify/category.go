package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/veritaslab/veritas/internal/model"
)

// categoryRule scores one category from keyword hits. Rules are
// evaluated in a fixed order and the highest score wins, with earlier
// rules winning ties, so the outcome is auditable.
type categoryRule struct {
	category model.Category
	score    func(claim, lower string) float64
}

var arithmeticRe = regexp.MustCompile(`\d+\s*[+\-*/=]\s*\d+`)

var categoryRules = []categoryRule{
	{model.CategoryScientific, keywordShare(
		"theory", "experiment", "research", "study", "evidence", "hypothesis",
		"molecule", "atom", "gene", "species", "evolution", "gravity", "energy",
	)},
	{model.CategoryMathematical, func(claim, lower string) float64 {
		score := keywordShare("equals", "plus", "minus", "multiply", "divide", "theorem", "proof", "formula")(claim, lower)
		if arithmeticRe.MatchString(claim) {
			score += 0.5
		}
		return score
	}},
	{model.CategoryHistorical, func(claim, lower string) float64 {
		score := keywordShare("century", "year", "ago", "ancient", "medieval", "war", "empire", "revolution")(claim, lower)
		if containsYear(claim) {
			score += 0.3
		}
		return score
	}},
	{model.CategoryMedical, keywordShare(
		"disease", "treatment", "medicine", "doctor", "patient", "symptoms", "diagnosis",
	)},
	{model.CategoryStatistical, flatScore(0.1, "percent", "statistics", "data", "survey")},
	{model.CategoryGeographical, flatScore(0.1, "country", "city", "mountain", "river", "continent")},
	{model.CategoryComparative, flatScore(0.2, "bigger", "smaller", "faster", "slower", "more", "less")},
	{model.CategoryGeneral, func(claim, lower string) float64 { return 0.1 }},
}

// Categorize tags a claim with the analysis category used for prompt
// framing and confidence adjustment, along with the winning score.
func Categorize(claim string) (model.Category, float64) {
	lower := strings.ToLower(claim)

	best := model.CategoryGeneral
	bestScore := -1.0
	for _, rule := range categoryRules {
		if score := rule.score(claim, lower); score > bestScore {
			best = rule.category
			bestScore = score
		}
	}
	return best, bestScore
}

// keywordShare scores the fraction of the keyword set present in the claim
func keywordShare(keywords ...string) func(claim, lower string) float64 {
	return func(claim, lower string) float64 {
		hits := 0
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				hits++
			}
		}
		return float64(hits) / float64(len(keywords))
	}
}

// flatScore returns a fixed score when any keyword is present
func flatScore(score float64, keywords ...string) func(claim, lower string) float64 {
	return func(claim, lower string) float64 {
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				return score
			}
		}
		return 0
	}
}

// containsYear reports whether any 4-digit window of the claim reads as a
// year between 1000 and 2024
func containsYear(claim string) bool {
	for i := 0; i+4 <= len(claim); i++ {
		window := claim[i : i+4]
		year, err := strconv.Atoi(window)
		if err != nil {
			continue
		}
		if year >= 1000 && year <= 2024 {
			return true
		}
	}
	return false
}
