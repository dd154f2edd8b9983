// Package classify turns raw claim text into a structured descriptor:
// normalized text, extracted entities, a claim-type tag, key terms,
// structural flags, and candidate search queries. It is pure string
// processing with no I/O.
package classify

import (
	"regexp"
	"strings"

	"github.com/veritaslab/veritas/internal/model"
)

// typeRule pairs a claim type with the keyword set that selects it.
// Rules are tested in order; the first whose keywords intersect the
// lowercased claim wins. The ordering is a deliberate tie-break: a claim
// containing both "taller" and "where" classifies as measurement, not
// geographical.
type typeRule struct {
	claimType model.ClaimType
	keywords  []string
}

// Classifier extracts structure from raw claim text
type Classifier struct {
	entityPatterns map[model.EntityCategory]*regexp.Regexp
	typeRules      []typeRule
	stopWords      map[string]bool
}

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	smartQuotesRe = regexp.MustCompile("[“”‘’`]")
	dashesRe      = regexp.MustCompile("[–—]")
	wordRe        = regexp.MustCompile(`[a-zA-Z]+`)
	digitRunRe    = regexp.MustCompile(`\d+`)
)

// NewClassifier creates a classifier with the fixed rule tables
func NewClassifier() *Classifier {
	return &Classifier{
		entityPatterns: map[model.EntityCategory]*regexp.Regexp{
			model.EntityNumbers:      regexp.MustCompile(`\b\d+(?:\.\d+)?\b`),
			model.EntityDates:        regexp.MustCompile(`\b\d{4}[-/]\d{1,2}[-/]\d{1,2}\b|\b\d{1,2}[-/]\d{1,2}[-/]\d{4}\b`),
			model.EntityPlaces:       regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`),
			model.EntityMeasurements: regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:meters?|feet|km|miles?|kg|pounds?|celsius|fahrenheit)\b`),
		},
		typeRules: []typeRule{
			{model.ClaimTypeMeasurement, []string{"taller", "shorter", "bigger", "smaller", "meters", "feet", "height"}},
			{model.ClaimTypeTemporal, []string{"when", "year", "date", "happened", "occurred"}},
			{model.ClaimTypeGeographical, []string{"where", "located", "city", "country", "place"}},
			{model.ClaimTypeBiographical, []string{"who", "person", "people", "president", "ceo"}},
			{model.ClaimTypeDefinitional, []string{"what", "is", "definition", "means"}},
			{model.ClaimTypeComparative, []string{"more", "less", "than", "compared", "versus"}},
		},
		stopWords: map[string]bool{
			"the": true, "is": true, "are": true, "was": true, "were": true,
			"a": true, "an": true, "and": true, "or": true, "but": true,
			"in": true, "on": true, "at": true, "to": true, "for": true,
			"of": true, "with": true, "by": true, "that": true, "this": true,
			"than": true, "more": true, "less": true, "taller": true, "shorter": true,
		},
	}
}

// Classify builds a descriptor from raw claim text. It is total: it never
// fails, and on degenerate input returns a descriptor with empty entity
// and term sets and claim type general.
func (c *Classifier) Classify(raw string) model.ClaimDescriptor {
	trimmed := strings.TrimSpace(raw)
	return model.ClaimDescriptor{
		OriginalText:   trimmed,
		NormalizedText: c.normalize(raw),
		Entities:       c.extractEntities(trimmed),
		ClaimType:      c.classifyType(trimmed),
		KeyTerms:       c.extractKeyTerms(trimmed),
		Structure:      c.analyzeStructure(trimmed),
		SearchQueries:  c.generateQueries(trimmed),
	}
}

// normalize collapses whitespace and standardizes punctuation
func (c *Classifier) normalize(text string) string {
	text = whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	text = smartQuotesRe.ReplaceAllString(text, `"`)
	text = dashesRe.ReplaceAllString(text, "-")
	return text
}

// extractEntities applies the four fixed patterns independently and
// dedupes matches within each category. The place pattern is a heuristic
// and will match proper nouns that are not places.
func (c *Classifier) extractEntities(claim string) map[model.EntityCategory][]string {
	entities := make(map[model.EntityCategory][]string, len(c.entityPatterns))
	for category, pattern := range c.entityPatterns {
		entities[category] = dedupe(pattern.FindAllString(claim, -1))
	}
	return entities
}

// classifyType tests the rule table in priority order
func (c *Classifier) classifyType(claim string) model.ClaimType {
	lower := strings.ToLower(claim)
	for _, rule := range c.typeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.claimType
			}
		}
	}
	return model.ClaimTypeGeneral
}

// extractKeyTerms returns lowercase alphabetic tokens with stop words and
// short tokens removed, deduplicated in first-occurrence order
func (c *Classifier) extractKeyTerms(claim string) []string {
	words := wordRe.FindAllString(strings.ToLower(claim), -1)
	var terms []string
	seen := make(map[string]bool)
	for _, word := range words {
		if c.stopWords[word] || len(word) <= 2 || seen[word] {
			continue
		}
		seen[word] = true
		terms = append(terms, word)
	}
	return terms
}

// analyzeStructure derives the boolean flags and complexity score
func (c *Classifier) analyzeStructure(claim string) model.Structure {
	lower := strings.ToLower(claim)
	return model.Structure{
		IsQuestion:      strings.HasSuffix(strings.TrimSpace(claim), "?"),
		IsComparative:   containsAny(lower, "than", "compared", "versus", "more", "less"),
		HasNegation:     containsAny(lower, "not", "never", "no", "n't", "false"),
		HasQuantifier:   digitRunRe.MatchString(claim),
		SentenceLength:  len(strings.Fields(claim)),
		ComplexityScore: c.complexity(claim),
	}
}

// complexity scores length, subordinate clauses, and digit runs, capped
// at 5.0. Monotonically non-decreasing in word count and digit runs.
func (c *Classifier) complexity(claim string) float64 {
	lower := strings.ToLower(claim)

	score := float64(len(strings.Fields(claim))) / 10
	if score > 1.0 {
		score = 1.0
	}

	for _, word := range []string{"that", "which", "who", "where", "when", "because", "since", "although"} {
		if strings.Contains(lower, word) {
			score += 0.2
		}
	}

	score += float64(len(digitRunRe.FindAllString(claim, -1))) * 0.3

	if score > 5.0 {
		score = 5.0
	}
	return score
}

// generateQueries builds up to 5 search queries; the original claim is
// always the first
func (c *Classifier) generateQueries(claim string) []string {
	keyTerms := c.extractKeyTerms(claim)
	entities := c.extractEntities(claim)

	queries := []string{claim}

	places := entities[model.EntityPlaces]
	for i, place := range places {
		if i >= 2 {
			break
		}
		queries = append(queries, place+" facts information")
	}

	numbers := entities[model.EntityNumbers]
	for i, number := range numbers {
		if i >= 2 {
			break
		}
		queries = append(queries, number+" "+strings.Join(head(keyTerms, 3), " "))
	}

	if len(keyTerms) >= 3 {
		queries = append(queries, strings.Join(head(keyTerms, 5), " "))
	}

	return head(queries, 5)
}

func dedupe(matches []string) []string {
	seen := make(map[string]bool, len(matches))
	var unique []string
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			unique = append(unique, m)
		}
	}
	return unique
}

func containsAny(text string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
