package model

// ClaimType categorizes the nature of the claim for targeted verification
type ClaimType string

const (
	ClaimTypeMeasurement  ClaimType = "measurement"  // Claims about sizes, heights, quantities
	ClaimTypeTemporal     ClaimType = "temporal"     // Claims about dates and events in time
	ClaimTypeGeographical ClaimType = "geographical" // Claims about places and locations
	ClaimTypeBiographical ClaimType = "biographical" // Claims about people and roles
	ClaimTypeDefinitional ClaimType = "definitional" // Claims about what something is
	ClaimTypeComparative  ClaimType = "comparative"  // Claims comparing two subjects
	ClaimTypeGeneral      ClaimType = "general"      // Everything else
)

// EntityCategory names a bucket of extracted entities
type EntityCategory string

const (
	EntityNumbers      EntityCategory = "numbers"
	EntityDates        EntityCategory = "dates"
	EntityPlaces       EntityCategory = "places"
	EntityMeasurements EntityCategory = "measurements"
)

// Structure captures the grammatical and logical shape of a claim
type Structure struct {
	IsQuestion      bool    `json:"is_question"`
	IsComparative   bool    `json:"is_comparative"`
	HasNegation     bool    `json:"has_negation"`
	HasQuantifier   bool    `json:"has_quantifier"`
	SentenceLength  int     `json:"sentence_length"`
	ComplexityScore float64 `json:"complexity_score"` // 0.0 - 5.0
}

// ClaimDescriptor is the structured output of claim preprocessing.
// It is immutable once built; the pipeline passes it by value.
type ClaimDescriptor struct {
	OriginalText   string                      `json:"original_claim"`
	NormalizedText string                      `json:"normalized_claim"`
	Entities       map[EntityCategory][]string `json:"entities"`
	ClaimType      ClaimType                   `json:"claim_type"`
	KeyTerms       []string                    `json:"key_terms"`
	Structure      Structure                   `json:"structure"`
	SearchQueries  []string                    `json:"search_queries"` // At most 5, first is the original claim
}

// VerificationContext wraps a descriptor with strategy hints for the
// reasoning backend. Built once per request, read-only afterwards.
type VerificationContext struct {
	Claim             ClaimDescriptor `json:"claim_analysis"`
	Strategy          string          `json:"verification_strategy"`
	ConfidenceFactors []string        `json:"confidence_factors"`
	PotentialIssues   []string        `json:"potential_issues"`
}
