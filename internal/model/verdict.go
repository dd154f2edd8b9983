package model

// Verdict is the categorical outcome of verifying a claim
type Verdict string

const (
	VerdictTrue          Verdict = "True"
	VerdictFalse         Verdict = "False"
	VerdictPartiallyTrue Verdict = "Partially True"
	VerdictInvestigate   Verdict = "Requires Investigation"
	VerdictContext       Verdict = "Requires Context"
	VerdictUnverified    Verdict = "Unverified"
)

// Verdicts lists every valid verdict value, in display order
var Verdicts = []Verdict{
	VerdictTrue,
	VerdictFalse,
	VerdictPartiallyTrue,
	VerdictInvestigate,
	VerdictContext,
	VerdictUnverified,
}

// Record is the persisted unit of one completed fact-check.
// Records are append-only: ids are never reused and a record is never
// updated after insertion.
type Record struct {
	ID               int64   `json:"id"`
	Claim            string  `json:"claim"`
	Verdict          Verdict `json:"verdict"`
	ConfidenceScore  float64 `json:"confidence_score"` // 0 - 100
	Explanation      string  `json:"explanation"`
	ProcessingTimeMS int64   `json:"processing_time_ms"`
	Timestamp        string  `json:"timestamp"` // RFC 3339
	Sources          string  `json:"sources,omitempty"`
	SessionID        string  `json:"session_id,omitempty"`
}

// Stats aggregates the full result log
type Stats struct {
	Total                   int             `json:"total"`
	Verdicts                map[Verdict]int `json:"verdicts"`
	AverageConfidence       float64         `json:"average_confidence"`
	AverageProcessingTimeMS float64         `json:"average_processing_time_ms"`
}
