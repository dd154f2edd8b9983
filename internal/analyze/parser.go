// Package analyze turns raw backend replies into verdict results. The
// parser is best-effort and total: structured JSON first, then a text
// heuristic over verdict/confidence lines, then a deterministic failure
// result. It never returns an error to the caller.
package analyze

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/veritaslab/veritas/internal/model"
)

// ParseState records which stage of the parser produced the result
type ParseState string

const (
	StateStructured    ParseState = "structured"
	StateTextHeuristic ParseState = "text_heuristic"
	StateFailed        ParseState = "failed"
)

// Result is the normalized outcome of parsing one backend reply
type Result struct {
	Verdict        model.Verdict
	Confidence     float64
	Explanation    string
	KeyEvidence    []string
	SourcesNeeded  []string
	ReasoningSteps []string
	Caveats        []string
	State          ParseState
}

// rawResponse mirrors the JSON shape the prompt instructs the backend
// to produce
type rawResponse struct {
	Verdict        string      `json:"verdict"`
	Confidence     json.Number `json:"confidence_score"`
	Explanation    string      `json:"explanation"`
	KeyEvidence    []string    `json:"key_evidence"`
	SourcesNeeded  []string    `json:"sources_needed"`
	ReasoningSteps []string    `json:"reasoning_steps"`
	Caveats        []string    `json:"caveats"`
}

var (
	confidenceRe = regexp.MustCompile(`(?i)confidence[:\s]+(\d+(?:\.\d+)?)%?`)
	verdictRe    = regexp.MustCompile(`(?i)(?:verdict|conclusion|result)[:\s]+([^,\n]+)`)
)

// Parse extracts a verdict result from raw backend text. It tries the
// structured JSON path first, then the text heuristics; only an empty
// reply ends in the deterministic parsing-error result.
func Parse(raw string) Result {
	if result, ok := parseStructured(raw); ok {
		return result
	}
	if result, ok := parseText(raw); ok {
		return result
	}
	return failedResult()
}

// parseStructured extracts the JSON object between the first '{' and the
// last '}' of the reply. Models often wrap the object in prose, so the
// slice bounds are intentionally greedy.
func parseStructured(raw string) (Result, bool) {
	clean := strings.TrimSpace(raw)

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start < 0 || end <= start {
		return Result{}, false
	}

	var parsed rawResponse
	if err := json.Unmarshal([]byte(clean[start:end+1]), &parsed); err != nil {
		return Result{}, false
	}

	confidence := 50.0
	if parsed.Confidence != "" {
		if v, err := parsed.Confidence.Float64(); err == nil {
			confidence = v
		}
	}

	explanation := parsed.Explanation
	if explanation == "" {
		explanation = "No explanation provided"
	}

	return Result{
		Verdict:        NormalizeVerdict(parsed.Verdict),
		Confidence:     clampConfidence(confidence),
		Explanation:    explanation,
		KeyEvidence:    parsed.KeyEvidence,
		SourcesNeeded:  parsed.SourcesNeeded,
		ReasoningSteps: parsed.ReasoningSteps,
		Caveats:        parsed.Caveats,
		State:          StateStructured,
	}, true
}

// parseText recovers a verdict from unstructured prose: explicit
// verdict/confidence lines first, then sentiment keywords with a
// confidence floor of 80. Prose with no recognizable signal still
// yields a result, Unverified with the prose as explanation; only an
// empty reply falls through to the failure state.
func parseText(raw string) (Result, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Result{}, false
	}
	lower := strings.ToLower(text)

	verdict := model.VerdictUnverified
	confidence := 50.0

	if m := verdictRe.FindStringSubmatch(text); m != nil {
		verdict = NormalizeVerdict(strings.Trim(strings.TrimSpace(m[1]), `"`))
	}
	if m := confidenceRe.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			confidence = clampConfidence(v)
		}
	}

	if verdict == model.VerdictUnverified {
		switch {
		case containsAny(lower, "scientifically incorrect", "contradicts", "false", "incorrect", "wrong"):
			verdict = model.VerdictFalse
			if confidence < 80 {
				confidence = 80
			}
		case containsAny(lower, "correct", "accurate", "confirmed", "true", "factually correct"):
			verdict = model.VerdictTrue
			if confidence < 80 {
				confidence = 80
			}
		}
	}

	explanation := truncateRunes(text, 500)

	return Result{
		Verdict:        verdict,
		Confidence:     confidence,
		Explanation:    explanation,
		KeyEvidence:    []string{},
		SourcesNeeded:  []string{"authoritative sources"},
		ReasoningSteps: []string{"Analyzed claim text"},
		Caveats:        []string{"Response could not be fully parsed"},
		State:          StateTextHeuristic,
	}, true
}

// truncateRunes caps s at max runes with an ellipsis marker. Slicing
// on runes keeps multibyte characters intact.
func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// failedResult is the deterministic terminal state for an empty reply
func failedResult() Result {
	return Result{
		Verdict:        model.VerdictUnverified,
		Confidence:     30,
		Explanation:    "The response could not be parsed into a verdict. Manual verification recommended.",
		KeyEvidence:    []string{},
		SourcesNeeded:  []string{"authoritative sources"},
		ReasoningSteps: []string{"Attempted structured parse", "Attempted text heuristics", "No verdict recoverable"},
		Caveats:        []string{"parsing_error"},
		State:          StateFailed,
	}
}

// NormalizeVerdict folds synonym spellings onto the canonical verdict
// labels. Anything unrecognized maps to Unverified.
func NormalizeVerdict(verdict string) model.Verdict {
	switch strings.ToLower(strings.TrimSpace(verdict)) {
	case "true", "correct", "accurate", "yes", "confirmed", "factually correct":
		return model.VerdictTrue
	case "false", "incorrect", "inaccurate", "no", "wrong", "scientifically incorrect":
		return model.VerdictFalse
	case "partially true", "partly true", "mixed", "partial":
		return model.VerdictPartiallyTrue
	case "requires investigation", "requires detailed investigation", "needs investigation":
		return model.VerdictInvestigate
	case "requires context", "context dependent", "needs context":
		return model.VerdictContext
	default:
		return model.VerdictUnverified
	}
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func containsAny(text string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
