package analyze

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/veritaslab/veritas/internal/model"
)

func TestParse_StructuredJSON(t *testing.T) {
	raw := `Here is my analysis:
{
    "verdict": "False",
    "confidence_score": 92.5,
    "explanation": "The tower is 330 meters tall.",
    "key_evidence": ["Official height records"],
    "sources_needed": ["Engineering surveys"],
    "reasoning_steps": ["Compared claim to records"],
    "caveats": ["Antenna height varies"]
}
Hope that helps.`

	result := Parse(raw)
	if result.State != StateStructured {
		t.Fatalf("expected structured state, got %s", result.State)
	}
	if result.Verdict != model.VerdictFalse {
		t.Errorf("expected False verdict, got %s", result.Verdict)
	}
	if result.Confidence != 92.5 {
		t.Errorf("expected confidence 92.5, got %v", result.Confidence)
	}
	if len(result.KeyEvidence) != 1 {
		t.Errorf("unexpected key evidence: %v", result.KeyEvidence)
	}
}

func TestParse_StructuredJSON_SynonymVerdict(t *testing.T) {
	result := Parse(`{"verdict": "scientifically incorrect", "confidence_score": 95, "explanation": "x"}`)
	if result.State != StateStructured {
		t.Fatalf("expected structured state, got %s", result.State)
	}
	if result.Verdict != model.VerdictFalse {
		t.Errorf("expected False from synonym, got %s", result.Verdict)
	}
}

func TestParse_StructuredJSON_MissingFields(t *testing.T) {
	result := Parse(`{"verdict": "True"}`)
	if result.Confidence != 50 {
		t.Errorf("expected default confidence 50, got %v", result.Confidence)
	}
	if result.Explanation != "No explanation provided" {
		t.Errorf("unexpected explanation: %q", result.Explanation)
	}
}

func TestParse_TextHeuristic_VerdictLine(t *testing.T) {
	raw := "Verdict: Partially True\nConfidence: 72%\nThe claim holds in some respects."

	result := Parse(raw)
	if result.State != StateTextHeuristic {
		t.Fatalf("expected text heuristic state, got %s", result.State)
	}
	if result.Verdict != model.VerdictPartiallyTrue {
		t.Errorf("expected Partially True, got %s", result.Verdict)
	}
	if result.Confidence != 72 {
		t.Errorf("expected confidence 72, got %v", result.Confidence)
	}
}

func TestParse_TextHeuristic_SentimentFloor(t *testing.T) {
	result := Parse("This statement is factually correct and well documented.")
	if result.Verdict != model.VerdictTrue {
		t.Errorf("expected True, got %s", result.Verdict)
	}
	if result.Confidence < 80 {
		t.Errorf("expected confidence floor of 80, got %v", result.Confidence)
	}
}

func TestParse_TextHeuristic_KeywordFreeProse(t *testing.T) {
	raw := "The assertion needs more study and expert review."

	result := Parse(raw)
	if result.State != StateTextHeuristic {
		t.Fatalf("expected text heuristic state, got %s", result.State)
	}
	if result.Verdict != model.VerdictUnverified {
		t.Errorf("expected Unverified, got %s", result.Verdict)
	}
	if result.Confidence != 50 {
		t.Errorf("expected neutral confidence 50, got %v", result.Confidence)
	}
	if result.Explanation != raw {
		t.Errorf("expected the prose as explanation, got %q", result.Explanation)
	}
}

func TestParse_TextHeuristic_TruncatesOnRunes(t *testing.T) {
	raw := "Confidence: 60\n" + strings.Repeat("é", 600)

	result := Parse(raw)
	if result.State != StateTextHeuristic {
		t.Fatalf("expected text heuristic state, got %s", result.State)
	}
	if !utf8.ValidString(result.Explanation) {
		t.Fatal("truncated explanation is not valid UTF-8")
	}
	if got := len([]rune(result.Explanation)); got != 503 {
		t.Errorf("expected 500 runes plus ellipsis, got %d", got)
	}
	if !strings.HasSuffix(result.Explanation, "...") {
		t.Error("expected ellipsis suffix on truncated explanation")
	}
}

func TestParse_Failed(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		result := Parse(raw)
		if result.State != StateFailed {
			t.Errorf("Parse(%q): expected failed state, got %s", raw, result.State)
			continue
		}
		if result.Verdict != model.VerdictUnverified {
			t.Errorf("Parse(%q): expected Unverified, got %s", raw, result.Verdict)
		}
		if result.Confidence != 30 {
			t.Errorf("Parse(%q): expected confidence 30, got %v", raw, result.Confidence)
		}
	}
}

func TestParse_ConfidenceClamped(t *testing.T) {
	result := Parse(`{"verdict": "True", "confidence_score": 250, "explanation": "x"}`)
	if result.Confidence != 100 {
		t.Errorf("expected clamp to 100, got %v", result.Confidence)
	}
}

func TestNormalizeVerdict(t *testing.T) {
	tests := []struct {
		input    string
		expected model.Verdict
	}{
		{"True", model.VerdictTrue},
		{"  CONFIRMED ", model.VerdictTrue},
		{"wrong", model.VerdictFalse},
		{"mixed", model.VerdictPartiallyTrue},
		{"needs investigation", model.VerdictInvestigate},
		{"context dependent", model.VerdictContext},
		{"gibberish", model.VerdictUnverified},
		{"", model.VerdictUnverified},
	}

	for _, tt := range tests {
		if got := NormalizeVerdict(tt.input); got != tt.expected {
			t.Errorf("NormalizeVerdict(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestAdjustConfidence(t *testing.T) {
	tests := []struct {
		confidence float64
		category   model.Category
		expected   float64
	}{
		{95, model.CategoryMathematical, 95},
		{100, model.CategoryMathematical, 99.5},
		{80, model.CategoryMathematical, 64},
		{95, model.CategoryMedical, 85},
		{60, model.CategoryMedical, 54},
		{95, model.CategoryOpinionBased, 60},
		{40, model.CategoryOpinionBased, 40},
		{95, model.CategoryScientific, 95},
		{60, model.CategoryScientific, 51},
		{95, model.CategoryGeneral, 95},
	}

	for _, tt := range tests {
		if got := AdjustConfidence(tt.confidence, tt.category); got != tt.expected {
			t.Errorf("AdjustConfidence(%v, %s) = %v, want %v", tt.confidence, tt.category, got, tt.expected)
		}
	}
}

func TestAdjustConfidence_Idempotent(t *testing.T) {
	for _, category := range []model.Category{
		model.CategoryMedical, model.CategoryOpinionBased, model.CategoryGeneral,
	} {
		once := AdjustConfidence(95, category)
		twice := AdjustConfidence(once, category)
		// Medical rescales on every application; the cap is what holds
		if category == model.CategoryMedical {
			if twice > 85 {
				t.Errorf("%s: cap exceeded after double adjustment: %v", category, twice)
			}
			continue
		}
		if once != twice {
			t.Errorf("%s: adjustment not idempotent: %v then %v", category, once, twice)
		}
	}
}

func TestComposeExplanation(t *testing.T) {
	result := Result{
		Explanation:    "Base explanation.",
		KeyEvidence:    []string{"e1", "e2", "e3", "e4"},
		ReasoningSteps: []string{"r1", "r2"},
		Caveats:        []string{"c1", "c2", "c3"},
	}

	text := ComposeExplanation(result)
	if !strings.HasPrefix(text, "Base explanation.") {
		t.Errorf("explanation must lead the text: %q", text)
	}
	if !strings.Contains(text, "Key Evidence:") || !strings.Contains(text, "3. e3") {
		t.Errorf("expected three evidence points:\n%s", text)
	}
	if strings.Contains(text, "e4") {
		t.Errorf("evidence must be capped at three:\n%s", text)
	}
	if !strings.Contains(text, "Reasoning Process:") {
		t.Errorf("missing reasoning section:\n%s", text)
	}
	if strings.Contains(text, "c3") {
		t.Errorf("caveats must be capped at two:\n%s", text)
	}
}

func TestComposeExplanation_EmptySectionsOmitted(t *testing.T) {
	text := ComposeExplanation(Result{Explanation: "Just this."})
	if text != "Just this." {
		t.Errorf("expected bare explanation, got %q", text)
	}
}
