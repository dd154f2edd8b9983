package analyze

import (
	"fmt"
	"strings"
)

// ComposeExplanation renders the final explanation text: the base
// explanation followed by up to three evidence points, up to three
// reasoning steps, and up to two caveats. Sections with no content are
// omitted entirely.
func ComposeExplanation(r Result) string {
	var b strings.Builder

	explanation := r.Explanation
	if explanation == "" {
		explanation = "No explanation provided."
	}
	b.WriteString(explanation)

	if len(r.KeyEvidence) > 0 {
		b.WriteString("\n\nKey Evidence:\n")
		for i, evidence := range head(r.KeyEvidence, 3) {
			fmt.Fprintf(&b, "%d. %s\n", i+1, evidence)
		}
	}

	if len(r.ReasoningSteps) > 0 {
		b.WriteString("\nReasoning Process:\n")
		for i, step := range head(r.ReasoningSteps, 3) {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
	}

	if len(r.Caveats) > 0 {
		b.WriteString("\nImportant Notes:\n")
		for _, caveat := range head(r.Caveats, 2) {
			fmt.Fprintf(&b, "• %s\n", caveat)
		}
	}

	return strings.TrimSpace(b.String())
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
