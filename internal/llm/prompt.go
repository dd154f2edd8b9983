package llm

import (
	"encoding/json"
	"fmt"

	"github.com/veritaslab/veritas/internal/model"
)

// BuildPrompt constructs the fact-checking instruction for one claim.
// The template embeds the claim, its analysis, the verification strategy,
// and an explicit instruction to respond using the fixed JSON shape that
// the analyze package parses.
func BuildPrompt(vc model.VerificationContext, category model.Category) string {
	entities, _ := json.MarshalIndent(vc.Claim.Entities, "", "  ")
	structure, _ := json.MarshalIndent(vc.Claim.Structure, "", "  ")

	prompt := fmt.Sprintf(`You are a world-class fact-checking expert specializing in %s claims.
Your task is to analyze the following claim with the highest standards of accuracy and provide comprehensive analysis.

CLAIM TO ANALYZE: "%s"
CLAIM CATEGORY: %s

CLAIM ANALYSIS:
- Type: %s
- Key entities: %s
- Structure: %s
- Verification strategy: %s

INSTRUCTIONS:
1. Analyze the claim for factual accuracy
2. Consider the specific type of claim and verification strategy
3. Provide your assessment in the following JSON format:

{
    "verdict": "True" | "False" | "Unverified",
    "confidence_score": <number between 0-100>,
    "explanation": "<detailed explanation of your reasoning>",
    "key_evidence": ["<evidence point 1>", "<evidence point 2>", ...],
    "sources_needed": ["<type of source 1>", "<type of source 2>", ...],
    "reasoning_steps": ["<step 1>", "<step 2>", ...],
    "caveats": ["<caveat 1>", "<caveat 2>", ...]
}

IMPORTANT GUIDELINES:
- Use "True" only if you're confident the claim is factually correct
- Use "False" only if you're confident the claim is factually incorrect
- Use "Unverified" if you cannot determine accuracy with confidence
- Confidence score should reflect your certainty (0-100)
- Provide specific, detailed explanations
- Be honest about limitations in your knowledge
- Consider the date sensitivity of information

%s

Please analyze the claim now:`,
		category,
		vc.Claim.OriginalText,
		category,
		vc.Claim.ClaimType,
		entities,
		structure,
		vc.Strategy,
		frameworkFor(category),
	)

	return prompt
}

// frameworkFor returns the category-specific analysis framework block.
// Scientific, mathematical, historical, and medical claims get bespoke
// instruction blocks; all other categories share the generic framework.
func frameworkFor(category model.Category) string {
	switch category {
	case model.CategoryScientific:
		return `SCIENTIFIC ANALYSIS FRAMEWORK:
1. Evaluate the claim against current scientific consensus
2. Consider peer-reviewed research and methodology
3. Assess experimental evidence and reproducibility
4. Check for scientific validity and logical consistency
5. Consider uncertainty levels and confidence intervals`

	case model.CategoryMathematical:
		return `MATHEMATICAL ANALYSIS FRAMEWORK:
1. Verify mathematical accuracy through logical proof
2. Check computational correctness
3. Consider mathematical definitions and axioms
4. Validate through multiple mathematical approaches
5. Ensure logical consistency and completeness

Mathematical claims require near-absolute certainty.`

	case model.CategoryHistorical:
		return `HISTORICAL ANALYSIS FRAMEWORK:
1. Evaluate historical evidence and primary sources
2. Consider multiple historical perspectives and interpretations
3. Assess reliability of historical documentation
4. Check chronological accuracy and context
5. Consider historical consensus among scholars`

	case model.CategoryMedical:
		return `MEDICAL ANALYSIS FRAMEWORK:
1. Evaluate against current medical knowledge and guidelines
2. Consider clinical evidence and research studies
3. Assess safety implications and contraindications
4. Check regulatory approval status where relevant
5. Consider individual variation and context

CRITICAL: Medical claims require highest confidence thresholds due to health implications.`

	default:
		return `GENERAL ANALYSIS FRAMEWORK:
1. Evaluate factual accuracy using reliable sources
2. Consider context and nuanced interpretations
3. Assess evidence quality and reliability
4. Check for logical consistency
5. Consider limitations and uncertainties`
	}
}
