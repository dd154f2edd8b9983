package classify

import "github.com/veritaslab/veritas/internal/model"

// strategies maps each claim type to its verification strategy sentence
var strategies = map[model.ClaimType]string{
	model.ClaimTypeMeasurement:  "Compare against authoritative measurement databases",
	model.ClaimTypeTemporal:     "Verify dates against historical records",
	model.ClaimTypeGeographical: "Cross-reference with geographical databases",
	model.ClaimTypeBiographical: "Verify against biographical sources",
	model.ClaimTypeDefinitional: "Check against authoritative definitions",
	model.ClaimTypeComparative:  "Gather data for both subjects and compare",
	model.ClaimTypeGeneral:      "Multi-source verification with credible sources",
}

// BuildContext wraps a descriptor with the strategy and the factors that
// help or hinder verification
func BuildContext(descriptor model.ClaimDescriptor) model.VerificationContext {
	strategy, ok := strategies[descriptor.ClaimType]
	if !ok {
		strategy = strategies[model.ClaimTypeGeneral]
	}
	return model.VerificationContext{
		Claim:             descriptor,
		Strategy:          strategy,
		ConfidenceFactors: confidenceFactors(descriptor),
		PotentialIssues:   potentialIssues(descriptor),
	}
}

func confidenceFactors(d model.ClaimDescriptor) []string {
	var factors []string
	if d.Structure.HasQuantifier {
		factors = append(factors, "Contains specific numbers - verifiable")
	}
	if d.Structure.IsComparative {
		factors = append(factors, "Comparative claim - requires multiple data points")
	}
	if d.Structure.ComplexityScore > 3 {
		factors = append(factors, "High complexity - may be difficult to verify")
	}
	if len(d.Entities[model.EntityPlaces]) > 0 {
		factors = append(factors, "Contains geographical references - verifiable")
	}
	if len(d.Entities[model.EntityDates]) > 0 {
		factors = append(factors, "Contains dates - historically verifiable")
	}
	return factors
}

func potentialIssues(d model.ClaimDescriptor) []string {
	var issues []string
	if d.Structure.IsQuestion {
		issues = append(issues, "Claim is phrased as a question")
	}
	if d.Structure.HasNegation {
		issues = append(issues, "Contains negation - verify the positive statement")
	}
	if len(d.KeyTerms) < 2 {
		issues = append(issues, "Very few key terms - may be too vague")
	}
	if d.Structure.ComplexityScore > 4 {
		issues = append(issues, "High complexity - break down into sub-claims")
	}
	return issues
}
