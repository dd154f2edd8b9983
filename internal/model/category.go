package model

// Category is the coarse topical tag driving prompt variants and
// confidence adjustment. It is derived from the claim text, never from
// user input.
type Category string

const (
	CategoryScientific   Category = "scientific"
	CategoryMathematical Category = "mathematical"
	CategoryHistorical   Category = "historical"
	CategoryMedical      Category = "medical"
	CategoryStatistical  Category = "statistical"
	CategoryGeographical Category = "geographical"
	CategoryComparative  Category = "comparative"
	CategoryOpinionBased Category = "opinion_based"
	CategoryGeneral      Category = "general"
)

// CategorySources maps each category to the source types its verdicts
// should cite when the backend does not name any.
func CategorySources(c Category) []string {
	switch c {
	case CategoryScientific:
		return []string{"Peer-reviewed journals", "Scientific databases", "Research institutions"}
	case CategoryMathematical:
		return []string{"Mathematical proofs", "Computational verification", "Mathematical journals"}
	case CategoryHistorical:
		return []string{"Primary historical sources", "Archaeological evidence", "Historical archives"}
	case CategoryMedical:
		return []string{"Clinical studies", "Medical journals", "Health authorities"}
	case CategoryStatistical:
		return []string{"Government statistics", "Survey data", "Statistical databases"}
	case CategoryGeographical:
		return []string{"Geographic databases", "Mapping services", "Geographic surveys"}
	case CategoryComparative:
		return []string{"Comparative studies", "Statistical analysis", "Research data"}
	default:
		return []string{"Reliable news sources", "Fact-checking organizations", "Academic sources"}
	}
}
