package llm

import (
	"context"
	"fmt"
	"strings"
)

// DemoProvider returns rule-based canned responses keyed by claim
// content, without contacting any backend. The rules live in a
// priority-ordered table so the match order is auditable and testable.
type DemoProvider struct {
	rules []demoRule
}

// demoRule pairs a predicate on the lowercased claim with the canned
// response it produces. The first matching rule wins.
type demoRule struct {
	name    string
	matches func(lower string) bool
	respond func(claim, claimType string) string
}

// NewDemoProvider creates the demo provider with the fixed rule table
func NewDemoProvider() *DemoProvider {
	return &DemoProvider{
		rules: []demoRule{
			{
				name: "flat-earth",
				matches: func(lower string) bool {
					return strings.Contains(lower, "flat") &&
						(strings.Contains(lower, "earth") || strings.Contains(lower, "world"))
				},
				respond: func(claim, claimType string) string { return demoFlatEarth },
			},
			{
				name: "sun-earth-size",
				matches: func(lower string) bool {
					return (strings.Contains(lower, "sun") || strings.Contains(lower, "solar")) &&
						(strings.Contains(lower, "world") || strings.Contains(lower, "earth")) &&
						(strings.Contains(lower, "bigger") || strings.Contains(lower, "larger"))
				},
				respond: func(claim, claimType string) string { return demoSunBigger },
			},
			{
				name: "astronomical-smaller",
				matches: func(lower string) bool {
					if !strings.Contains(lower, "small") && !strings.Contains(lower, "smaller") {
						return false
					}
					return containsAnyOf(lower, "sun", "moon", "earth", "world")
				},
				respond: func(claim, claimType string) string { return demoEarthSmaller },
			},
			{
				name: "arithmetic",
				matches: func(lower string) bool {
					return strings.Contains(lower, "2+2") || strings.Contains(lower, "2 + 2")
				},
				respond: func(claim, claimType string) string { return demoArithmetic },
			},
			{
				name: "trump-presidency",
				matches: func(lower string) bool {
					return strings.Contains(lower, "trump") &&
						(strings.Contains(lower, "president") || strings.Contains(lower, "potus"))
				},
				respond: func(claim, claimType string) string { return demoTrumpPresidency },
			},
			{
				name: "capital-cities",
				matches: func(lower string) bool {
					return containsAnyOf(lower, "paris", "france", "london", "england", "tokyo", "japan")
				},
				respond: func(claim, claimType string) string { return demoParisCapital },
			},
			{
				name: "climate",
				matches: func(lower string) bool {
					return containsAnyOf(lower, "climate", "global warming", "temperature", "ice caps")
				},
				respond: demoClimate,
			},
		},
	}
}

// Name returns the provider name
func (p *DemoProvider) Name() string {
	return "demo"
}

// IsAvailable always reports true; the demo provider has no backend
func (p *DemoProvider) IsAvailable(ctx context.Context) bool {
	return true
}

// IsDemo reports whether p serves canned rule-based replies. Canned
// replies state their confidence directly and skip category
// adjustment downstream.
func IsDemo(p Provider) bool {
	_, ok := p.(*DemoProvider)
	return ok
}

// Generate matches the claim embedded in the prompt against the rule
// table and returns the first matching canned response
func (p *DemoProvider) Generate(ctx context.Context, prompt string) (string, error) {
	claim := extractBetween(prompt, `CLAIM TO ANALYZE: "`, `"`)
	claimType := extractLineValue(prompt, "- Type: ")
	if claimType == "" {
		claimType = "general"
	}

	lower := strings.ToLower(claim)
	for _, rule := range p.rules {
		if rule.matches(lower) {
			return rule.respond(claim, claimType), nil
		}
	}
	return demoDefault(claim, claimType), nil
}

func containsAnyOf(text string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// extractBetween returns the substring between the first occurrence of
// start and the next occurrence of end after it
func extractBetween(text, start, end string) string {
	i := strings.Index(text, start)
	if i < 0 {
		return ""
	}
	rest := text[i+len(start):]
	j := strings.Index(rest, end)
	if j < 0 {
		return rest
	}
	return rest[:j]
}

// extractLineValue returns the remainder of the first line starting with
// the given prefix
func extractLineValue(text, prefix string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return ""
}

const demoFlatEarth = `{
    "verdict": "False",
    "confidence_score": 99.9,
    "explanation": "This claim is scientifically incorrect. The Earth is an oblate spheroid, not flat. This has been conclusively proven through multiple scientific methods including satellite imagery, physics, astronomy, and direct observation.",
    "key_evidence": [
        "Satellite imagery shows Earth's spherical shape",
        "Ships disappear hull-first over horizon due to Earth's curvature",
        "Different constellations visible from different latitudes",
        "Earth's shadow on moon during lunar eclipses is curved"
    ],
    "sources_needed": ["NASA satellite imagery", "International Space Station footage", "Physics textbooks", "Astronomical observations"],
    "reasoning_steps": [
        "Analyzed overwhelming scientific evidence for Earth's spherical shape",
        "Reviewed photographic evidence from space",
        "Considered physics of gravity and planetary formation",
        "Evaluated astronomical observations and measurements"
    ],
    "caveats": ["Based on centuries of scientific evidence", "Contradicts flat earth theory completely"]
}`

const demoSunBigger = `{
    "verdict": "False",
    "confidence_score": 99.9,
    "explanation": "This claim is scientifically incorrect and contradicts well-established astronomical facts. The Sun is vastly larger than Earth in all measurable dimensions. Size comparison: Sun diameter is 1,391,400 km vs Earth's 12,742 km (Sun is 109.2 times wider). Volume: Sun is approximately 1.3 million times larger. Mass: Sun is 333,000 times more massive than Earth.",
    "key_evidence": [
        "Sun diameter: 1,391,400 km vs Earth diameter: 12,742 km",
        "Sun is 109.2 times wider than Earth",
        "Sun volume is 1.3 million times larger than Earth",
        "Sun mass is 333,000 times greater than Earth mass"
    ],
    "sources_needed": ["NASA Planetary Fact Sheets", "International Astronomical Union data", "Peer-reviewed astronomical journals"],
    "reasoning_steps": [
        "Analyzed dimensional measurements of Sun and Earth",
        "Compared diameter, volume, and mass ratios",
        "Cross-referenced with multiple astronomical databases",
        "Confirmed measurements are well-established scientific facts"
    ],
    "caveats": ["Measurements based on current astronomical standards", "Data consistently verified across space agencies"]
}`

const demoEarthSmaller = `{
    "verdict": "False",
    "confidence_score": 99.9,
    "explanation": "This claim is astronomically incorrect. The Earth is significantly smaller than the Sun in all dimensions. The Sun's diameter is 109.2 times larger than Earth's diameter.",
    "key_evidence": [
        "Sun diameter: 1,391,400 km vs Earth diameter: 12,742 km",
        "Sun volume is 1.3 million times larger than Earth",
        "Sun mass is 333,000 times greater than Earth mass",
        "Observable size difference confirms measurements"
    ],
    "sources_needed": ["NASA planetary data", "Astronomical measurements", "Physics databases"],
    "reasoning_steps": [
        "Compared official astronomical measurements",
        "Verified diameter, volume, and mass ratios",
        "Cross-referenced multiple space agency data",
        "Confirmed through observational astronomy"
    ],
    "caveats": ["Based on precise astronomical measurements", "Universally accepted scientific data"]
}`

const demoArithmetic = `{
    "verdict": "True",
    "confidence_score": 100.0,
    "explanation": "This mathematical statement is correct according to standard arithmetic in base-10 decimal system. The addition 2 + 2 = 4 is a fundamental mathematical truth verified through multiple mathematical systems.",
    "key_evidence": [
        "Operation: Addition of two integers (2 + 2)",
        "Result: 4 in decimal system",
        "Binary verification: 10 + 10 = 100 (equals 4 in decimal)",
        "Roman numerals: II + II = IV"
    ],
    "sources_needed": ["Mathematical axioms", "Arithmetic principles", "Universal mathematical standards"],
    "reasoning_steps": [
        "Applied Peano axioms for natural numbers",
        "Used standard definition of addition",
        "Verified through successor function application",
        "Confirmed consistency across mathematical systems"
    ],
    "caveats": ["Fundamental mathematical truth", "Universal consensus across mathematical systems"]
}`

const demoTrumpPresidency = `{
    "verdict": "True",
    "confidence_score": 100.0,
    "explanation": "This claim is factually correct. Donald J. Trump served as the 45th President of the United States from January 20, 2017 to January 20, 2021, completing one full term.",
    "key_evidence": [
        "Election: Won 2016 presidential election with 304 electoral votes",
        "Inauguration: January 20, 2017",
        "Term end: January 20, 2021",
        "Presidential number: 45th President of the United States"
    ],
    "sources_needed": ["U.S. National Archives", "Federal Election Commission", "Congressional Records"],
    "reasoning_steps": [
        "Verified through official government records",
        "Cross-referenced congressional documentation",
        "Confirmed electoral college certification",
        "Historical archives validation"
    ],
    "caveats": ["Based on official government documentation", "Public record verification"]
}`

const demoParisCapital = `{
    "verdict": "True",
    "confidence_score": 100.0,
    "explanation": "This claim is geographically accurate. Paris is indeed the capital and largest city of France, with coordinates 48°52′N 2°20′E, and has been the capital since 508 AD.",
    "key_evidence": [
        "Paris coordinates: 48°52′N 2°20′E",
        "Administrative status: Capital city and largest city of France",
        "Capital since 508 AD (Clovis I)",
        "Population: ~2.16 million (city), ~12.4 million (metro area)"
    ],
    "sources_needed": ["INSEE (French National Statistics)", "IGN (French Geographic Institute)", "UN Geographic Database"],
    "reasoning_steps": [
        "Verified through official French government sources",
        "Cross-referenced geographic coordinates",
        "Confirmed administrative boundary status",
        "Historical documentation review"
    ],
    "caveats": ["Based on official government recognition", "International geographic standards"]
}`

func demoClimate(claim, claimType string) string {
	return fmt.Sprintf(`{
    "verdict": "Requires Context",
    "confidence_score": 85.0,
    "explanation": "Environmental and climate claims require specific context and timeframe analysis. The claim '%s' touches on complex scientific topics that need detailed examination with multiple data sources and expert consensus.",
    "key_evidence": [
        "Climate data requires peer-reviewed analysis",
        "Multiple data sources needed for verification",
        "Scientific consensus evaluation required",
        "Temporal and geographic context important"
    ],
    "sources_needed": ["IPCC reports", "NASA climate data", "NOAA records", "Peer-reviewed climate journals"],
    "reasoning_steps": [
        "Identified as environmental/climate claim requiring expert analysis",
        "Assessed complexity factors and verification requirements",
        "Determined need for scientific literature review",
        "Recommended multi-source data analysis approach"
    ],
    "caveats": ["Requires expert scientific consensus", "Context-dependent accuracy", "Time-sensitive data needed"]
}`, escapeForJSON(claim))
}

// demoDefault applies the catch-all verdict heuristics
func demoDefault(claim, claimType string) string {
	lower := strings.ToLower(claim)

	verdict := "Unverified"
	confidence := 50.0
	if containsAnyOf(lower, "water is wet", "fire is hot", "ice is cold", "gravity") {
		verdict = "True"
		confidence = 85.0
	} else if containsAnyOf(lower, "impossible", "never happened", "fake", "hoax") {
		verdict = "False"
		confidence = 80.0
	}

	return fmt.Sprintf(`{
    "verdict": "%s",
    "confidence_score": %.1f,
    "explanation": "The claim '%s' has been classified as %s type and analyzed using available information. Based on preliminary analysis, this claim appears to be %s with moderate confidence.",
    "key_evidence": [
        "Claim type: %s",
        "Preliminary analysis completed",
        "Standard verification protocols applied",
        "Assessment based on available information patterns"
    ],
    "sources_needed": ["Academic databases", "Expert networks", "Primary sources", "Fact-checking organizations"],
    "reasoning_steps": [
        "Classified claim type and complexity",
        "Applied standard verification methodology",
        "Assessed available information patterns",
        "Determined preliminary verdict based on analysis"
    ],
    "caveats": ["Limited by demo mode constraints", "Requires comprehensive source verification", "May need expert consultation"]
}`, verdict, confidence, escapeForJSON(claim), claimType, strings.ToLower(verdict), claimType)
}
