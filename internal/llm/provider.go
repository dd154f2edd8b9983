// Package llm builds fact-checking prompts and talks to the
// text-generation backend. Providers return raw text; parsing the text
// into a verdict lives in the analyze package.
package llm

import (
	"context"
	"fmt"

	"github.com/veritaslab/veritas/internal/model"
)

// Provider defines the interface for text-generation backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate runs one prompt through the backend and returns its raw
	// text reply
	Generate(ctx context.Context, prompt string) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds generation backend configuration
type Config struct {
	// Provider name: "ollama", "openai"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted endpoints
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Temperature for generation
	Temperature float64

	// DemoMode substitutes rule-based canned responses for the backend
	DemoMode bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "ollama",
		Model:       "llama2",
		BaseURL:     "http://localhost:11434",
		Timeout:     45,
		MaxTokens:   800,
		Temperature: 0.2,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:    modelConfig.Provider,
		Model:       modelConfig.Model,
		APIKey:      modelConfig.APIKey,
		BaseURL:     modelConfig.BaseURL,
		Timeout:     modelConfig.Timeout,
		MaxTokens:   modelConfig.MaxTokens,
		Temperature: modelConfig.Temperature,
		DemoMode:    modelConfig.DemoMode,
	}
}

// FallbackText returns a deterministic reply used when the backend times
// out or errors. It is itself a syntactically valid instance of the
// response schema, so the normal parse path handles it.
func FallbackText(claim string) string {
	return fmt.Sprintf(`{
    "verdict": "Unverified",
    "confidence_score": 30,
    "explanation": "I apologize, but I cannot verify '%s' at this time due to service unavailability. To properly fact-check this claim, I would need access to current databases and reliable sources. Please try again later or consult authoritative sources manually.",
    "key_evidence": [],
    "sources_needed": ["authoritative databases", "reliable news sources", "academic sources"],
    "reasoning_steps": ["Service unavailable", "Unable to access verification resources"],
    "caveats": ["Generation backend temporarily unavailable", "Manual verification recommended"]
}`, escapeForJSON(claim))
}

func escapeForJSON(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '"':
			out = append(out, '\\', '"')
		case '\\':
			out = append(out, '\\', '\\')
		case '\n':
			out = append(out, '\\', 'n')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
