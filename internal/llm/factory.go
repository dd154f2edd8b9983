package llm

import (
	"fmt"
	"strings"
)

// NewProvider creates a provider based on the configuration. Demo mode
// takes priority over the provider name so a deployment can flip to
// canned responses without touching the backend settings.
func NewProvider(config Config) (Provider, error) {
	if config.DemoMode {
		return NewDemoProvider(), nil
	}

	switch strings.ToLower(config.Provider) {
	case "ollama":
		return NewOllamaProvider(config)
	case "openai":
		return NewOpenAIProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider: %s (supported: ollama, openai)", config.Provider)
	}
}
