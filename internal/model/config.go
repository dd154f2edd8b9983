package model

import "time"

// Config holds the complete service configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	Verbose   bool            `yaml:"verbose" mapstructure:"verbose"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`

	// CORSOrigins are the origins allowed to call the API from a browser
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// StoreConfig selects and configures the result log backend
type StoreConfig struct {
	// Backend: "memory" or "sqlite"
	Backend string `yaml:"backend" mapstructure:"backend"`

	// Path to the SQLite database file (sqlite backend only)
	Path string `yaml:"path" mapstructure:"path"`
}

// LLMConfig holds text-generation backend configuration
type LLMConfig struct {
	// Provider name: "ollama", "openai", or "" (demo mode implies none)
	Provider string `yaml:"provider" mapstructure:"provider"`

	// BaseURL for the backend (e.g., Ollama at http://localhost:11434)
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// APIKey for hosted backends (sent as a Bearer token to Ollama-style
	// endpoints when set)
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// Model name (provider-specific)
	Model string `yaml:"model" mapstructure:"model"`

	// MaxTokens limits the response length
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`

	// Temperature for generation
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`

	// Timeout for one generation call, in seconds
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	// DemoMode bypasses the real backend with rule-based canned responses
	DemoMode bool `yaml:"demo_mode" mapstructure:"demo_mode"`
}

// CacheConfig controls the repeated-claim result cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// RateLimitConfig throttles calls to the generation backend
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8000,
			CORSOrigins: []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		},
		Store: StoreConfig{
			Backend: "memory",
			Path:    "fact_checker.db",
		},
		LLM: LLMConfig{
			Provider:    "ollama",
			BaseURL:     "http://localhost:11434",
			Model:       "llama2",
			MaxTokens:   800,
			Temperature: 0.2,
			Timeout:     45,
			DemoMode:    true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			Burst:             5,
		},
	}
}
