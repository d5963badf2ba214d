package llm

import "time"

// Provider selects the Generator backend.
type Provider string

const (
	ProviderHTTP Provider = "http"
	ProviderSDK  Provider = "sdk"
	ProviderOff  Provider = "off"
)

// BreakerConfig controls the circuit breaker around the backend.
type BreakerConfig struct {
	Enabled       bool   `koanf:"enabled"`
	MaxFailures   uint32 `koanf:"max_failures" validate:"gte=1"`
	OpenTimeoutMs int    `koanf:"open_timeout_ms" validate:"gte=0"`
	IntervalMs    int    `koanf:"interval_ms" validate:"gte=0"`
}

// LLMConfig holds all configuration for the generation subsystem.
type LLMConfig struct {
	Provider      Provider      `koanf:"provider" validate:"oneof=http sdk off"`
	Endpoint      string        `koanf:"endpoint" validate:"required_unless=Provider off"`
	APIKey        string        `koanf:"api_key"`
	Model         string        `koanf:"model" validate:"required_unless=Provider off"`
	Temperature   float64       `koanf:"temperature" validate:"gte=0,lte=2"`
	MaxTokens     int           `koanf:"max_tokens" validate:"gte=1"`
	TimeoutMs     int           `koanf:"timeout_ms" validate:"gte=1"`
	RatePerSecond float64       `koanf:"rate_per_second" validate:"gte=0"`
	RateBurst     int           `koanf:"rate_burst" validate:"gte=1"`
	Breaker       BreakerConfig `koanf:"breaker"`
}

// DefaultConfig returns an LLMConfig pointed at Groq's OpenAI-compatible API.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:    ProviderHTTP,
		Endpoint:    "https://api.groq.com/openai/v1",
		Model:       "llama-3.3-70b-versatile",
		Temperature: 0.9,
		MaxTokens:   2048,
		TimeoutMs:   30000,
		RateBurst:   1,
		Breaker: BreakerConfig{
			Enabled:       true,
			MaxFailures:   5,
			OpenTimeoutMs: 60000,
		},
	}
}

// Timeout returns the per-call deadline.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Enabled reports whether a live backend is configured.
func (c LLMConfig) Enabled() bool {
	return c.Provider != ProviderOff
}
