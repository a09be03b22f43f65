package llm

import (
	"context"

	"github.com/bojo24/contentforge/internal/model"
)

// Provider is the generative text service boundary: one synchronous
// generate call per prompt, bounded by a timeout, no streaming and no
// multi-turn state.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate produces free text for the given request
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest is the input for one generation call.
type GenerateRequest struct {
	// System frames the assistant's role (the expert persona)
	System string

	// Prompt is the full field-specific instruction payload
	Prompt string

	// Model overrides the configured model when non-empty
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// GenerateResponse is the service's reply.
type GenerateResponse struct {
	// Text is the generated free text, trimmed
	Text string

	// Model is the model that produced the response
	Model string

	// TokensUsed tracks token consumption where the provider reports it
	TokensUsed int
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai", "gemini", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for the hosted APIs
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 1500,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(c model.LLMConfig) Config {
	return Config{
		Provider:  c.Provider,
		Model:     c.Model,
		APIKey:    c.APIKey,
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		MaxTokens: c.MaxTokens,
	}
}
