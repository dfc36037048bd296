// Package provider implements the model client behind a chat session.
//
// Each implementation turns a provider-agnostic []model.Message into one
// non-streaming request against a specific backend and converts the reply
// (or failure) back:
//   - OpenAIProvider: OpenAI and OpenRouter (OpenAI-compatible) via openai-go
//   - AnthropicProvider: Anthropic Messages API via anthropic-sdk-go
//   - OllamaProvider: a local Ollama server via ollama/api
//
// Every failure is returned as *model.CompletionError so callers can tell a
// transport problem from a provider rejection without knowing which SDK
// produced it. No implementation retries.
//
// # Usage
//
//	p, err := provider.NewProvider(provider.Config{
//	    Type:        provider.ProviderTypeOpenAI,
//	    APIKey:      key,
//	    Model:       "gpt-4o-mini",
//	    Temperature: 0.7,
//	    MaxTokens:   1000,
//	})
//	if err != nil {
//	    // handle error
//	}
//	reply, err := p.Complete(ctx, messages)
package provider

// Note: The Provider interface is defined in the model package
// (model/provider.go) to avoid import cycles. This package implements model.Provider.

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeOllama     ProviderType = "ollama"
	ProviderTypeOpenRouter ProviderType = "openrouter"
	ProviderTypeOpenAI     ProviderType = "openai"
	ProviderTypeAnthropic  ProviderType = "anthropic"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	Model   string
	APIKey  string // For OpenAI/OpenRouter/Anthropic (unused for Ollama)

	// Fixed per provider instance, never chosen per turn
	Temperature float64
	MaxTokens   int
}

func (c Config) maxTokens() int {
	if c.MaxTokens <= 0 {
		return 1000
	}
	return c.MaxTokens
}
