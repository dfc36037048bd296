package model

import "context"

// Provider abstracts the Model Client implementations (OpenAI, OpenRouter,
// Anthropic, Ollama) using provider-agnostic types from the model layer.
//
// This interface is defined in the model package (not provider package) to avoid
// import cycles: provider implementations import model, and model uses the
// Provider interface without importing the provider package.
type Provider interface {
	// Complete sends one non-streaming request and returns the text of the
	// first choice. Failures are returned as *CompletionError. No retries.
	Complete(ctx context.Context, messages []Message) (string, error)

	// Name returns the provider ID ("openai", "ollama", ...).
	Name() string

	// GetModel returns the model id sent with every request.
	GetModel() string

	// Ping checks if the provider is reachable.
	Ping(ctx context.Context) error
}
