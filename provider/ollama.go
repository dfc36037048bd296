package provider

import (
	"context"
	"fmt"

	"inquisitive/config"
	"inquisitive/model"
	"inquisitive/ollama"
)

// OllamaProvider wraps ollama.Client to implement model.Provider against a
// local server. It needs no API key.
type OllamaProvider struct {
	client *ollama.Client
}

// NewOllamaProvider creates a new Ollama provider instance.
//
// Empty BaseURL and Model default to http://localhost:11434 and
// llama3.1:latest. Returns an error if the BaseURL is invalid.
func NewOllamaProvider(cfg Config) (*OllamaProvider, error) {
	client, err := ollama.NewClient(cfg.BaseURL, cfg.Model, ollama.Options{
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.maxTokens(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaProvider{
		client: client,
	}, nil
}

// Complete implements model.Provider.Complete.
func (p *OllamaProvider) Complete(ctx context.Context, messages []model.Message) (string, error) {
	if err := model.ValidateMessages(messages); err != nil {
		return "", err
	}

	reply, err := p.client.Complete(ctx, ConvertToOllamaMessages(messages))
	if err != nil {
		ce := classifyOllamaError(err)
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Provider] ollama completion failed: %v", ce)
		}
		return "", ce
	}
	return reply, nil
}

func (p *OllamaProvider) Name() string {
	return "ollama"
}

// GetModel implements Provider.GetModel.
func (p *OllamaProvider) GetModel() string {
	return p.client.GetModel()
}

// Ping implements Provider.Ping by delegating to the ollama client.
func (p *OllamaProvider) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx); err != nil {
		return classifyOllamaError(err)
	}
	return nil
}

// ListModels implements ModelLister.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]ollama.ModelInfo, error) {
	models, err := p.client.ListModels(ctx)
	if err != nil {
		return nil, classifyOllamaError(err)
	}
	return models, nil
}
