package provider

import (
	"context"
	"fmt"
	"time"

	"inquisitive/config"
	"inquisitive/model"
	"inquisitive/ollama"
)

// pingTimeout bounds the reachability check run by "inquisitive config --ping".
const pingTimeout = 10 * time.Second

// InitializeProvider builds the model client for the active provider entry.
//
// The API key is resolved at runtime through cfg.APIKey (env first, then the
// credential store); it is never read from config.toml.
func InitializeProvider(cfg *config.Config) (model.Provider, error) {
	active := cfg.ActiveProvider()

	apiKey := cfg.APIKey(active.ID)
	if config.RequiresAPIKey(active.ID) && apiKey == "" {
		return nil, fmt.Errorf("no API key for %s: set %s or run \"inquisitive key set %s\"",
			active.ID, config.KeyEnvHint(active.ID), active.ID)
	}

	p, err := NewProvider(Config{
		Type:        MapProviderIDToType(active.ID),
		BaseURL:     active.BaseURL,
		Model:       active.Model,
		APIKey:      apiKey,
		Temperature: cfg.Generation.Temperature,
		MaxTokens:   cfg.Generation.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider %s: %w", active.ID, err)
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Provider] Initialized provider: %s (model: %s, base: %s)",
			active.ID, p.GetModel(), active.BaseURL)
	}

	return p, nil
}

// ModelLister is implemented by providers that can report the models
// installed locally. "inquisitive config --ping" prints them.
type ModelLister interface {
	ListModels(ctx context.Context) ([]ollama.ModelInfo, error)
}

// PingProvider checks that p answers within pingTimeout.
func PingProvider(ctx context.Context, p model.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("%s ping failed: %w", p.Name(), err)
	}
	return nil
}
