package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"inquisitive/config"
	"inquisitive/model"
)

const (
	defaultOpenAIBaseURL     = "https://api.openai.com/v1"
	defaultOpenAIModel       = "gpt-4o-mini"
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel   = "openai/gpt-4o-mini"
)

// OpenAIProvider implements model.Provider against the OpenAI chat
// completions API. OpenRouter is 100% OpenAI-compatible and uses the same
// implementation with a different base URL.
type OpenAIProvider struct {
	client      openai.Client
	name        string
	model       string
	temperature float64
	maxTokens   int
}

// NewOpenAIProvider creates a provider for api.openai.com (or any
// OpenAI-compatible base URL).
//
// Returns an error if the API key is missing.
func NewOpenAIProvider(cfg Config) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenAIBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultOpenAIModel
	}
	return newOpenAICompatible("openai", cfg), nil
}

// NewOpenRouterProvider creates a provider for OpenRouter.
func NewOpenRouterProvider(cfg Config) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultOpenRouterModel
	}
	return newOpenAICompatible("openrouter", cfg,
		option.WithHeader("X-Title", "inquisitive"),
	), nil
}

func newOpenAICompatible(name string, cfg Config, extra ...option.RequestOption) *OpenAIProvider {
	opts := []option.RequestOption{
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.APIKey),
		// One attempt per turn; failures surface to the user
		option.WithMaxRetries(0),
	}
	opts = append(opts, extra...)

	return &OpenAIProvider{
		client:      openai.NewClient(opts...),
		name:        name,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.maxTokens(),
	}
}

// Complete implements model.Provider.Complete with one non-streaming
// request carrying {model, messages, temperature, max_tokens}.
func (p *OpenAIProvider) Complete(ctx context.Context, messages []model.Message) (string, error) {
	if err := model.ValidateMessages(messages); err != nil {
		return "", err
	}

	params := openai.ChatCompletionNewParams{
		Messages:    ConvertToOpenAIMessages(messages),
		Model:       openai.ChatModel(p.model),
		Temperature: openai.Float(p.temperature),
		MaxTokens:   openai.Int(int64(p.maxTokens)),
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		ce := classifyOpenAIError(err)
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Provider] %s completion failed: %v", p.name, ce)
		}
		return "", ce
	}

	if len(resp.Choices) == 0 {
		return "", malformedError("response contained no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Name() string {
	return p.name
}

// GetModel implements Provider.GetModel.
// For OpenRouter this is the full name with vendor prefix.
func (p *OpenAIProvider) GetModel() string {
	return p.model
}

// Ping implements Provider.Ping by attempting to list models.
func (p *OpenAIProvider) Ping(ctx context.Context) error {
	if _, err := p.client.Models.List(ctx); err != nil {
		return classifyOpenAIError(err)
	}
	return nil
}
