package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"inquisitive/config"
	"inquisitive/model"
)

const defaultAnthropicBaseURL = "https://api.anthropic.com"

// AnthropicProvider implements model.Provider using Anthropic's official API.
type AnthropicProvider struct {
	client      *anthropic.Client
	model       anthropic.Model
	temperature float64
	maxTokens   int
}

// NewAnthropicProvider creates a new Anthropic provider instance.
//
// Returns an error if the API key is missing.
func NewAnthropicProvider(cfg Config) (*AnthropicProvider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAnthropicBaseURL
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	anthropicModel := anthropic.ModelClaudeSonnet4_5_20250929
	if cfg.Model != "" {
		anthropicModel = anthropic.Model(cfg.Model)
	}

	client := anthropic.NewClient(
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	)

	return &AnthropicProvider{
		client:      &client,
		model:       anthropicModel,
		temperature: cfg.Temperature,
		maxTokens:   cfg.maxTokens(),
	}, nil
}

// Complete implements model.Provider.Complete. The preamble travels in the
// system parameter; the reply is the concatenated text blocks.
func (p *AnthropicProvider) Complete(ctx context.Context, messages []model.Message) (string, error) {
	if err := model.ValidateMessages(messages); err != nil {
		return "", err
	}

	anthropicMessages, systemPrompt := convertToAnthropicMessages(messages)

	params := anthropic.MessageNewParams{
		Model:       p.model,
		Messages:    anthropicMessages,
		MaxTokens:   int64(p.maxTokens),
		Temperature: anthropic.Float(p.temperature),
	}
	if len(systemPrompt) > 0 {
		params.System = systemPrompt
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		ce := classifyAnthropicError(err)
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Provider] anthropic completion failed: %v", ce)
		}
		return "", ce
	}

	var text strings.Builder
	found := false
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(tb.Text)
			found = true
		}
	}
	if !found {
		return "", malformedError("response contained no text content")
	}

	return text.String(), nil
}

func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// GetModel implements Provider.GetModel.
func (p *AnthropicProvider) GetModel() string {
	return string(p.model)
}

// Ping implements Provider.Ping with a minimal one-token request; Anthropic
// has no health endpoint.
func (p *AnthropicProvider) Ping(ctx context.Context) error {
	_, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	if err != nil {
		return classifyAnthropicError(err)
	}
	return nil
}
