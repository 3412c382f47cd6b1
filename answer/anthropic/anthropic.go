// Package anthropic provides an answer.Generator backed by Claude
// models via the Anthropic Messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/hupe1980/ragmark/answer"
	"github.com/hupe1980/ragmark/model"
)

// Config contains configuration for the Anthropic generator.
type Config struct {
	APIKey    string
	BaseURL   string // Optional custom base URL
	Model     string
	MaxTokens int64
}

// Generator implements answer.Generator using the Anthropic Messages
// API.
type Generator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

var _ answer.Generator = (*Generator)(nil)

// New creates a new Anthropic generator.
func New(cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "claude-sonnet-4-20250514"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 512
	}

	options := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		options = append(options, option.WithBaseURL(cfg.BaseURL))
	}

	return &Generator{
		client:    anthropic.NewClient(options...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Name returns the generator name including the model.
func (g *Generator) Name() string {
	return "anthropic/" + g.model
}

// Generate asks the model for a grounded answer. The retrieved contexts
// pass through as the answer's citations.
func (g *Generator) Generate(ctx context.Context, question string, contexts []model.Citation) (model.Answer, error) {
	message, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		System: []anthropic.TextBlockParam{
			{Type: "text", Text: answer.SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(answer.Prompt(question, contexts))),
		},
	})
	if err != nil {
		return model.Answer{}, fmt.Errorf("create message: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			sb.WriteString(variant.Text)
		}
	}

	claim := strings.TrimSpace(sb.String())
	if claim == "" {
		return model.Answer{}, fmt.Errorf("message contained no text blocks")
	}

	return model.Answer{
		Claim:     claim,
		Citations: contexts,
		Metadata:  map[string]any{"model": g.Name()},
	}, nil
}
