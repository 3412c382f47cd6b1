// Package openai provides an answer.Generator backed by OpenAI chat
// models.
package openai

import (
	"context"
	"fmt"

	"github.com/hupe1980/ragmark/answer"
	"github.com/hupe1980/ragmark/model"
	"github.com/sashabaranov/go-openai"
)

// Config contains configuration for the OpenAI generator.
type Config struct {
	APIKey    string
	BaseURL   string // Optional custom base URL
	Model     string
	MaxTokens int
}

// Generator implements answer.Generator using OpenAI chat completions.
type Generator struct {
	client    *openai.Client
	model     string
	maxTokens int
}

var _ answer.Generator = (*Generator)(nil)

// New creates a new OpenAI generator.
func New(cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 512
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	return &Generator{
		client:    openai.NewClientWithConfig(config),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Name returns the generator name including the model.
func (g *Generator) Name() string {
	return "openai/" + g.model
}

// Generate asks the chat model for a grounded answer. The retrieved
// contexts pass through as the answer's citations.
func (g *Generator) Generate(ctx context.Context, question string, contexts []model.Citation) (model.Answer, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: answer.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: answer.Prompt(question, contexts)},
		},
	})
	if err != nil {
		return model.Answer{}, fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return model.Answer{}, fmt.Errorf("chat completion returned no choices")
	}

	return model.Answer{
		Claim:     resp.Choices[0].Message.Content,
		Citations: contexts,
		Metadata:  map[string]any{"model": g.Name()},
	}, nil
}
