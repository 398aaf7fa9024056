package ai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// ErrEmptyResponse is returned when the provider answers without any usable
// choices/content.
var ErrEmptyResponse = errors.New("empty response from provider")

// ChatConfig holds settings for the chat-completion provider client.
type ChatConfig struct {
	APIKey    string
	BaseURL   string
	ModelName string
	Timeout   time.Duration
}

// ChatClient calls an OpenAI-compatible chat-completions endpoint. The
// response text lives in choices[0].message.content.
type ChatClient struct {
	client    *openai.Client
	modelName string
}

// NewChatClient creates a chat-completion client.
func NewChatClient(cfg ChatConfig) (*ChatClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("chat provider API key is not set")
	}
	if cfg.ModelName == "" {
		return nil, errors.New("chat provider model name is not set")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &ChatClient{
		client:    openai.NewClientWithConfig(config),
		modelName: cfg.ModelName,
	}, nil
}

// Generate sends one system+user exchange and returns the model text.
// Exactly one outbound call; no retries.
func (c *ChatClient) Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float32) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("model", c.modelName).Msg("Chat completion request failed")
		return "", err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Warn().Str("model", c.modelName).Msg("Chat completion returned no choices")
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}
