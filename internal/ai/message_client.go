package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const messagesAPIVersion = "2023-06-01"

// messageRequest is the request body of the messages protocol.
type messageRequest struct {
	Model     string           `json:"model"`
	MaxTokens int              `json:"max_tokens"`
	System    string           `json:"system,omitempty"`
	Messages  []messagePayload `json:"messages"`
}

type messagePayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// contentBlock is one element of the response content array.
type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// messageResponse is the response envelope; the text lives in
// content[0].text, unlike the chat-completion shape.
type messageResponse struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Content []contentBlock `json:"content"`
	Error   *messageError  `json:"error,omitempty"`
}

type messageError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// MessageConfig holds settings for the message-shape provider client.
type MessageConfig struct {
	APIKey    string
	BaseURL   string
	ModelName string
	Timeout   time.Duration
}

// MessageClient calls a messages-shape endpoint. Kept separate from
// ChatClient because the request and response envelopes differ.
type MessageClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	modelName  string
}

// NewMessageClient creates a message-shape client.
func NewMessageClient(cfg MessageConfig) (*MessageClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("message provider API key is not set")
	}
	if cfg.ModelName == "" {
		return nil, errors.New("message provider model name is not set")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}

	return &MessageClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		modelName:  cfg.ModelName,
	}, nil
}

// Generate sends a single-message request and returns the model text.
// Exactly one outbound call; no retries.
func (c *MessageClient) Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	reqBody := messageRequest{
		Model:     c.modelName,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages: []messagePayload{
			{Role: "user", Content: userPrompt},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal message request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build message request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", messagesAPIVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("model", c.modelName).Msg("Message request failed")
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read message response: %w", err)
	}

	var parsed messageResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		log.Error().Err(err).Int("status", resp.StatusCode).Msg("Failed to decode message response")
		return "", fmt.Errorf("failed to decode message response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			log.Error().Str("errorType", parsed.Error.Type).Str("message", parsed.Error.Message).Int("status", resp.StatusCode).Msg("Message provider returned an error")
			return "", fmt.Errorf("message provider error (%s): %s", parsed.Error.Type, parsed.Error.Message)
		}
		return "", fmt.Errorf("message provider returned status %d", resp.StatusCode)
	}

	if len(parsed.Content) == 0 || parsed.Content[0].Text == "" {
		log.Warn().Str("model", c.modelName).Msg("Message response has no content blocks")
		return "", ErrEmptyResponse
	}

	return parsed.Content[0].Text, nil
}
