package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Mock ChatGenerator
type ChatGenerator struct {
	mock.Mock
}

func (m *ChatGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float32) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt, maxTokens, temperature)
	return args.String(0), args.Error(1)
}

// Mock MessageGenerator
type MessageGenerator struct {
	mock.Mock
}

func (m *MessageGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt, maxTokens)
	return args.String(0), args.Error(1)
}
