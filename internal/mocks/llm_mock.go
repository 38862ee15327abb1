package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/storefront-ai/assistant-service/internal/services/llm"
)

// MockLLMClient is a mock implementation of llm.Client.
type MockLLMClient struct {
	mock.Mock
}

// Complete returns the configured reply.
func (m *MockLLMClient) Complete(ctx context.Context, systemPrompt string, history []llm.Turn, userMessage string) (string, error) {
	args := m.Called(ctx, systemPrompt, history, userMessage)
	return args.String(0), args.Error(1)
}
