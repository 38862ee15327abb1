package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/storefront-ai/assistant-service/internal/services/orchestrator"
)

// MockAssistant is a mock implementation of handlers.Assistant.
type MockAssistant struct {
	mock.Mock
}

// Handle answers a message.
func (m *MockAssistant) Handle(ctx context.Context, req orchestrator.Request) (*orchestrator.Reply, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orchestrator.Reply), args.Error(1)
}
