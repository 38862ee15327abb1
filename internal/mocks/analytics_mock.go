package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

// MockAnalyticsSink is a mock implementation of analytics.Sink.
type MockAnalyticsSink struct {
	mock.Mock
}

// TrackMessage records a message event.
func (m *MockAnalyticsSink) TrackMessage(ctx context.Context, sessionID string, isUser bool, content string) {
	m.Called(ctx, sessionID, isUser, content)
}

// TrackIntent records a classification event.
func (m *MockAnalyticsSink) TrackIntent(ctx context.Context, sessionID string, result models.IntentResult) {
	m.Called(ctx, sessionID, result)
}

// TrackEscalation records an escalation event.
func (m *MockAnalyticsSink) TrackEscalation(ctx context.Context, sessionID string, decision models.EscalationDecision, ticketID string) {
	m.Called(ctx, sessionID, decision, ticketID)
}

// TrackConversationStart records a new conversation.
func (m *MockAnalyticsSink) TrackConversationStart(ctx context.Context, sessionID, language string) {
	m.Called(ctx, sessionID, language)
}
