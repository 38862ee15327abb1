package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

// MockSessionService is a mock implementation of session.Service.
type MockSessionService struct {
	mock.Mock
}

// GetSession returns the session for id.
func (m *MockSessionService) GetSession(ctx context.Context, id string) (*models.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

// AddMessage appends one message.
func (m *MockSessionService) AddMessage(ctx context.Context, id, content string, isUser bool) error {
	args := m.Called(ctx, id, content, isUser)
	return args.Error(0)
}

// AppendExchange appends a user message and a reply.
func (m *MockSessionService) AppendExchange(ctx context.Context, id, userMessage, reply string) error {
	args := m.Called(ctx, id, userMessage, reply)
	return args.Error(0)
}

// UpdateContext applies fn to the stored context.
func (m *MockSessionService) UpdateContext(ctx context.Context, id string, fn func(*models.SessionContext)) error {
	args := m.Called(ctx, id, fn)
	return args.Error(0)
}

// ExtractPreferences harvests preferences from message.
func (m *MockSessionService) ExtractPreferences(ctx context.Context, id, message string) (models.Preferences, error) {
	args := m.Called(ctx, id, message)
	return args.Get(0).(models.Preferences), args.Error(1)
}

// SetLastRecommendations stores the last recommended products.
func (m *MockSessionService) SetLastRecommendations(ctx context.Context, id string, refs []models.ProductRef) error {
	args := m.Called(ctx, id, refs)
	return args.Error(0)
}

// GetLastRecommendations returns the last recommended products.
func (m *MockSessionService) GetLastRecommendations(ctx context.Context, id string) ([]models.ProductRef, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductRef), args.Error(1)
}

// SetLastSearchContext stores the last search filter.
func (m *MockSessionService) SetLastSearchContext(ctx context.Context, id string, filter *models.SearchFilter) error {
	args := m.Called(ctx, id, filter)
	return args.Error(0)
}

// GetLastSearchContext returns the last search filter.
func (m *MockSessionService) GetLastSearchContext(ctx context.Context, id string) (*models.SearchFilter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SearchFilter), args.Error(1)
}

// IncrementFailedAttempts bumps the failure counter.
func (m *MockSessionService) IncrementFailedAttempts(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

// FindSession looks a session up without creating it.
func (m *MockSessionService) FindSession(ctx context.Context, id string) (*models.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

// BuildCacheKey generates the cache key for a session.
func (m *MockSessionService) BuildCacheKey(id string) string {
	args := m.Called(id)
	return args.String(0)
}
