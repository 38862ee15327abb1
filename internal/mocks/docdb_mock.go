package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/storefront-ai/assistant-service/internal/core/docdb"
	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

// MockDocDBClient is a mock implementation of docdb.Client.
type MockDocDBClient struct {
	mock.Mock
	TicketsMock   *MockTicketsCollection
	AnalyticsMock *MockAnalyticsCollection
}

// NewMockDocDBClient creates a client whose collections are mocks too.
func NewMockDocDBClient() *MockDocDBClient {
	return &MockDocDBClient{
		TicketsMock:   &MockTicketsCollection{},
		AnalyticsMock: &MockAnalyticsCollection{},
	}
}

// Tickets returns the tickets collection mock.
func (m *MockDocDBClient) Tickets() docdb.TicketsCollection {
	return m.TicketsMock
}

// Analytics returns the analytics collection mock.
func (m *MockDocDBClient) Analytics() docdb.AnalyticsCollection {
	return m.AnalyticsMock
}

// EnsureIndexes creates indexes.
func (m *MockDocDBClient) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Ping verifies the connection.
func (m *MockDocDBClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the connection.
func (m *MockDocDBClient) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTicketsCollection is a mock implementation of docdb.TicketsCollection.
// It also satisfies escalation.TicketStore.
type MockTicketsCollection struct {
	mock.Mock
}

// Create inserts a ticket.
func (m *MockTicketsCollection) Create(ctx context.Context, ticket *models.EscalationTicket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

// Get retrieves a ticket.
func (m *MockTicketsCollection) Get(ctx context.Context, id string) (*models.EscalationTicket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EscalationTicket), args.Error(1)
}

// ListBySession lists tickets for a session.
func (m *MockTicketsCollection) ListBySession(ctx context.Context, sessionID string, limit int64) ([]*models.EscalationTicket, error) {
	args := m.Called(ctx, sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.EscalationTicket), args.Error(1)
}

// MockAnalyticsCollection is a mock implementation of docdb.AnalyticsCollection.
type MockAnalyticsCollection struct {
	mock.Mock
}

// InsertMany writes events.
func (m *MockAnalyticsCollection) InsertMany(ctx context.Context, events []*models.AnalyticsEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// CountByType counts events.
func (m *MockAnalyticsCollection) CountByType(ctx context.Context, eventType models.EventType, since time.Time) (int64, error) {
	args := m.Called(ctx, eventType, since)
	return args.Get(0).(int64), args.Error(1)
}
