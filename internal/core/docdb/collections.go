package docdb

import (
	"context"
	"time"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

// TicketsCollection stores escalation tickets.
type TicketsCollection interface {
	// Create inserts a new ticket.
	Create(ctx context.Context, ticket *models.EscalationTicket) error

	// Get retrieves a ticket by ID. Returns nil (and no error) if not found.
	Get(ctx context.Context, id string) (*models.EscalationTicket, error)

	// ListBySession returns the tickets raised for a session, newest first.
	ListBySession(ctx context.Context, sessionID string, limit int64) ([]*models.EscalationTicket, error)
}

// AnalyticsCollection stores analytics events.
type AnalyticsCollection interface {
	// InsertMany writes a batch of events.
	InsertMany(ctx context.Context, events []*models.AnalyticsEvent) error

	// CountByType counts events of one type created at or after since.
	CountByType(ctx context.Context, eventType models.EventType, since time.Time) (int64, error)
}
