package escalation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/storefront-ai/assistant-service/internal/core/cache"
	"github.com/storefront-ai/assistant-service/internal/core/docdb"
	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

// TicketStore persists escalation tickets.
type TicketStore interface {
	Create(ctx context.Context, ticket *models.EscalationTicket) error
}

// DocDBTicketStore writes tickets to the document database.
type DocDBTicketStore struct {
	coll docdb.TicketsCollection
}

// NewDocDBTicketStore wraps the tickets collection.
func NewDocDBTicketStore(coll docdb.TicketsCollection) *DocDBTicketStore {
	return &DocDBTicketStore{coll: coll}
}

// Create implements TicketStore.
func (s *DocDBTicketStore) Create(ctx context.Context, ticket *models.EscalationTicket) error {
	return s.coll.Create(ctx, ticket)
}

// DefaultCacheTicketTTL keeps cache-stored tickets for a week.
const DefaultCacheTicketTTL = 7 * 24 * time.Hour

// CacheTicketStore keeps tickets in the cache when no document database is configured.
type CacheTicketStore struct {
	cache cache.Client
	ttl   time.Duration
}

// NewCacheTicketStore creates a cache-backed store. A zero ttl means DefaultCacheTicketTTL.
func NewCacheTicketStore(c cache.Client, ttl time.Duration) *CacheTicketStore {
	if ttl == 0 {
		ttl = DefaultCacheTicketTTL
	}
	return &CacheTicketStore{cache: c, ttl: ttl}
}

// TicketKey is the cache key of a ticket.
func TicketKey(id string) string {
	return "ticket:" + id
}

// Create implements TicketStore.
func (s *CacheTicketStore) Create(ctx context.Context, ticket *models.EscalationTicket) error {
	data, err := json.Marshal(ticket)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket: %w", err)
	}
	if err := s.cache.Set(ctx, TicketKey(ticket.ID), data, s.ttl); err != nil {
		return fmt.Errorf("failed to store ticket: %w", err)
	}
	return nil
}
