package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

// TicketsCollectionName is the name of the escalation tickets collection.
const TicketsCollectionName = "escalation_tickets"

// TicketsCollection implements docdb.TicketsCollection for MongoDB.
type TicketsCollection struct {
	collection *mongo.Collection
}

// NewTicketsCollection creates a new tickets collection wrapper.
func NewTicketsCollection(db *mongo.Database) *TicketsCollection {
	return &TicketsCollection{collection: db.Collection(TicketsCollectionName)}
}

// Create inserts a new ticket.
func (c *TicketsCollection) Create(ctx context.Context, ticket *models.EscalationTicket) error {
	if ticket.ID == "" {
		return fmt.Errorf("ticket ID is required")
	}
	if _, err := c.collection.InsertOne(ctx, ticket); err != nil {
		return fmt.Errorf("failed to insert ticket: %w", err)
	}
	return nil
}

// Get retrieves a ticket by ID.
func (c *TicketsCollection) Get(ctx context.Context, id string) (*models.EscalationTicket, error) {
	var ticket models.EscalationTicket
	err := c.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ticket)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return &ticket, nil
}

// ListBySession returns the tickets raised for a session, newest first.
func (c *TicketsCollection) ListBySession(ctx context.Context, sessionID string, limit int64) ([]*models.EscalationTicket, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := c.collection.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer cursor.Close(ctx)

	var tickets []*models.EscalationTicket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("failed to decode tickets: %w", err)
	}
	return tickets, nil
}

// EnsureIndexes creates the session lookup index.
func (c *TicketsCollection) EnsureIndexes(ctx context.Context) error {
	_, err := c.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sessionId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "priority", Value: 1}}},
	})
	return err
}
