package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

const (
	// AnalyticsCollectionName is the name of the analytics events collection.
	AnalyticsCollectionName = "analytics_events"

	// analyticsRetention is how long events are kept before the TTL index removes them.
	analyticsRetention = 90 * 24 * time.Hour
)

// AnalyticsCollection implements docdb.AnalyticsCollection for MongoDB.
type AnalyticsCollection struct {
	collection *mongo.Collection
}

// NewAnalyticsCollection creates a new analytics collection wrapper.
func NewAnalyticsCollection(db *mongo.Database) *AnalyticsCollection {
	return &AnalyticsCollection{collection: db.Collection(AnalyticsCollectionName)}
}

// InsertMany writes a batch of events. Unordered, so one bad document does not block the rest.
func (c *AnalyticsCollection) InsertMany(ctx context.Context, events []*models.AnalyticsEvent) error {
	if len(events) == 0 {
		return nil
	}
	docs := make([]interface{}, len(events))
	for i, e := range events {
		docs[i] = e
	}
	if _, err := c.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
		return fmt.Errorf("failed to insert analytics events: %w", err)
	}
	return nil
}

// CountByType counts events of one type created at or after since.
func (c *AnalyticsCollection) CountByType(ctx context.Context, eventType models.EventType, since time.Time) (int64, error) {
	n, err := c.collection.CountDocuments(ctx, bson.M{
		"type":      eventType,
		"createdAt": bson.M{"$gte": since},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count analytics events: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the query index and the retention TTL index.
func (c *AnalyticsCollection) EnsureIndexes(ctx context.Context) error {
	_, err := c.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "sessionId", Value: 1}}},
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(analyticsRetention.Seconds())),
		},
	})
	return err
}
