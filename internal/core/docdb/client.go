// Package docdb defines the document database client interface.
package docdb

import (
	"context"
)

// Client defines the interface for a document database client.
type Client interface {
	// Tickets returns the escalation tickets collection.
	Tickets() TicketsCollection

	// Analytics returns the analytics events collection.
	Analytics() AnalyticsCollection

	// EnsureIndexes creates the indexes every collection needs.
	EnsureIndexes(ctx context.Context) error

	// Ping verifies the database connection.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close(ctx context.Context) error
}
