// Package docdb provides the document database type constants.
package docdb

// Type represents the type of document database.
type Type string

const (
	// TypeMongoDB represents a MongoDB database.
	TypeMongoDB Type = "mongodb"
	// TypeCosmosDB represents an Azure Cosmos DB database over the MongoDB API.
	TypeCosmosDB Type = "cosmosdb"
	// TypeNone disables the document database. Tickets fall back to the cache
	// and analytics events are dropped.
	TypeNone Type = "none"
)
