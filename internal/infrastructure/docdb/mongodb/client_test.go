package mongodb_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storefront-ai/assistant-service/internal/infrastructure/docdb/mongodb"
)

func TestNewClient_ConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		config *mongodb.ClientConfig
		errMsg string
	}{
		{"nil config", nil, "config cannot be nil"},
		{"missing uri", &mongodb.ClientConfig{DatabaseName: "db"}, "mongodb URI is required"},
		{"missing database", &mongodb.ClientConfig{URI: "mongodb://localhost:27017"}, "database name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := mongodb.NewClient(context.Background(), tt.config)

			assert.Nil(t, client)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}
