// Package catalog provides the merchant catalog snapshot: sources that fetch
// products, policies, pages and discounts, and a cached provider in front of them.
package catalog

import (
	"context"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

// Source types.
const (
	SourceShopify = "shopify"
	SourceFile    = "file"
)

// Source fetches the individual catalog resources.
type Source interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
	FetchPolicies(ctx context.Context) (models.Policies, error)
	FetchPages(ctx context.Context) ([]models.Page, error)
	FetchDiscounts(ctx context.Context) ([]models.Discount, error)
}

// Provider returns the catalog snapshot for a shop domain.
type Provider interface {
	GetSnapshot(ctx context.Context, domain string) (*models.Snapshot, error)
}
