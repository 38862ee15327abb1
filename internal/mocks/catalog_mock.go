package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

// MockCatalogSource is a mock implementation of catalog.Source.
type MockCatalogSource struct {
	mock.Mock
}

// FetchProducts returns products.
func (m *MockCatalogSource) FetchProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

// FetchPolicies returns policies.
func (m *MockCatalogSource) FetchPolicies(ctx context.Context) (models.Policies, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Policies), args.Error(1)
}

// FetchPages returns pages.
func (m *MockCatalogSource) FetchPages(ctx context.Context) ([]models.Page, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Page), args.Error(1)
}

// FetchDiscounts returns discounts.
func (m *MockCatalogSource) FetchDiscounts(ctx context.Context) ([]models.Discount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Discount), args.Error(1)
}

// MockCatalogProvider is a mock implementation of catalog.Provider.
type MockCatalogProvider struct {
	mock.Mock
}

// GetSnapshot returns the snapshot for domain.
func (m *MockCatalogProvider) GetSnapshot(ctx context.Context, domain string) (*models.Snapshot, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Snapshot), args.Error(1)
}
