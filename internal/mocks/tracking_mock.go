package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

// MockTrackingClient is a mock implementation of tracking.Client.
type MockTrackingClient struct {
	mock.Mock
}

// TrackByNumber returns the configured tracking info.
func (m *MockTrackingClient) TrackByNumber(ctx context.Context, number, carrierHint string) (models.TrackingInfo, error) {
	args := m.Called(ctx, number, carrierHint)
	return args.Get(0).(models.TrackingInfo), args.Error(1)
}
