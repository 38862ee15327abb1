package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/storefront-ai/assistant-service/internal/domain/errors"
)

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("handle: %w", domainerrors.NewValidationError("message is required", "empty"))

	assert.True(t, domainerrors.IsValidationError(err))
	d, ok := domainerrors.GetDomainError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, d.HTTPStatus)
	assert.Equal(t, "VALIDATION_ERROR: message is required (empty)", d.Error())
}

func TestInternalError_KeepsCause(t *testing.T) {
	cause := fmt.Errorf("redis down")

	err := domainerrors.NewInternalError("failed to load session", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "redis down", err.Details)
	assert.False(t, domainerrors.IsValidationError(err))
}

func TestNotFoundError(t *testing.T) {
	err := domainerrors.NewNotFoundError("session", "s-1")

	assert.Equal(t, http.StatusNotFound, err.HTTPStatus)
	assert.Equal(t, "NOT_FOUND: session not found (s-1)", err.Error())
}

func TestGetDomainError_PlainError(t *testing.T) {
	_, ok := domainerrors.GetDomainError(fmt.Errorf("plain"))

	assert.False(t, ok)
}
