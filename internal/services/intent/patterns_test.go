package intent_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storefront-ai/assistant-service/internal/services/intent"
)

func TestIsTrackingNumber(t *testing.T) {
	tests := map[string]bool{
		"1Z999AA10123456784":    true,
		"TRACK12345":            true,
		"12345678":              true,
		"ABCDEFGH":              false,
		"1234567":               false,
		strings.Repeat("9", 41): false,
	}
	for tok, want := range tests {
		assert.Equal(t, want, intent.IsTrackingNumber(tok), tok)
	}
}

func TestFindTrackingNumber(t *testing.T) {
	assert.Equal(t, "1Z999AA10123456784", intent.FindTrackingNumber("my number is 1z999aa10123456784."))
	assert.Equal(t, "", intent.FindTrackingNumber("a red dress under $150"))
}
