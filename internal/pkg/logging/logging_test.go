package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-ai/assistant-service/internal/pkg/logging"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"WARN":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, logging.ParseLevel(in), in)
	}
}

func TestSetup_JSONAddsServiceField(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := logging.Setup(logging.Options{Level: "info", Format: "json", Service: "assistant", Output: &buf})
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Act
	logger.Info().Str("session_id", "s1").Msg("hello")

	// Assert
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "assistant", line["service"])
	assert.Equal(t, "s1", line["session_id"])
	assert.Equal(t, "hello", line["message"])
}
