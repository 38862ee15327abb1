package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-ai/assistant-service/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	// Arrange
	t.Setenv("LLM_PROVIDER", "mock")
	t.Setenv("CATALOG_SOURCE", "file")

	// Act
	cfg, err := config.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, time.Hour, cfg.Session.IntentCacheTTL)
	assert.Equal(t, 15*time.Minute, cfg.Catalog.TTL)
	assert.False(t, cfg.Discovery.ThemeTagFallbackFirst)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	// Arrange
	t.Setenv("LLM_PROVIDER", "mock")
	t.Setenv("CATALOG_SOURCE", "file")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("THEME_TAG_FALLBACK_FIRST", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CATALOG_TTL_SECONDS", "60")

	// Act
	cfg, err := config.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Discovery.ThemeTagFallbackFirst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowOrigins)
	assert.Equal(t, time.Minute, cfg.Catalog.TTL)
}

func TestLoad_OpenAIRequiresKey(t *testing.T) {
	// Arrange
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("CATALOG_SOURCE", "file")

	// Act
	_, err := config.Load()

	// Assert
	assert.ErrorContains(t, err, "LLM_API_KEY")
}

func TestLoad_ShopifyRequiresDomain(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "mock")
	t.Setenv("CATALOG_SOURCE", "shopify")
	t.Setenv("STORE_DOMAIN", "")

	_, err := config.Load()

	assert.ErrorContains(t, err, "STORE_DOMAIN")
}
