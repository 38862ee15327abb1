// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig
	Cache     CacheConfig
	DocDB     DocDBConfig
	Session   SessionConfig
	Store     StoreConfig
	Catalog   CatalogConfig
	LLM       LLMConfig
	Tracking  TrackingConfig
	Discovery DiscoveryConfig
	Analytics AnalyticsConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host         string
	Port         int
	GinMode      string
	AllowOrigins []string
}

// Address returns the server address in host:port format.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// CacheConfig holds cache-related configuration.
type CacheConfig struct {
	Type      string
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

// DocDBConfig holds document database configuration. Type "none" disables it.
type DocDBConfig struct {
	Type     string
	URI      string
	Database string
}

// SessionConfig holds session store configuration.
type SessionConfig struct {
	TTL            time.Duration
	IntentCacheTTL time.Duration
	EncryptionKey  string
}

// StoreConfig describes the merchant the assistant serves.
type StoreConfig struct {
	Domain                string
	Name                  string
	Currency              string
	SupportPhone          string
	SupportEmail          string
	SupportChatURL        string
	DomesticShippingDays  string
	InternationalShipDays string
}

// CatalogConfig holds catalog provider configuration.
type CatalogConfig struct {
	Source      string
	File        string
	AccessToken string
	APIVersion  string
	TTL         time.Duration
	Timeout     time.Duration
}

// LLMConfig holds language model provider configuration.
type LLMConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// TrackingConfig holds tracking provider configuration.
type TrackingConfig struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

// DiscoveryConfig tunes product discovery.
type DiscoveryConfig struct {
	ThemeTagFallbackFirst bool
}

// AnalyticsConfig sizes the analytics worker queue.
type AnalyticsConfig struct {
	Workers    int
	BufferSize int
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			GinMode:      getEnv("GIN_MODE", "release"),
			AllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
		Cache: CacheConfig{
			Type:      getEnv("CACHE_TYPE", "redis"),
			Host:      getEnv("REDIS_HOST", "localhost"),
			Port:      getEnv("REDIS_PORT", "6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvAsInt("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "assistant:"),
		},
		DocDB: DocDBConfig{
			Type:     getEnv("DOCDB_TYPE", "mongodb"),
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "storefront_assistant"),
		},
		Session: SessionConfig{
			TTL:            getEnvAsSeconds("SESSION_TTL_SECONDS", 3600),
			IntentCacheTTL: getEnvAsSeconds("INTENT_CACHE_TTL_SECONDS", 3600),
			EncryptionKey:  getEnv("SESSION_ENCRYPTION_KEY", ""),
		},
		Store: StoreConfig{
			Domain:                getEnv("STORE_DOMAIN", ""),
			Name:                  getEnv("STORE_NAME", "our store"),
			Currency:              getEnv("STORE_CURRENCY", "USD"),
			SupportPhone:          getEnv("SUPPORT_PHONE", ""),
			SupportEmail:          getEnv("SUPPORT_EMAIL", ""),
			SupportChatURL:        getEnv("SUPPORT_CHAT_URL", ""),
			DomesticShippingDays:  getEnv("SHIPPING_DOMESTIC_DAYS", "3-5"),
			InternationalShipDays: getEnv("SHIPPING_INTERNATIONAL_DAYS", "7-14"),
		},
		Catalog: CatalogConfig{
			Source:      getEnv("CATALOG_SOURCE", "shopify"),
			File:        getEnv("CATALOG_FILE", "catalog.json"),
			AccessToken: getEnv("SHOPIFY_ACCESS_TOKEN", ""),
			APIVersion:  getEnv("SHOPIFY_API_VERSION", "2024-07"),
			TTL:         getEnvAsSeconds("CATALOG_TTL_SECONDS", 900),
			Timeout:     getEnvAsSeconds("CATALOG_TIMEOUT_SECONDS", 15),
		},
		LLM: LLMConfig{
			Provider: getEnv("LLM_PROVIDER", "openai"),
			APIKey:   getEnv("LLM_API_KEY", ""),
			Model:    getEnv("LLM_MODEL", "gpt-4o-mini"),
			BaseURL:  getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
			Timeout:  getEnvAsSeconds("LLM_TIMEOUT_SECONDS", 30),
		},
		Tracking: TrackingConfig{
			APIURL:  getEnv("TRACKING_API_URL", ""),
			APIKey:  getEnv("TRACKING_API_KEY", ""),
			Timeout: getEnvAsSeconds("TRACKING_TIMEOUT_SECONDS", 10),
		},
		Discovery: DiscoveryConfig{
			ThemeTagFallbackFirst: getEnvAsBool("THEME_TAG_FALLBACK_FIRST", false),
		},
		Analytics: AnalyticsConfig{
			Workers:    getEnvAsInt("ANALYTICS_WORKERS", 2),
			BufferSize: getEnvAsInt("ANALYTICS_BUFFER", 256),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks combinations that cannot work at runtime.
func (c *Config) Validate() error {
	if c.LLM.Provider == "openai" && c.LLM.APIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required when LLM_PROVIDER=openai")
	}
	if c.Catalog.Source == "shopify" && c.Store.Domain == "" {
		return fmt.Errorf("STORE_DOMAIN is required when CATALOG_SOURCE=shopify")
	}
	if c.Analytics.Workers < 1 {
		return fmt.Errorf("ANALYTICS_WORKERS must be at least 1")
	}
	return nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultSeconds)) * time.Second
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
