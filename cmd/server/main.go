// Package main is the entry point for the Storefront Assistant Service.
// @title Storefront Assistant API
// @version 1.0
// @description Conversational shopping assistant for storefront widgets

// @contact.name API Support

// @host localhost:8080
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/storefront-ai/assistant-service/docs"
	"github.com/storefront-ai/assistant-service/internal/api/handlers"
	"github.com/storefront-ai/assistant-service/internal/api/middleware"
	"github.com/storefront-ai/assistant-service/internal/api/routes"
	"github.com/storefront-ai/assistant-service/internal/config"
	"github.com/storefront-ai/assistant-service/internal/core/cache"
	"github.com/storefront-ai/assistant-service/internal/core/docdb"
	"github.com/storefront-ai/assistant-service/internal/infrastructure/cache/memory"
	rediscache "github.com/storefront-ai/assistant-service/internal/infrastructure/cache/redis"
	"github.com/storefront-ai/assistant-service/internal/infrastructure/docdb/mongodb"
	"github.com/storefront-ai/assistant-service/internal/pkg/encryption"
	"github.com/storefront-ai/assistant-service/internal/pkg/logging"
	"github.com/storefront-ai/assistant-service/internal/services/analytics"
	"github.com/storefront-ai/assistant-service/internal/services/answers"
	"github.com/storefront-ai/assistant-service/internal/services/catalog"
	"github.com/storefront-ai/assistant-service/internal/services/discovery"
	"github.com/storefront-ai/assistant-service/internal/services/escalation"
	"github.com/storefront-ai/assistant-service/internal/services/intent"
	"github.com/storefront-ai/assistant-service/internal/services/llm"
	"github.com/storefront-ai/assistant-service/internal/services/orchestrator"
	"github.com/storefront-ai/assistant-service/internal/services/session"
	"github.com/storefront-ai/assistant-service/internal/services/tracking"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(logging.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "storefront-assistant",
	})

	ctx := context.Background()

	// Initialize cache client using factory pattern
	cacheClient, err := createCacheClient(cfg.Cache, cfg.Session.TTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize cache client")
	}
	defer cacheClient.Close()

	// Initialize document db client using factory pattern; nil when disabled
	docDBClient, err := createDocDBClient(ctx, cfg.DocDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize document db client")
	}
	if docDBClient != nil {
		defer docDBClient.Close(ctx)
		if err := docDBClient.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure indexes")
		}
	}

	// Analytics worker queue
	sink, queue := createAnalyticsSink(docDBClient, cfg.Analytics)
	if queue != nil {
		queue.Start(cfg.Analytics.Workers)
		defer queue.Stop()
	}

	encryptor, err := encryption.FromKey(cfg.Session.EncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize session encryption")
	}
	if cfg.Session.EncryptionKey == "" {
		log.Warn().Msg("SESSION_ENCRYPTION_KEY not set, sessions are stored unencrypted")
	}

	sessionService, err := session.NewService(&session.Config{
		CacheClient: cacheClient,
		Encryptor:   encryptor,
		TTL:         cfg.Session.TTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize session service")
	}

	catalogProvider, err := createCatalogProvider(cfg, cacheClient)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog provider")
	}

	llmClient, err := createLLMClient(cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize llm client")
	}

	assistant, err := orchestrator.New(&orchestrator.Config{
		Sessions:   sessionService,
		Classifier: intent.NewClassifier(intent.Config{Cache: cacheClient, CacheTTL: cfg.Session.IntentCacheTTL}),
		Escalation: escalation.NewService(escalation.Config{
			Sessions:  sessionService,
			Tickets:   createTicketStore(docDBClient, cacheClient),
			Analytics: sink,
		}),
		Catalog: catalogProvider,
		LLM:     llmClient,
		Tracking: tracking.NewClient(&tracking.Config{
			APIURL:  cfg.Tracking.APIURL,
			APIKey:  cfg.Tracking.APIKey,
			Timeout: cfg.Tracking.Timeout,
		}),
		Analytics: sink,
		Discovery: discovery.NewEngine(discovery.Config{ThemeTagFallbackFirst: cfg.Discovery.ThemeTagFallbackFirst}),
		Store:     storeFromConfig(cfg.Store),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize orchestrator")
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	router := gin.New()
	routes.SetupWithMiddleware(router, &routes.Config{
		HealthHandler:   handlers.NewHealthHandler(cacheClient, docDBClient),
		ChatHandler:     handlers.NewChatHandler(assistant, cfg.Store.Domain),
		SessionsHandler: handlers.NewSessionsHandler(sessionService),
		CORS:            middleware.DefaultCORSConfig(cfg.Server.AllowOrigins),
		Logger:          logger,
	})

	// Swagger documentation endpoint
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Address()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// createCacheClient creates a cache client based on the configuration.
func createCacheClient(cfg config.CacheConfig, defaultTTL time.Duration) (cache.Client, error) {
	switch cache.Type(cfg.Type) {
	case cache.TypeRedis:
		return rediscache.NewClient(rediscache.Config{
			Host:       cfg.Host,
			Port:       cfg.Port,
			Password:   cfg.Password,
			DB:         cfg.DB,
			DefaultTTL: defaultTTL,
			KeyPrefix:  cfg.KeyPrefix,
		})
	case cache.TypeMemory:
		return memory.NewClient(defaultTTL), nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Type)
	}
}

// createDocDBClient creates a document database client based on the configuration.
func createDocDBClient(ctx context.Context, cfg config.DocDBConfig) (docdb.Client, error) {
	switch docdb.Type(cfg.Type) {
	case docdb.TypeMongoDB, docdb.TypeCosmosDB:
		// CosmosDB uses MongoDB protocol, so we can use the same client
		return mongodb.NewClient(ctx, &mongodb.ClientConfig{
			URI:          cfg.URI,
			DatabaseName: cfg.Database,
		})
	case docdb.TypeNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported docdb type: %s", cfg.Type)
	}
}

// createAnalyticsSink returns a queue-backed sink, or a no-op sink without a document database.
func createAnalyticsSink(docDBClient docdb.Client, cfg config.AnalyticsConfig) (analytics.Sink, *analytics.Queue) {
	if docDBClient == nil {
		return analytics.NoopSink{}, nil
	}
	queue := analytics.NewDocDBQueue(docDBClient.Analytics(), cfg.BufferSize)
	return analytics.NewQueueSink(queue), queue
}

// createTicketStore prefers the document database and falls back to the cache.
func createTicketStore(docDBClient docdb.Client, cacheClient cache.Client) escalation.TicketStore {
	if docDBClient != nil {
		return escalation.NewDocDBTicketStore(docDBClient.Tickets())
	}
	return escalation.NewCacheTicketStore(cacheClient, 0)
}

// createCatalogProvider wraps the configured catalog source in the snapshot cache.
func createCatalogProvider(cfg *config.Config, cacheClient cache.Client) (catalog.Provider, error) {
	var source catalog.Source
	switch cfg.Catalog.Source {
	case "shopify":
		s, err := catalog.NewShopifySource(&catalog.ShopifyConfig{
			Domain:      cfg.Store.Domain,
			AccessToken: cfg.Catalog.AccessToken,
			APIVersion:  cfg.Catalog.APIVersion,
			Timeout:     cfg.Catalog.Timeout,
		})
		if err != nil {
			return nil, err
		}
		source = s
	case "file":
		s, err := catalog.NewFileSource(cfg.Catalog.File)
		if err != nil {
			return nil, err
		}
		source = s
	default:
		return nil, fmt.Errorf("unsupported catalog source: %s", cfg.Catalog.Source)
	}

	return catalog.NewCachedProvider(&catalog.CachedProviderConfig{
		Source:   source,
		Cache:    cacheClient,
		Domain:   cfg.Store.Domain,
		Currency: cfg.Store.Currency,
		TTL:      cfg.Catalog.TTL,
	})
}

// createLLMClient creates the language model client based on the configuration.
func createLLMClient(cfg config.LLMConfig) (llm.Client, error) {
	switch cfg.Provider {
	case "openai":
		return llm.NewOpenAIClient(&llm.OpenAIConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		})
	case "mock":
		return llm.NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}

func storeFromConfig(cfg config.StoreConfig) answers.Store {
	return answers.Store{
		Name:     cfg.Name,
		Domain:   cfg.Domain,
		Currency: cfg.Currency,
		Contacts: escalation.Contacts{
			Phone:   cfg.SupportPhone,
			Email:   cfg.SupportEmail,
			ChatURL: cfg.SupportChatURL,
		},
		DomesticShippingDays:      cfg.DomesticShippingDays,
		InternationalShippingDays: cfg.InternationalShipDays,
	}
}
