// Package routes defines the HTTP routes for the storefront assistant.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/storefront-ai/assistant-service/internal/api/handlers"
	"github.com/storefront-ai/assistant-service/internal/api/middleware"
)

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler   *handlers.HealthHandler
	ChatHandler     *handlers.ChatHandler
	SessionsHandler *handlers.SessionsHandler
	CORS            middleware.CORSConfig
	Logger          zerolog.Logger
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	v1 := r.Group("/api/v1")
	{
		// Probes
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/ready", cfg.HealthHandler.Ready)
		v1.GET("/live", cfg.HealthHandler.Live)

		// Widget endpoints
		v1.POST("/chat", cfg.ChatHandler.Chat)
		v1.GET("/sessions/:sessionId", cfg.SessionsHandler.GetSession)
	}

	r.NoRoute(middleware.NotFound())
	r.NoMethod(middleware.MethodNotAllowed())
}

// SetupWithMiddleware sets up routes behind request logging, panic recovery and CORS.
func SetupWithMiddleware(r *gin.Engine, cfg *Config) {
	r.HandleMethodNotAllowed = true

	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Recovery())
	r.Use(middleware.NewCORSMiddleware(cfg.CORS))

	Setup(r, cfg)
}
