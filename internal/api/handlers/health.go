// Package handlers provides HTTP handlers for the API.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront-ai/assistant-service/internal/core/cache"
	"github.com/storefront-ai/assistant-service/internal/core/docdb"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDisabled  = "disabled"
)

// probe is one backing store the service pings.
type probe struct {
	name     string
	required bool
	ping     func(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	probes   []probe
	disabled []string
}

// NewHealthHandler creates a new HealthHandler. docDBClient may be nil when
// the document database is disabled.
func NewHealthHandler(cacheClient cache.Client, docDBClient docdb.Client) *HealthHandler {
	h := &HealthHandler{
		probes: []probe{{name: "cache", required: true, ping: cacheClient.Ping}},
	}
	if docDBClient != nil {
		h.probes = append(h.probes, probe{name: "docdb", ping: docDBClient.Ping})
	} else {
		h.disabled = append(h.disabled, "docdb")
	}
	return h
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// Health handles the /health endpoint.
// @Summary Health check
// @Description Returns the overall health status and component statuses
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "Service healthy"
// @Failure 503 {object} HealthResponse "Service unhealthy"
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{Status: statusHealthy, Components: make(map[string]string)}
	for _, name := range h.disabled {
		resp.Components[name] = statusDisabled
	}
	for _, p := range h.probes {
		if err := p.ping(c.Request.Context()); err != nil {
			resp.Components[p.name] = statusUnhealthy
			resp.Status = statusUnhealthy
			continue
		}
		resp.Components[p.name] = statusHealthy
	}

	code := http.StatusOK
	if resp.Status != statusHealthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}

// Ready handles the /ready endpoint. Only required stores gate readiness.
// @Summary Readiness check
// @Description Returns 200 if the service is ready to accept traffic
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Service ready"
// @Failure 503 {object} map[string]string "Service not ready"
// @Router /api/v1/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	for _, p := range h.probes {
		if !p.required {
			continue
		}
		if err := p.ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": p.name + " unavailable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Live handles the /live endpoint.
// @Summary Liveness check
// @Description Returns 200 if the service is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Service alive"
// @Router /api/v1/live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
