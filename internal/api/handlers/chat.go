package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront-ai/assistant-service/internal/api/dto"
	"github.com/storefront-ai/assistant-service/internal/api/middleware"
	"github.com/storefront-ai/assistant-service/internal/domain/errors"
	"github.com/storefront-ai/assistant-service/internal/services/orchestrator"
)

// Assistant answers one customer message.
type Assistant interface {
	Handle(ctx context.Context, req orchestrator.Request) (*orchestrator.Reply, error)
}

// ChatHandler handles the storefront chat endpoint.
type ChatHandler struct {
	assistant     Assistant
	defaultDomain string
}

// NewChatHandler creates a new ChatHandler. defaultDomain is used when the
// widget does not send a shop domain.
func NewChatHandler(assistant Assistant, defaultDomain string) *ChatHandler {
	return &ChatHandler{
		assistant:     assistant,
		defaultDomain: defaultDomain,
	}
}

// Chat handles POST /api/v1/chat
// @Summary Send a chat message
// @Description Answers a storefront customer message and returns the reply with its intent, escalation and product cards
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Customer message"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	// Parse request body
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	domain := req.ShopDomain
	if domain == "" {
		domain = h.defaultDomain
	}

	reply, err := h.assistant.Handle(c.Request.Context(), orchestrator.Request{
		Message:    req.Message,
		SessionID:  req.SessionID,
		Language:   req.Language,
		ShopDomain: domain,
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("X-Session-ID", reply.SessionID)
	c.JSON(http.StatusOK, dto.NewChatResponse(reply))
}
