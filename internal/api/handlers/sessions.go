package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storefront-ai/assistant-service/internal/api/dto"
	"github.com/storefront-ai/assistant-service/internal/api/middleware"
	"github.com/storefront-ai/assistant-service/internal/domain/errors"
	"github.com/storefront-ai/assistant-service/internal/services/session"
)

// SessionsHandler exposes stored conversation state.
type SessionsHandler struct {
	sessions session.Service
}

// NewSessionsHandler creates a new SessionsHandler.
func NewSessionsHandler(sessions session.Service) *SessionsHandler {
	return &SessionsHandler{sessions: sessions}
}

// GetSession handles GET /api/v1/sessions/{sessionId}
// @Summary Get a session
// @Description Returns the message history and remembered context of a conversation
// @Tags Sessions
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/sessions/{sessionId} [get]
func (h *SessionsHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("sessionId")

	sess, err := h.sessions.FindSession(c.Request.Context(), sessionID)
	if err != nil {
		if stderrors.Is(err, session.ErrInvalidSessionID) {
			middleware.HandleError(c, errors.NewValidationError("invalid session id", err.Error()))
			return
		}
		middleware.HandleError(c, errors.NewInternalError("failed to load session", err))
		return
	}
	if sess == nil {
		middleware.HandleError(c, errors.NewNotFoundError("session", sessionID))
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionResponse(sess))
}
