// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/services/discovery"
	"github.com/storefront-ai/assistant-service/internal/services/orchestrator"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ChatResponse is the reply to one customer message.
type ChatResponse struct {
	Reply      string                       `json:"reply"`
	Intent     string                       `json:"intent"`
	Confidence float64                      `json:"confidence"`
	SessionID  string                       `json:"sessionId"`
	Language   string                       `json:"language"`
	Escalated  bool                         `json:"escalated"`
	Escalation *orchestrator.EscalationInfo `json:"escalation,omitempty"`
	Products   []discovery.Item             `json:"products,omitempty"`
}

// NewChatResponse converts an orchestrator reply.
func NewChatResponse(r *orchestrator.Reply) *ChatResponse {
	return &ChatResponse{
		Reply:      r.Reply,
		Intent:     string(r.Intent),
		Confidence: r.Confidence,
		SessionID:  r.SessionID,
		Language:   r.Language,
		Escalated:  r.Escalated,
		Escalation: r.Escalation,
		Products:   r.Products,
	}
}

// MessageResponse is one stored turn.
type MessageResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionContextResponse summarises what the assistant remembers.
type SessionContextResponse struct {
	Language            string               `json:"language,omitempty"`
	CurrentIntent       string               `json:"currentIntent,omitempty"`
	LastPolicyKind      string               `json:"lastPolicyKind,omitempty"`
	LastRecommendations []models.ProductRef  `json:"lastRecommendations,omitempty"`
	LastSearchContext   *models.SearchFilter `json:"lastSearchContext,omitempty"`
	Preferences         models.Preferences   `json:"preferences"`
	FailedAttempts      int                  `json:"failedAttempts"`
}

// SessionResponse is the body of GET /api/v1/sessions/{sessionId}.
type SessionResponse struct {
	SessionID    string                 `json:"sessionId"`
	CreatedAt    time.Time              `json:"createdAt"`
	LastActivity time.Time              `json:"lastActivity"`
	Messages     []MessageResponse      `json:"messages"`
	Context      SessionContextResponse `json:"context"`
}

// NewSessionResponse converts a stored session.
func NewSessionResponse(s *models.Session) *SessionResponse {
	messages := make([]MessageResponse, 0, len(s.Messages))
	for _, m := range s.Messages {
		role := "assistant"
		if m.IsUser {
			role = "user"
		}
		messages = append(messages, MessageResponse{
			ID:        m.ID,
			Content:   m.Content,
			Role:      role,
			Timestamp: m.Timestamp,
		})
	}
	return &SessionResponse{
		SessionID:    s.ID,
		CreatedAt:    s.CreatedAt,
		LastActivity: s.LastActivity,
		Messages:     messages,
		Context: SessionContextResponse{
			Language:            s.Context.Language,
			CurrentIntent:       string(s.Context.CurrentIntent),
			LastPolicyKind:      string(s.Context.LastPolicyKind),
			LastRecommendations: s.Context.LastRecommendations,
			LastSearchContext:   s.Context.LastSearchContext,
			Preferences:         s.Context.Preferences,
			FailedAttempts:      s.Context.FailedAttempts,
		},
	}
}
