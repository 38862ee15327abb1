// Package llm provides the language model collaborator used for open-ended
// replies, and the prompt assembly around it.
package llm

import (
	"context"
	"errors"
)

// Provider types.
const (
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

// Roles of a conversation turn.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrEmptyCompletion is returned when the provider answers without text.
var ErrEmptyCompletion = errors.New("llm returned an empty completion")

// Turn is one history entry sent to the model.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client completes a conversation with a text reply.
type Client interface {
	Complete(ctx context.Context, systemPrompt string, history []Turn, userMessage string) (string, error)
}
