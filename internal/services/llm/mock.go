package llm

import (
	"context"
	"fmt"

	"github.com/storefront-ai/assistant-service/internal/pkg/textutil"
)

// MockClient returns a canned reply. Used for local runs without a provider key.
type MockClient struct {
	// Reply overrides the default echo reply when set.
	Reply string
}

// NewMockClient creates a mock client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Complete implements Client.
func (m *MockClient) Complete(ctx context.Context, systemPrompt string, history []Turn, userMessage string) (string, error) {
	if m.Reply != "" {
		return m.Reply, nil
	}
	if textutil.HasArabic(userMessage) {
		return fmt.Sprintf("شكرا لرسالتك: %q. كيف يمكنني مساعدتك أكثر؟", userMessage), nil
	}
	return fmt.Sprintf("Thanks for your message: %q. How else can I help?", userMessage), nil
}
