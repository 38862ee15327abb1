package commands

import (
	"fmt"

	"github.com/storefront-ai/assistant-service/internal/infrastructure/cache/memory"
	"github.com/storefront-ai/assistant-service/internal/services/answers"
	"github.com/storefront-ai/assistant-service/internal/services/catalog"
	"github.com/storefront-ai/assistant-service/internal/services/escalation"
	"github.com/storefront-ai/assistant-service/internal/services/intent"
	"github.com/storefront-ai/assistant-service/internal/services/llm"
	"github.com/storefront-ai/assistant-service/internal/services/orchestrator"
	"github.com/storefront-ai/assistant-service/internal/services/session"
)

// stack is the in-process assistant used by every subcommand.
type stack struct {
	cache     *memory.Client
	catalog   catalog.Provider
	assistant *orchestrator.Orchestrator
}

func newStack() (*stack, error) {
	cache := memory.NewClient(0)

	source, err := catalog.NewFileSource(catalogFile)
	if err != nil {
		return nil, err
	}
	provider, err := catalog.NewCachedProvider(&catalog.CachedProviderConfig{
		Source: source,
		Cache:  cache,
		Domain: shopDomain,
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	sessions, err := session.NewService(&session.Config{CacheClient: cache})
	if err != nil {
		return nil, fmt.Errorf("sessions: %w", err)
	}
	assistant, err := orchestrator.New(&orchestrator.Config{
		Sessions:   sessions,
		Classifier: intent.NewClassifier(intent.Config{Cache: cache}),
		Escalation: escalation.NewService(escalation.Config{
			Sessions: sessions,
			Tickets:  escalation.NewCacheTicketStore(cache, 0),
		}),
		Catalog: provider,
		LLM:     llm.NewMockClient(),
		Store: answers.Store{
			Name:   "Local Store",
			Domain: shopDomain,
			Contacts: escalation.Contacts{
				Phone:   "+1 555 0100",
				Email:   "support@example.com",
				ChatURL: "https://example.com/chat",
			},
			DomesticShippingDays:      "3-5",
			InternationalShippingDays: "7-14",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	return &stack{cache: cache, catalog: provider, assistant: assistant}, nil
}

func (s *stack) Close() {
	_ = s.cache.Close()
}
