package orchestrator_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/storefront-ai/assistant-service/internal/domain/errors"
	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/infrastructure/cache/memory"
	"github.com/storefront-ai/assistant-service/internal/mocks"
	"github.com/storefront-ai/assistant-service/internal/services/analytics"
	"github.com/storefront-ai/assistant-service/internal/services/answers"
	"github.com/storefront-ai/assistant-service/internal/services/catalog"
	"github.com/storefront-ai/assistant-service/internal/services/discovery"
	"github.com/storefront-ai/assistant-service/internal/services/escalation"
	"github.com/storefront-ai/assistant-service/internal/services/intent"
	"github.com/storefront-ai/assistant-service/internal/services/orchestrator"
	"github.com/storefront-ai/assistant-service/internal/services/session"
	"github.com/storefront-ai/assistant-service/internal/services/tracking"
)

const trackingNumber = "1Z999AA10123456784"

type fixture struct {
	orch     *orchestrator.Orchestrator
	sessions session.Service
	catalog  *mocks.MockCatalogProvider
	llm      *mocks.MockLLMClient
	tracking *mocks.MockTrackingClient
}

func testStore() answers.Store {
	return answers.Store{
		Name:     "Maison Test",
		Domain:   "shop.example.com",
		Currency: "USD",
		Contacts: escalation.Contacts{
			Phone:   "+1 555 0100",
			Email:   "help@example.com",
			ChatURL: "https://shop.example.com/chat",
		},
		DomesticShippingDays:      "3-5",
		InternationalShippingDays: "7-14",
	}
}

func weddingSnapshot() *models.Snapshot {
	colors := []models.Option{{Name: "Color"}}
	return &models.Snapshot{
		Domain:   "shop.example.com",
		Currency: "USD",
		Products: []models.Product{
			{
				ID: 1, Handle: "red-lace-wedding-gown", Title: "Red Lace Wedding Gown", Tags: []string{"wedding", "dress"},
				Options:  colors,
				Variants: []models.Variant{{ID: 11, Price: 120, Option1: "Red"}, {ID: 12, Price: 130, Option1: "Ivory"}},
			},
			{
				ID: 2, Handle: "blue-wedding-gown", Title: "Blue Wedding Gown", Tags: []string{"wedding", "dress"},
				Options:  colors,
				Variants: []models.Variant{{ID: 21, Price: 100, Option1: "Blue"}},
			},
		},
		Policies: models.Policies{Refund: "<p>Returns are accepted within 30 days</p>"},
	}
}

func manyWeddingDresses(n int) *models.Snapshot {
	snap := &models.Snapshot{Domain: "shop.example.com", Currency: "USD"}
	for i := 0; i < n; i++ {
		snap.Products = append(snap.Products, models.Product{
			ID:       int64(i + 1),
			Handle:   fmt.Sprintf("gown-%02d", i),
			Title:    fmt.Sprintf("Gown %d", i),
			Tags:     []string{"wedding", "dress"},
			Variants: []models.Variant{{ID: int64(1000 + i), Price: 100}},
		})
	}
	return snap
}

func newFixture(t *testing.T, sink analytics.Sink) *fixture {
	t.Helper()
	store := memory.NewClient(0)
	sessions, err := session.NewService(&session.Config{CacheClient: store})
	require.NoError(t, err)

	f := &fixture{
		sessions: sessions,
		catalog:  new(mocks.MockCatalogProvider),
		llm:      new(mocks.MockLLMClient),
		tracking: new(mocks.MockTrackingClient),
	}
	f.orch, err = orchestrator.New(&orchestrator.Config{
		Sessions:   sessions,
		Classifier: intent.NewClassifier(intent.Config{Cache: store}),
		Escalation: escalation.NewService(escalation.Config{Sessions: sessions, Tickets: escalation.NewCacheTicketStore(store, 0)}),
		Catalog:    f.catalog,
		LLM:        f.llm,
		Tracking:   f.tracking,
		Analytics:  sink,
		Store:      testStore(),
	})
	require.NoError(t, err)
	return f
}

func (f *fixture) withCatalog() *fixture {
	f.catalog.On("GetSnapshot", mock.Anything, "").Return(weddingSnapshot(), nil)
	return f
}

// seed gives a session one stored exchange and the supplied anchors.
func (f *fixture) seed(t *testing.T, id string, fn func(*models.SessionContext)) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.sessions.AppendExchange(ctx, id, "hi", "Hello! How can I help?"))
	require.NoError(t, f.sessions.UpdateContext(ctx, id, fn))
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := orchestrator.New(nil)
	assert.EqualError(t, err, "config is required")

	_, err = orchestrator.New(&orchestrator.Config{})
	assert.EqualError(t, err, "session service is required")
}

func TestHandle_ValidationErrors(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.orch.Handle(context.Background(), orchestrator.Request{Message: "   "})
	assert.True(t, domainerrors.IsValidationError(err))

	_, err = f.orch.Handle(context.Background(), orchestrator.Request{Message: "hello", SessionID: "not a valid id!"})
	assert.True(t, domainerrors.IsValidationError(err))

	_, err = f.orch.Handle(context.Background(), orchestrator.Request{Message: strings.Repeat("a", orchestrator.MaxMessageLength+1)})
	assert.True(t, domainerrors.IsValidationError(err))

	f.catalog.AssertNotCalled(t, "GetSnapshot", mock.Anything, mock.Anything)
}

func TestHandle_EscalatesBeforeAnythingElse(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t, nil)

	// Act
	reply, err := f.orch.Handle(ctx, orchestrator.Request{Message: "I am so frustrated, this is terrible, nobody is helping me"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, orchestrator.ModeEscalate, reply.Mode)
	assert.True(t, reply.Escalated)
	require.NotNil(t, reply.Escalation)
	assert.Equal(t, models.ReasonNegativeSentiment, reply.Escalation.Reason)
	assert.Equal(t, models.ChannelPhone, reply.Escalation.Channel)
	assert.Equal(t, "+1 555 0100", reply.Escalation.Contact)
	assert.Equal(t, 5, reply.Escalation.WaitMinutes)
	assert.NotEmpty(t, reply.Escalation.TicketID)
	assert.Contains(t, reply.Reply, "+1 555 0100")

	f.catalog.AssertNotCalled(t, "GetSnapshot", mock.Anything, mock.Anything)
	f.llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	sess, err := f.sessions.GetSession(ctx, reply.SessionID)
	require.NoError(t, err)
	assert.Len(t, sess.Messages, 2)
}

func TestHandle_DiscoveryThenAttributeFollowUp(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t, nil).withCatalog()

	// Act
	first, err := f.orch.Handle(ctx, orchestrator.Request{Message: "Do you have anything in red for a wedding under $150?"})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, models.IntentProductInquiry, first.Intent)
	assert.Equal(t, orchestrator.ModeShortcut, first.Mode)
	assert.Equal(t, orchestrator.ShortcutDiscovery, first.Handler)
	require.Len(t, first.Products, 1)
	assert.Equal(t, "red-lace-wedding-gown", first.Products[0].Handle)
	assert.GreaterOrEqual(t, first.Products[0].Score, 5)
	assert.Contains(t, first.Reply, "Red Lace Wedding Gown")
	assert.NotContains(t, first.Reply, "Blue Wedding Gown")

	sess, err := f.sessions.GetSession(ctx, first.SessionID)
	require.NoError(t, err)
	require.NotNil(t, sess.Context.LastSearchContext)
	assert.Equal(t, "wedding", sess.Context.LastSearchContext.Theme)
	assert.Equal(t, "red", sess.Context.LastSearchContext.Color)
	require.NotNil(t, sess.Context.LastSearchContext.PriceUnder)
	assert.Equal(t, 150.0, *sess.Context.LastSearchContext.PriceUnder)
	assert.Equal(t, models.IntentProductInquiry, sess.Context.CurrentIntent)
	assert.Equal(t, "en", sess.Context.Language)

	// Act
	second, err := f.orch.Handle(ctx, orchestrator.Request{Message: "what colors does it come in?", SessionID: first.SessionID})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, orchestrator.ModeFollowUp, second.Mode)
	assert.Equal(t, "Red Lace Wedding Gown comes in: Red, Ivory.", second.Reply)
	assert.Empty(t, second.Products)
	f.llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	sess, err = f.sessions.GetSession(ctx, first.SessionID)
	require.NoError(t, err)
	assert.Len(t, sess.Messages, 4)
}

func TestHandle_ShowMoreReplaysStoredSearch(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t, nil).withCatalog()
	under := 150.0
	f.seed(t, "sess-more", func(c *models.SessionContext) {
		c.CurrentIntent = models.IntentProductInquiry
		c.LastSearchContext = &models.SearchFilter{Theme: "wedding", PriceUnder: &under}
		c.SetRecommendations([]models.ProductRef{{ID: 1, Handle: "red-lace-wedding-gown", Title: "Red Lace Wedding Gown"}})
	})

	// Act
	reply, err := f.orch.Handle(ctx, orchestrator.Request{Message: "show me more", SessionID: "sess-more"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, orchestrator.ModeFollowUp, reply.Mode)
	require.Len(t, reply.Products, 1)
	assert.Equal(t, "blue-wedding-gown", reply.Products[0].Handle)

	sess, err := f.sessions.GetSession(ctx, "sess-more")
	require.NoError(t, err)
	require.NotNil(t, sess.Context.LastSearchContext)
	assert.Equal(t, "wedding", sess.Context.LastSearchContext.Theme)
	require.NotNil(t, sess.Context.LastSearchContext.PriceUnder)
	assert.Equal(t, 150.0, *sess.Context.LastSearchContext.PriceUnder)
	require.Len(t, sess.Context.LastRecommendations, 1)
	assert.Equal(t, "blue-wedding-gown", sess.Context.LastRecommendations[0].Handle)
}

func TestHandle_ShowMoreNeverRepeatsShownProducts(t *testing.T) {
	// Arrange
	ctx := context.Background()
	const total = 70
	f := newFixture(t, nil)
	f.catalog.On("GetSnapshot", mock.Anything, "").Return(manyWeddingDresses(total), nil)

	first, err := f.orch.Handle(ctx, orchestrator.Request{Message: "show me wedding dresses"})
	require.NoError(t, err)
	require.Len(t, first.Products, discovery.BroadLimit)
	seen := make(map[string]bool, total)
	for _, p := range first.Products {
		seen[p.Handle] = true
	}

	// Act / Assert
	for _, want := range []int{discovery.BroadLimit, total - 2*discovery.BroadLimit} {
		reply, err := f.orch.Handle(ctx, orchestrator.Request{Message: "show me more", SessionID: first.SessionID})
		require.NoError(t, err)
		assert.Equal(t, orchestrator.ModeFollowUp, reply.Mode)
		require.Len(t, reply.Products, want)
		for _, p := range reply.Products {
			assert.False(t, seen[p.Handle], "%s was already shown", p.Handle)
			seen[p.Handle] = true
		}
	}
	assert.Len(t, seen, total)

	sess, err := f.sessions.GetSession(ctx, first.SessionID)
	require.NoError(t, err)
	assert.Len(t, sess.Context.ShownHandles, total)
	assert.Len(t, sess.Context.LastRecommendations, models.MaxRecommendations)
}

func TestHandle_FreshSearchResetsShownProducts(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t, nil).withCatalog()
	f.seed(t, "sess-fresh", func(c *models.SessionContext) {
		c.CurrentIntent = models.IntentProductInquiry
		c.LastSearchContext = &models.SearchFilter{Theme: "wedding"}
		c.ShownHandles = []string{"red-lace-wedding-gown", "blue-wedding-gown"}
	})

	// Act
	reply, err := f.orch.Handle(ctx, orchestrator.Request{Message: "Do you have anything in red for a wedding under $150?", SessionID: "sess-fresh"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, orchestrator.ShortcutDiscovery, reply.Handler)
	require.Len(t, reply.Products, 1)

	sess, err := f.sessions.GetSession(ctx, "sess-fresh")
	require.NoError(t, err)
	assert.Equal(t, []string{"red-lace-wedding-gown"}, sess.Context.ShownHandles)
}

func TestHandle_TrackingNumberOutranksFollowUp(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t, nil).withCatalog()
	f.seed(t, "sess-track", func(c *models.SessionContext) {
		c.CurrentIntent = models.IntentProductInquiry
		c.SetRecommendations([]models.ProductRef{{Handle: "red-lace-wedding-gown", Title: "Red Lace Wedding Gown"}})
	})
	f.tracking.On("TrackByNumber", mock.Anything, trackingNumber, tracking.CarrierUPS).
		Return(models.TrackingInfo{Number: trackingNumber, Courier: tracking.CarrierUPS, Status: "in_transit", Link: "https://www.ups.com/track?tracknum=" + trackingNumber}, nil)

	// Act
	reply, err := f.orch.Handle(ctx, orchestrator.Request{Message: "can you check it? " + trackingNumber, SessionID: "sess-track"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, orchestrator.ModeShortcut, reply.Mode)
	assert.Equal(t, orchestrator.ShortcutTracking, reply.Handler)
	assert.Contains(t, reply.Reply, "in transit")
	f.tracking.AssertExpectations(t)

	sess, err := f.sessions.GetSession(ctx, "sess-track")
	require.NoError(t, err)
	assert.Equal(t, trackingNumber, sess.Context.LastTrackingNumber)
	assert.Equal(t, models.IntentOrderTracking, sess.Context.CurrentIntent)
	assert.Zero(t, sess.Context.FailedAttempts)
}

func TestHandle_TrackingFailureDegradesAndCounts(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t, nil).withCatalog()
	f.tracking.On("TrackByNumber", mock.Anything, trackingNumber, tracking.CarrierUPS).
		Return(tracking.Degraded(trackingNumber, tracking.CarrierUPS), tracking.ErrProviderUnavailable)

	// Act
	reply, err := f.orch.Handle(ctx, orchestrator.Request{Message: "where is " + trackingNumber})

	// Assert
	require.NoError(t, err)
	assert.Contains(t, reply.Reply, "There's no carrier update for "+trackingNumber+" yet.")

	sess, err := f.sessions.GetSession(ctx, reply.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.Context.FailedAttempts)
}

func TestHandle_LLMFallback(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t, nil).withCatalog()
	f.llm.On("Complete", mock.Anything,
		mock.MatchedBy(func(prompt string) bool {
			return strings.Contains(prompt, "Reply in English.") && strings.Contains(prompt, "Maison Test")
		}),
		mock.Anything, "hello there").
		Return("Hi! What are you shopping for today?", nil)

	// Act
	reply, err := f.orch.Handle(ctx, orchestrator.Request{Message: "hello there"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, orchestrator.ModeLLMFallback, reply.Mode)
	assert.Equal(t, models.HandlerLLM, reply.Handler)
	assert.Equal(t, models.IntentGeneralHelp, reply.Intent)
	assert.Equal(t, "Hi! What are you shopping for today?", reply.Reply)
	f.llm.AssertExpectations(t)
}

func TestHandle_LLMFailureIsLocalizedAndCounted(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t, nil).withCatalog()
	f.llm.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("upstream timeout"))

	// Act
	reply, err := f.orch.Handle(ctx, orchestrator.Request{Message: "hello there", Language: "ar"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, answers.Text("ar", answers.KeyGenericError), reply.Reply)

	sess, err := f.sessions.GetSession(ctx, reply.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.Context.FailedAttempts)
	assert.Equal(t, "ar", sess.Context.Language)
}

func TestHandle_CatalogOutage(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t, nil)
	f.catalog.On("GetSnapshot", mock.Anything, "").Return(&models.Snapshot{}, catalog.ErrSnapshotUnavailable)

	// Act
	reply, err := f.orch.Handle(ctx, orchestrator.Request{Message: "show me red dresses"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, answers.Text("en", answers.KeyGenericError), reply.Reply)
	f.llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	sess, err := f.sessions.GetSession(ctx, reply.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.Context.FailedAttempts)
}

func TestHandle_CatalogOutageNotCountedWhenUnused(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t, nil)
	f.catalog.On("GetSnapshot", mock.Anything, "").Return(&models.Snapshot{}, catalog.ErrSnapshotUnavailable)
	f.tracking.On("TrackByNumber", mock.Anything, trackingNumber, tracking.CarrierUPS).
		Return(models.TrackingInfo{Number: trackingNumber, Courier: tracking.CarrierUPS, Status: "in_transit"}, nil)

	// Act
	var sessionID string
	for _, msg := range []string{"where is " + trackingNumber, "how long does shipping take?"} {
		reply, err := f.orch.Handle(ctx, orchestrator.Request{Message: msg, SessionID: sessionID})
		require.NoError(t, err)
		assert.Equal(t, orchestrator.ModeShortcut, reply.Mode)
		sessionID = reply.SessionID
	}

	// Assert
	sess, err := f.sessions.GetSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Zero(t, sess.Context.FailedAttempts)
}

func TestHandle_ForeignShopDomainIsIgnored(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		want      string
	}{
		{name: "unknown domain", requested: "attacker.example.net", want: ""},
		{name: "configured domain in other case", requested: "SHOP.example.com", want: "shop.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.catalog.On("GetSnapshot", mock.Anything, tt.want).Return(weddingSnapshot(), nil)

			reply, err := f.orch.Handle(context.Background(), orchestrator.Request{
				Message:    "Do you have anything in red for a wedding under $150?",
				ShopDomain: tt.requested,
			})

			require.NoError(t, err)
			f.catalog.AssertCalled(t, "GetSnapshot", mock.Anything, tt.want)
			require.Len(t, reply.Products, 1)
			assert.Contains(t, reply.Products[0].URL, "shop.example.com")
			assert.NotContains(t, reply.Reply, "attacker")
		})
	}
}

func TestHandle_ArabicShippingETA(t *testing.T) {
	f := newFixture(t, nil).withCatalog()

	reply, err := f.orch.Handle(context.Background(), orchestrator.Request{Message: "ما هي مدة الشحن"})

	require.NoError(t, err)
	assert.Equal(t, "ar", reply.Language)
	assert.Equal(t, orchestrator.ShortcutShippingETA, reply.Handler)
	assert.Equal(t, answers.ShippingETA("ar", testStore()), reply.Reply)
}

func TestHandle_PolicyRemembersKind(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t, nil).withCatalog()

	// Act
	reply, err := f.orch.Handle(ctx, orchestrator.Request{Message: "what is your return policy?"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, orchestrator.ShortcutPolicy, reply.Handler)
	assert.Contains(t, reply.Reply, "Returns are accepted within 30 days")

	sess, err := f.sessions.GetSession(ctx, reply.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.PolicyRefund, sess.Context.LastPolicyKind)
	assert.Equal(t, models.IntentReturnExchange, sess.Context.CurrentIntent)
}

func TestHandle_TermsPhraseInSizingQuestion(t *testing.T) {
	tests := []struct {
		name    string
		message string
		handler string
		intent  models.Intent
	}{
		{name: "sizing wording", message: "What size should I get in terms of fit?", handler: orchestrator.ShortcutSizing, intent: models.IntentSizeHelp},
		{name: "named terms document", message: "Where can I read your terms and conditions?", handler: orchestrator.ShortcutPolicy, intent: models.IntentReturnExchange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil).withCatalog()

			reply, err := f.orch.Handle(context.Background(), orchestrator.Request{Message: tt.message})

			require.NoError(t, err)
			assert.Equal(t, tt.handler, reply.Handler)
			sess, err := f.sessions.GetSession(context.Background(), reply.SessionID)
			require.NoError(t, err)
			assert.Equal(t, tt.intent, sess.Context.CurrentIntent)
		})
	}
}

func TestHandle_NamedProductAvailability(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture(t, nil).withCatalog()

	// Act
	reply, err := f.orch.Handle(ctx, orchestrator.Request{Message: "Is the Blue Wedding Gown still available?"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, orchestrator.ShortcutNamedProduct, reply.Handler)
	assert.Equal(t, "Yes, Blue Wedding Gown is in stock.", reply.Reply)

	sess, err := f.sessions.GetSession(ctx, reply.SessionID)
	require.NoError(t, err)
	require.Len(t, sess.Context.LastRecommendations, 1)
	assert.Equal(t, "blue-wedding-gown", sess.Context.LastRecommendations[0].Handle)
	assert.Nil(t, sess.Context.LastSearchContext)
}

func TestHandle_TracksAnalytics(t *testing.T) {
	// Arrange
	sink := new(mocks.MockAnalyticsSink)
	sink.On("TrackConversationStart", mock.Anything, mock.Anything, "en").Once()
	sink.On("TrackMessage", mock.Anything, mock.Anything, true, "hello there").Once()
	sink.On("TrackIntent", mock.Anything, mock.Anything, mock.MatchedBy(func(r models.IntentResult) bool {
		return r.Intent == models.IntentGeneralHelp
	})).Once()
	sink.On("TrackMessage", mock.Anything, mock.Anything, false, "Hi!").Once()

	f := newFixture(t, sink).withCatalog()
	f.llm.On("Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("Hi!", nil)

	// Act
	_, err := f.orch.Handle(context.Background(), orchestrator.Request{Message: "hello there"})

	// Assert
	require.NoError(t, err)
	sink.AssertExpectations(t)
}
