// Package orchestrator runs the per-message pipeline: session, preferences,
// intent, escalation, then follow-up, shortcut or LLM reply, then persistence.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	domainerrors "github.com/storefront-ai/assistant-service/internal/domain/errors"
	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/services/analytics"
	"github.com/storefront-ai/assistant-service/internal/services/answers"
	"github.com/storefront-ai/assistant-service/internal/services/catalog"
	"github.com/storefront-ai/assistant-service/internal/services/discovery"
	"github.com/storefront-ai/assistant-service/internal/services/escalation"
	"github.com/storefront-ai/assistant-service/internal/services/followup"
	"github.com/storefront-ai/assistant-service/internal/services/intent"
	"github.com/storefront-ai/assistant-service/internal/services/llm"
	"github.com/storefront-ai/assistant-service/internal/services/session"
	"github.com/storefront-ai/assistant-service/internal/services/tracking"
)

// MaxMessageLength bounds a customer message.
const MaxMessageLength = 4000

// Request is one incoming customer message.
type Request struct {
	Message    string
	SessionID  string
	Language   string
	ShopDomain string
}

// EscalationInfo tells the widget where the customer was sent.
type EscalationInfo struct {
	Reason      models.EscalationReason `json:"reason"`
	Channel     models.Channel          `json:"channel"`
	Priority    models.Priority         `json:"priority"`
	Contact     string                  `json:"contact"`
	WaitMinutes int                     `json:"waitMinutes"`
	TicketID    string                  `json:"ticketId,omitempty"`
}

// Reply is the outcome of a turn.
type Reply struct {
	Reply      string
	Intent     models.Intent
	Confidence float64
	SessionID  string
	Language   string
	Mode       Mode
	Handler    string
	Escalated  bool
	Escalation *EscalationInfo
	Products   []discovery.Item
}

// Config holds the orchestrator collaborators. Tracking, Analytics,
// Discovery and Now are optional.
type Config struct {
	Sessions   session.Service
	Classifier *intent.Classifier
	Escalation *escalation.Service
	Catalog    catalog.Provider
	LLM        llm.Client
	Tracking   tracking.Client
	Analytics  analytics.Sink
	Discovery  *discovery.Engine
	Store      answers.Store
	Now        func() time.Time
}

// Orchestrator turns customer messages into replies.
type Orchestrator struct {
	sessions   session.Service
	classifier *intent.Classifier
	escalation *escalation.Service
	catalog    catalog.Provider
	llm        llm.Client
	tracking   tracking.Client
	analytics  analytics.Sink
	discovery  *discovery.Engine
	followups  *followup.Resolver
	store      answers.Store
	now        func() time.Time
}

// New creates an orchestrator.
func New(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	switch {
	case cfg.Sessions == nil:
		return nil, fmt.Errorf("session service is required")
	case cfg.Classifier == nil:
		return nil, fmt.Errorf("intent classifier is required")
	case cfg.Escalation == nil:
		return nil, fmt.Errorf("escalation service is required")
	case cfg.Catalog == nil:
		return nil, fmt.Errorf("catalog provider is required")
	case cfg.LLM == nil:
		return nil, fmt.Errorf("llm client is required")
	}

	o := &Orchestrator{
		sessions:   cfg.Sessions,
		classifier: cfg.Classifier,
		escalation: cfg.Escalation,
		catalog:    cfg.Catalog,
		llm:        cfg.LLM,
		tracking:   cfg.Tracking,
		analytics:  cfg.Analytics,
		discovery:  cfg.Discovery,
		store:      cfg.Store,
		now:        cfg.Now,
	}
	if o.tracking == nil {
		o.tracking = tracking.LinkOnlyClient{}
	}
	if o.analytics == nil {
		o.analytics = analytics.NoopSink{}
	}
	if o.discovery == nil {
		o.discovery = discovery.NewEngine(discovery.Config{})
	}
	if o.now == nil {
		o.now = func() time.Time { return time.Now().UTC() }
	}
	o.followups = followup.NewResolver(o.discovery, o.store)
	return o, nil
}

// turn is the working state of one message.
type turn struct {
	message        string
	lang           string
	store          answers.Store
	session        *models.Session
	classification models.IntentResult
	trackingNumber string
	snapshot       *models.Snapshot
	catalogErr     error
}

// outcome is what a handler produced.
type outcome struct {
	text           string
	handler        string
	intent         models.Intent
	discovery      *discovery.Result
	recommended    []models.ProductRef
	search         *models.SearchFilter
	shown          []string
	replay         bool
	policyKind     models.PolicyKind
	trackingNumber string
	failed         bool
	readCatalog    bool
}

// Handle runs the pipeline for one message. The only error it returns is a
// validation error; collaborator failures become localized replies.
func (o *Orchestrator) Handle(ctx context.Context, req Request) (*Reply, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, domainerrors.NewValidationError("message is required", "")
	}
	if len([]rune(message)) > MaxMessageLength {
		return nil, domainerrors.NewValidationError("message is too long", fmt.Sprintf("max %d characters", MaxMessageLength))
	}
	if err := session.ValidateID(req.SessionID); err != nil {
		return nil, domainerrors.NewValidationError("invalid session id", err.Error())
	}

	// Resolve session
	sess, err := o.sessions.GetSession(ctx, req.SessionID)
	if err != nil {
		return nil, domainerrors.NewValidationError("invalid session id", err.Error())
	}
	isNew := len(sess.Messages) == 0

	t := &turn{
		message: message,
		lang:    ResolveLanguage(req.Language, message),
		store:   o.store,
		session: sess,
	}
	domain := o.shopDomain(req.ShopDomain)
	if isNew {
		o.analytics.TrackConversationStart(ctx, sess.ID, t.lang)
	}
	o.analytics.TrackMessage(ctx, sess.ID, true, message)

	// Extract preferences
	if prefs, err := o.sessions.ExtractPreferences(ctx, sess.ID, message); err != nil {
		log.Warn().Err(err).Str("session_id", sess.ID).Msg("failed to store preferences")
		sess.Context.Preferences = session.ExtractPreferences(sess.Context.Preferences, message)
	} else {
		sess.Context.Preferences = prefs
	}

	// Classify and check escalation
	t.classification = o.classifier.Classify(ctx, message, sess.ID)
	o.analytics.TrackIntent(ctx, sess.ID, t.classification)
	decision, ticket := o.escalation.ShouldEscalate(ctx, message, t.classification.Intent, t.classification.Confidence, sess.ID)

	t.trackingNumber = intent.FindTrackingNumber(message)
	mode := Route(RouteInput{
		Decision:       decision,
		TrackingNumber: t.trackingNumber,
		FollowUp:       followup.IsFollowUp(message, sess.Context, len(sess.Messages)),
	})

	reply := &Reply{
		Intent:     t.classification.Intent,
		Confidence: t.classification.Confidence,
		SessionID:  sess.ID,
		Language:   t.lang,
		Mode:       mode,
	}

	var out outcome
	if mode == ModeEscalate {
		out = o.escalate(t, decision, ticket, reply)
	} else {
		o.loadSnapshot(ctx, t, domain)
		out, reply.Mode = o.answer(ctx, t, mode)
	}
	if out.intent == "" {
		out.intent = t.classification.Intent
	}
	if out.discovery != nil {
		reply.Products = out.discovery.Items
	}
	reply.Reply = out.text
	reply.Handler = out.handler

	o.persist(ctx, t, out, reply.Escalated)
	o.analytics.TrackMessage(ctx, sess.ID, false, reply.Reply)

	log.Debug().
		Str("session_id", sess.ID).
		Str("mode", string(reply.Mode)).
		Str("handler", reply.Handler).
		Str("intent", string(reply.Intent)).
		Msg("turn handled")
	return reply, nil
}

func (o *Orchestrator) escalate(t *turn, d models.EscalationDecision, ticket *models.EscalationTicket, reply *Reply) outcome {
	contacts := t.store.Contacts
	reply.Escalated = true
	reply.Escalation = &EscalationInfo{
		Reason:      d.Reason,
		Channel:     d.RecommendedChannel,
		Priority:    d.Priority,
		Contact:     contacts.For(d.RecommendedChannel),
		WaitMinutes: int(escalation.WaitTime(d.RecommendedChannel).Minutes()),
	}
	if ticket != nil {
		reply.Escalation.TicketID = ticket.ID
	}
	return outcome{text: answers.Escalation(t.lang, d, contacts), handler: models.HandlerHumanHandoff}
}

// answer runs follow-up resolution or the shortcut chain, falling back to the LLM.
func (o *Orchestrator) answer(ctx context.Context, t *turn, mode Mode) (outcome, Mode) {
	switch mode {
	case ModeFollowUp:
		ans, ok := o.followups.Resolve(followup.Request{
			Message:         t.message,
			PreviousMessage: previousUserMessage(t.session),
			Lang:            t.lang,
			Context:         t.session.Context,
			Snapshot:        t.snapshot,
		})
		if ok {
			out := outcome{
				text:        ans.Text,
				handler:     "follow_up_" + string(ans.Kind),
				intent:      ans.Intent,
				readCatalog: ans.ReadCatalog,
			}
			if ans.Discovery != nil {
				out = withResults(out, *ans.Discovery, ans.Kind == followup.KindReplay)
			}
			return out, ModeFollowUp
		}
	case ModeShortcut:
		if out, ok := o.shortcut(ctx, t); ok {
			return out, ModeShortcut
		}
	}
	return o.fallback(ctx, t), ModeLLMFallback
}

func (o *Orchestrator) fallback(ctx context.Context, t *turn) outcome {
	prompt := llm.BuildSystemPrompt(llm.PromptInput{
		Language: t.lang,
		Store: llm.StoreInfo{
			Name:                      t.store.Name,
			Domain:                    t.store.Domain,
			Currency:                  t.store.Currency,
			SupportEmail:              t.store.Contacts.Email,
			DomesticShippingDays:      t.store.DomesticShippingDays,
			InternationalShippingDays: t.store.InternationalShippingDays,
		},
		Snapshot: t.snapshot,
		Context:  t.session.Context,
		Intent:   t.classification.Intent,
	})
	text, err := o.llm.Complete(ctx, prompt, llm.PrepareHistory(t.session.Messages), t.message)
	if err != nil {
		log.Warn().Err(err).Str("session_id", t.session.ID).Str("collaborator", "llm").Msg("completion failed")
		return outcome{text: answers.Text(t.lang, answers.KeyGenericError), handler: models.HandlerLLM, failed: true, readCatalog: true}
	}
	return outcome{text: strings.TrimSpace(text), handler: models.HandlerLLM, readCatalog: true}
}

// shopDomain returns the catalog domain for a request. Only the configured
// store is served; any other value falls back to the provider default.
func (o *Orchestrator) shopDomain(requested string) string {
	requested = strings.TrimSpace(requested)
	switch {
	case requested == "":
		return ""
	case strings.EqualFold(requested, o.store.Domain):
		return o.store.Domain
	}
	log.Debug().Str("shop_domain", requested).Msg("ignoring unknown shop domain")
	return ""
}

func (o *Orchestrator) loadSnapshot(ctx context.Context, t *turn, domain string) {
	snap, err := o.catalog.GetSnapshot(ctx, domain)
	if err != nil {
		t.catalogErr = err
		log.Warn().Err(err).Str("session_id", t.session.ID).Str("collaborator", "catalog").Msg("catalog unavailable")
	}
	if snap == nil {
		snap = &models.Snapshot{Domain: t.store.Domain}
	}
	t.snapshot = snap
}

// persist writes the exchange and the resolved anchors. Store failures are
// logged; the reply is returned regardless.
func (o *Orchestrator) persist(ctx context.Context, t *turn, out outcome, escalated bool) {
	id := t.session.ID
	if err := o.sessions.AppendExchange(ctx, id, t.message, out.text); err != nil {
		log.Warn().Err(err).Str("session_id", id).Msg("failed to store messages")
	}

	err := o.sessions.UpdateContext(ctx, id, func(c *models.SessionContext) {
		c.CurrentIntent = out.intent
		c.Language = t.lang
		if out.policyKind != "" {
			c.LastPolicyKind = out.policyKind
		}
		if out.trackingNumber != "" {
			c.LastTrackingNumber = out.trackingNumber
		}
		if len(out.recommended) > 0 {
			c.SetRecommendations(out.recommended)
			if out.search != nil {
				c.LastSearchContext = out.search.Clone()
				c.RecordShown(out.shown, out.replay)
			}
		}
		if escalated {
			c.FailedAttempts = 0
		}
	})
	if err != nil {
		log.Warn().Err(err).Str("session_id", id).Msg("failed to store session context")
	}

	if out.failed || (t.catalogErr != nil && out.readCatalog) {
		if _, err := o.sessions.IncrementFailedAttempts(ctx, id); err != nil {
			log.Warn().Err(err).Str("session_id", id).Msg("failed to record failed attempt")
		}
	}
}

// withResults records a discovery result as the reply products and the new
// anchors. replay extends the shown handles instead of starting them over.
func withResults(out outcome, res discovery.Result, replay bool) outcome {
	out.discovery = &res
	out.readCatalog = true
	if len(res.Items) > 0 {
		out.recommended = res.Refs()
		out.search = res.Filter.Clone()
		out.replay = replay
		out.shown = make([]string, 0, len(res.Items))
		for _, it := range res.Items {
			out.shown = append(out.shown, it.Handle)
		}
	}
	return out
}

func previousUserMessage(sess *models.Session) string {
	for i := len(sess.Messages) - 1; i >= 0; i-- {
		if sess.Messages[i].IsUser {
			return sess.Messages[i].Content
		}
	}
	return ""
}
