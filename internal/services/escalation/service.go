package escalation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/pkg/textutil"
	"github.com/storefront-ai/assistant-service/internal/services/analytics"
	"github.com/storefront-ai/assistant-service/internal/services/session"
)

const lastMessageLength = 500

// Contacts are the human channels a customer can be sent to.
type Contacts struct {
	Phone   string
	Email   string
	ChatURL string
}

// For returns the contact point for channel.
func (c Contacts) For(channel models.Channel) string {
	switch channel {
	case models.ChannelPhone:
		return c.Phone
	case models.ChannelLiveChat:
		return c.ChatURL
	default:
		return c.Email
	}
}

// WaitTime is the expected response time of a channel.
func WaitTime(channel models.Channel) time.Duration {
	switch channel {
	case models.ChannelPhone:
		return 5 * time.Minute
	case models.ChannelLiveChat:
		return 2 * time.Minute
	default:
		return 24 * time.Hour
	}
}

// Config holds escalation service dependencies. Analytics and Tickets are optional.
type Config struct {
	Policy    Policy
	Sessions  session.Service
	Tickets   TicketStore
	Analytics analytics.Sink
	Now       func() time.Time
}

// Service evaluates the policy against session state and opens tickets.
type Service struct {
	policy    Policy
	sessions  session.Service
	tickets   TicketStore
	analytics analytics.Sink
	now       func() time.Time
}

// NewService creates an escalation service.
func NewService(cfg Config) *Service {
	s := &Service{
		policy:    cfg.Policy,
		sessions:  cfg.Sessions,
		tickets:   cfg.Tickets,
		analytics: cfg.Analytics,
		now:       cfg.Now,
	}
	if s.analytics == nil {
		s.analytics = analytics.NoopSink{}
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	return s
}

// Policy returns the underlying pure policy.
func (s *Service) Policy() Policy {
	return s.policy
}

// ShouldEscalate reads the failure count for sessionID, evaluates the policy
// and, when escalating, opens a ticket. Ticket failures are logged and the
// decision is returned regardless. The ticket is nil when none was stored.
func (s *Service) ShouldEscalate(ctx context.Context, message string, intent models.Intent, confidence float64, sessionID string) (models.EscalationDecision, *models.EscalationTicket) {
	var (
		attempts int
		language string
	)
	if s.sessions != nil && sessionID != "" {
		if sess, err := s.sessions.GetSession(ctx, sessionID); err == nil {
			attempts = sess.Context.FailedAttempts
			language = sess.Context.Language
		}
	}

	decision := s.policy.Evaluate(message, intent, confidence, attempts)
	if !decision.ShouldEscalate {
		return decision, nil
	}

	ticket := &models.EscalationTicket{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Reason:    decision.Reason,
		Factors:   decision.Factors,
		Customer: models.CustomerInfo{
			SessionID:   sessionID,
			Language:    language,
			LastMessage: textutil.Truncate(message, lastMessageLength),
		},
		Priority:  decision.Priority,
		Channel:   decision.RecommendedChannel,
		Status:    models.TicketStatusOpen,
		CreatedAt: s.now(),
	}

	logger := log.With().
		Str("session_id", sessionID).
		Str("reason", string(decision.Reason)).
		Str("channel", string(decision.RecommendedChannel)).
		Logger()

	if s.tickets != nil {
		if err := s.tickets.Create(ctx, ticket); err != nil {
			logger.Warn().Err(err).Msg("failed to store escalation ticket")
			ticket = nil
		}
	} else {
		ticket = nil
	}

	ticketID := ""
	if ticket != nil {
		ticketID = ticket.ID
	}
	s.analytics.TrackEscalation(ctx, sessionID, decision, ticketID)
	logger.Info().Str("ticket_id", ticketID).Str("priority", string(decision.Priority)).Msg("conversation escalated")

	return decision, ticket
}
