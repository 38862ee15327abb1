// Package analytics records fire-and-forget conversation telemetry.
package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/storefront-ai/assistant-service/internal/core/docdb"
	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/pkg/textutil"
)

const previewLength = 120

// Sink receives telemetry. Implementations never return errors to callers.
type Sink interface {
	TrackMessage(ctx context.Context, sessionID string, isUser bool, content string)
	TrackIntent(ctx context.Context, sessionID string, result models.IntentResult)
	TrackEscalation(ctx context.Context, sessionID string, decision models.EscalationDecision, ticketID string)
	TrackConversationStart(ctx context.Context, sessionID, language string)
}

// QueueSink turns calls into events on a background Queue.
type QueueSink struct {
	queue *Queue
	now   func() time.Time
}

// NewQueueSink wraps queue.
func NewQueueSink(queue *Queue) *QueueSink {
	return &QueueSink{queue: queue, now: func() time.Time { return time.Now().UTC() }}
}

// NewDocDBQueue returns a queue that writes batches to the analytics collection.
func NewDocDBQueue(coll docdb.AnalyticsCollection, bufferSize int) *Queue {
	q := NewQueue(bufferSize, coll.InsertMany)
	q.OnError(func(err error, n int) {
		log.Warn().Err(err).Int("events", n).Msg("failed to write analytics events")
	})
	return q
}

func (s *QueueSink) TrackMessage(_ context.Context, sessionID string, isUser bool, content string) {
	s.enqueue(models.EventMessage, sessionID, map[string]interface{}{
		"isUser":  isUser,
		"length":  len([]rune(content)),
		"preview": textutil.Truncate(textutil.StripHTML(content), previewLength),
	})
}

func (s *QueueSink) TrackIntent(_ context.Context, sessionID string, result models.IntentResult) {
	s.enqueue(models.EventIntent, sessionID, map[string]interface{}{
		"intent":     string(result.Intent),
		"confidence": result.Confidence,
		"handler":    result.Handler,
		"reason":     result.Reason,
	})
}

func (s *QueueSink) TrackEscalation(_ context.Context, sessionID string, decision models.EscalationDecision, ticketID string) {
	s.enqueue(models.EventEscalation, sessionID, map[string]interface{}{
		"reason":   string(decision.Reason),
		"channel":  string(decision.RecommendedChannel),
		"priority": string(decision.Priority),
		"ticketId": ticketID,
		"factors": map[string]interface{}{
			"confidence": decision.Factors.Confidence,
			"complexity": decision.Factors.Complexity,
			"attempts":   decision.Factors.Attempts,
			"sentiment":  decision.Factors.Sentiment,
		},
	})
}

func (s *QueueSink) TrackConversationStart(_ context.Context, sessionID, language string) {
	s.enqueue(models.EventConversationStart, sessionID, map[string]interface{}{"language": language})
}

func (s *QueueSink) enqueue(eventType models.EventType, sessionID string, payload map[string]interface{}) {
	event := &models.AnalyticsEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: sessionID,
		Payload:   payload,
		CreatedAt: s.now(),
	}
	if !s.queue.Enqueue(event) {
		log.Debug().Str("session_id", sessionID).Str("type", string(eventType)).Msg("analytics event dropped")
	}
}

// NoopSink discards everything.
type NoopSink struct{}

func (NoopSink) TrackMessage(context.Context, string, bool, string) {}
func (NoopSink) TrackIntent(context.Context, string, models.IntentResult) {}
func (NoopSink) TrackEscalation(context.Context, string, models.EscalationDecision, string) {}
func (NoopSink) TrackConversationStart(context.Context, string, string) {}
