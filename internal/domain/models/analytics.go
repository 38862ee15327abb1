package models

import "time"

// EventType classifies analytics events.
type EventType string

const (
	EventMessage           EventType = "message"
	EventIntent            EventType = "intent"
	EventEscalation        EventType = "escalation"
	EventConversationStart EventType = "conversation_start"
)

// AnalyticsEvent is one fire-and-forget telemetry record.
type AnalyticsEvent struct {
	ID        string                 `json:"id" bson:"_id"`
	Type      EventType              `json:"type" bson:"type"`
	SessionID string                 `json:"sessionId" bson:"sessionId"`
	Payload   map[string]interface{} `json:"payload,omitempty" bson:"payload,omitempty"`
	CreatedAt time.Time              `json:"createdAt" bson:"createdAt"`
}
