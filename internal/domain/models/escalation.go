package models

import "time"

// EscalationReason names the factor that triggered a handoff.
type EscalationReason string

const (
	ReasonNone              EscalationReason = "none"
	ReasonLowConfidence     EscalationReason = "low_confidence"
	ReasonHighComplexity    EscalationReason = "high_complexity"
	ReasonRepeatedFailures  EscalationReason = "repeated_failures"
	ReasonNegativeSentiment EscalationReason = "negative_sentiment"
)

// Channel is a human-staffed support channel.
type Channel string

const (
	ChannelPhone    Channel = "phone"
	ChannelLiveChat Channel = "live_chat"
	ChannelEmail    Channel = "email"
)

// Priority of an escalation ticket.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// EscalationFactors records which independent axes fired.
type EscalationFactors struct {
	Confidence bool `json:"confidence" bson:"confidence"`
	Complexity bool `json:"complexity" bson:"complexity"`
	Attempts   bool `json:"attempts" bson:"attempts"`
	Sentiment  bool `json:"sentiment" bson:"sentiment"`
}

// EscalationMetrics are the raw sub-scores behind the factors.
type EscalationMetrics struct {
	Complexity     float64 `json:"complexity" bson:"complexity"`
	SentimentRatio float64 `json:"sentimentRatio" bson:"sentimentRatio"`
	Urgent         bool    `json:"urgent" bson:"urgent"`
}

// EscalationDecision is the advisory output of the escalation policy.
type EscalationDecision struct {
	ShouldEscalate     bool              `json:"shouldEscalate"`
	Reason             EscalationReason  `json:"reason"`
	Factors            EscalationFactors `json:"factors"`
	Metrics            EscalationMetrics `json:"metrics"`
	RecommendedChannel Channel           `json:"recommendedChannel"`
	Priority           Priority          `json:"priority"`
}

// TicketStatus of an escalation ticket.
type TicketStatus string

// TicketStatusOpen is the status of a freshly created ticket.
const TicketStatusOpen TicketStatus = "open"

// CustomerInfo is what the support agent sees about the customer.
type CustomerInfo struct {
	SessionID   string `json:"sessionId" bson:"sessionId"`
	Language    string `json:"language,omitempty" bson:"language,omitempty"`
	LastMessage string `json:"lastMessage" bson:"lastMessage"`
}

// EscalationTicket is created for every escalated turn.
type EscalationTicket struct {
	ID        string            `json:"id" bson:"_id"`
	SessionID string            `json:"sessionId" bson:"sessionId"`
	Reason    EscalationReason  `json:"reason" bson:"reason"`
	Factors   EscalationFactors `json:"factors" bson:"factors"`
	Customer  CustomerInfo      `json:"customer" bson:"customer"`
	Priority  Priority          `json:"priority" bson:"priority"`
	Channel   Channel           `json:"channel" bson:"channel"`
	Status    TicketStatus      `json:"status" bson:"status"`
	CreatedAt time.Time         `json:"createdAt" bson:"createdAt"`
}
