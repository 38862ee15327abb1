package models

import "time"

const (
	// MaxSessionMessages bounds the stored message history; oldest are evicted.
	MaxSessionMessages = 50
	// MaxRecommendations bounds the remembered product set.
	MaxRecommendations = 8
	// MaxShownHandles bounds the handles a "show me more" replay skips.
	MaxShownHandles = 200
)

// PolicyKind identifies a merchant policy document.
type PolicyKind string

const (
	PolicyRefund   PolicyKind = "refund"
	PolicyShipping PolicyKind = "shipping"
	PolicyPrivacy  PolicyKind = "privacy"
	PolicyTerms    PolicyKind = "terms"
)

// Session is the single source of truth for cross-turn conversation state.
type Session struct {
	ID           string         `json:"id"`
	CreatedAt    time.Time      `json:"createdAt"`
	LastActivity time.Time      `json:"lastActivity"`
	Messages     []Message      `json:"messages"`
	Context      SessionContext `json:"context"`
}

// Message is one turn of the conversation.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionContext holds the anchors used to resolve follow-up questions.
type SessionContext struct {
	Language            string        `json:"language,omitempty"`
	CurrentIntent       Intent        `json:"currentIntent,omitempty"`
	LastPolicyKind      PolicyKind    `json:"lastPolicyKind,omitempty"`
	LastRecommendations []ProductRef  `json:"lastRecommendations,omitempty"`
	LastSearchContext   *SearchFilter `json:"lastSearchContext,omitempty"`
	ShownHandles        []string      `json:"shownHandles,omitempty"`
	LastTrackingNumber  string        `json:"lastTrackingNumber,omitempty"`
	Preferences         Preferences   `json:"preferences"`
	FailedAttempts      int           `json:"failedAttempts"`
}

// HasAnchor reports whether any prior topic is remembered.
func (c SessionContext) HasAnchor() bool {
	return c.CurrentIntent != "" || len(c.LastRecommendations) > 0 || c.LastSearchContext != nil
}

// ProductRef is a lightweight pointer to a recommended product.
type ProductRef struct {
	ID     int64  `json:"id"`
	Handle string `json:"handle"`
	Title  string `json:"title"`
}

// Measurement is a body measurement mentioned by the customer.
type Measurement struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Centimeters converts length measurements to cm. Unitless values are assumed cm.
func (m Measurement) Centimeters() float64 {
	switch m.Unit {
	case "in":
		return m.Value * 2.54
	default:
		return m.Value
	}
}

// Budget is a price range the customer mentioned.
type Budget struct {
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`
}

// Preferences are harvested from customer messages across turns.
type Preferences struct {
	Measurements map[string]Measurement `json:"measurements,omitempty"`
	Size         string                 `json:"size,omitempty"`
	Colors       []string               `json:"colors,omitempty"`
	Styles       []string               `json:"styles,omitempty"`
	Occasions    []string               `json:"occasions,omitempty"`
	Budget       *Budget                `json:"budget,omitempty"`
}

// IsEmpty reports whether nothing has been extracted yet.
func (p Preferences) IsEmpty() bool {
	return len(p.Measurements) == 0 && p.Size == "" && len(p.Colors) == 0 &&
		len(p.Styles) == 0 && len(p.Occasions) == 0 && p.Budget == nil
}

// NewSession creates an empty session.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:           id,
		CreatedAt:    now,
		LastActivity: now,
		Messages:     []Message{},
	}
}

// AppendMessages adds messages and evicts the oldest beyond MaxSessionMessages.
func (s *Session) AppendMessages(msgs ...Message) {
	s.Messages = append(s.Messages, msgs...)
	if excess := len(s.Messages) - MaxSessionMessages; excess > 0 {
		s.Messages = s.Messages[excess:]
	}
}

// SetRecommendations replaces the remembered product set, keeping at most MaxRecommendations.
func (c *SessionContext) SetRecommendations(refs []ProductRef) {
	if len(refs) > MaxRecommendations {
		refs = refs[:MaxRecommendations]
	}
	c.LastRecommendations = append([]ProductRef(nil), refs...)
}

// RecordShown remembers every handle shown for the current search. A fresh
// search starts the list over; a replay extends it.
func (c *SessionContext) RecordShown(handles []string, replay bool) {
	if !replay {
		c.ShownHandles = nil
	}
	c.ShownHandles = append(c.ShownHandles, handles...)
	if excess := len(c.ShownHandles) - MaxShownHandles; excess > 0 {
		c.ShownHandles = c.ShownHandles[excess:]
	}
}
