package orchestrator

import "github.com/storefront-ai/assistant-service/internal/domain/models"

// Mode is the path a turn takes through the pipeline.
type Mode string

const (
	// ModeEscalate hands the customer to a human. Nothing else runs.
	ModeEscalate Mode = "escalate"
	// ModeFollowUp answers from the session anchors.
	ModeFollowUp Mode = "follow_up"
	// ModeShortcut runs the keyword handlers in priority order.
	ModeShortcut Mode = "shortcut"
	// ModeLLMFallback hands the turn to the language model.
	ModeLLMFallback Mode = "llm_fallback"
)

// RouteInput is what the routing decision is made from.
type RouteInput struct {
	Decision       models.EscalationDecision
	TrackingNumber string
	FollowUp       bool
}

// Route decides the mode of a turn. A concrete tracking number never refers
// to earlier context, so it goes to the shortcuts even inside a follow-up.
// ModeShortcut becomes ModeLLMFallback when no handler produces a reply.
func Route(in RouteInput) Mode {
	switch {
	case in.Decision.ShouldEscalate:
		return ModeEscalate
	case in.TrackingNumber != "":
		return ModeShortcut
	case in.FollowUp:
		return ModeFollowUp
	default:
		return ModeShortcut
	}
}
