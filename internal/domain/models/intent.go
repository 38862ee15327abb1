// Package models contains domain models for the storefront assistant.
package models

// Intent is a coarse label for what the customer wants.
type Intent string

const (
	IntentProductInquiry        Intent = "product_inquiry"
	IntentOrderTracking         Intent = "order_tracking"
	IntentSizeHelp              Intent = "size_help"
	IntentReturnExchange        Intent = "return_exchange"
	IntentShippingLabel         Intent = "shipping_label"
	IntentRepresentativeRequest Intent = "representative_request"
	IntentShippingInfo          Intent = "shipping_info"
	IntentDetailedHelp          Intent = "detailed_help"
	IntentGeneralHelp           Intent = "general_help"
)

// Handler tags name the component expected to serve an intent.
const (
	HandlerProductSearch = "product_search"
	HandlerOrderTracker  = "order_tracker"
	HandlerSizeAdvisor   = "size_advisor"
	HandlerPolicyLookup  = "policy_lookup"
	HandlerLabelRequest  = "label_request"
	HandlerHumanHandoff  = "human_handoff"
	HandlerShippingETA   = "shipping_eta"
	HandlerLLM           = "llm"
)

// HandlerFor returns the handler tag associated with an intent.
func HandlerFor(intent Intent) string {
	switch intent {
	case IntentProductInquiry:
		return HandlerProductSearch
	case IntentOrderTracking:
		return HandlerOrderTracker
	case IntentSizeHelp:
		return HandlerSizeAdvisor
	case IntentReturnExchange:
		return HandlerPolicyLookup
	case IntentShippingLabel:
		return HandlerLabelRequest
	case IntentRepresentativeRequest:
		return HandlerHumanHandoff
	case IntentShippingInfo:
		return HandlerShippingETA
	default:
		return HandlerLLM
	}
}

// IntentResult is the outcome of classifying one message.
type IntentResult struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Handler    string  `json:"handler"`
	Reason     string  `json:"reason"`
}
