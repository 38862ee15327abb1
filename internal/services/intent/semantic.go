package intent

import (
	"fmt"
	"regexp"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

type semanticRule struct {
	intent     models.Intent
	confidence float64
	phrases    []string
	patterns   []*regexp.Regexp
}

// semanticRules are evaluated in order, most specific category first, so a
// "return label" request is a shipping label and not a return.
var semanticRules = []semanticRule{
	{
		intent:     models.IntentRepresentativeRequest,
		confidence: 0.95,
		phrases: []string{
			"speak to a human", "talk to a human", "speak to someone", "talk to someone",
			"real person", "representative", "live agent", "human agent", "customer service",
			"speak with an agent", "talk to an agent", "call me back", "خدمة العملاء", "موظف", "شخص حقيقي",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(speak|talk|chat)\s+(to|with)\s+(a|an|the)?\s*(human|person|agent|manager|someone)\b`),
		},
	},
	{
		intent:     models.IntentShippingLabel,
		confidence: 0.92,
		phrases: []string{
			"return label", "shipping label", "prepaid label", "print a label", "label to return",
			"send me a label", "ملصق الشحن", "ملصق الإرجاع", "بوليصة",
		},
	},
	{
		intent:     models.IntentOrderTracking,
		confidence: 0.92,
		phrases: []string{
			"track my order", "track my package", "track my parcel", "tracking number", "order status",
			"has my order shipped", "where is my package", "where is my parcel", "tracking link",
			"تتبع", "أين طلبي", "رقم التتبع", "حالة الطلب",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bwhere('?s|\s+is)\s+my\s+(order|package|parcel|delivery)\b`),
			regexp.MustCompile(`\bhasn'?t\s+(arrived|shipped|come)\b`),
		},
	},
	{
		intent:     models.IntentReturnExchange,
		confidence: 0.9,
		phrases: []string{
			"return policy", "refund", "refunds", "exchange", "money back", "send it back",
			"return an item", "return my", "return this", "return it", "الاسترجاع", "استرداد", "استبدال", "ارجاع",
		},
	},
	{
		intent:     models.IntentSizeHelp,
		confidence: 0.88,
		phrases: []string{
			"what size", "which size", "size chart", "size guide", "sizing", "my measurements",
			"true to size", "runs small", "runs large", "will it fit", "fit me", "مقاس", "المقاس", "قياس",
		},
	},
	{
		intent:     models.IntentShippingInfo,
		confidence: 0.88,
		phrases: []string{
			"shipping time", "delivery time", "how long does shipping", "how long does delivery",
			"when will it arrive", "do you ship", "shipping cost", "international shipping",
			"how long to ship", "free shipping", "الشحن", "التوصيل",
		},
	},
	{
		intent:     models.IntentDetailedHelp,
		confidence: 0.85,
		phrases: []string{
			"step by step", "explain in detail", "detailed explanation", "help me understand",
			"walk me through", "difference between", "اشرح",
		},
	},
	{
		intent:     models.IntentProductInquiry,
		confidence: 0.85,
		phrases: []string{
			"do you have", "looking for", "show me", "recommend", "i want to buy", "in stock",
			"available in", "do you sell", "got any", "أبحث عن", "هل لديكم", "عندكم", "أرني",
		},
	},
}

// SemanticMatcher tests curated phrase and pattern lists per intent.
type SemanticMatcher struct{}

// Match returns the first category with a matching phrase or pattern.
func (SemanticMatcher) Match(in Input) (models.IntentResult, bool) {
	for _, rule := range semanticRules {
		for _, p := range rule.phrases {
			if in.HasPhrase(p) {
				return result(rule.intent, rule.confidence, fmt.Sprintf("semantic: %q", p)), true
			}
		}
		for _, re := range rule.patterns {
			if re.MatchString(in.Lower) {
				return result(rule.intent, rule.confidence, fmt.Sprintf("semantic: /%s/", re.String())), true
			}
		}
	}
	return models.IntentResult{}, false
}

func result(intent models.Intent, confidence float64, reason string) models.IntentResult {
	return models.IntentResult{
		Intent:     intent,
		Confidence: confidence,
		Handler:    models.HandlerFor(intent),
		Reason:     reason,
	}
}
