package intent

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

type patternRule struct {
	name       string
	intent     models.Intent
	confidence float64
	re         *regexp.Regexp
}

var patternRules = []patternRule{
	{"order number", models.IntentOrderTracking, 0.9, regexp.MustCompile(`#\s?\d{3,}\b`)},
	{"order reference", models.IntentOrderTracking, 0.9, regexp.MustCompile(`\border\s*(no\.?|number|num|#)\s*:?\s*\d+`)},
	{"measurement", models.IntentSizeHelp, 0.85, regexp.MustCompile(`\b\d{2,3}(\.\d+)?\s*(cm|inches|inch|in|kg|lbs?|pounds)\b`)},
	{"height", models.IntentSizeHelp, 0.85, regexp.MustCompile(`\b[4-7]\s?'\s?\d{1,2}\b`)},
	{"price bound", models.IntentProductInquiry, 0.85, regexp.MustCompile(`\b(under|below|less than|over|above|between)\s+\$?\s?\d+`)},
	{"price", models.IntentProductInquiry, 0.82, regexp.MustCompile(`\$\s?\d+`)},
}

// PatternMatcher runs the secondary regex set.
type PatternMatcher struct{}

// Match returns the highest-confidence pattern hit. A tracking-number-shaped
// token counts as an order tracking hit.
func (PatternMatcher) Match(in Input) (models.IntentResult, bool) {
	if n := FindTrackingNumber(in.Raw); n != "" {
		return result(models.IntentOrderTracking, 0.9, "regex: tracking number"), true
	}
	var best *patternRule
	for i := range patternRules {
		r := &patternRules[i]
		if r.re.MatchString(in.Lower) && (best == nil || r.confidence > best.confidence) {
			best = r
		}
	}
	if best == nil {
		return models.IntentResult{}, false
	}
	return result(best.intent, best.confidence, "regex: "+best.name), true
}

// FindTrackingNumber returns the first run of 8 to 40 ASCII letters and
// digits that contains at least one digit, uppercased.
func FindTrackingNumber(message string) string {
	for _, tok := range strings.FieldsFunc(message, func(r rune) bool {
		return !(r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
	}) {
		if IsTrackingNumber(tok) {
			return strings.ToUpper(tok)
		}
	}
	return ""
}

// IsTrackingNumber reports whether tok is tracking-number shaped.
func IsTrackingNumber(tok string) bool {
	if len(tok) < 8 || len(tok) > 40 {
		return false
	}
	for _, r := range tok {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
