// Package followup resolves messages that refer back to earlier turns,
// answering them from the session anchors instead of fresh keyword routing.
package followup

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/domain/vocab"
	"github.com/storefront-ai/assistant-service/internal/pkg/textutil"
)

// MinHistory is the number of stored messages (one exchange) a conversation
// needs before anything counts as a follow-up.
const MinHistory = 2

var (
	deicticCues = vocab.WordList{
		"it", "its", "this", "that", "these", "those", "them", "one", "ones",
		"هذا", "هذه", "ذلك", "تلك", "هذي",
	}
	moreCues = vocab.WordList{
		"more", "another", "different", "other", "others", "else", "similar",
		"أكثر", "المزيد", "غيره", "غيرها", "آخر", "أخرى", "مختلف",
	}
	ordinals = map[string]int{
		"first": 0, "1st": 0, "الأول": 0, "الاول": 0,
		"second": 1, "2nd": 1, "الثاني": 1,
		"third": 2, "3rd": 2, "الثالث": 2,
		"fourth": 3, "4th": 3, "الرابع": 3,
		"fifth": 4, "5th": 4, "الخامس": 4,
		"last": -1, "الأخير": -1,
	}
	numberedPattern = regexp.MustCompile(`(?:number|no\.?|option|#)\s*([1-9])\b`)
	bareNumber      = regexp.MustCompile(`^\s*#?([1-9])\s*[.)]?\s*$`)
)

// IsFollowUp reports whether message refers back to the conversation: it
// carries a deictic, ordinal or "more" cue, the session has an anchor, and at
// least one exchange has happened.
func IsFollowUp(message string, ctx models.SessionContext, historyLen int) bool {
	if historyLen < MinHistory || !ctx.HasAnchor() {
		return false
	}
	tokens := textutil.Tokenize(message)
	if deicticCues.AnyIn(tokens) || moreCues.AnyIn(tokens) {
		return true
	}
	_, ok := ordinal(message, tokens)
	return ok
}

// ordinal returns the zero-based position the message points at; -1 means last.
func ordinal(message string, tokens []string) (int, bool) {
	if m := bareNumber.FindStringSubmatch(message); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n - 1, true
	}
	if m := numberedPattern.FindStringSubmatch(strings.ToLower(message)); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n - 1, true
	}
	for _, tok := range tokens {
		if idx, ok := ordinals[tok]; ok {
			return idx, true
		}
	}
	return 0, false
}

func wantsMore(tokens []string) bool {
	return moreCues.AnyIn(tokens)
}
