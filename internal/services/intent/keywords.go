package intent

import (
	"fmt"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/domain/vocab"
)

type keywordList struct {
	intent     models.Intent
	confidence float64
	words      vocab.WordList
}

// keywordLists are short on purpose: the score is the matched fraction of
// the list, so long lists can never clear the threshold.
var keywordLists = []keywordList{
	{models.IntentProductInquiry, 0.8, vocab.WordList{"dress", "gown", "wear", "buy"}},
	{models.IntentOrderTracking, 0.85, vocab.WordList{"order", "shipped", "arrive"}},
	{models.IntentSizeHelp, 0.85, vocab.WordList{"size", "fit", "measurements"}},
	{models.IntentReturnExchange, 0.85, vocab.WordList{"return", "refund", "exchange"}},
	{models.IntentShippingLabel, 0.85, vocab.WordList{"label", "print", "return"}},
	{models.IntentRepresentativeRequest, 0.85, vocab.WordList{"human", "agent", "person"}},
	{models.IntentShippingInfo, 0.85, vocab.WordList{"shipping", "delivery", "days"}},
	{models.IntentDetailedHelp, 0.8, vocab.WordList{"explain", "detail", "how"}},
}

// KeywordMatcher scores keyword-list overlap scaled by per-intent confidence.
type KeywordMatcher struct{}

// Match returns the intent with the highest overlap score. Earlier lists win ties.
func (KeywordMatcher) Match(in Input) (models.IntentResult, bool) {
	var (
		best      keywordList
		bestScore float64
		bestHits  int
	)
	for _, kl := range keywordLists {
		hits := kl.words.CountIn(in.Tokens)
		if hits == 0 {
			continue
		}
		score := float64(hits) / float64(len(kl.words)) * kl.confidence
		if score > bestScore {
			best, bestScore, bestHits = kl, score, hits
		}
	}
	if bestScore == 0 {
		return models.IntentResult{}, false
	}
	return result(best.intent, bestScore, fmt.Sprintf("keyword: %d/%d", bestHits, len(best.words))), true
}
