package intent

import (
	"fmt"
	"math"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/pkg/textutil"
)

var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "to": true, "is": true, "my": true, "me": true, "i": true,
	"you": true, "do": true, "does": true, "it": true, "in": true, "of": true, "for": true, "and": true,
	"with": true, "what": true, "how": true, "can": true, "will": true, "s": true, "this": true,
	"that": true, "be": true, "have": true, "has": true, "want": true, "someone": true, "where": true,
}

// TFIDFIndex is a term to intent index. Each intent is a document made of
// the vocabulary of its semantic phrases and keyword list.
type TFIDFIndex struct {
	docs  map[string]map[models.Intent]bool
	idf   map[string]float64
	order []models.Intent
}

// NewTFIDFIndex builds the index from the rule tables.
func NewTFIDFIndex() *TFIDFIndex {
	idx := &TFIDFIndex{
		docs: make(map[string]map[models.Intent]bool),
		idf:  make(map[string]float64),
	}
	add := func(intent models.Intent, text string) {
		for _, tok := range textutil.Tokenize(text) {
			if stopwords[tok] {
				continue
			}
			if idx.docs[tok] == nil {
				idx.docs[tok] = make(map[models.Intent]bool)
			}
			idx.docs[tok][intent] = true
		}
	}
	seen := make(map[models.Intent]bool)
	for _, rule := range semanticRules {
		for _, p := range rule.phrases {
			add(rule.intent, p)
		}
		if !seen[rule.intent] {
			seen[rule.intent] = true
			idx.order = append(idx.order, rule.intent)
		}
	}
	for _, kl := range keywordLists {
		for _, w := range kl.words {
			add(kl.intent, w)
		}
	}

	n := float64(len(idx.order))
	for term, intents := range idx.docs {
		idx.idf[term] = math.Log((1+n)/(1+float64(len(intents)))) + 1
	}
	return idx
}

// Score returns the best intent and its share of the message's indexed IDF
// mass. Unindexed tokens carry no weight.
func (idx *TFIDFIndex) Score(tokens []string) (models.Intent, float64) {
	scores := make(map[models.Intent]float64)
	var total float64
	counted := make(map[string]bool)
	for _, tok := range tokens {
		w, ok := idx.idf[tok]
		if !ok || counted[tok] {
			continue
		}
		counted[tok] = true
		total += w
		for intent := range idx.docs[tok] {
			scores[intent] += w
		}
	}
	if total == 0 {
		return "", 0
	}
	var (
		best      models.Intent
		bestScore float64
	)
	for _, intent := range idx.order {
		if scores[intent] > bestScore {
			best, bestScore = intent, scores[intent]
		}
	}
	return best, bestScore / total
}

// Match implements the matcher contract for the TF-IDF stage.
func (idx *TFIDFIndex) Match(in Input) (models.IntentResult, bool) {
	intent, score := idx.Score(in.Tokens)
	if intent == "" {
		return models.IntentResult{}, false
	}
	return result(intent, math.Round(score*1000)/1000, fmt.Sprintf("tfidf: %.2f", score)), true
}
