// Package escalation decides when a conversation should be handed to a human.
package escalation

import (
	"math"
	"unicode"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/domain/vocab"
	"github.com/storefront-ai/assistant-service/internal/pkg/textutil"
)

// Factor thresholds.
const (
	ConfidenceThreshold = 0.6
	ComplexityThreshold = 0.7
	AttemptsThreshold   = 3
	SentimentThreshold  = 0.3
	NeutralSentiment    = 0.5
)

// Complexity composite weights.
const (
	lengthWeight    = 0.3
	specialWeight   = 0.2
	technicalWeight = 0.3
	questionWeight  = 0.2

	lengthNorm   = 200.0
	questionNorm = 3.0
)

// Lexicon holds the word lists behind the complexity and sentiment metrics.
type Lexicon struct {
	Positive  vocab.WordList
	Negative  vocab.WordList
	Technical vocab.WordList
	Urgent    vocab.WordList
}

// DefaultLexicon is used when a Policy is built without one.
var DefaultLexicon = Lexicon{
	Positive: vocab.WordList{
		"thanks", "thank", "great", "love", "perfect", "awesome", "amazing", "happy", "excellent",
		"good", "nice", "wonderful", "beautiful", "appreciate", "helpful", "lovely", "شكرا", "رائع", "ممتاز",
	},
	Negative: vocab.WordList{
		"frustrated", "frustrating", "terrible", "awful", "horrible", "angry", "bad", "worst", "hate",
		"useless", "disappointed", "annoyed", "upset", "ridiculous", "unacceptable", "nobody", "broken",
		"damaged", "wrong", "scam", "poor", "furious", "سيء", "غاضب", "محبط",
	},
	Technical: vocab.WordList{
		"api", "integration", "error", "bug", "code", "webhook", "server", "database", "configuration",
		"sync", "plugin", "payment", "gateway", "invoice", "chargeback", "dispute", "account", "password",
		"login", "technical", "app", "crash", "sku", "wholesale", "customs", "duty", "vat", "checkout",
	},
	Urgent: vocab.WordList{
		"urgent", "urgently", "asap", "immediately", "emergency", "right now", "lawyer", "fraud", "عاجل", "فورا",
	},
}

// Policy evaluates the four escalation factors. The zero value uses DefaultLexicon.
type Policy struct {
	Lexicon *Lexicon
}

func (p Policy) lexicon() *Lexicon {
	if p.Lexicon != nil {
		return p.Lexicon
	}
	return &DefaultLexicon
}

// Evaluate is a pure function of its inputs. Any true factor escalates.
// The reported reason is the first true factor in the order confidence,
// complexity, attempts, sentiment.
func (p Policy) Evaluate(message string, intent models.Intent, confidence float64, failedAttempts int) models.EscalationDecision {
	lex := p.lexicon()
	tokens := textutil.Tokenize(message)

	metrics := models.EscalationMetrics{
		Complexity:     p.Complexity(message),
		SentimentRatio: p.Sentiment(tokens),
		Urgent:         lex.Urgent.AnyIn(tokens),
	}
	factors := models.EscalationFactors{
		Confidence: confidence < ConfidenceThreshold,
		Complexity: metrics.Complexity > ComplexityThreshold,
		Attempts:   failedAttempts >= AttemptsThreshold,
		Sentiment:  metrics.SentimentRatio < SentimentThreshold,
	}

	d := models.EscalationDecision{
		Reason:   models.ReasonNone,
		Factors:  factors,
		Metrics:  metrics,
		Priority: models.PriorityLow,
	}
	switch {
	case factors.Confidence:
		d.Reason = models.ReasonLowConfidence
	case factors.Complexity:
		d.Reason = models.ReasonHighComplexity
	case factors.Attempts:
		d.Reason = models.ReasonRepeatedFailures
	case factors.Sentiment:
		d.Reason = models.ReasonNegativeSentiment
	}
	d.ShouldEscalate = d.Reason != models.ReasonNone

	switch {
	case factors.Sentiment || metrics.Urgent:
		d.RecommendedChannel = models.ChannelPhone
	case factors.Complexity:
		d.RecommendedChannel = models.ChannelLiveChat
	default:
		d.RecommendedChannel = models.ChannelEmail
	}

	switch {
	case factors.Sentiment || factors.Attempts:
		d.Priority = models.PriorityHigh
	case factors.Complexity:
		d.Priority = models.PriorityMedium
	}
	return d
}

// Complexity returns the weighted composite of length, special-character
// share, technical-term share and question marks, in [0,1].
func (p Policy) Complexity(message string) float64 {
	runes := []rune(message)
	if len(runes) == 0 {
		return 0
	}

	var special, questions int
	for _, r := range runes {
		if r == '?' || r == '؟' {
			questions++
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			special++
		}
	}

	tokens := textutil.Tokenize(message)
	var technical float64
	if len(tokens) > 0 {
		technical = float64(p.lexicon().Technical.CountIn(tokens)) / float64(len(tokens))
	}

	score := lengthWeight*math.Min(float64(len(runes))/lengthNorm, 1) +
		specialWeight*float64(special)/float64(len(runes)) +
		technicalWeight*math.Min(technical, 1) +
		questionWeight*math.Min(float64(questions)/questionNorm, 1)
	return math.Round(score*1000) / 1000
}

// Sentiment returns positive/(positive+negative) hits, or NeutralSentiment with no hits.
func (p Policy) Sentiment(tokens []string) float64 {
	lex := p.lexicon()
	pos := lex.Positive.CountIn(tokens)
	neg := lex.Negative.CountIn(tokens)
	if pos+neg == 0 {
		return NeutralSentiment
	}
	return float64(pos) / float64(pos+neg)
}
