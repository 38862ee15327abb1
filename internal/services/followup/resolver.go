package followup

import (
	"fmt"
	"strings"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/pkg/textutil"
	"github.com/storefront-ai/assistant-service/internal/services/answers"
	"github.com/storefront-ai/assistant-service/internal/services/discovery"
)

// MaxCandidates bounds the numbered list of a disambiguation question.
const MaxCandidates = 5

// Kind tells the caller how an answer was produced.
type Kind string

const (
	KindReplay       Kind = "replay"
	KindAttribute    Kind = "attribute"
	KindDisambiguate Kind = "disambiguate"
	KindRouted       Kind = "routed"
)

// Request is a follow-up message with the anchors it may refer to.
type Request struct {
	Message string
	// PreviousMessage is the customer's prior message. A bare number reply
	// to a disambiguation question reuses its attribute.
	PreviousMessage string
	Lang            string
	Context         models.SessionContext
	Snapshot        *models.Snapshot
}

// Answer is a resolved follow-up.
type Answer struct {
	Kind   Kind
	Text   string
	Intent models.Intent
	// Product is set when the answer is about one recommended product.
	Product *models.ProductRef
	// Discovery is set for replayed searches.
	Discovery *discovery.Result
	// ReadCatalog is set when the answer was built from the snapshot.
	ReadCatalog bool
}

// Resolver answers follow-ups from the session anchors.
type Resolver struct {
	engine *discovery.Engine
	store  answers.Store
}

// NewResolver creates a resolver. engine replays stored searches.
func NewResolver(engine *discovery.Engine, store answers.Store) *Resolver {
	return &Resolver{engine: engine, store: store}
}

// Resolve answers req from the anchors. It reports false when nothing in the
// session can answer it and the caller should fall back to the LLM.
func (r *Resolver) Resolve(req Request) (Answer, bool) {
	tokens := textutil.Tokenize(req.Message)
	attr, hasAttr := answers.DetectAttribute(req.Message)
	recs := req.Context.LastRecommendations

	_, pointed := ordinal(req.Message, tokens)

	if !hasAttr && !pointed && wantsMore(tokens) && req.Context.LastSearchContext != nil && r.engine != nil {
		res := r.engine.Discover(req.Snapshot, discovery.Request{
			Stored:         req.Context.LastSearchContext,
			Lang:           req.Lang,
			ExcludeHandles: shown(req.Context),
		})
		return Answer{Kind: KindReplay, Text: res.Rendered, Intent: models.IntentProductInquiry, Discovery: &res, ReadCatalog: true}, true
	}

	if !hasAttr && pointed && len(recs) > 0 {
		if attr, hasAttr = answers.DetectAttribute(req.PreviousMessage); !hasAttr {
			return r.attribute(req, tokens, ""), true
		}
	}

	if hasAttr && len(recs) > 0 {
		return r.attribute(req, tokens, attr), true
	}

	return r.route(req)
}

func (r *Resolver) attribute(req Request, tokens []string, attr answers.Attribute) Answer {
	recs := req.Context.LastRecommendations
	ref, ok := target(req.Message, tokens, recs)
	if !ok {
		return Answer{Kind: KindDisambiguate, Text: disambiguation(req.Lang, recs), Intent: models.IntentProductInquiry}
	}

	ans := Answer{Kind: KindAttribute, Intent: models.IntentProductInquiry, Product: &ref, ReadCatalog: true}
	p, found := req.Snapshot.FindByHandle(ref.Handle)
	if !found {
		ans.Text = answers.Text(req.Lang, answers.KeyProductGone, ref.Title)
		return ans
	}
	if attr == "" {
		ans.Text = answers.Describe(req.Lang, p, r.store)
		return ans
	}
	ans.Text = answers.ProductAttribute(req.Lang, p, attr, r.store)
	return ans
}

// route re-serves the topic of the previous turn.
func (r *Resolver) route(req Request) (Answer, bool) {
	c := req.Context
	var (
		text string
		read bool
	)
	switch c.CurrentIntent {
	case models.IntentShippingInfo:
		text = answers.ShippingETA(req.Lang, r.store)
	case models.IntentReturnExchange:
		kind := c.LastPolicyKind
		if kind == "" {
			kind = models.PolicyRefund
		}
		text = answers.Policy(req.Lang, req.Snapshot, kind, r.store)
		read = true
	case models.IntentSizeHelp:
		text = answers.SizeAdvice(req.Lang, c.Preferences)
	case models.IntentOrderTracking:
		text = answers.Text(req.Lang, answers.KeyAskTrackingNumber)
	case models.IntentShippingLabel:
		text = answers.ShippingLabel(req.Lang, r.store)
	default:
		return Answer{}, false
	}
	return Answer{Kind: KindRouted, Text: text, Intent: c.CurrentIntent, ReadCatalog: read}, true
}

// target picks the referenced product: explicit ordinal, then a title match,
// then the only candidate.
func target(message string, tokens []string, recs []models.ProductRef) (models.ProductRef, bool) {
	if idx, ok := ordinal(message, tokens); ok {
		if idx < 0 {
			idx = len(recs) - 1
		}
		if idx < len(recs) {
			return recs[idx], true
		}
		return models.ProductRef{}, false
	}
	if ref, ok := byTitle(tokens, recs); ok {
		return ref, true
	}
	if len(recs) == 1 {
		return recs[0], true
	}
	return models.ProductRef{}, false
}

// byTitle matches on title words no other candidate shares. A tie is no match.
func byTitle(tokens []string, recs []models.ProductRef) (models.ProductRef, bool) {
	counts := make(map[string]int)
	titles := make([][]string, len(recs))
	for i, ref := range recs {
		seen := make(map[string]bool)
		for _, tok := range textutil.Tokenize(ref.Title) {
			if len([]rune(tok)) < 3 || seen[tok] {
				continue
			}
			seen[tok] = true
			titles[i] = append(titles[i], tok)
			counts[tok]++
		}
	}

	message := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		message[tok] = true
	}

	best, bestScore, tie := -1, 0, false
	for i, words := range titles {
		score := 0
		for _, w := range words {
			if counts[w] == 1 && message[w] {
				score++
			}
		}
		switch {
		case score > bestScore:
			best, bestScore, tie = i, score, false
		case score == bestScore && score > 0:
			tie = true
		}
	}
	if best < 0 || tie {
		return models.ProductRef{}, false
	}
	return recs[best], true
}

func disambiguation(lang string, recs []models.ProductRef) string {
	var b strings.Builder
	b.WriteString(answers.Text(lang, answers.KeyDisambiguate))
	for i, ref := range recs {
		if i == MaxCandidates {
			break
		}
		fmt.Fprintf(&b, "\n%d. %s", i+1, ref.Title)
	}
	return b.String()
}

// shown returns every handle already put in front of the customer for the
// stored search, including the remembered recommendations.
func shown(c models.SessionContext) []string {
	out := make([]string, 0, len(c.ShownHandles)+len(c.LastRecommendations))
	out = append(out, c.ShownHandles...)
	for _, ref := range c.LastRecommendations {
		out = append(out, ref.Handle)
	}
	return out
}
