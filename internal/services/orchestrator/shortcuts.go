package orchestrator

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/domain/vocab"
	"github.com/storefront-ai/assistant-service/internal/pkg/textutil"
	"github.com/storefront-ai/assistant-service/internal/services/answers"
	"github.com/storefront-ai/assistant-service/internal/services/discovery"
	"github.com/storefront-ai/assistant-service/internal/services/tracking"
)

// Shortcut handler names, in chain order.
const (
	ShortcutTracking       = "tracking"
	ShortcutShippingLabel  = "shipping_label"
	ShortcutRepresentative = "representative"
	ShortcutShippingETA    = "shipping_eta"
	ShortcutPolicy         = "policy"
	ShortcutSizing         = "sizing"
	ShortcutNamedProduct   = "named_product"
	ShortcutDiscovery      = "discovery"
	ShortcutDiscount       = "discount"
)

// minNamedTitleTokens keeps one-word titles from matching every message.
const minNamedTitleTokens = 2

type shortcut struct {
	name string
	run  func(o *Orchestrator, ctx context.Context, t *turn) (outcome, bool)
}

// shortcuts run in this order; the first one that answers wins.
var shortcuts = []shortcut{
	{ShortcutTracking, (*Orchestrator).trackingShortcut},
	{ShortcutShippingLabel, (*Orchestrator).labelShortcut},
	{ShortcutRepresentative, (*Orchestrator).representativeShortcut},
	{ShortcutShippingETA, (*Orchestrator).etaShortcut},
	{ShortcutPolicy, (*Orchestrator).policyShortcut},
	{ShortcutSizing, (*Orchestrator).sizingShortcut},
	{ShortcutNamedProduct, (*Orchestrator).namedProductShortcut},
	{ShortcutDiscovery, (*Orchestrator).discoveryShortcut},
	{ShortcutDiscount, (*Orchestrator).discountShortcut},
}

// ShortcutOrder returns the handler names in the order they are tried.
func ShortcutOrder() []string {
	names := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		names = append(names, s.name)
	}
	return names
}

func (o *Orchestrator) shortcut(ctx context.Context, t *turn) (outcome, bool) {
	for _, s := range shortcuts {
		out, ok := s.run(o, ctx, t)
		if ok && out.text != "" {
			out.handler = s.name
			return out, true
		}
	}
	return outcome{}, false
}

func (o *Orchestrator) trackingShortcut(ctx context.Context, t *turn) (outcome, bool) {
	if t.trackingNumber == "" {
		if t.classification.Intent != models.IntentOrderTracking {
			return outcome{}, false
		}
		return outcome{text: answers.Text(t.lang, answers.KeyAskTrackingNumber), intent: models.IntentOrderTracking}, true
	}

	info, err := o.tracking.TrackByNumber(ctx, t.trackingNumber, tracking.DetectCarrier(t.trackingNumber))
	out := outcome{intent: models.IntentOrderTracking, trackingNumber: t.trackingNumber}
	if err != nil {
		log.Warn().Err(err).Str("session_id", t.session.ID).Str("collaborator", "tracking").Msg("tracking lookup failed")
		out.failed = true
	}
	if info.Number == "" {
		info = tracking.Degraded(t.trackingNumber, "")
	}
	out.text = answers.Tracking(t.lang, info)
	return out, true
}

func (o *Orchestrator) labelShortcut(_ context.Context, t *turn) (outcome, bool) {
	if t.classification.Intent != models.IntentShippingLabel {
		return outcome{}, false
	}
	return outcome{text: answers.ShippingLabel(t.lang, t.store), intent: models.IntentShippingLabel}, true
}

func (o *Orchestrator) representativeShortcut(_ context.Context, t *turn) (outcome, bool) {
	if t.classification.Intent != models.IntentRepresentativeRequest {
		return outcome{}, false
	}
	return outcome{text: answers.Representative(t.lang, t.store), intent: models.IntentRepresentativeRequest}, true
}

func (o *Orchestrator) etaShortcut(_ context.Context, t *turn) (outcome, bool) {
	if t.classification.Intent != models.IntentShippingInfo {
		return outcome{}, false
	}
	return outcome{text: answers.ShippingETA(t.lang, t.store), intent: models.IntentShippingInfo}, true
}

var policyCues = []struct {
	kind  models.PolicyKind
	words vocab.WordList
}{
	{models.PolicyPrivacy, vocab.WordList{"privacy", "personal data", "الخصوصية"}},
	{models.PolicyTerms, vocab.WordList{"terms of service", "terms and conditions", "terms of use", "الشروط والأحكام"}},
	{models.PolicyShipping, vocab.WordList{"shipping policy", "delivery policy", "سياسة الشحن"}},
	{models.PolicyRefund, vocab.WordList{"refund policy", "return policy", "returns policy", "سياسة الإرجاع"}},
}

func (o *Orchestrator) policyShortcut(_ context.Context, t *turn) (outcome, bool) {
	kind, ok := policyKind(t.message)
	switch {
	case ok:
	case t.classification.Intent == models.IntentReturnExchange:
		kind = models.PolicyRefund
	default:
		return outcome{}, false
	}
	return outcome{
		text:        answers.Policy(t.lang, t.snapshot, kind, t.store),
		intent:      models.IntentReturnExchange,
		policyKind:  kind,
		readCatalog: true,
	}, true
}

// policyKind finds an explicitly named policy document.
func policyKind(message string) (models.PolicyKind, bool) {
	tokens := textutil.Tokenize(message)
	for _, c := range policyCues {
		if c.words.AnyIn(tokens) {
			return c.kind, true
		}
	}
	return "", false
}

func (o *Orchestrator) sizingShortcut(_ context.Context, t *turn) (outcome, bool) {
	if t.classification.Intent != models.IntentSizeHelp {
		return outcome{}, false
	}
	return outcome{text: answers.SizeAdvice(t.lang, t.session.Context.Preferences), intent: models.IntentSizeHelp}, true
}

func (o *Orchestrator) namedProductShortcut(_ context.Context, t *turn) (outcome, bool) {
	p := findNamedProduct(t.snapshot, t.message)
	if p == nil {
		return outcome{}, false
	}
	return outcome{
		text:        answers.Availability(t.lang, p),
		intent:      models.IntentProductInquiry,
		recommended: []models.ProductRef{p.Ref()},
		readCatalog: true,
	}, true
}

// findNamedProduct returns the product whose title appears in message,
// preferring the longest title.
func findNamedProduct(snap *models.Snapshot, message string) *models.Product {
	if snap == nil {
		return nil
	}
	tokens := textutil.Tokenize(message)
	var (
		best    *models.Product
		bestLen int
	)
	for i := range snap.Products {
		title := textutil.Tokenize(snap.Products[i].Title)
		if len(title) < minNamedTitleTokens || len(title) <= bestLen {
			continue
		}
		if textutil.ContainsSequence(tokens, title) {
			best, bestLen = &snap.Products[i], len(title)
		}
	}
	return best
}

func (o *Orchestrator) discoveryShortcut(_ context.Context, t *turn) (outcome, bool) {
	switch t.classification.Intent {
	case models.IntentProductInquiry, models.IntentGeneralHelp:
	default:
		return outcome{}, false
	}
	if !o.discovery.Extract(t.message, t.snapshot).ShouldSearch() {
		return outcome{}, false
	}
	if t.catalogErr != nil {
		return outcome{text: answers.Text(t.lang, answers.KeyGenericError), intent: models.IntentProductInquiry, readCatalog: true}, true
	}

	res := o.discovery.Discover(t.snapshot, discovery.Request{Message: t.message, Lang: t.lang})
	return withResults(outcome{text: res.Rendered, intent: models.IntentProductInquiry}, res, false), true
}

var discountCues = vocab.WordList{
	"discount", "discounts", "promo", "promo code", "coupon", "coupons", "voucher", "sale", "offer", "offers",
	"خصم", "خصومات", "كوبون", "عرض", "عروض",
}

func (o *Orchestrator) discountShortcut(_ context.Context, t *turn) (outcome, bool) {
	if !discountCues.AnyIn(textutil.Tokenize(t.message)) {
		return outcome{}, false
	}
	return outcome{text: answers.Discounts(t.lang, t.snapshot.Discounts, o.now()), readCatalog: true}, true
}
