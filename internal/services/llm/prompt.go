package llm

import (
	"fmt"
	"strings"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/pkg/textutil"
)

const (
	// MaxHistoryTurns is how many stored messages are replayed to the model.
	MaxHistoryTurns = 20

	maxPromptProducts = 15
	maxPolicyChars    = 400
)

const basePrompt = `You are the shopping assistant of %s (%s).

Your role:
- Help customers find products, understand sizing, shipping, returns and store policies.
- Only state facts present in the store data below. If something is not there, say you are not sure and offer to connect the customer with the team.
- Keep answers short: 2 to 5 sentences.

Formatting rules:
- Do NOT enumerate product names, prices or links in prose. Product results are shown to the customer as a visual grid by the widget.
- Never invent discount codes, tracking numbers or order details.
`

// StoreInfo is the merchant data included in every prompt.
type StoreInfo struct {
	Name                      string
	Domain                    string
	Currency                  string
	SupportEmail              string
	DomesticShippingDays      string
	InternationalShippingDays string
}

// PromptInput is everything the system prompt is built from.
type PromptInput struct {
	Language string
	Store    StoreInfo
	Snapshot *models.Snapshot
	Context  models.SessionContext
	Intent   models.Intent
}

// BuildSystemPrompt assembles the system prompt: role, language, store data,
// conversation summary and the classified intent.
func BuildSystemPrompt(in PromptInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, basePrompt, in.Store.Name, in.Store.Domain)

	b.WriteString("\nLanguage: ")
	if in.Language == "ar" {
		b.WriteString("Reply in Arabic.\n")
	} else {
		b.WriteString("Reply in English.\n")
	}

	b.WriteString("\nStore data:\n")
	if in.Store.Currency != "" {
		fmt.Fprintf(&b, "- Currency: %s\n", in.Store.Currency)
	}
	if in.Store.DomesticShippingDays != "" {
		fmt.Fprintf(&b, "- Domestic shipping: %s business days\n", in.Store.DomesticShippingDays)
	}
	if in.Store.InternationalShippingDays != "" {
		fmt.Fprintf(&b, "- International shipping: %s business days\n", in.Store.InternationalShippingDays)
	}
	if in.Store.SupportEmail != "" {
		fmt.Fprintf(&b, "- Support email: %s\n", in.Store.SupportEmail)
	}
	writeCatalog(&b, in.Snapshot)

	if summary := SummarizeContext(in.Context); summary != "" {
		b.WriteString("\nConversation summary:\n")
		b.WriteString(summary)
	}
	if in.Intent != "" {
		fmt.Fprintf(&b, "\nDetected intent: %s\n", in.Intent)
	}
	return b.String()
}

func writeCatalog(b *strings.Builder, snap *models.Snapshot) {
	if snap == nil {
		return
	}
	if n := len(snap.Products); n > 0 {
		fmt.Fprintf(b, "- Catalog (%d products, sample for your reference only):\n", n)
		for i, p := range snap.Products {
			if i == maxPromptProducts {
				break
			}
			lo, hi := p.PriceRange()
			if lo == hi {
				fmt.Fprintf(b, "  * %s (%.2f)\n", p.Title, lo)
			} else {
				fmt.Fprintf(b, "  * %s (%.2f-%.2f)\n", p.Title, lo, hi)
			}
		}
	}
	for _, kind := range []models.PolicyKind{models.PolicyRefund, models.PolicyShipping, models.PolicyPrivacy} {
		if body := textutil.StripHTML(snap.Policies.Get(kind)); body != "" {
			fmt.Fprintf(b, "- %s policy: %s\n", kind, textutil.Truncate(body, maxPolicyChars))
		}
	}
}

// SummarizeContext renders the session anchors as a few bullet lines.
func SummarizeContext(c models.SessionContext) string {
	var b strings.Builder
	if c.CurrentIntent != "" {
		fmt.Fprintf(&b, "- Previous topic: %s\n", c.CurrentIntent)
	}
	if n := len(c.LastRecommendations); n > 0 {
		titles := make([]string, 0, n)
		for _, r := range c.LastRecommendations {
			titles = append(titles, r.Title)
		}
		fmt.Fprintf(&b, "- Products already shown: %s\n", strings.Join(titles, "; "))
	}
	p := c.Preferences
	if p.Size != "" {
		fmt.Fprintf(&b, "- Size: %s\n", p.Size)
	}
	if len(p.Measurements) > 0 {
		parts := make([]string, 0, len(p.Measurements))
		for _, name := range []string{"bust", "waist", "hips", "height", "weight"} {
			if m, ok := p.Measurements[name]; ok {
				parts = append(parts, fmt.Sprintf("%s %g%s", name, m.Value, m.Unit))
			}
		}
		fmt.Fprintf(&b, "- Measurements: %s\n", strings.Join(parts, ", "))
	}
	if len(p.Colors) > 0 {
		fmt.Fprintf(&b, "- Preferred colors: %s\n", strings.Join(p.Colors, ", "))
	}
	if len(p.Styles) > 0 {
		fmt.Fprintf(&b, "- Styles: %s\n", strings.Join(p.Styles, ", "))
	}
	if len(p.Occasions) > 0 {
		fmt.Fprintf(&b, "- Occasions: %s\n", strings.Join(p.Occasions, ", "))
	}
	if p.Budget != nil {
		switch {
		case p.Budget.Min > 0 && p.Budget.Max > 0:
			fmt.Fprintf(&b, "- Budget: %g-%g\n", p.Budget.Min, p.Budget.Max)
		case p.Budget.Max > 0:
			fmt.Fprintf(&b, "- Budget: under %g\n", p.Budget.Max)
		case p.Budget.Min > 0:
			fmt.Fprintf(&b, "- Budget: over %g\n", p.Budget.Min)
		}
	}
	return b.String()
}

// PrepareHistory converts the most recent MaxHistoryTurns messages into
// model turns with markup stripped. Messages that are empty after stripping
// are skipped.
func PrepareHistory(messages []models.Message) []Turn {
	if len(messages) > MaxHistoryTurns {
		messages = messages[len(messages)-MaxHistoryTurns:]
	}
	turns := make([]Turn, 0, len(messages))
	for _, m := range messages {
		content := textutil.StripHTML(m.Content)
		if content == "" {
			continue
		}
		role := RoleAssistant
		if m.IsUser {
			role = RoleUser
		}
		turns = append(turns, Turn{Role: role, Content: content})
	}
	return turns
}
