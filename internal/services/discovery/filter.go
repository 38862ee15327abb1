package discovery

import (
	"strings"
	"unicode/utf8"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/domain/vocab"
	"github.com/storefront-ai/assistant-service/internal/pkg/textutil"
)

// DefaultMinTagLength is the shortest catalog tag accepted as an inferred theme.
const DefaultMinTagLength = 3

// Extractor turns free text into a SearchFilter.
type Extractor struct {
	// ThemeTagFallbackFirst scans catalog tags before the fixed theme table.
	ThemeTagFallbackFirst bool
	// MinTagLength bounds inferred theme tags. Zero means DefaultMinTagLength.
	MinTagLength int
}

// Extraction is the parsed filter plus the cues that gate a search.
type Extraction struct {
	Filter models.SearchFilter
	// Explicit is set when the message asked to see products.
	Explicit bool
	// InferredTheme is set when the theme came from the catalog tags.
	InferredTheme bool
}

// ShouldSearch reports whether there is enough signal to run a search.
func (e Extraction) ShouldSearch() bool {
	return e.Explicit || e.Filter.HasSignal()
}

// Extract parses message. tags is the catalog tag vocabulary for theme inference.
func (x Extractor) Extract(message string, tags []string) Extraction {
	tokens := textutil.Tokenize(message)
	var out Extraction

	out.Explicit = vocab.DiscoveryVerbs.AnyIn(tokens) || vocab.OutfitVerbs.AnyIn(tokens)
	out.Filter.Category, _ = vocab.Categories.First(tokens)
	out.Filter.Material, _ = vocab.Materials.First(tokens)
	out.Filter.Color, _ = vocab.Colors.First(tokens)
	out.Filter.Theme, out.InferredTheme = x.theme(tokens, tags)

	price := vocab.ParsePrice(message)
	out.Filter.PriceUnder = price.Under
	out.Filter.PriceOver = price.Over
	out.Filter.PriceBetween = price.Between

	if out.Filter.Category == "" && out.ShouldSearch() {
		out.Filter.Category = vocab.CategoryDress
	}
	return out
}

func (x Extractor) theme(tokens []string, tags []string) (string, bool) {
	if x.ThemeTagFallbackFirst {
		if tag := x.longestTag(tokens, tags); tag != "" {
			return tag, true
		}
		theme, _ := vocab.Themes.First(tokens)
		return theme, false
	}
	if theme, ok := vocab.Themes.First(tokens); ok {
		return theme, false
	}
	if tag := x.longestTag(tokens, tags); tag != "" {
		return tag, true
	}
	return "", false
}

// longestTag returns the longest catalog tag present in tokens. Tags that
// name a category, color or material belong to those filters and are skipped.
func (x Extractor) longestTag(tokens []string, tags []string) string {
	minLen := x.MinTagLength
	if minLen == 0 {
		minLen = DefaultMinTagLength
	}
	best := ""
	for _, tag := range tags {
		n := utf8.RuneCountInString(tag)
		if n < minLen || n <= utf8.RuneCountInString(best) {
			continue
		}
		tagTokens := textutil.Tokenize(tag)
		if !textutil.ContainsSequence(tokens, tagTokens) || isFilterWord(tagTokens) {
			continue
		}
		best = tag
	}
	return best
}

func isFilterWord(tagTokens []string) bool {
	tag := strings.Join(tagTokens, " ")
	for _, t := range []vocab.Table{vocab.Categories, vocab.Colors, vocab.Materials} {
		for _, e := range t {
			for _, s := range t.Synonyms(e.Canonical) {
				if textutil.Normalize(s) == tag {
					return true
				}
			}
		}
	}
	return false
}
