package discovery

import (
	"strings"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/domain/vocab"
	"github.com/storefront-ai/assistant-service/internal/pkg/textutil"
)

// Score contributions.
const (
	scoreTheme          = 3
	scoreColorVariant   = 3
	scoreColorHint      = 1
	scoreAccessory      = 2
	penaltyNotAccessory = -1
	scoreDressTag       = 1
)

var colorOptionNames = []string{"color", "colour", "اللون", "لون"}

// candidate is a product that passed every hard filter.
type candidate struct {
	product *models.Product
	variant *models.Variant
	score   int
	order   int
}

// evaluate applies the hard filters in order theme, category, material,
// price, color and scores the survivors. ok is false when any filter fails.
func evaluate(p *models.Product, f *models.SearchFilter) (candidate, bool) {
	c := candidate{product: p}

	if f.Theme != "" {
		if !matchesTheme(p, f.Theme) {
			return c, false
		}
		c.score += scoreTheme
	}
	if f.Category != "" && !matchesCategory(p, f.Category) {
		return c, false
	}
	if f.Material != "" && !matchesMaterial(p, f.Material) {
		return c, false
	}

	eligible, colorResolved := eligibleVariants(p, f.Color)
	if f.Color != "" && !colorResolved && !hasColorHint(p, f.Color) {
		return c, false
	}
	c.variant = cheapest(eligible)
	if f.HasPriceBound() {
		if c.variant == nil || !f.PriceAllowed(float64(c.variant.Price)) {
			return c, false
		}
	}

	if f.Color != "" {
		if colorResolved {
			c.score += scoreColorVariant
		} else {
			c.score += scoreColorHint
		}
	}
	if vocab.AccessoryCategories[f.Category] {
		if vocab.AccessoryKeywords.AnyIn(productTokens(p)) {
			c.score += scoreAccessory
		} else {
			c.score += penaltyNotAccessory
		}
	} else if tagsContain(p, vocab.DressKeywords) {
		c.score += scoreDressTag
	}
	return c, true
}

// matchesTheme accepts a tag equal to the theme, a slug or spaced variant of
// it, a tag that contains it on word boundaries, or a theme synonym.
func matchesTheme(p *models.Product, theme string) bool {
	themeSlug := textutil.Slug(theme)
	needles := [][]string{textutil.Tokenize(theme)}
	for _, s := range vocab.Themes.Synonyms(theme) {
		needles = append(needles, textutil.Tokenize(s))
	}
	for _, tag := range p.Tags {
		if textutil.Slug(tag) == themeSlug {
			return true
		}
		tagTokens := textutil.Tokenize(tag)
		for _, n := range needles {
			if textutil.ContainsSequence(tagTokens, n) {
				return true
			}
		}
	}
	return false
}

// matchesCategory is tag based. Products carrying no category tag at all
// fall back to product type and title.
func matchesCategory(p *models.Product, category string) bool {
	tagged := false
	for _, tag := range p.Tags {
		tokens := textutil.Tokenize(tag)
		if got, ok := vocab.Categories.First(tokens); ok {
			tagged = true
			if got == category || vocab.Categories.MatchesText(tag, category) {
				return true
			}
		}
	}
	if tagged {
		return false
	}
	if vocab.Categories.MatchesText(p.ProductType, category) || vocab.Categories.MatchesText(p.Title, category) {
		return true
	}
	if category == vocab.CategoryDress {
		text := textutil.Tokenize(p.ProductType + " " + p.Title)
		return vocab.DressKeywords.AnyIn(text)
	}
	return false
}

func matchesMaterial(p *models.Product, material string) bool {
	for _, tag := range p.Tags {
		if vocab.Materials.MatchesText(tag, material) {
			return true
		}
	}
	text := p.Title + " " + p.Handle + " " + textutil.StripHTML(p.BodyHTML)
	return vocab.Materials.MatchesText(text, material)
}

// eligibleVariants returns the variants price and image are read from. With
// a color requested and at least one matching color variant, only those are
// eligible and resolved is true. In-stock variants are preferred.
func eligibleVariants(p *models.Product, color string) ([]models.Variant, bool) {
	variants := p.Variants
	resolved := false
	if color != "" {
		if matched := colorVariants(p, color); len(matched) > 0 {
			variants = matched
			resolved = true
		}
	}
	var inStock []models.Variant
	for _, v := range variants {
		if v.InStock() {
			inStock = append(inStock, v)
		}
	}
	if len(inStock) > 0 {
		return inStock, resolved
	}
	return variants, resolved
}

func colorVariants(p *models.Product, color string) []models.Variant {
	idx := p.OptionIndex(colorOptionNames...)
	var out []models.Variant
	for _, v := range p.Variants {
		value := v.Title
		if idx >= 0 {
			value = v.OptionValue(idx)
		}
		if value != "" && vocab.Colors.MatchesText(value, color) {
			out = append(out, v)
		}
	}
	return out
}

func hasColorHint(p *models.Product, color string) bool {
	text := p.Title + " " + p.Handle + " " + strings.Join(p.Tags, " ")
	return vocab.Colors.MatchesText(text, color)
}

func cheapest(variants []models.Variant) *models.Variant {
	var best *models.Variant
	for i := range variants {
		if best == nil || variants[i].Price < best.Price {
			best = &variants[i]
		}
	}
	return best
}

func tagsContain(p *models.Product, words vocab.WordList) bool {
	for _, tag := range p.Tags {
		if words.AnyIn(textutil.Tokenize(tag)) {
			return true
		}
	}
	return false
}

func productTokens(p *models.Product) []string {
	return textutil.Tokenize(strings.Join(p.Tags, " ") + " " + p.ProductType + " " + p.Title)
}
