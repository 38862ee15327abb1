package answers

import (
	"strings"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/domain/vocab"
	"github.com/storefront-ai/assistant-service/internal/pkg/textutil"
	"github.com/storefront-ai/assistant-service/internal/services/discovery"
)

const descriptionExcerptLength = 240

// Attribute is a product detail a customer can ask about.
type Attribute string

const (
	AttributeColor    Attribute = "color"
	AttributeSize     Attribute = "size"
	AttributePrice    Attribute = "price"
	AttributeStock    Attribute = "stock"
	AttributeMaterial Attribute = "material"
	AttributeLength   Attribute = "length"
	AttributeLink     Attribute = "link"
)

type attributeCue struct {
	attr  Attribute
	words vocab.WordList
}

// Cues are checked in order; the first attribute mentioned wins.
var attributeCues = []attributeCue{
	{AttributeColor, vocab.WordList{"color", "colors", "colour", "colours", "shade", "shades", "لون", "ألوان", "الألوان", "اللون"}},
	{AttributeSize, vocab.WordList{"size", "sizes", "sizing", "fit", "fits", "مقاس", "مقاسات", "المقاسات", "المقاس"}},
	{AttributePrice, vocab.WordList{"price", "cost", "costs", "how much", "سعر", "سعره", "السعر", "بكم"}},
	{AttributeStock, vocab.WordList{"stock", "available", "availability", "sold out", "متوفر", "متوفرة"}},
	{AttributeMaterial, vocab.WordList{"material", "fabric", "made of", "made from", "قماش", "خامة", "القماش"}},
	{AttributeLength, vocab.WordList{"length", "how long is", "طول", "الطول"}},
	{AttributeLink, vocab.WordList{"link", "url", "buy", "purchase", "order it", "رابط", "الرابط"}},
}

// DetectAttribute returns the first product attribute the message asks about.
func DetectAttribute(message string) (Attribute, bool) {
	tokens := textutil.Tokenize(message)
	for _, c := range attributeCues {
		if c.words.AnyIn(tokens) {
			return c.attr, true
		}
	}
	return "", false
}

var (
	colorOptionNames = []string{"color", "colour", "اللون", "لون"}
	sizeOptionNames  = []string{"size", "المقاس", "مقاس"}
)

// ProductAttribute answers attr for p from its options, variants and copy.
func ProductAttribute(lang string, p *models.Product, attr Attribute, s Store) string {
	switch attr {
	case AttributeColor:
		idx := p.OptionIndex(colorOptionNames...)
		if idx < 0 {
			return Text(lang, KeySingleColor, p.Title)
		}
		values := p.OptionValues(idx, false)
		if len(values) < 2 {
			return Text(lang, KeySingleColor, p.Title)
		}
		return Text(lang, KeyColors, p.Title, join(lang, values))
	case AttributeSize:
		idx := p.OptionIndex(sizeOptionNames...)
		if idx < 0 {
			return Text(lang, KeyOneSize, p.Title)
		}
		values := p.OptionValues(idx, true)
		if len(values) == 0 {
			return Text(lang, KeyOutOfStock, p.Title)
		}
		return Text(lang, KeySizes, p.Title, join(lang, values))
	case AttributePrice:
		lo, hi := p.PriceRange()
		if lo == hi {
			return Text(lang, KeyPrice, p.Title, discovery.FormatPrice(lo, s.Currency))
		}
		return Text(lang, KeyPriceRange, p.Title, discovery.FormatPrice(lo, s.Currency), discovery.FormatPrice(hi, s.Currency))
	case AttributeStock:
		return Availability(lang, p)
	case AttributeMaterial:
		if materials := vocab.Materials.All(productWords(p)); len(materials) > 0 {
			return Text(lang, KeyMaterial, p.Title, join(lang, materials))
		}
		return Describe(lang, p, s)
	case AttributeLength:
		if length, ok := vocab.Lengths.First(productWords(p)); ok {
			return Text(lang, KeyLength, p.Title, length)
		}
		return Describe(lang, p, s)
	default:
		return Text(lang, KeyLink, p.Title, discovery.ProductURL(s.Domain, p.Handle, 0))
	}
}

// Availability reports stock, listing in-stock sizes when the product has a size axis.
func Availability(lang string, p *models.Product) string {
	if !p.InStock() {
		return Text(lang, KeyOutOfStock, p.Title)
	}
	if idx := p.OptionIndex(sizeOptionNames...); idx >= 0 {
		if sizes := p.OptionValues(idx, true); len(sizes) > 0 {
			return Text(lang, KeyInStockSizes, p.Title, join(lang, sizes))
		}
	}
	return Text(lang, KeyInStock, p.Title)
}

// Describe answers with an excerpt of the product copy, or its link when it has none.
func Describe(lang string, p *models.Product, s Store) string {
	body := textutil.StripHTML(p.BodyHTML)
	if body == "" {
		return Text(lang, KeyLink, p.Title, discovery.ProductURL(s.Domain, p.Handle, 0))
	}
	return Text(lang, KeyDescription, p.Title, textutil.Truncate(body, descriptionExcerptLength))
}

func productWords(p *models.Product) []string {
	text := p.Title + " " + strings.Join(p.Tags, " ") + " " + textutil.StripHTML(p.BodyHTML)
	return textutil.Tokenize(text)
}
