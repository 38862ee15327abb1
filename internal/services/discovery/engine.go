// Package discovery interprets product requests into filters and ranks the
// catalog snapshot against them.
package discovery

import (
	"sort"
	"strings"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/domain/vocab"
)

// Result size limits.
const (
	BroadLimit   = 30
	DefaultLimit = 12

	strongScore  = 5
	relaxedScore = 1
	minStrong    = 2
)

// Config tunes the engine.
type Config struct {
	ThemeTagFallbackFirst bool
	MinTagLength          int
}

// Engine runs product discovery.
type Engine struct {
	extractor Extractor
}

// NewEngine creates a discovery engine.
func NewEngine(cfg Config) *Engine {
	return &Engine{extractor: Extractor{
		ThemeTagFallbackFirst: cfg.ThemeTagFallbackFirst,
		MinTagLength:          cfg.MinTagLength,
	}}
}

// Request is one discovery call. When Stored is set it is replayed verbatim
// and Message is not parsed.
type Request struct {
	Message        string
	Stored         *models.SearchFilter
	Lang           string
	ExcludeHandles []string
}

// Item is one ranked product, with the variant selected for display.
type Item struct {
	ProductID int64   `json:"productId"`
	VariantID int64   `json:"variantId,omitempty"`
	Handle    string  `json:"handle"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency,omitempty"`
	Image     string  `json:"image,omitempty"`
	URL       string  `json:"url"`
	Score     int     `json:"score"`
}

// Ref returns the session pointer for the item.
func (i Item) Ref() models.ProductRef {
	return models.ProductRef{ID: i.ProductID, Handle: i.Handle, Title: i.Title}
}

// Result is the outcome of a discovery call. Searched is false when the
// message carried no product signal; Rendered is then empty.
type Result struct {
	Filter   models.SearchFilter
	Searched bool
	Items    []Item
	Rendered string
}

// Refs returns the session pointers of all items.
func (r Result) Refs() []models.ProductRef {
	refs := make([]models.ProductRef, 0, len(r.Items))
	for _, it := range r.Items {
		refs = append(refs, it.Ref())
	}
	return refs
}

// Extract exposes filter extraction for callers that only need the filter.
func (e *Engine) Extract(message string, snap *models.Snapshot) Extraction {
	return e.extractor.Extract(message, snap.TagVocabulary())
}

// Discover filters and ranks snap against the request.
func (e *Engine) Discover(snap *models.Snapshot, req Request) Result {
	var filter models.SearchFilter
	if req.Stored != nil {
		filter = *req.Stored.Clone()
	} else {
		ext := e.Extract(req.Message, snap)
		if !ext.ShouldSearch() {
			return Result{}
		}
		filter = ext.Filter
	}

	res := Result{Filter: filter, Searched: true}
	if snap != nil {
		res.Items = rank(snap, &filter, req.ExcludeHandles)
	}
	res.Rendered = Render(res, req.Lang)
	return res
}

func rank(snap *models.Snapshot, f *models.SearchFilter, exclude []string) []Item {
	excluded := make(map[string]bool, len(exclude))
	for _, h := range exclude {
		excluded[strings.ToLower(h)] = true
	}

	var candidates []candidate
	for i := range snap.Products {
		p := &snap.Products[i]
		if excluded[strings.ToLower(p.Handle)] {
			continue
		}
		if c, ok := evaluate(p, f); ok {
			c.order = i
			candidates = append(candidates, c)
		}
	}

	if f.Theme != "" && f.Color != "" {
		candidates = band(candidates)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if limit := Limit(f); len(candidates) > limit {
		candidates = candidates[:limit]
	}

	items := make([]Item, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, toItem(snap, c))
	}
	return items
}

// band keeps results that hit both theme and color, relaxing to any
// positive score when fewer than two do.
func band(candidates []candidate) []candidate {
	strong := keepAtLeast(candidates, strongScore)
	if len(strong) >= minStrong {
		return strong
	}
	return keepAtLeast(candidates, relaxedScore)
}

func keepAtLeast(candidates []candidate, min int) []candidate {
	var out []candidate
	for _, c := range candidates {
		if c.score >= min {
			out = append(out, c)
		}
	}
	return out
}

// Limit returns the result cap for a filter: broad browses (theme or budget)
// of dresses get BroadLimit, everything else DefaultLimit.
func Limit(f *models.SearchFilter) int {
	if f.Category != vocab.CategoryDress && f.Category != "" {
		return DefaultLimit
	}
	if f.Theme != "" || f.HasPriceBound() {
		return BroadLimit
	}
	return DefaultLimit
}

func toItem(snap *models.Snapshot, c candidate) Item {
	p := c.product
	it := Item{
		ProductID: p.ID,
		Handle:    p.Handle,
		Title:     p.Title,
		Currency:  snap.Currency,
		Image:     p.ImageFor(c.variant),
		Score:     c.score,
	}
	if c.variant != nil {
		it.VariantID = c.variant.ID
		it.Price = float64(c.variant.Price)
	}
	it.URL = ProductURL(snap.Domain, p.Handle, it.VariantID)
	return it
}
