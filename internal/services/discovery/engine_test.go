// Package discovery_test provides unit tests for product discovery.
package discovery_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/services/discovery"
)

func colorOption(values ...string) []models.Option {
	return []models.Option{{Name: "Color", Values: values}}
}

func weddingSnapshot() *models.Snapshot {
	return &models.Snapshot{
		Domain:   "shop.example.com",
		Currency: "USD",
		Products: []models.Product{
			{
				ID: 2, Handle: "blue-wedding-gown", Title: "Blue Wedding Gown", Tags: []string{"wedding"},
				Options:  colorOption("Blue"),
				Variants: []models.Variant{{ID: 21, Price: 100, Option1: "Blue"}},
			},
			{
				ID: 1, Handle: "red-lace-wedding-gown", Title: "Red Lace Wedding Gown", Tags: []string{"wedding"},
				Options: colorOption("Red", "Ivory"),
				Variants: []models.Variant{
					{ID: 11, Price: 120, Option1: "Red", ImageID: 101},
					{ID: 12, Price: 110, Option1: "Ivory", ImageID: 102},
				},
				Images: []models.Image{{ID: 102, Src: "https://cdn.example.com/ivory.jpg"}, {ID: 101, Src: "https://cdn.example.com/red.jpg"}},
			},
			{
				ID: 3, Handle: "red-party-dress", Title: "Red Party Dress", Tags: []string{"party", "dress"},
				Options:  colorOption("Red"),
				Variants: []models.Variant{{ID: 31, Price: 90, Option1: "Red"}},
			},
		},
	}
}

func manyDresses(n int, tags ...string) *models.Snapshot {
	snap := &models.Snapshot{Domain: "shop.example.com", Currency: "USD"}
	for i := 0; i < n; i++ {
		snap.Products = append(snap.Products, models.Product{
			ID:       int64(i + 1),
			Handle:   fmt.Sprintf("item-%02d", i),
			Title:    fmt.Sprintf("Item %d", i),
			Tags:     tags,
			Variants: []models.Variant{{ID: int64(1000 + i), Price: 100}},
		})
	}
	return snap
}

func handles(items []discovery.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Handle)
	}
	return out
}

func TestDiscover_RedWeddingScenario(t *testing.T) {
	// Arrange
	engine := discovery.NewEngine(discovery.Config{})

	// Act
	res := engine.Discover(weddingSnapshot(), discovery.Request{Message: "Do you have anything in red for a wedding under $150?"})

	// Assert
	require.True(t, res.Searched)
	assert.Equal(t, "wedding", res.Filter.Theme)
	assert.Equal(t, "red", res.Filter.Color)
	assert.Equal(t, "dress", res.Filter.Category)
	require.NotNil(t, res.Filter.PriceUnder)
	assert.Equal(t, 150.0, *res.Filter.PriceUnder)

	require.Len(t, res.Items, 1)
	top := res.Items[0]
	assert.Equal(t, "red-lace-wedding-gown", top.Handle)
	assert.GreaterOrEqual(t, top.Score, 5)
	assert.Equal(t, int64(11), top.VariantID, "red variant selected")
	assert.Equal(t, 120.0, top.Price)
	assert.Equal(t, "https://cdn.example.com/red.jpg", top.Image)
	assert.NotContains(t, handles(res.Items), "blue-wedding-gown")
	assert.NotContains(t, handles(res.Items), "red-party-dress")
}

func TestDiscover_PriceUsesEligibleVariant(t *testing.T) {
	// Arrange
	snap := &models.Snapshot{Products: []models.Product{
		{Handle: "midi", Title: "Midi Dress", Tags: []string{"dress"}, Variants: []models.Variant{{ID: 1, Price: 95}, {ID: 2, Price: 75}}},
		{Handle: "maxi", Title: "Maxi Dress", Tags: []string{"dress"}, Variants: []models.Variant{{ID: 3, Price: 85}, {ID: 4, Price: 95}}},
	}}
	engine := discovery.NewEngine(discovery.Config{})

	// Act
	res := engine.Discover(snap, discovery.Request{Message: "show me dresses under $80"})

	// Assert
	require.Len(t, res.Items, 1)
	assert.Equal(t, "midi", res.Items[0].Handle)
	assert.Equal(t, 75.0, res.Items[0].Price)
	assert.Equal(t, int64(2), res.Items[0].VariantID)
}

func TestDiscover_PriceBoundAgainstColorVariant(t *testing.T) {
	snap := &models.Snapshot{Products: []models.Product{{
		Handle: "wrap", Title: "Wrap Dress", Tags: []string{"dress"}, Options: colorOption("Black", "Red"),
		Variants: []models.Variant{{ID: 1, Price: 60, Option1: "Black"}, {ID: 2, Price: 140, Option1: "Red"}},
	}}}
	engine := discovery.NewEngine(discovery.Config{})

	res := engine.Discover(snap, discovery.Request{Message: "red dress under $100"})

	assert.Empty(t, res.Items, "the cheap variant is black, not red")
}

func TestDiscover_Limits(t *testing.T) {
	tests := []struct {
		name    string
		snap    *models.Snapshot
		message string
		want    int
	}{
		{name: "themed dresses", snap: manyDresses(40, "wedding", "dress"), message: "show me wedding dresses", want: discovery.BroadLimit},
		{name: "budget dresses", snap: manyDresses(40, "dress"), message: "dresses under $200", want: discovery.BroadLimit},
		{name: "plain dresses", snap: manyDresses(40, "dress"), message: "show me dresses", want: discovery.DefaultLimit},
		{name: "themed bags", snap: manyDresses(40, "wedding", "bag"), message: "wedding bags under $300", want: discovery.DefaultLimit},
	}

	engine := discovery.NewEngine(discovery.Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := engine.Discover(tt.snap, discovery.Request{Message: tt.message})

			assert.Len(t, res.Items, tt.want)
		})
	}
}

func TestDiscover_ExcludeHandles(t *testing.T) {
	// Arrange
	snap := manyDresses(20, "wedding", "dress")
	engine := discovery.NewEngine(discovery.Config{})
	first := engine.Discover(snap, discovery.Request{Message: "wedding dresses"})
	shown := handles(first.Items)

	// Act
	next := engine.Discover(snap, discovery.Request{Stored: &first.Filter, ExcludeHandles: shown})

	// Assert
	assert.Len(t, first.Items, 20)
	for _, h := range handles(next.Items) {
		assert.NotContains(t, shown, h)
	}
	assert.Empty(t, next.Items)
}

func TestDiscover_ReplaysStoredFilterVerbatim(t *testing.T) {
	// Arrange
	under := 150.0
	stored := &models.SearchFilter{Category: "dress", Theme: "wedding", PriceUnder: &under}
	engine := discovery.NewEngine(discovery.Config{})

	// Act
	res := engine.Discover(weddingSnapshot(), discovery.Request{Message: "show me more", Stored: stored, ExcludeHandles: []string{"red-lace-wedding-gown"}})

	// Assert
	assert.Equal(t, *stored, res.Filter)
	assert.Equal(t, []string{"blue-wedding-gown"}, handles(res.Items))
	*res.Filter.PriceUnder = 1
	assert.Equal(t, 150.0, under, "stored filter is not aliased")
}

func TestDiscover_NoSignal(t *testing.T) {
	engine := discovery.NewEngine(discovery.Config{})

	res := engine.Discover(weddingSnapshot(), discovery.Request{Message: "hello there"})

	assert.False(t, res.Searched)
	assert.Empty(t, res.Rendered)
	assert.Empty(t, res.Items)
}

func TestDiscover_Material(t *testing.T) {
	// Arrange
	snap := &models.Snapshot{Products: []models.Product{
		{Handle: "biker", Title: "Biker Jacket", Tags: []string{"jacket"}, BodyHTML: "<p>Genuine <b>leather</b></p>", Variants: []models.Variant{{Price: 200}}},
		{Handle: "trucker", Title: "Trucker Jacket", Tags: []string{"jacket", "denim"}, Variants: []models.Variant{{Price: 90}}},
		{Handle: "leather-tote", Title: "Leather Tote", Tags: []string{"bag", "leather"}, Variants: []models.Variant{{Price: 150}}},
	}}
	engine := discovery.NewEngine(discovery.Config{})

	// Act
	res := engine.Discover(snap, discovery.Request{Message: "looking for a leather jacket"})

	// Assert
	assert.Equal(t, "jacket", res.Filter.Category)
	assert.Equal(t, "leather", res.Filter.Material)
	assert.Equal(t, []string{"biker"}, handles(res.Items))
}

func TestDiscover_AccessoriesRankAccessoryTypesFirst(t *testing.T) {
	snap := &models.Snapshot{Products: []models.Product{
		{Handle: "gift-box", Title: "Gift Box", Tags: []string{"tote"}, Variants: []models.Variant{{Price: 20}}},
		{Handle: "evening-clutch", Title: "Evening Clutch", Tags: []string{"clutch"}, Variants: []models.Variant{{Price: 60}}},
	}}
	engine := discovery.NewEngine(discovery.Config{})

	res := engine.Discover(snap, discovery.Request{Message: "show me clutches"})

	require.Len(t, res.Items, 2)
	assert.Equal(t, "evening-clutch", res.Items[0].Handle)
	assert.Greater(t, res.Items[0].Score, res.Items[1].Score)
}

func TestDiscover_DressFallbackWithoutCategoryTags(t *testing.T) {
	snap := &models.Snapshot{Products: []models.Product{
		{Handle: "a", Title: "Satin Slip", ProductType: "Dresses", Variants: []models.Variant{{Price: 80}}},
		{Handle: "b", Title: "Silk Scarf", ProductType: "Accessories", Variants: []models.Variant{{Price: 30}}},
		{Handle: "c", Title: "Wrap Top", Tags: []string{"top", "jacket"}, Variants: []models.Variant{{Price: 40}}},
	}}
	engine := discovery.NewEngine(discovery.Config{})

	res := engine.Discover(snap, discovery.Request{Message: "show me something"})

	assert.Equal(t, []string{"a"}, handles(res.Items))
}

func TestDiscover_ColorHintWithoutVariants(t *testing.T) {
	snap := &models.Snapshot{Products: []models.Product{
		{Handle: "burgundy-velvet-gown", Title: "Velvet Gown", Tags: []string{"dress"}, Variants: []models.Variant{{Price: 150}}},
		{Handle: "green-gown", Title: "Green Gown", Tags: []string{"dress"}, Variants: []models.Variant{{Price: 150}}},
	}}
	engine := discovery.NewEngine(discovery.Config{})

	res := engine.Discover(snap, discovery.Request{Message: "any red gowns?"})

	require.Len(t, res.Items, 1)
	assert.Equal(t, "burgundy-velvet-gown", res.Items[0].Handle)
}

func TestLimit(t *testing.T) {
	under := 10.0
	assert.Equal(t, discovery.BroadLimit, discovery.Limit(&models.SearchFilter{Theme: "gala"}))
	assert.Equal(t, discovery.BroadLimit, discovery.Limit(&models.SearchFilter{Category: "dress", PriceUnder: &under}))
	assert.Equal(t, discovery.DefaultLimit, discovery.Limit(&models.SearchFilter{Category: "shoes", Theme: "gala"}))
	assert.Equal(t, discovery.DefaultLimit, discovery.Limit(&models.SearchFilter{Category: "dress"}))
}
