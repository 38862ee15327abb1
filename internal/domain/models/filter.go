package models

// SearchFilter is the structured interpretation of a product discovery request.
type SearchFilter struct {
	Category     string      `json:"category,omitempty"`
	Material     string      `json:"material,omitempty"`
	Theme        string      `json:"theme,omitempty"`
	Color        string      `json:"color,omitempty"`
	PriceUnder   *float64    `json:"priceUnder,omitempty"`
	PriceOver    *float64    `json:"priceOver,omitempty"`
	PriceBetween *[2]float64 `json:"priceBetween,omitempty"`
}

// HasSignal reports whether any criterion was extracted.
func (f SearchFilter) HasSignal() bool {
	return f.Category != "" || f.Material != "" || f.Theme != "" || f.Color != "" || f.HasPriceBound()
}

// HasPriceBound reports whether a budget constraint is set.
func (f SearchFilter) HasPriceBound() bool {
	return f.PriceUnder != nil || f.PriceOver != nil || f.PriceBetween != nil
}

// PriceAllowed reports whether price satisfies the budget constraint.
func (f SearchFilter) PriceAllowed(price float64) bool {
	switch {
	case f.PriceBetween != nil:
		return price >= f.PriceBetween[0] && price <= f.PriceBetween[1]
	case f.PriceUnder != nil:
		return price <= *f.PriceUnder
	case f.PriceOver != nil:
		return price >= *f.PriceOver
	}
	return true
}

// Clone returns a deep copy of f, or nil when f is nil.
func (f *SearchFilter) Clone() *SearchFilter {
	if f == nil {
		return nil
	}
	out := *f
	if f.PriceUnder != nil {
		v := *f.PriceUnder
		out.PriceUnder = &v
	}
	if f.PriceOver != nil {
		v := *f.PriceOver
		out.PriceOver = &v
	}
	if f.PriceBetween != nil {
		v := *f.PriceBetween
		out.PriceBetween = &v
	}
	return &out
}
