package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Price decodes both JSON numbers and the quoted decimal strings Shopify emits.
type Price float64

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*p = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*p = Price(v)
	return nil
}

// Product is a read-only catalog entry.
type Product struct {
	ID          int64     `json:"id"`
	Handle      string    `json:"handle"`
	Title       string    `json:"title"`
	Tags        []string  `json:"tags"`
	ProductType string    `json:"product_type"`
	BodyHTML    string    `json:"body_html"`
	Options     []Option  `json:"options"`
	Variants    []Variant `json:"variants"`
	Images      []Image   `json:"images"`
}

// UnmarshalJSON accepts tags either as a list or as Shopify's comma-separated string.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	aux := struct {
		*alias
		Tags json.RawMessage `json:"tags"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Tags = nil
	if len(aux.Tags) == 0 || string(aux.Tags) == "null" {
		return nil
	}
	var list []string
	if err := json.Unmarshal(aux.Tags, &list); err == nil {
		p.Tags = list
		return nil
	}
	var joined string
	if err := json.Unmarshal(aux.Tags, &joined); err != nil {
		return err
	}
	for _, t := range strings.Split(joined, ",") {
		if t = strings.TrimSpace(t); t != "" {
			p.Tags = append(p.Tags, t)
		}
	}
	return nil
}

// Option is a variant axis such as Color or Size.
type Option struct {
	Name     string   `json:"name"`
	Position int      `json:"position,omitempty"`
	Values   []string `json:"values"`
}

// Variant is one purchasable combination of option values.
type Variant struct {
	ID                  int64  `json:"id"`
	Title               string `json:"title,omitempty"`
	Price               Price  `json:"price"`
	Option1             string `json:"option1,omitempty"`
	Option2             string `json:"option2,omitempty"`
	Option3             string `json:"option3,omitempty"`
	Available           *bool  `json:"available,omitempty"`
	InventoryQuantity   int    `json:"inventory_quantity"`
	InventoryManagement string `json:"inventory_management,omitempty"`
	ImageID             int64  `json:"image_id,omitempty"`
}

// OptionValue returns the value for the zero-based option axis.
func (v Variant) OptionValue(index int) string {
	switch index {
	case 0:
		return v.Option1
	case 1:
		return v.Option2
	case 2:
		return v.Option3
	}
	return ""
}

// InStock reports availability. Untracked inventory counts as in stock.
func (v Variant) InStock() bool {
	if v.Available != nil {
		return *v.Available
	}
	if v.InventoryManagement == "" {
		return true
	}
	return v.InventoryQuantity > 0
}

// Image is a product image.
type Image struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
}

// OptionIndex returns the axis index whose name matches any of names, or -1.
func (p Product) OptionIndex(names ...string) int {
	for i, opt := range p.Options {
		for _, n := range names {
			if strings.EqualFold(strings.TrimSpace(opt.Name), n) {
				return i
			}
		}
	}
	return -1
}

// OptionValues returns the distinct values of an axis across variants, in variant order.
func (p Product) OptionValues(index int, inStockOnly bool) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range p.Variants {
		if inStockOnly && !v.InStock() {
			continue
		}
		val := strings.TrimSpace(v.OptionValue(index))
		if val == "" || seen[strings.ToLower(val)] {
			continue
		}
		seen[strings.ToLower(val)] = true
		out = append(out, val)
	}
	return out
}

// ImageFor returns the variant image, falling back to the first product image.
func (p Product) ImageFor(v *Variant) string {
	if v != nil && v.ImageID != 0 {
		for _, img := range p.Images {
			if img.ID == v.ImageID {
				return img.Src
			}
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].Src
	}
	return ""
}

// PriceRange returns the lowest and highest variant price.
func (p Product) PriceRange() (float64, float64) {
	if len(p.Variants) == 0 {
		return 0, 0
	}
	lo, hi := float64(p.Variants[0].Price), float64(p.Variants[0].Price)
	for _, v := range p.Variants[1:] {
		price := float64(v.Price)
		if price < lo {
			lo = price
		}
		if price > hi {
			hi = price
		}
	}
	return lo, hi
}

// InStock reports whether any variant is purchasable.
func (p Product) InStock() bool {
	for _, v := range p.Variants {
		if v.InStock() {
			return true
		}
	}
	return false
}

// Ref returns the lightweight session pointer for this product.
func (p Product) Ref() ProductRef {
	return ProductRef{ID: p.ID, Handle: p.Handle, Title: p.Title}
}

// Policies holds merchant policy bodies (HTML).
type Policies struct {
	Refund   string `json:"refund,omitempty"`
	Shipping string `json:"shipping,omitempty"`
	Privacy  string `json:"privacy,omitempty"`
	Terms    string `json:"terms,omitempty"`
}

// Get returns the body of the given policy kind.
func (p Policies) Get(kind PolicyKind) string {
	switch kind {
	case PolicyRefund:
		return p.Refund
	case PolicyShipping:
		return p.Shipping
	case PolicyPrivacy:
		return p.Privacy
	case PolicyTerms:
		return p.Terms
	}
	return ""
}

// Page is a merchant content page (FAQ, about, size guide).
type Page struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Handle   string `json:"handle"`
	BodyHTML string `json:"body_html"`
}

// Discount is an active promotion.
type Discount struct {
	Code      string     `json:"code"`
	Title     string     `json:"title,omitempty"`
	Value     string     `json:"value,omitempty"`
	ValueType string     `json:"value_type,omitempty"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
}

// Active reports whether the discount is still valid at now.
func (d Discount) Active(now time.Time) bool {
	return d.EndsAt == nil || d.EndsAt.After(now)
}

// Snapshot is a cached, read-only copy of the merchant catalog.
type Snapshot struct {
	Domain      string     `json:"domain"`
	Currency    string     `json:"currency,omitempty"`
	Products    []Product  `json:"products"`
	Policies    Policies   `json:"policies"`
	Pages       []Page     `json:"pages"`
	Discounts   []Discount `json:"discounts"`
	LastUpdated time.Time  `json:"lastUpdated"`
}

// FindByHandle looks a product up by handle.
func (s *Snapshot) FindByHandle(handle string) (*Product, bool) {
	if s == nil {
		return nil, false
	}
	for i := range s.Products {
		if strings.EqualFold(s.Products[i].Handle, handle) {
			return &s.Products[i], true
		}
	}
	return nil, false
}

// TagVocabulary returns every distinct lowercased tag observed in the catalog.
func (s *Snapshot) TagVocabulary() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]bool)
	var tags []string
	for _, p := range s.Products {
		for _, t := range p.Tags {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			tags = append(tags, t)
		}
	}
	return tags
}
