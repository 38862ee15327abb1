package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

const (
	defaultAPIVersion = "2024-01"
	defaultTimeout    = 15 * time.Second
	pageLimit         = 250
	maxPages          = 20
)

var nextLinkPattern = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// ShopifyConfig holds the configuration for the Shopify Admin source.
type ShopifyConfig struct {
	Domain      string
	AccessToken string
	APIVersion  string
	Timeout     time.Duration
	// BaseURL overrides https://<Domain>. Used by tests.
	BaseURL string
}

// ShopifySource reads the catalog from the Shopify Admin REST API.
type ShopifySource struct {
	baseURL     string
	apiVersion  string
	accessToken string
	httpClient  *http.Client
}

// NewShopifySource creates a new Shopify source.
func NewShopifySource(cfg *ShopifyConfig) (*ShopifySource, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Domain == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("shop domain is required")
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://" + cfg.Domain
	}
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &ShopifySource{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		apiVersion:  apiVersion,
		accessToken: cfg.AccessToken,
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

// FetchProducts pages through products.json following the Link header.
func (s *ShopifySource) FetchProducts(ctx context.Context) ([]models.Product, error) {
	url := s.endpoint(fmt.Sprintf("products.json?limit=%d", pageLimit))
	var products []models.Product
	for page := 0; url != "" && page < maxPages; page++ {
		var body struct {
			Products []models.Product `json:"products"`
		}
		next, err := s.get(ctx, url, &body)
		if err != nil {
			return nil, err
		}
		products = append(products, body.Products...)
		url = next
	}
	return products, nil
}

// FetchPolicies maps the shop policies onto the known kinds by handle.
func (s *ShopifySource) FetchPolicies(ctx context.Context) (models.Policies, error) {
	var body struct {
		Policies []struct {
			Title  string `json:"title"`
			Handle string `json:"handle"`
			Body   string `json:"body"`
		} `json:"policies"`
	}
	if _, err := s.get(ctx, s.endpoint("policies.json"), &body); err != nil {
		return models.Policies{}, err
	}

	var out models.Policies
	for _, p := range body.Policies {
		key := strings.ToLower(p.Handle + " " + p.Title)
		switch {
		case strings.Contains(key, "refund") || strings.Contains(key, "return"):
			out.Refund = p.Body
		case strings.Contains(key, "shipping"):
			out.Shipping = p.Body
		case strings.Contains(key, "privacy"):
			out.Privacy = p.Body
		case strings.Contains(key, "terms"):
			out.Terms = p.Body
		}
	}
	return out, nil
}

// FetchPages returns the published content pages.
func (s *ShopifySource) FetchPages(ctx context.Context) ([]models.Page, error) {
	var body struct {
		Pages []models.Page `json:"pages"`
	}
	if _, err := s.get(ctx, s.endpoint(fmt.Sprintf("pages.json?limit=%d", pageLimit)), &body); err != nil {
		return nil, err
	}
	return body.Pages, nil
}

// FetchDiscounts reads price rules. The rule title is the customer-facing code.
func (s *ShopifySource) FetchDiscounts(ctx context.Context) ([]models.Discount, error) {
	var body struct {
		PriceRules []struct {
			Title     string     `json:"title"`
			Value     string     `json:"value"`
			ValueType string     `json:"value_type"`
			EndsAt    *time.Time `json:"ends_at"`
		} `json:"price_rules"`
	}
	if _, err := s.get(ctx, s.endpoint(fmt.Sprintf("price_rules.json?limit=%d", pageLimit)), &body); err != nil {
		return nil, err
	}

	discounts := make([]models.Discount, 0, len(body.PriceRules))
	for _, r := range body.PriceRules {
		discounts = append(discounts, models.Discount{
			Code:      r.Title,
			Title:     r.Title,
			Value:     strings.TrimPrefix(r.Value, "-"),
			ValueType: r.ValueType,
			EndsAt:    r.EndsAt,
		})
	}
	return discounts, nil
}

func (s *ShopifySource) endpoint(resource string) string {
	return fmt.Sprintf("%s/admin/api/%s/%s", s.baseURL, s.apiVersion, resource)
}

// get decodes the response into out and returns the next page URL, if any.
func (s *ShopifySource) get(ctx context.Context, url string, out interface{}) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", s.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("shopify API error: status=%d, body=%s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if m := nextLinkPattern.FindStringSubmatch(resp.Header.Get("Link")); m != nil {
		return m[1], nil
	}
	return "", nil
}
