package catalog_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront-ai/assistant-service/internal/services/catalog"
)

func newShopifyServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/admin/api/2024-01/products.json", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Shopify-Access-Token") != "shpat_test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("page_info") == "" {
			w.Header().Set("Link", fmt.Sprintf(`<%s/admin/api/2024-01/products.json?limit=250&page_info=abc>; rel="next"`, srv.URL))
			fmt.Fprint(w, `{"products":[{"id":1,"handle":"red-satin-gown","title":"Red Satin Gown","tags":"wedding, red","variants":[{"id":11,"price":"120.00","option1":"Red"}]}]}`)
			return
		}
		fmt.Fprint(w, `{"products":[{"id":2,"handle":"blue-wedding-gown","title":"Blue Wedding Gown","tags":["wedding"],"variants":[{"id":21,"price":100}]}]}`)
	})
	mux.HandleFunc("/admin/api/2024-01/policies.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"policies":[
			{"title":"Refund policy","handle":"refund-policy","body":"<p>Returns within 30 days</p>"},
			{"title":"Shipping policy","handle":"shipping-policy","body":"<p>Ships in 2 days</p>"},
			{"title":"Terms of service","handle":"terms-of-service","body":"terms"}]}`)
	})
	mux.HandleFunc("/admin/api/2024-01/pages.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"errors":"boom"}`)
	})
	mux.HandleFunc("/admin/api/2024-01/price_rules.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"price_rules":[{"title":"SPRING10","value":"-10.0","value_type":"percentage"}]}`)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewShopifySource_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *catalog.ShopifyConfig
		wantErr string
	}{
		{name: "nil config", cfg: nil, wantErr: "config is required"},
		{name: "missing domain", cfg: &catalog.ShopifyConfig{AccessToken: "x"}, wantErr: "shop domain is required"},
		{name: "missing token", cfg: &catalog.ShopifyConfig{Domain: "a.myshopify.com"}, wantErr: "access token is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := catalog.NewShopifySource(tt.cfg)

			assert.Nil(t, src)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestShopifySource_FetchProductsFollowsPagination(t *testing.T) {
	// Arrange
	srv := newShopifyServer(t)
	src, err := catalog.NewShopifySource(&catalog.ShopifyConfig{BaseURL: srv.URL, AccessToken: "shpat_test"})
	require.NoError(t, err)

	// Act
	products, err := src.FetchProducts(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, []string{"wedding", "red"}, products[0].Tags)
	assert.Equal(t, 120.0, float64(products[0].Variants[0].Price))
	assert.Equal(t, "blue-wedding-gown", products[1].Handle)
}

func TestShopifySource_BadTokenFails(t *testing.T) {
	srv := newShopifyServer(t)
	src, err := catalog.NewShopifySource(&catalog.ShopifyConfig{BaseURL: srv.URL, AccessToken: "wrong"})
	require.NoError(t, err)

	_, err = src.FetchProducts(context.Background())

	assert.ErrorContains(t, err, "status=401")
}

func TestShopifySource_FetchPoliciesByHandle(t *testing.T) {
	srv := newShopifyServer(t)
	src, err := catalog.NewShopifySource(&catalog.ShopifyConfig{BaseURL: srv.URL, AccessToken: "shpat_test"})
	require.NoError(t, err)

	policies, err := src.FetchPolicies(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "<p>Returns within 30 days</p>", policies.Refund)
	assert.Equal(t, "<p>Ships in 2 days</p>", policies.Shipping)
	assert.Equal(t, "terms", policies.Terms)
	assert.Empty(t, policies.Privacy)
}

func TestShopifySource_FetchDiscounts(t *testing.T) {
	srv := newShopifyServer(t)
	src, err := catalog.NewShopifySource(&catalog.ShopifyConfig{BaseURL: srv.URL, AccessToken: "shpat_test"})
	require.NoError(t, err)

	discounts, err := src.FetchDiscounts(context.Background())

	require.NoError(t, err)
	require.Len(t, discounts, 1)
	assert.Equal(t, "SPRING10", discounts[0].Code)
	assert.Equal(t, "10.0", discounts[0].Value)
}

func TestShopifySource_ThroughProviderToleratesFailedPages(t *testing.T) {
	// Arrange
	srv := newShopifyServer(t)
	src, err := catalog.NewShopifySource(&catalog.ShopifyConfig{BaseURL: srv.URL, AccessToken: "shpat_test"})
	require.NoError(t, err)
	p, err := catalog.NewCachedProvider(&catalog.CachedProviderConfig{Source: src, Domain: shop})
	require.NoError(t, err)

	// Act
	snap, err := p.GetSnapshot(context.Background(), "")

	// Assert
	require.NoError(t, err)
	assert.Len(t, snap.Products, 2)
	assert.Empty(t, snap.Pages)
	assert.Len(t, snap.Discounts, 1)
}
