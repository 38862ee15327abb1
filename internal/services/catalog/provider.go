package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/storefront-ai/assistant-service/internal/core/cache"
	"github.com/storefront-ai/assistant-service/internal/domain/models"
)

// DefaultTTL bounds snapshot staleness.
const DefaultTTL = 15 * time.Minute

// ErrSnapshotUnavailable is returned when no catalog resource could be fetched.
var ErrSnapshotUnavailable = errors.New("catalog snapshot unavailable")

// CachedProviderConfig holds the dependencies of a CachedProvider.
type CachedProviderConfig struct {
	Source   Source
	Cache    cache.Client
	Domain   string
	Currency string
	TTL      time.Duration
	Now      func() time.Time
}

// CachedProvider serves snapshots from the cache and refreshes them from the
// source on a miss. Concurrent refreshes may race; the last write wins.
type CachedProvider struct {
	source   Source
	cache    cache.Client
	domain   string
	currency string
	ttl      time.Duration
	now      func() time.Time
}

// NewCachedProvider creates a new cached provider.
func NewCachedProvider(cfg *CachedProviderConfig) (*CachedProvider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Source == nil {
		return nil, fmt.Errorf("catalog source is required")
	}

	p := &CachedProvider{
		source:   cfg.Source,
		cache:    cfg.Cache,
		domain:   cfg.Domain,
		currency: cfg.Currency,
		ttl:      cfg.TTL,
		now:      cfg.Now,
	}
	if p.ttl == 0 {
		p.ttl = DefaultTTL
	}
	if p.now == nil {
		p.now = func() time.Time { return time.Now().UTC() }
	}
	return p, nil
}

// CacheKey returns the cache key of a domain's snapshot.
func CacheKey(domain string) string {
	return "catalog:" + domain
}

// GetSnapshot returns the snapshot for domain, or the configured domain when
// empty. When every resource fails it returns an empty snapshot together with
// ErrSnapshotUnavailable.
func (p *CachedProvider) GetSnapshot(ctx context.Context, domain string) (*models.Snapshot, error) {
	if domain == "" {
		domain = p.domain
	}
	key := CacheKey(domain)

	if snap := p.lookup(ctx, key); snap != nil {
		return snap, nil
	}

	snap, productsOK, err := p.refresh(ctx, domain)
	if err != nil {
		return snap, err
	}
	if productsOK {
		p.store(ctx, key, snap)
	}
	return snap, nil
}

func (p *CachedProvider) lookup(ctx context.Context, key string) *models.Snapshot {
	if p.cache == nil {
		return nil
	}
	data, err := p.cache.Get(ctx, key)
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("catalog cache read failed")
		return nil
	}
	if data == nil {
		return nil
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("discarding corrupt catalog snapshot")
		return nil
	}
	return &snap
}

func (p *CachedProvider) store(ctx context.Context, key string, snap *models.Snapshot) {
	if p.cache == nil {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		log.Debug().Err(err).Msg("failed to marshal catalog snapshot")
		return
	}
	if err := p.cache.Set(ctx, key, data, p.ttl); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("catalog cache write failed")
	}
}

// refresh fetches all resources concurrently. A failed resource yields its
// empty default.
func (p *CachedProvider) refresh(ctx context.Context, domain string) (*models.Snapshot, bool, error) {
	snap := &models.Snapshot{
		Domain:    domain,
		Currency:  p.currency,
		Products:  []models.Product{},
		Pages:     []models.Page{},
		Discounts: []models.Discount{},
	}
	var productsErr, policiesErr, pagesErr, discountsErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := p.source.FetchProducts(gctx)
		if err != nil {
			productsErr = fmt.Errorf("products: %w", err)
			return nil
		}
		if products != nil {
			snap.Products = products
		}
		return nil
	})
	g.Go(func() error {
		policies, err := p.source.FetchPolicies(gctx)
		if err != nil {
			policiesErr = fmt.Errorf("policies: %w", err)
			return nil
		}
		snap.Policies = policies
		return nil
	})
	g.Go(func() error {
		pages, err := p.source.FetchPages(gctx)
		if err != nil {
			pagesErr = fmt.Errorf("pages: %w", err)
			return nil
		}
		if pages != nil {
			snap.Pages = pages
		}
		return nil
	})
	g.Go(func() error {
		discounts, err := p.source.FetchDiscounts(gctx)
		if err != nil {
			discountsErr = fmt.Errorf("discounts: %w", err)
			return nil
		}
		if discounts != nil {
			snap.Discounts = discounts
		}
		return nil
	})
	_ = g.Wait()
	snap.LastUpdated = p.now()

	for _, err := range []error{productsErr, policiesErr, pagesErr, discountsErr} {
		if err != nil {
			log.Warn().Err(err).Str("domain", domain).Msg("catalog resource fetch failed")
		}
	}
	if productsErr != nil && policiesErr != nil && pagesErr != nil && discountsErr != nil {
		return snap, false, fmt.Errorf("%w: %w", ErrSnapshotUnavailable,
			errors.Join(productsErr, policiesErr, pagesErr, discountsErr))
	}
	return snap, productsErr == nil, nil
}
