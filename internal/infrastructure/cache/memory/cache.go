// Package memory provides an in-process TTL cache driver for local runs and tests.
package memory

import (
	"context"
	"sync"
	"time"
)

// sweepInterval is the minimum gap between full expiry sweeps.
const sweepInterval = time.Minute

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Client implements cache.Client on a mutex-guarded map. Expired entries
// are dropped on read and by a sweep that writes trigger at most once per
// sweepInterval.
type Client struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration
	now        func() time.Time
	nextSweep  time.Time
}

// NewClient creates an empty in-memory cache.
func NewClient(defaultTTL time.Duration) *Client {
	if defaultTTL == 0 {
		defaultTTL = time.Hour
	}
	return &Client{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// WithClock replaces the time source. Used by tests to expire entries.
func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

// Get returns a copy of the stored value, or nil if absent or expired.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		// A concurrent Set may have replaced the entry since the read.
		if cur, ok := c.entries[key]; ok && !c.now().Before(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, nil
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

// Set stores a copy of value.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	now := c.now()
	c.entries[key] = entry{value: stored, expiresAt: now.Add(ttl)}
	if !now.Before(c.nextSweep) {
		c.sweep(now)
	}
	c.mu.Unlock()
	return nil
}

// sweep drops every expired entry. The caller holds the write lock.
func (c *Client) sweep(now time.Time) {
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.nextSweep = now.Add(sweepInterval)
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (c *Client) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Delete removes a key.
func (c *Client) Delete(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	delete(c.entries, key)
	return c.now().Before(e.expiresAt), nil
}

// Ping always succeeds.
func (c *Client) Ping(ctx context.Context) error {
	return nil
}

// Close drops all entries.
func (c *Client) Close() error {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	return nil
}
