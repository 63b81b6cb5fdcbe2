package site

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is how long a fetched site stays fresh
const DefaultTTL = time.Hour

// Clock returns the current time
type Clock func() time.Time

// Cache stores fetched site configuration keyed by site id. Implementations
// return copies so callers may modify what they get.
type Cache interface {
	// Get returns a fresh entry; stale entries are evicted and reported as a miss
	Get(ctx context.Context, siteID string) (*Config, bool)
	Set(ctx context.Context, siteID string, cfg *Config)
	// Clear drops the given ids, or every entry when none are given
	Clear(ctx context.Context, siteIDs ...string)
	// IsExpired reports true for missing and stale entries
	IsExpired(ctx context.Context, siteID string) bool
}

type cacheEntry struct {
	config    *Config
	fetchedAt time.Time
}

// MemoryCache is a process local Cache. Entries are evicted lazily on read
// once now - fetchedAt exceeds the TTL.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     Clock
}

// CacheOption configures the TTL and clock of a cache
type CacheOption func(*cacheOptions)

type cacheOptions struct {
	ttl time.Duration
	now Clock
}

// WithTTL sets the freshness window; non positive values keep the default
func WithTTL(ttl time.Duration) CacheOption {
	return func(o *cacheOptions) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithClock replaces time.Now
func WithClock(clock Clock) CacheOption {
	return func(o *cacheOptions) {
		if clock != nil {
			o.now = clock
		}
	}
}

func applyCacheOptions(opts []CacheOption) cacheOptions {
	o := cacheOptions{ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func NewMemoryCache(opts ...CacheOption) *MemoryCache {
	o := applyCacheOptions(opts)
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		ttl:     o.ttl,
		now:     o.now,
	}
}

// TTL returns the freshness window
func (c *MemoryCache) TTL() time.Duration {
	return c.ttl
}

func (c *MemoryCache) Get(_ context.Context, siteID string) (*Config, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[siteID]
	if !ok {
		return nil, false
	}
	if c.stale(entry) {
		delete(c.entries, siteID)
		return nil, false
	}
	return entry.config.Clone(), true
}

func (c *MemoryCache) Set(_ context.Context, siteID string, cfg *Config) {
	if cfg == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[siteID] = cacheEntry{config: cfg.Clone(), fetchedAt: c.now()}
}

func (c *MemoryCache) Clear(_ context.Context, siteIDs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(siteIDs) == 0 {
		c.entries = make(map[string]cacheEntry)
		return
	}
	for _, id := range siteIDs {
		delete(c.entries, id)
	}
}

func (c *MemoryCache) IsExpired(_ context.Context, siteID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[siteID]
	return !ok || c.stale(entry)
}

// Len returns the number of stored entries, stale ones included
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryCache) stale(entry cacheEntry) bool {
	return c.now().Sub(entry.fetchedAt) > c.ttl
}
