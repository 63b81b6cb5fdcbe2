package site

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultRedisPrefix namespaces cache keys in a shared Redis
const DefaultRedisPrefix = "wecelebrate:site:"

const redisScanCount = 100

// RedisCache shares fetched sites between processes. Redis failures are logged
// and behave like a miss so a degraded Redis only costs extra fetches.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	now    Clock
	logger *zap.Logger
}

type redisEntry struct {
	Config    *Config   `json:"config"`
	FetchedAt time.Time `json:"fetched_at"`
}

// NewRedisCache stores entries under prefix; an empty prefix uses DefaultRedisPrefix
func NewRedisCache(client redis.UniversalClient, prefix string, logger *zap.Logger, opts ...CacheOption) *RedisCache {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	o := applyCacheOptions(opts)
	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    o.ttl,
		now:    o.now,
		logger: logger,
	}
}

func (c *RedisCache) key(siteID string) string {
	return c.prefix + siteID
}

func (c *RedisCache) load(ctx context.Context, siteID string) (redisEntry, bool) {
	data, err := c.client.Get(ctx, c.key(siteID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("redis cache read failed", zap.String(fieldSiteID, siteID), zap.Error(err))
		}
		return redisEntry{}, false
	}

	var entry redisEntry
	if err := json.Unmarshal(data, &entry); err != nil || entry.Config == nil {
		c.logger.Warn("redis cache entry is corrupt", zap.String(fieldSiteID, siteID), zap.Error(err))
		return redisEntry{}, false
	}
	return entry, true
}

func (c *RedisCache) stale(entry redisEntry) bool {
	return c.now().Sub(entry.FetchedAt) > c.ttl
}

func (c *RedisCache) Get(ctx context.Context, siteID string) (*Config, bool) {
	entry, ok := c.load(ctx, siteID)
	if !ok {
		return nil, false
	}
	if c.stale(entry) {
		c.Clear(ctx, siteID)
		return nil, false
	}
	return entry.Config, true
}

func (c *RedisCache) Set(ctx context.Context, siteID string, cfg *Config) {
	if cfg == nil {
		return
	}
	data, err := json.Marshal(redisEntry{Config: cfg, FetchedAt: c.now()})
	if err != nil {
		c.logger.Warn("redis cache encode failed", zap.String(fieldSiteID, siteID), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.key(siteID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("redis cache write failed", zap.String(fieldSiteID, siteID), zap.Error(err))
	}
}

func (c *RedisCache) Clear(ctx context.Context, siteIDs ...string) {
	if len(siteIDs) > 0 {
		keys := make([]string, len(siteIDs))
		for i, id := range siteIDs {
			keys[i] = c.key(id)
		}
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			c.logger.Warn("redis cache delete failed", zap.Strings(fieldSiteID, siteIDs), zap.Error(err))
		}
		return
	}

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", redisScanCount).Result()
		if err != nil {
			c.logger.Warn("redis cache scan failed", zap.String("prefix", c.prefix), zap.Error(err))
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				c.logger.Warn("redis cache delete failed", zap.String("prefix", c.prefix), zap.Error(err))
				return
			}
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}

func (c *RedisCache) IsExpired(ctx context.Context, siteID string) bool {
	entry, ok := c.load(ctx, siteID)
	return !ok || c.stale(entry)
}
