package site

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	i18n "github.com/wecelebrate/go-i18n"
)

const redisPingTimeout = 2 * time.Second

// NewResolverFromSettings builds a Resolver using the configured storage keys
func NewResolverFromSettings(s i18n.SiteAPISettings, opts ...ResolverOption) *Resolver {
	base := []ResolverOption{
		WithStorageKey(s.StorageKey),
		WithPublicDomainKey(s.PublicDomainKey),
	}
	return NewResolver(append(base, opts...)...)
}

// NewLoaderFromSettings builds an HTTP backed Loader. Sites are cached in Redis
// when an address is configured and in memory otherwise. reg may be nil.
func NewLoaderFromSettings(s i18n.SiteAPISettings, logger *zap.Logger, reg prometheus.Registerer) (*Loader, error) {
	if s.APIBaseURL == "" {
		return nil, errors.New("site.api_base_url is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	fetcher := NewHTTPFetcher(s.APIBaseURL,
		WithRequestTimeout(s.RequestTimeout),
		WithEnvironmentID(s.EnvironmentID),
		WithAPIToken(s.APIToken),
	)

	metrics, err := NewMetrics(reg)
	if err != nil {
		return nil, errors.Wrap(err, "register site metrics")
	}

	var cache Cache
	if s.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     s.RedisAddr,
			Password: s.RedisPassword,
			DB:       s.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, errors.Wrapf(err, "connect redis %s", s.RedisAddr)
		}
		cache = NewRedisCache(client, s.RedisPrefix, logger, WithTTL(s.CacheTTL))
	} else {
		cache = NewMemoryCache(WithTTL(s.CacheTTL))
	}

	return NewLoader(fetcher,
		WithCache(cache),
		WithLogger(logger),
		WithMetrics(metrics),
		WithFetchTimeout(s.RequestTimeout),
	), nil
}
