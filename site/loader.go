package site

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	fieldSiteID   = "site_id"
	fieldDuration = "duration"
)

// Loader returns site configuration from cache, fetching it on a miss.
// Concurrent loads of the same id share one fetch.
type Loader struct {
	fetcher      Fetcher
	cache        Cache
	group        singleflight.Group
	logger       *zap.Logger
	metrics      *Metrics
	fetchTimeout time.Duration
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithCache replaces the default in memory cache
func WithCache(cache Cache) LoaderOption {
	return func(l *Loader) {
		if cache != nil {
			l.cache = cache
		}
	}
}

func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func WithMetrics(metrics *Metrics) LoaderOption {
	return func(l *Loader) {
		l.metrics = metrics
	}
}

// WithFetchTimeout bounds a shared fetch. Callers stop waiting when their own
// context ends; the fetch itself keeps running for the others until d elapses.
func WithFetchTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		if d > 0 {
			l.fetchTimeout = d
		}
	}
}

func NewLoader(fetcher Fetcher, opts ...LoaderOption) *Loader {
	l := &Loader{
		fetcher:      fetcher,
		logger:       zap.NewNop(),
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	if l.cache == nil {
		l.cache = NewMemoryCache()
	}
	return l
}

// Cache returns the cache backing the loader
func (l *Loader) Cache() Cache {
	return l.cache
}

// Load returns the active site for siteID. Errors are *FetchError values except
// for ErrNoSiteID.
func (l *Loader) Load(ctx context.Context, siteID string) (*Config, error) {
	id := strings.TrimSpace(siteID)
	if id == "" {
		return nil, ErrNoSiteID
	}

	if cfg, ok := l.cache.Get(ctx, id); ok {
		l.metrics.cacheHit()
		l.logger.Debug("site cache hit", zap.String(fieldSiteID, id))
		return cfg, nil
	}
	l.metrics.cacheMiss()
	l.logger.Debug("site cache miss", zap.String(fieldSiteID, id))

	results := l.group.DoChan(id, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.fetchTimeout)
		defer cancel()
		return l.fetch(fetchCtx, id)
	})

	select {
	case <-ctx.Done():
		return nil, &FetchError{SiteID: id, Kind: ErrSiteFetch, Err: ctx.Err()}
	case res := <-results:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Config).Clone(), nil
	}
}

// Refetch drops any cached entry for siteID and loads it again
func (l *Loader) Refetch(ctx context.Context, siteID string) (*Config, error) {
	id := strings.TrimSpace(siteID)
	if id == "" {
		return nil, ErrNoSiteID
	}
	l.cache.Clear(ctx, id)
	l.group.Forget(id)
	return l.Load(ctx, id)
}

func (l *Loader) fetch(ctx context.Context, id string) (*Config, error) {
	start := time.Now()
	cfg, err := l.fetcher.Fetch(ctx, id)
	if err == nil {
		switch {
		case cfg == nil:
			err = &FetchError{SiteID: id, Kind: ErrInvalidSiteData}
		case !cfg.IsActive():
			err = &FetchError{SiteID: id, Kind: ErrSiteInactive}
		}
	}
	elapsed := time.Since(start)
	l.metrics.observeFetch(err, elapsed)

	if err != nil {
		err = asFetchError(id, err)
		fields := []zap.Field{zap.String(fieldSiteID, id), zap.Duration(fieldDuration, elapsed), zap.Error(err)}
		if errors.Is(err, ErrSiteNotFound) || errors.Is(err, ErrSiteInactive) {
			l.logger.Warn("site unavailable", fields...)
		} else {
			l.logger.Error("site fetch failed", fields...)
		}
		return nil, err
	}

	l.cache.Set(ctx, id, cfg)
	l.logger.Debug("site fetched", zap.String(fieldSiteID, id), zap.Duration(fieldDuration, elapsed))
	return cfg, nil
}

// asFetchError keeps the taxonomy for fetchers that return plain errors
func asFetchError(id string, err error) error {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return err
	}
	return &FetchError{SiteID: id, Kind: ErrSiteFetch, Err: err}
}
