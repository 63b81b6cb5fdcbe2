package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	i18n "github.com/wecelebrate/go-i18n"
)

func TestNewLoaderFromSettings(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "staging", r.Header.Get("X-Environment-ID"))
		_, _ = w.Write([]byte(siteJSON))
	}))
	defer srv.Close()

	settings := i18n.SiteAPISettings{
		APIBaseURL:    srv.URL,
		EnvironmentID: "staging",
		CacheTTL:      time.Minute,
	}
	loader, err := NewLoaderFromSettings(settings, nil, prometheus.NewRegistry())
	require.NoError(t, err)

	memory, ok := loader.Cache().(*MemoryCache)
	require.True(t, ok, "no redis address means an in-memory cache")
	assert.Equal(t, time.Minute, memory.TTL())

	for i := 0; i < 2; i++ {
		cfg, err := loader.Load(context.Background(), "acme")
		require.NoError(t, err)
		assert.Equal(t, "Acme Rewards", cfg.Name)
	}
	assert.Equal(t, 1, calls)
}

func TestNewLoaderFromSettingsRequiresBaseURL(t *testing.T) {
	_, err := NewLoaderFromSettings(i18n.SiteAPISettings{}, nil, nil)
	assert.Error(t, err)
}

func TestNewResolverFromSettings(t *testing.T) {
	r := NewResolverFromSettings(i18n.SiteAPISettings{StorageKey: "current_site"})
	assert.Equal(t, "current_site", r.StorageKey())

	r = NewResolverFromSettings(i18n.SiteAPISettings{})
	assert.Equal(t, DefaultStorageKey, r.StorageKey())
}
