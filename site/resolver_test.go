package site

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverDetect(t *testing.T) {
	stored := map[string]string{DefaultStorageKey: "remembered"}

	tests := []struct {
		name   string
		ctx    BrowserContext
		wantID string
		wantOK bool
	}{
		{
			name:   "query parameter wins over subdomain",
			ctx:    BrowserContext{Hostname: "acme.wecelebrate.com", Search: "?siteId=from-query"},
			wantID: "from-query",
			wantOK: true,
		},
		{
			name:   "query parameter without question mark",
			ctx:    BrowserContext{Hostname: "wecelebrate.com", Search: "siteId=abc&lang=en"},
			wantID: "abc",
			wantOK: true,
		},
		{
			name:   "empty query parameter is ignored",
			ctx:    BrowserContext{Hostname: "acme.wecelebrate.com", Search: "?siteId="},
			wantID: "acme",
			wantOK: true,
		},
		{
			name:   "subdomain",
			ctx:    BrowserContext{Hostname: "acme.wecelebrate.com", Pathname: "/site/other"},
			wantID: "acme",
			wantOK: true,
		},
		{
			name:   "localhost subdomain",
			ctx:    BrowserContext{Hostname: "acme.localhost"},
			wantID: "acme",
			wantOK: true,
		},
		{
			name: "www is reserved",
			ctx:  BrowserContext{Hostname: "www.wecelebrate.com", Storage: NewMemoryStorage(stored)},
		},
		{
			name: "admin is reserved",
			ctx:  BrowserContext{Hostname: "admin.wecelebrate.com", Storage: NewMemoryStorage(stored)},
		},
		{
			name:   "reserved subdomain still honours the site path",
			ctx:    BrowserContext{Hostname: "www.wecelebrate.com", Pathname: "/site/acme"},
			wantID: "acme",
			wantOK: true,
		},
		{
			name: "preview host resolves to nothing",
			ctx: BrowserContext{
				Hostname: "demo-v2-figmaiframepreview.figma.site",
				Pathname: "/site/acme",
				Storage:  NewMemoryStorage(stored),
			},
		},
		{
			name:   "preview host still honours the query parameter",
			ctx:    BrowserContext{Hostname: "demo-v2-figmaiframepreview.figma.site", Search: "siteId=acme"},
			wantID: "acme",
			wantOK: true,
		},
		{
			name: "plain localhost resolves to nothing",
			ctx:  BrowserContext{Hostname: "localhost", Storage: NewMemoryStorage(stored)},
		},
		{
			name:   "site path",
			ctx:    BrowserContext{Hostname: "wecelebrate.com", Pathname: "/site/acme/gifts"},
			wantID: "acme",
			wantOK: true,
		},
		{
			name:   "stored preference",
			ctx:    BrowserContext{Hostname: "wecelebrate.com", Pathname: "/gifts", Storage: NewMemoryStorage(stored)},
			wantID: "remembered",
			wantOK: true,
		},
		{
			name: "admin path ignores stored preference",
			ctx:  BrowserContext{Hostname: "wecelebrate.com", Pathname: "/admin/sites", Storage: NewMemoryStorage(stored)},
		},
		{
			name: "ip address has no subdomain",
			ctx:  BrowserContext{Hostname: "192.168.1.10"},
		},
		{
			name: "nothing to go on",
			ctx:  BrowserContext{Hostname: "wecelebrate.com", Pathname: "/"},
		},
	}

	r := NewResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := r.Detect(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestResolverResolveOverride(t *testing.T) {
	r := NewResolver()
	ctx := BrowserContext{Hostname: "acme.wecelebrate.com", Search: "siteId=query"}

	id, ok := r.Resolve("forced", ctx)
	require.True(t, ok)
	assert.Equal(t, "forced", id)

	id, ok = r.Resolve("  ", ctx)
	require.True(t, ok)
	assert.Equal(t, "query", id)
}

func TestResolverOptions(t *testing.T) {
	r := NewResolver(
		WithReservedSubdomains("API", "static"),
		WithStorageKey("current_site"),
		WithSitePathPrefix("s"),
		WithPreviewHostMarkers("staging-preview"),
	)

	_, ok := r.Detect(BrowserContext{Hostname: "api.wecelebrate.com"})
	assert.False(t, ok)

	id, ok := r.Detect(BrowserContext{Hostname: "wecelebrate.com", Pathname: "/s/acme"})
	require.True(t, ok)
	assert.Equal(t, "acme", id)

	_, ok = r.Detect(BrowserContext{Hostname: "acme.staging-preview.example.com"})
	assert.False(t, ok)

	storage := NewMemoryStorage(nil)
	r.Remember(storage, " acme ")
	value, ok := storage.Get("current_site")
	require.True(t, ok)
	assert.Equal(t, "acme", value)

	id, ok = r.Detect(BrowserContext{Hostname: "wecelebrate.com", Storage: storage})
	require.True(t, ok)
	assert.Equal(t, "acme", id)

	r.Forget(storage)
	_, ok = storage.Get("current_site")
	assert.False(t, ok)
}

func TestContextFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "http://acme.wecelebrate.com:8080/site/other?siteId=q", nil)
	bc := ContextFromRequest(req, nil)

	assert.Equal(t, "acme.wecelebrate.com", bc.Hostname)
	assert.Equal(t, "/site/other", bc.Pathname)
	assert.Equal(t, "siteId=q", bc.Search)
}

func TestContextFromURL(t *testing.T) {
	bc, err := ContextFromURL("https://www.wecelebrate.com/site/acme?x=1", nil)
	require.NoError(t, err)

	id, ok := NewResolver().Detect(bc)
	require.True(t, ok)
	assert.Equal(t, "acme", id)

	_, err = ContextFromURL("://bad", nil)
	assert.Error(t, err)
}

func TestCookieStorage(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultStorageKey, Value: "from-cookie"})
	rec := httptest.NewRecorder()

	storage := NewCookieStorage(req, rec)
	value, ok := storage.Get(DefaultStorageKey)
	require.True(t, ok)
	assert.Equal(t, "from-cookie", value)

	storage.Set(DefaultStorageKey, "acme")
	value, ok = storage.Get(DefaultStorageKey)
	require.True(t, ok)
	assert.Equal(t, "acme", value)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), DefaultStorageKey+"=acme")

	storage.Remove(DefaultStorageKey)
	_, ok = storage.Get(DefaultStorageKey)
	assert.False(t, ok)
}
