package site

import (
	"net"
	"net/url"
	"strings"
)

const (
	// DefaultStorageKey holds the last resolved site id in visitor storage
	DefaultStorageKey = "jala2_current_site_id"
	// DefaultSitePathPrefix is the path form /site/{id}
	DefaultSitePathPrefix = "/site/"

	siteIDParam = "siteId"
	adminPath   = "/admin"
)

var (
	defaultReservedSubdomains = []string{"www", "admin"}
	defaultPreviewMarkers     = []string{"figmaiframepreview"}
)

// Resolver detects which site a visitor belongs to
type Resolver struct {
	reserved       map[string]struct{}
	previewMarkers []string
	storageKey     string
	pathPrefix     string

	publicDomainKey string
}

// ResolverOption configures a Resolver
type ResolverOption func(*Resolver)

// WithReservedSubdomains adds subdomains that never name a site
func WithReservedSubdomains(names ...string) ResolverOption {
	return func(r *Resolver) {
		for _, name := range names {
			if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
				r.reserved[name] = struct{}{}
			}
		}
	}
}

// WithPreviewHostMarkers adds host substrings that identify preview infrastructure
func WithPreviewHostMarkers(markers ...string) ResolverOption {
	return func(r *Resolver) {
		for _, marker := range markers {
			if marker = strings.ToLower(strings.TrimSpace(marker)); marker != "" {
				r.previewMarkers = append(r.previewMarkers, marker)
			}
		}
	}
}

func WithStorageKey(key string) ResolverOption {
	return func(r *Resolver) {
		if key != "" {
			r.storageKey = key
		}
	}
}

// WithPublicDomainKey changes the storage key read by PublicSiteURL
func WithPublicDomainKey(key string) ResolverOption {
	return func(r *Resolver) {
		if key != "" {
			r.publicDomainKey = key
		}
	}
}

// WithSitePathPrefix changes the /site/ path form
func WithSitePathPrefix(prefix string) ResolverOption {
	return func(r *Resolver) {
		if prefix == "" {
			return
		}
		if !strings.HasPrefix(prefix, "/") {
			prefix = "/" + prefix
		}
		if !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		r.pathPrefix = prefix
	}
}

// NewResolver returns a resolver with the www and admin subdomains reserved
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		reserved:       make(map[string]struct{}, len(defaultReservedSubdomains)),
		previewMarkers: append([]string(nil), defaultPreviewMarkers...),
		storageKey:     DefaultStorageKey,
		pathPrefix:     DefaultSitePathPrefix,

		publicDomainKey: DefaultPublicDomainKey,
	}
	for _, name := range defaultReservedSubdomains {
		r.reserved[name] = struct{}{}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// StorageKey returns the key the resolved id is remembered under
func (r *Resolver) StorageKey() string {
	return r.orDefault().storageKey
}

func (r *Resolver) orDefault() *Resolver {
	if r == nil {
		return NewResolver()
	}
	return r
}

// Resolve returns override when it is set, otherwise the detected id
func (r *Resolver) Resolve(override string, bc BrowserContext) (string, bool) {
	if id := strings.TrimSpace(override); id != "" {
		return id, true
	}
	return r.Detect(bc)
}

// Detect finds the site id in bc. Signals are tried in order: the siteId query
// parameter, the subdomain, the /site/{id} path, then the remembered id. Preview
// and localhost hosts stop after the query parameter. A reserved subdomain or an
// admin path never falls back to the remembered id.
func (r *Resolver) Detect(bc BrowserContext) (string, bool) {
	r = r.orDefault()

	if id := queryParam(bc.Search, siteIDParam); id != "" {
		return id, true
	}

	host := strings.ToLower(strings.TrimSuffix(bc.Hostname, "."))
	if host == "localhost" || r.IsPreviewHost(host) {
		return "", false
	}

	reservedHost := false
	if sub, ok := subdomain(host); ok {
		if _, reserved := r.reserved[sub]; !reserved {
			return sub, true
		}
		reservedHost = true
	}

	if id := r.pathSiteID(bc.Pathname); id != "" {
		return id, true
	}

	if reservedHost || strings.HasPrefix(bc.Pathname, adminPath) || bc.Storage == nil {
		return "", false
	}
	if stored, ok := bc.Storage.Get(r.storageKey); ok {
		if stored = strings.TrimSpace(stored); stored != "" {
			return stored, true
		}
	}
	return "", false
}

// Remember stores id as the visitor's site preference
func (r *Resolver) Remember(storage Storage, id string) {
	if storage == nil {
		return
	}
	if id = strings.TrimSpace(id); id == "" {
		return
	}
	storage.Set(r.StorageKey(), id)
}

// Forget drops the remembered site preference
func (r *Resolver) Forget(storage Storage) {
	if storage != nil {
		storage.Remove(r.StorageKey())
	}
}

// IsPreviewHost reports whether host belongs to preview infrastructure
func (r *Resolver) IsPreviewHost(host string) bool {
	host = strings.ToLower(host)
	for _, marker := range r.orDefault().previewMarkers {
		if strings.Contains(host, marker) {
			return true
		}
	}
	return false
}

func (r *Resolver) pathSiteID(path string) string {
	rest, ok := strings.CutPrefix(path, r.pathPrefix)
	if !ok {
		return ""
	}
	segment, _, _ := strings.Cut(rest, "/")
	if decoded, err := url.PathUnescape(segment); err == nil {
		segment = decoded
	}
	return strings.TrimSpace(segment)
}

// subdomain returns the first label of hosts like acme.example.com or acme.localhost.
// IP addresses have no subdomain.
func subdomain(host string) (string, bool) {
	if host == "" || net.ParseIP(host) != nil {
		return "", false
	}
	labels := strings.Split(host, ".")
	if len(labels) >= 3 || (len(labels) == 2 && labels[1] == "localhost") {
		if labels[0] != "" {
			return labels[0], true
		}
	}
	return "", false
}

func queryParam(search, key string) string {
	values, _ := url.ParseQuery(strings.TrimPrefix(search, "?"))
	return strings.TrimSpace(values.Get(key))
}
