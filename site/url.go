package site

import (
	"net/url"
	"strings"
)

const (
	// DefaultPublicDomainKey holds a manually configured public origin for preview hosts
	DefaultPublicDomainKey = "figma-public-site-domain"

	previewInfix      = "-v2-figmaiframepreview"
	publishedHostPart = ".figma.site"
)

// IsPublishedPreviewHost reports whether host is the editor preview of a
// published site, {name}-v2-figmaiframepreview.figma.site. Only those hosts can
// be mapped back to a public origin. Resolver.IsPreviewHost is broader and
// matches any host carrying a preview marker.
func IsPublishedPreviewHost(host string) bool {
	return strings.Contains(strings.ToLower(host), previewInfix+publishedHostPart)
}

// PublicSiteOrigin returns the origin visitors should be sent to. On preview
// hosts it is the stored public domain, else the host without the preview
// infix. Everywhere else origin is returned, or https://{hostname} when empty.
func PublicSiteOrigin(bc BrowserContext, origin string) string {
	return publicSiteOrigin(bc, origin, DefaultPublicDomainKey)
}

// PublicSiteURL returns {origin}/site/{id}
func PublicSiteURL(bc BrowserContext, origin, siteID string) string {
	return NewResolver().PublicSiteURL(bc, origin, siteID)
}

// SetPublicSiteDomain stores the public origin used on preview hosts under
// DefaultPublicDomainKey
func SetPublicSiteDomain(storage Storage, domain string) {
	NewResolver().SetPublicSiteDomain(storage, domain)
}

func ClearPublicSiteDomain(storage Storage) {
	NewResolver().ClearPublicSiteDomain(storage)
}

// PublicDomainKey is the storage key holding the public origin
func (r *Resolver) PublicDomainKey() string {
	return r.orDefault().publicDomainKey
}

// SetPublicSiteDomain stores the public origin read back by PublicSiteURL
func (r *Resolver) SetPublicSiteDomain(storage Storage, domain string) {
	if storage == nil {
		return
	}
	if domain = strings.TrimRight(strings.TrimSpace(domain), "/"); domain != "" {
		storage.Set(r.PublicDomainKey(), domain)
	}
}

func (r *Resolver) ClearPublicSiteDomain(storage Storage) {
	if storage != nil {
		storage.Remove(r.PublicDomainKey())
	}
}

// PublicSiteURL builds the public link using the resolver's site path and domain key
func (r *Resolver) PublicSiteURL(bc BrowserContext, origin, siteID string) string {
	r = r.orDefault()
	base := strings.TrimRight(publicSiteOrigin(bc, origin, r.publicDomainKey), "/")
	return base + r.pathPrefix + url.PathEscape(siteID)
}

func publicSiteOrigin(bc BrowserContext, origin, key string) string {
	host := strings.ToLower(bc.Hostname)
	if IsPublishedPreviewHost(host) {
		if bc.Storage != nil {
			if stored, ok := bc.Storage.Get(key); ok && strings.TrimSpace(stored) != "" {
				return strings.TrimSpace(stored)
			}
		}
		if published := strings.Replace(host, previewInfix, "", 1); strings.Contains(published, publishedHostPart) {
			return "https://" + published
		}
	}

	if origin = strings.TrimSpace(origin); origin != "" {
		return origin
	}
	return "https://" + host
}
