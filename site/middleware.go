package site

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ginSiteKey   = "wecelebrate.site"
	ginSiteIDKey = "wecelebrate.site_id"
)

type siteContextKey struct{}

// NewContext returns ctx carrying cfg
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, siteContextKey{}, cfg)
}

// ConfigFromContext returns the site stored by NewContext
func ConfigFromContext(ctx context.Context) (*Config, bool) {
	cfg, ok := ctx.Value(siteContextKey{}).(*Config)
	return cfg, ok && cfg != nil
}

// FromContext returns the site loaded by Middleware for this request
func FromContext(c *gin.Context) (*Config, bool) {
	v, ok := c.Get(ginSiteKey)
	if !ok {
		return nil, false
	}
	cfg, ok := v.(*Config)
	return cfg, ok && cfg != nil
}

// SiteIDFromContext returns the id Middleware resolved for this request
func SiteIDFromContext(c *gin.Context) string {
	return c.GetString(ginSiteIDKey)
}

type middlewareOptions struct {
	remember   bool
	required   bool
	cookieOpts []CookieOption
}

// MiddlewareOption configures Middleware
type MiddlewareOption func(*middlewareOptions)

// WithRememberSite stores the resolved id in a cookie after a successful load
func WithRememberSite(remember bool) MiddlewareOption {
	return func(o *middlewareOptions) {
		o.remember = remember
	}
}

// WithRequiredSite rejects requests without a site id with 400
func WithRequiredSite(required bool) MiddlewareOption {
	return func(o *middlewareOptions) {
		o.required = required
	}
}

func WithCookieOptions(opts ...CookieOption) MiddlewareOption {
	return func(o *middlewareOptions) {
		o.cookieOpts = append(o.cookieOpts, opts...)
	}
}

// Middleware resolves the site of each request and loads its configuration.
// Requests without a site id pass through unless WithRequiredSite is set.
func Middleware(resolver *Resolver, loader *Loader, opts ...MiddlewareOption) gin.HandlerFunc {
	o := middlewareOptions{remember: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return func(c *gin.Context) {
		storage := NewCookieStorage(c.Request, c.Writer, o.cookieOpts...)
		siteID, ok := resolver.Detect(ContextFromRequest(c.Request, storage))
		if !ok {
			if o.required {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "No site specified"})
				return
			}
			c.Next()
			return
		}

		cfg, err := loader.Load(c.Request.Context(), siteID)
		if err != nil {
			c.AbortWithStatusJSON(errorStatus(err), gin.H{"error": err.Error(), "site_id": siteID})
			return
		}

		if o.remember {
			resolver.Remember(storage, siteID)
		}
		c.Set(ginSiteIDKey, siteID)
		c.Set(ginSiteKey, cfg)
		c.Request = c.Request.WithContext(NewContext(c.Request.Context(), cfg))
		c.Next()
	}
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, ErrSiteNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSiteInactive):
		return http.StatusForbidden
	default:
		return http.StatusBadGateway
	}
}
