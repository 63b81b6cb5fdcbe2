package site

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultFetchTimeout bounds a shared Loader fetch
const DefaultFetchTimeout = 30 * time.Second

// Fetcher retrieves a site record from its source of truth
type Fetcher interface {
	Fetch(ctx context.Context, siteID string) (*Config, error)
}

// FetcherFunc adapts a function to Fetcher
type FetcherFunc func(ctx context.Context, siteID string) (*Config, error)

func (f FetcherFunc) Fetch(ctx context.Context, siteID string) (*Config, error) {
	return f(ctx, siteID)
}

// HTTPFetcher reads sites from GET {base}/public/sites/{id}. It adds no timeout
// of its own; the request ends with ctx unless WithRequestTimeout is set.
type HTTPFetcher struct {
	baseURL       string
	environmentID string
	token         string
	client        *http.Client
}

// HTTPFetcherOption configures an HTTPFetcher
type HTTPFetcherOption func(*HTTPFetcher)

// WithHTTPClient replaces the client. Apply it before WithRequestTimeout.
func WithHTTPClient(client *http.Client) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		if client != nil {
			c := *client
			f.client = &c
		}
	}
}

// WithRequestTimeout sets http.Client.Timeout; d <= 0 leaves requests unbounded
func WithRequestTimeout(d time.Duration) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithEnvironmentID sends the X-Environment-ID header
func WithEnvironmentID(id string) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		f.environmentID = id
	}
}

// WithAPIToken sends token as a bearer credential
func WithAPIToken(token string) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		f.token = token
	}
}

func NewHTTPFetcher(baseURL string, opts ...HTTPFetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

type siteResponse struct {
	Site *Config `json:"site"`
}

// Fetch returns the site or a *FetchError. The site status is not checked here.
func (f *HTTPFetcher) Fetch(ctx context.Context, siteID string) (*Config, error) {
	endpoint := f.baseURL + "/public/sites/" + url.PathEscape(siteID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{SiteID: siteID, Kind: ErrSiteFetch, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if f.environmentID != "" {
		req.Header.Set("X-Environment-ID", f.environmentID)
	}
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{SiteID: siteID, Kind: ErrSiteFetch, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		kind := ErrSiteFetch
		if resp.StatusCode == http.StatusNotFound {
			kind = ErrSiteNotFound
		}
		return nil, &FetchError{SiteID: siteID, StatusCode: resp.StatusCode, Status: resp.Status, Kind: kind}
	}

	var payload siteResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &FetchError{SiteID: siteID, StatusCode: resp.StatusCode, Kind: ErrInvalidSiteData, Err: err}
	}
	if payload.Site == nil {
		return nil, &FetchError{SiteID: siteID, StatusCode: resp.StatusCode, Kind: ErrInvalidSiteData}
	}
	return payload.Site, nil
}
