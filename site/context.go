package site

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Storage is the persisted key value state of a visitor, such as browser local
// storage or cookies.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
}

// BrowserContext is the location and storage a site id is detected from
type BrowserContext struct {
	Hostname string
	Pathname string
	Search   string
	Storage  Storage
}

// ContextFromURL builds a BrowserContext from an absolute URL
func ContextFromURL(rawURL string, storage Storage) (BrowserContext, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return BrowserContext{}, err
	}
	return BrowserContext{
		Hostname: parsed.Hostname(),
		Pathname: parsed.Path,
		Search:   parsed.RawQuery,
		Storage:  storage,
	}, nil
}

// ContextFromRequest builds a BrowserContext from an incoming request
func ContextFromRequest(r *http.Request, storage Storage) BrowserContext {
	if r == nil {
		return BrowserContext{Storage: storage}
	}

	bc := BrowserContext{
		Hostname: hostname(r.Host),
		Storage:  storage,
	}
	if r.URL != nil {
		bc.Pathname = r.URL.Path
		bc.Search = r.URL.RawQuery
		if bc.Hostname == "" {
			bc.Hostname = r.URL.Hostname()
		}
	}
	return bc
}

func hostname(hostport string) string {
	if host, _, err := net.SplitHostPort(hostport); err == nil {
		return host
	}
	return hostport
}

// MemoryStorage is a Storage held in process memory
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage returns a storage seeded with a copy of values
func NewMemoryStorage(values map[string]string) *MemoryStorage {
	s := &MemoryStorage{values: make(map[string]string, len(values))}
	for k, v := range values {
		s.values[k] = v
	}
	return s
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

func (s *MemoryStorage) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
}

func (s *MemoryStorage) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// DefaultCookieMaxAge keeps a remembered site for thirty days
const DefaultCookieMaxAge = 30 * 24 * time.Hour

// CookieStorage reads request cookies and writes Set-Cookie headers. Values set
// during the request are visible to later Get calls on the same storage.
type CookieStorage struct {
	request *http.Request
	writer  http.ResponseWriter
	path    string
	maxAge  time.Duration
	secure  bool

	mu      sync.Mutex
	pending map[string]*string
}

// CookieOption configures a CookieStorage
type CookieOption func(*CookieStorage)

// WithCookiePath scopes written cookies to path
func WithCookiePath(path string) CookieOption {
	return func(s *CookieStorage) {
		s.path = path
	}
}

func WithCookieMaxAge(maxAge time.Duration) CookieOption {
	return func(s *CookieStorage) {
		s.maxAge = maxAge
	}
}

// WithSecureCookies marks written cookies Secure
func WithSecureCookies(secure bool) CookieOption {
	return func(s *CookieStorage) {
		s.secure = secure
	}
}

// NewCookieStorage wraps a request and its response writer
func NewCookieStorage(r *http.Request, w http.ResponseWriter, opts ...CookieOption) *CookieStorage {
	s := &CookieStorage{
		request: r,
		writer:  w,
		path:    "/",
		maxAge:  DefaultCookieMaxAge,
		pending: make(map[string]*string),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *CookieStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	value, written := s.pending[key]
	s.mu.Unlock()
	if written {
		if value == nil {
			return "", false
		}
		return *value, true
	}

	if s.request == nil {
		return "", false
	}
	cookie, err := s.request.Cookie(key)
	if err != nil {
		return "", false
	}
	decoded, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return cookie.Value, true
	}
	return decoded, true
}

func (s *CookieStorage) Set(key, value string) {
	s.mu.Lock()
	s.pending[key] = &value
	s.mu.Unlock()

	if s.writer != nil {
		http.SetCookie(s.writer, &http.Cookie{
			Name:     key,
			Value:    url.QueryEscape(value),
			Path:     s.path,
			MaxAge:   int(s.maxAge / time.Second),
			HttpOnly: true,
			Secure:   s.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (s *CookieStorage) Remove(key string) {
	s.mu.Lock()
	s.pending[key] = nil
	s.mu.Unlock()

	if s.writer != nil {
		http.SetCookie(s.writer, &http.Cookie{
			Name:   key,
			Value:  "",
			Path:   s.path,
			MaxAge: -1,
		})
	}
}
