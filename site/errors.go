package site

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

var (
	// ErrNoSiteID is returned when a load is attempted without a site id
	ErrNoSiteID = errors.New("site: no site id")
	// ErrSiteNotFound marks a site the backend does not know. It is permanent.
	ErrSiteNotFound = errors.New("site: not found")
	// ErrSiteFetch marks transport failures and non 2xx responses other than 404
	ErrSiteFetch = errors.New("site: fetch failed")
	// ErrInvalidSiteData marks a response without a decodable site record
	ErrInvalidSiteData = errors.New("site: invalid site data")
	// ErrSiteInactive marks a site whose status is not active
	ErrSiteInactive = errors.New("site: inactive")
)

// FetchError describes a failed site load. Kind is one of the sentinel errors
// above and is matched by errors.Is.
type FetchError struct {
	SiteID     string
	StatusCode int
	Status     string
	Kind       error
	Err        error
}

// Error returns the message shown to visitors
func (e *FetchError) Error() string {
	switch e.Kind {
	case ErrSiteNotFound:
		return fmt.Sprintf("Site %q not found. Please check the site ID.", e.SiteID)
	case ErrInvalidSiteData:
		return "Invalid site data received from server"
	case ErrSiteInactive:
		return "This site is currently inactive. Please contact support."
	default:
		return "Failed to load site configuration: " + e.detail()
	}
}

func (e *FetchError) detail() string {
	if e.StatusCode != 0 {
		if text := statusText(e.StatusCode, e.Status); text != "" {
			return text
		}
		return "HTTP " + strconv.Itoa(e.StatusCode)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *FetchError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// statusText strips the numeric prefix net/http puts in Response.Status
func statusText(code int, status string) string {
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if text != "" {
		return text
	}
	return http.StatusText(code)
}

// IsNotFound reports whether err means the site does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSiteNotFound)
}
