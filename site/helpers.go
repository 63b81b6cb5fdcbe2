package site

import (
	"regexp"
	"strings"
	"time"

	i18n "github.com/wecelebrate/go-i18n"
)

// DefaultPrimaryColor is the brand color used when a site sets none
const DefaultPrimaryColor = "#D91C81"

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail reports whether email may sign in to the site. Without allowed
// domains any address of the form local@domain.tld passes.
func ValidateEmail(cfg *Config, email string) bool {
	if email == "" {
		return false
	}

	var allowed []string
	if cfg != nil {
		allowed = cfg.Settings.AllowedDomains
	}
	if len(allowed) == 0 {
		return emailShape.MatchString(email)
	}

	parts := strings.Split(email, "@")
	if len(parts) < 2 {
		return false
	}
	domain := strings.ToLower(parts[1])
	for _, d := range allowed {
		if strings.ToLower(d) == domain {
			return true
		}
	}
	return false
}

func PrimaryColor(cfg *Config) string {
	if cfg != nil && cfg.Branding.PrimaryColor != "" {
		return cfg.Branding.PrimaryColor
	}
	return DefaultPrimaryColor
}

// Currency returns the site's default currency code, USD when unset
func Currency(cfg *Config) string {
	if cfg != nil && cfg.Settings.DefaultCurrency != "" {
		return cfg.Settings.DefaultCurrency
	}
	return i18n.DefaultCurrency
}

// IsAvailable reports whether now falls inside the availability window. Both
// ends are inclusive and dates that cannot be parsed do not restrict the window.
func IsAvailable(cfg *Config, now time.Time) bool {
	if cfg == nil {
		return false
	}
	if start, ok := parseAvailabilityDate(cfg.Settings.AvailabilityStartDate); ok && now.Before(start) {
		return false
	}
	if end, ok := parseAvailabilityDate(cfg.Settings.AvailabilityEndDate); ok && now.After(end) {
		return false
	}
	return true
}

var availabilityLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseAvailabilityDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range availabilityLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// I18n resolves the site's formatting settings. The currency defaults to the
// site's default currency before the platform default.
func I18n(cfg *Config) i18n.I18nConfig {
	base := i18n.DefaultI18nConfig()
	if cfg == nil {
		return base
	}
	base.Currency = Currency(cfg)
	return cfg.I18n.ApplyTo(base)
}
