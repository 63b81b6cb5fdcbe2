package i18n

import (
	"maps"
	"sync"
	"time"
)

// FormatterRegistry caches formatters per locale and exposes them as template helpers
type FormatterRegistry struct {
	cfg      *Config
	settings I18nConfig

	mu        sync.RWMutex
	numbers   map[string]*NumberFormatter
	dates     map[string]*DateFormatter
	globals   map[string]any
	funcCache map[string]map[string]any
}

// FormatterRegistryOption configures a FormatterRegistry
type FormatterRegistryOption func(*FormatterRegistry)

// WithRegistrySettings sets the site settings helpers format with
func WithRegistrySettings(settings I18nConfig) FormatterRegistryOption {
	return func(r *FormatterRegistry) {
		r.settings = settings
	}
}

// WithRegistryHelper adds or replaces a helper for every locale
func WithRegistryHelper(name string, fn any) FormatterRegistryOption {
	return func(r *FormatterRegistry) {
		if name != "" && fn != nil {
			r.globals[name] = fn
		}
	}
}

// NewFormatterRegistry builds a registry over cfg; a nil cfg uses the embedded tables
func NewFormatterRegistry(cfg *Config, opts ...FormatterRegistryOption) *FormatterRegistry {
	r := &FormatterRegistry{
		cfg:      cfg,
		settings: cfg.ResolveI18n(nil),
		numbers:  make(map[string]*NumberFormatter),
		dates:    make(map[string]*DateFormatter),
		globals:  make(map[string]any),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Settings returns the site settings used by the helpers
func (r *FormatterRegistry) Settings() I18nConfig {
	return r.settings
}

// Register adds a helper for every locale
func (r *FormatterRegistry) Register(name string, fn any) {
	if name == "" || fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.globals[name] = fn
	r.funcCache = nil
}

// NumberFormatter returns the cached number formatter for locale
func (r *FormatterRegistry) NumberFormatter(locale string) *NumberFormatter {
	locale = r.cfg.localeOrDefault(locale)

	r.mu.RLock()
	f, ok := r.numbers[locale]
	r.mu.RUnlock()
	if ok {
		return f
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.numbers[locale]; ok {
		return f
	}
	f = r.cfg.NumberFormatter(locale)
	r.numbers[locale] = f
	return f
}

// DateFormatter returns the cached date formatter for locale
func (r *FormatterRegistry) DateFormatter(locale string) *DateFormatter {
	locale = r.cfg.localeOrDefault(locale)

	r.mu.RLock()
	f, ok := r.dates[locale]
	r.mu.RUnlock()
	if ok {
		return f
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.dates[locale]; ok {
		return f
	}
	f = r.cfg.DateFormatter(locale, r.settings)
	r.dates[locale] = f
	return f
}

// Formatter returns a single helper for locale
func (r *FormatterRegistry) Formatter(name, locale string) (any, bool) {
	fn, ok := r.funcMapForLocale(locale)[name]
	return fn, ok && fn != nil
}

// FuncMap returns the helpers bound to locale, ready for html/template
func (r *FormatterRegistry) FuncMap(locale string) map[string]any {
	return maps.Clone(r.funcMapForLocale(locale))
}

func (r *FormatterRegistry) funcMapForLocale(locale string) map[string]any {
	key := r.cfg.localeOrDefault(locale)

	r.mu.RLock()
	if cached, ok := r.funcCache[key]; ok {
		r.mu.RUnlock()
		return cached
	}
	r.mu.RUnlock()

	numbers := r.NumberFormatter(key)
	dates := r.DateFormatter(key)
	result := r.localeHelpers(numbers, dates)

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.funcCache[key]; ok {
		return cached
	}
	maps.Copy(result, r.globals)
	if r.funcCache == nil {
		r.funcCache = make(map[string]map[string]any)
	}
	r.funcCache[key] = result
	return result
}

func (r *FormatterRegistry) localeHelpers(numbers *NumberFormatter, dates *DateFormatter) map[string]any {
	currencies := r.cfg.CurrencyFormatter()
	converter := r.cfg.Converter()
	countries := r.cfg.Countries()
	names := r.cfg.NameFormatter(r.settings)
	display := WithDisplay(r.settings.CurrencyDisplay)

	return map[string]any{
		"format_number": func(v any) (string, error) {
			n, err := toFloat64(v)
			return numbers.FormatNumber(n), err
		},
		"format_integer": func(v any) (string, error) {
			n, err := toFloat64(v)
			return numbers.FormatInteger(n), err
		},
		"format_decimal": func(v any, decimals int) (string, error) {
			n, err := toFloat64(v)
			return numbers.FormatDecimal(n, decimals), err
		},
		"format_percent": func(v any) (string, error) {
			n, err := toFloat64(v)
			return numbers.FormatPercent(n), err
		},
		"format_compact": func(v any) (string, error) {
			n, err := toFloat64(v)
			return numbers.FormatCompact(n), err
		},
		"format_currency": func(v any, code string) (string, error) {
			n, err := toFloat64(v)
			return currencies.Format(n, code, display), err
		},
		"format_price": func(v any, from, to string) (string, error) {
			n, err := toFloat64(v)
			return currencies.FormatPrice(n, from, to, display), err
		},
		"site_price": func(v any, from string) (string, error) {
			n, err := toFloat64(v)
			return currencies.FormatPrice(n, from, r.settings.Currency, display), err
		},
		"convert_currency": func(v any, from, to string) (float64, error) {
			n, err := toFloat64(v)
			return converter.Convert(n, from, to), err
		},
		"currency_symbol": currencies.Symbol,
		"format_weight": func(v any, country string) (string, error) {
			n, err := toFloat64(v)
			return r.cfg.UnitFormatter(country).FormatWeight(n), err
		},
		"format_length": func(v any, country string) (string, error) {
			n, err := toFloat64(v)
			return r.cfg.UnitFormatter(country).FormatLength(n), err
		},
		"format_date":         dates.FormatDate,
		"format_short_date":   dates.FormatShortDate,
		"format_time":         dates.FormatTime,
		"format_datetime":     dates.FormatDateTime,
		"format_numeric_date": dates.FormatNumericDate,
		"format_relative":     func(t time.Time) string { return dates.FormatRelative(t, time.Now()) },
		"full_name":           func(first, last string) string { return names.FormatFullName(first, last, "") },
		"country_name":        countries.FormatCountryName,
		"country_flag":        CountryFlag,
		"format_phone":        FormatPhoneNumber,
	}
}
