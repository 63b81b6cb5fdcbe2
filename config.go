package i18n

import (
	"fmt"

	"go.uber.org/zap"
)

// Config captures the shared tables and defaults used to build formatters
type Config struct {
	DefaultLocale   string
	DefaultCurrency string
	DefaultCountry  string
	Logger          *zap.Logger

	loader          *CatalogLoader
	currencyCatalog *CurrencyCatalog
	exchangeRates   *ExchangeRateTable
	countryCatalog  *CountryCatalog
	unitResolver    *UnitSystemResolver
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = DefaultLocale
	}
	cfg.DefaultLocale = normalizeLocale(cfg.DefaultLocale)
	cfg.DefaultCurrency = normalizeCode(cfg.DefaultCurrency)
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = DefaultCurrency
	}
	cfg.DefaultCountry = normalizeCode(cfg.DefaultCountry)
	if cfg.DefaultCountry == "" {
		cfg.DefaultCountry = DefaultCountry
	}
	cfg.Logger = loggerOrNop(cfg.Logger)

	if err := cfg.loadTables(); err != nil {
		return nil, err
	}
	cfg.unitResolver = NewUnitSystemResolver(cfg.DefaultCountry)

	return cfg, nil
}

func (c *Config) loadTables() error {
	if c.loader == nil {
		if c.currencyCatalog == nil && c.DefaultCurrency == DefaultCurrency {
			c.currencyCatalog = DefaultCurrencyCatalog()
		}
		if c.exchangeRates == nil {
			c.exchangeRates = DefaultExchangeRateTable()
		}
		if c.countryCatalog == nil {
			c.countryCatalog = DefaultCountryCatalog()
		}
		c.loader = NewCatalogLoader()
	}

	if c.currencyCatalog == nil {
		configs, err := c.loader.LoadCurrencies()
		if err != nil {
			return err
		}
		catalog, err := NewCurrencyCatalog(configs, c.DefaultCurrency)
		if err != nil {
			return fmt.Errorf("build currency catalog: %w", err)
		}
		c.currencyCatalog = catalog
	}

	if c.exchangeRates == nil {
		base, rates, err := c.loader.LoadExchangeRates()
		if err != nil {
			return err
		}
		table, err := ParseExchangeRates(base, rates)
		if err != nil {
			return fmt.Errorf("build exchange rates: %w", err)
		}
		c.exchangeRates = table
	}

	if c.countryCatalog == nil {
		countries, err := c.loader.LoadCountries()
		if err != nil {
			return err
		}
		catalog, err := NewCountryCatalog(countries)
		if err != nil {
			return fmt.Errorf("build country catalog: %w", err)
		}
		c.countryCatalog = catalog
	}

	return nil
}

// WithDefaultLocale sets the locale used when callers pass none
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocale = locale
		return nil
	}
}

// WithDefaultCurrency sets the fallback for unknown currency codes
func WithDefaultCurrency(code string) Option {
	return func(c *Config) error {
		c.DefaultCurrency = code
		return nil
	}
}

// WithDefaultCountry sets the primary market used for unit resolution
func WithDefaultCountry(code string) Option {
	return func(c *Config) error {
		c.DefaultCountry = code
		return nil
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithCatalogLoader loads tables through loader instead of the embedded defaults only
func WithCatalogLoader(loader *CatalogLoader) Option {
	return func(c *Config) error {
		c.loader = loader
		return nil
	}
}

func WithCurrencyCatalog(catalog *CurrencyCatalog) Option {
	return func(c *Config) error {
		c.currencyCatalog = catalog
		return nil
	}
}

func WithExchangeRateTable(table *ExchangeRateTable) Option {
	return func(c *Config) error {
		c.exchangeRates = table
		return nil
	}
}

// WithExchangeRates builds a rate table from plain floats
func WithExchangeRates(base string, rates map[string]float64) Option {
	return func(c *Config) error {
		values := make(map[string]string, len(rates))
		for code, rate := range rates {
			values[code] = fmt.Sprint(rate)
		}
		table, err := ParseExchangeRates(base, values)
		if err != nil {
			return err
		}
		c.exchangeRates = table
		return nil
	}
}

func WithCountryCatalog(catalog *CountryCatalog) Option {
	return func(c *Config) error {
		c.countryCatalog = catalog
		return nil
	}
}

// CurrencyCatalog returns the configured currency table
func (c *Config) CurrencyCatalog() *CurrencyCatalog {
	if c == nil {
		return DefaultCurrencyCatalog()
	}
	return c.currencyCatalog
}

// ExchangeRates returns the configured rate table
func (c *Config) ExchangeRates() *ExchangeRateTable {
	if c == nil {
		return DefaultExchangeRateTable()
	}
	return c.exchangeRates
}

// Countries returns the configured country table
func (c *Config) Countries() *CountryCatalog {
	if c == nil {
		return DefaultCountryCatalog()
	}
	return c.countryCatalog
}

func (c *Config) Converter() *CurrencyConverter {
	return NewCurrencyConverter(c.ExchangeRates())
}

func (c *Config) CurrencyFormatter() *CurrencyFormatter {
	return NewCurrencyFormatter(c.CurrencyCatalog(), c.Converter())
}

// UnitResolver returns the resolver seeded with the default country
func (c *Config) UnitResolver() *UnitSystemResolver {
	if c == nil {
		return NewUnitSystemResolver("")
	}
	return c.unitResolver
}

// UnitFormatter returns the unit formatter for countryCode
func (c *Config) UnitFormatter(countryCode string) *UnitFormatter {
	return c.UnitResolver().Formatter(countryCode)
}

// NumberFormatter returns a formatter for locale, or the default locale when empty
func (c *Config) NumberFormatter(locale string) *NumberFormatter {
	return NewNumberFormatter(c.localeOrDefault(locale), WithNumberLogger(c.logger()))
}

// DateFormatter returns a date formatter for locale using the resolved site settings
func (c *Config) DateFormatter(locale string, settings I18nConfig) *DateFormatter {
	return NewDateFormatter(c.localeOrDefault(locale), WithDateLogger(c.logger()), WithI18nConfig(settings))
}

// NameFormatter returns a formatter following the configured name order
func (c *Config) NameFormatter(settings I18nConfig) *NameFormatter {
	return NameFormatterForOrder(settings.NameOrder)
}

// ResolveI18n merges partial over the platform defaults, using the configured
// default currency when the partial leaves it out.
func (c *Config) ResolveI18n(partial *PartialI18nConfig) I18nConfig {
	base := DefaultI18nConfig()
	if c != nil && c.DefaultCurrency != "" {
		base.Currency = c.DefaultCurrency
	}
	return partial.ApplyTo(base)
}

func (c *Config) localeOrDefault(locale string) string {
	if normalized := normalizeLocale(locale); normalized != "" {
		return normalized
	}
	if c == nil || c.DefaultLocale == "" {
		return DefaultLocale
	}
	return c.DefaultLocale
}

func (c *Config) logger() *zap.Logger {
	if c == nil {
		return zap.NewNop()
	}
	return loggerOrNop(c.Logger)
}
