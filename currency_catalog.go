package i18n

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/text/currency"
)

// SymbolPosition places the currency symbol relative to the amount
type SymbolPosition string

const (
	SymbolBefore SymbolPosition = "before"
	SymbolAfter  SymbolPosition = "after"
)

// DefaultCurrency is used when a code is empty or unknown
const DefaultCurrency = "USD"

// CurrencyConfig holds the display rules for one currency
type CurrencyConfig struct {
	Code               string         `yaml:"code" json:"code"`
	Symbol             string         `yaml:"symbol" json:"symbol"`
	Name               string         `yaml:"name" json:"name"`
	DecimalPlaces      int            `yaml:"decimal_places" json:"decimal_places"`
	SymbolPosition     SymbolPosition `yaml:"symbol_position" json:"symbol_position"`
	ThousandsSeparator string         `yaml:"thousands_separator" json:"thousands_separator"`
	DecimalSeparator   string         `yaml:"decimal_separator" json:"decimal_separator"`
}

// CurrencyCatalog is an immutable lookup of currency display rules
type CurrencyCatalog struct {
	currencies map[string]CurrencyConfig
	codes      []string
	fallback   string
}

// NewCurrencyCatalog validates configs and builds a catalog. fallback names the
// currency returned for unknown codes and must be part of configs.
func NewCurrencyCatalog(configs []CurrencyConfig, fallback string) (*CurrencyCatalog, error) {
	fallback = normalizeCode(fallback)
	if fallback == "" {
		fallback = DefaultCurrency
	}

	catalog := &CurrencyCatalog{
		currencies: make(map[string]CurrencyConfig, len(configs)),
		codes:      make([]string, 0, len(configs)),
		fallback:   fallback,
	}

	for _, cfg := range configs {
		normalized, err := normalizeCurrencyConfig(cfg)
		if err != nil {
			return nil, err
		}
		if _, exists := catalog.currencies[normalized.Code]; !exists {
			catalog.codes = append(catalog.codes, normalized.Code)
		}
		catalog.currencies[normalized.Code] = normalized
	}

	if _, ok := catalog.currencies[fallback]; !ok {
		return nil, fmt.Errorf("%w: fallback currency %q not in catalog", ErrInvalidCatalog, fallback)
	}

	sort.Strings(catalog.codes)
	return catalog, nil
}

func normalizeCurrencyConfig(cfg CurrencyConfig) (CurrencyConfig, error) {
	cfg.Code = normalizeCode(cfg.Code)
	if _, err := currency.ParseISO(cfg.Code); err != nil {
		return cfg, fmt.Errorf("%w: currency %q: %v", ErrInvalidCatalog, cfg.Code, err)
	}
	if cfg.DecimalPlaces < 0 {
		return cfg, fmt.Errorf("%w: currency %q has negative decimal places", ErrInvalidCatalog, cfg.Code)
	}

	switch cfg.SymbolPosition {
	case SymbolBefore, SymbolAfter:
	case "":
		cfg.SymbolPosition = SymbolBefore
	default:
		return cfg, fmt.Errorf("%w: currency %q has symbol position %q", ErrInvalidCatalog, cfg.Code, cfg.SymbolPosition)
	}

	if cfg.Symbol == "" {
		cfg.Symbol = cfg.Code
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Code
	}
	if cfg.DecimalSeparator == "" {
		cfg.DecimalSeparator = "."
	}
	return cfg, nil
}

var defaultCurrencyCatalog = sync.OnceValues(func() (*CurrencyCatalog, error) {
	configs, err := NewCatalogLoader().LoadCurrencies()
	if err != nil {
		return nil, err
	}
	return NewCurrencyCatalog(configs, DefaultCurrency)
})

// DefaultCurrencyCatalog returns the catalog built from the embedded table
func DefaultCurrencyCatalog() *CurrencyCatalog {
	catalog, err := defaultCurrencyCatalog()
	if err != nil {
		panic(fmt.Sprintf("i18n: embedded currency table: %v", err))
	}
	return catalog
}

func (c *CurrencyCatalog) orDefault() *CurrencyCatalog {
	if c == nil {
		return DefaultCurrencyCatalog()
	}
	return c
}

// Get returns the rules for code. Lookups are case insensitive and unknown
// codes resolve to the fallback currency.
func (c *CurrencyCatalog) Get(code string) CurrencyConfig {
	c = c.orDefault()
	if cfg, ok := c.currencies[normalizeCode(code)]; ok {
		return cfg
	}
	return c.currencies[c.fallback]
}

// Lookup is the strict form of Get
func (c *CurrencyCatalog) Lookup(code string) (CurrencyConfig, error) {
	c = c.orDefault()
	cfg, ok := c.currencies[normalizeCode(code)]
	if !ok {
		return CurrencyConfig{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return cfg, nil
}

// Has reports whether code is part of the catalog
func (c *CurrencyCatalog) Has(code string) bool {
	_, ok := c.orDefault().currencies[normalizeCode(code)]
	return ok
}

// Symbol returns the symbol for code, or the code itself when it is unknown
func (c *CurrencyCatalog) Symbol(code string) string {
	normalized := normalizeCode(code)
	if cfg, ok := c.orDefault().currencies[normalized]; ok {
		return cfg.Symbol
	}
	return normalized
}

// Codes returns the supported codes sorted alphabetically
func (c *CurrencyCatalog) Codes() []string {
	c = c.orDefault()
	return append([]string(nil), c.codes...)
}

// Fallback returns the code used for unknown lookups
func (c *CurrencyCatalog) Fallback() string {
	return c.orDefault().fallback
}
