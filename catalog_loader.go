package i18n

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/currencies.yaml
var defaultCurrenciesYAML []byte

//go:embed data/exchange_rates.yaml
var defaultExchangeRatesYAML []byte

//go:embed data/countries.yaml
var defaultCountriesYAML []byte

type currencyFile struct {
	Currencies []CurrencyConfig `yaml:"currencies" json:"currencies"`
}

type exchangeRateFile struct {
	Base  string            `yaml:"base" json:"base"`
	Rates map[string]string `yaml:"rates" json:"rates"`
}

type countryFile struct {
	Countries []Country `yaml:"countries" json:"countries"`
}

// CatalogLoader reads the static currency, exchange rate and country tables.
// The embedded tables are always loaded first; override files are merged on top,
// entry by entry, so a deployment only has to list what it changes.
type CatalogLoader struct {
	currencyOverrides []string
	rateOverrides     []string
	countryOverrides  []string
}

// NewCatalogLoader creates a loader backed by the embedded tables
func NewCatalogLoader() *CatalogLoader {
	return &CatalogLoader{}
}

// WithCurrencyOverrides registers JSON or YAML files merged over the currency table
func (l *CatalogLoader) WithCurrencyOverrides(paths ...string) *CatalogLoader {
	l.currencyOverrides = append(l.currencyOverrides, compactPaths(paths)...)
	return l
}

// WithExchangeRateOverrides registers files merged over the exchange rate table
func (l *CatalogLoader) WithExchangeRateOverrides(paths ...string) *CatalogLoader {
	l.rateOverrides = append(l.rateOverrides, compactPaths(paths)...)
	return l
}

// WithCountryOverrides registers files merged over the country table
func (l *CatalogLoader) WithCountryOverrides(paths ...string) *CatalogLoader {
	l.countryOverrides = append(l.countryOverrides, compactPaths(paths)...)
	return l
}

// LoadCurrencies returns the merged currency table in file order
func (l *CatalogLoader) LoadCurrencies() ([]CurrencyConfig, error) {
	var base currencyFile
	if err := decodeDataFile("currencies.yaml", defaultCurrenciesYAML, &base); err != nil {
		return nil, fmt.Errorf("parse default currencies: %w", err)
	}

	merged := base.Currencies
	for _, path := range l.overridePaths(l.currencyOverrides) {
		var override currencyFile
		if err := readDataFile(path, &override); err != nil {
			return nil, fmt.Errorf("load currency override: %w", err)
		}
		merged = mergeByCode(merged, override.Currencies, func(c CurrencyConfig) string { return c.Code })
	}

	return merged, nil
}

// LoadExchangeRates returns the base currency and the merged rate strings
func (l *CatalogLoader) LoadExchangeRates() (string, map[string]string, error) {
	var base exchangeRateFile
	if err := decodeDataFile("exchange_rates.yaml", defaultExchangeRatesYAML, &base); err != nil {
		return "", nil, fmt.Errorf("parse default exchange rates: %w", err)
	}

	rates := make(map[string]string, len(base.Rates))
	for code, rate := range base.Rates {
		rates[normalizeCode(code)] = rate
	}

	baseCode := base.Base
	for _, path := range l.overridePaths(l.rateOverrides) {
		var override exchangeRateFile
		if err := readDataFile(path, &override); err != nil {
			return "", nil, fmt.Errorf("load exchange rate override: %w", err)
		}
		if override.Base != "" {
			baseCode = override.Base
		}
		for code, rate := range override.Rates {
			rates[normalizeCode(code)] = rate
		}
	}

	return normalizeCode(baseCode), rates, nil
}

// LoadCountries returns the merged country table
func (l *CatalogLoader) LoadCountries() ([]Country, error) {
	var base countryFile
	if err := decodeDataFile("countries.yaml", defaultCountriesYAML, &base); err != nil {
		return nil, fmt.Errorf("parse default countries: %w", err)
	}

	merged := base.Countries
	for _, path := range l.overridePaths(l.countryOverrides) {
		var override countryFile
		if err := readDataFile(path, &override); err != nil {
			return nil, fmt.Errorf("load country override: %w", err)
		}
		merged = mergeByCode(merged, override.Countries, func(c Country) string { return c.Code })
	}

	return merged, nil
}

func (l *CatalogLoader) overridePaths(paths []string) []string {
	if l == nil {
		return nil
	}
	return paths
}

// mergeByCode replaces entries of dest that share a code with src and appends the rest
func mergeByCode[T any](dest, src []T, code func(T) string) []T {
	if len(src) == 0 {
		return dest
	}

	index := make(map[string]int, len(dest))
	result := make([]T, len(dest), len(dest)+len(src))
	copy(result, dest)
	for i, item := range result {
		index[normalizeCode(code(item))] = i
	}

	for _, item := range src {
		key := normalizeCode(code(item))
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			result[i] = item
			continue
		}
		index[key] = len(result)
		result = append(result, item)
	}

	return result
}

func readDataFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return decodeDataFile(path, data, out)
}

func decodeDataFile(path string, data []byte, out any) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported catalog format %q", ext)
	}
	return nil
}

func compactPaths(paths []string) []string {
	result := make([]string, 0, len(paths))
	for _, path := range paths {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
