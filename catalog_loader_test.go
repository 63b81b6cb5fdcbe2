package i18n

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeDataFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCatalogLoaderDefaults(t *testing.T) {
	loader := NewCatalogLoader()

	currencies, err := loader.LoadCurrencies()
	if err != nil {
		t.Fatalf("LoadCurrencies: %v", err)
	}
	if len(currencies) == 0 || currencies[0].Code != "USD" {
		t.Fatalf("unexpected currency table: %d entries", len(currencies))
	}

	base, rates, err := loader.LoadExchangeRates()
	if err != nil {
		t.Fatalf("LoadExchangeRates: %v", err)
	}
	if base != "USD" || rates["GBP"] != "0.79" {
		t.Errorf("base %q, GBP %q", base, rates["GBP"])
	}

	countries, err := loader.LoadCountries()
	if err != nil {
		t.Fatalf("LoadCountries: %v", err)
	}
	if len(countries) == 0 {
		t.Fatal("no countries")
	}
}

func TestCatalogLoaderOverrides(t *testing.T) {
	currencies := writeDataFile(t, "currencies.yaml", `
currencies:
  - code: usd
    symbol: "US$"
    name: "US Dollar"
    decimal_places: 2
    thousands_separator: ","
  - code: TRY
    symbol: "₺"
    name: "Turkish Lira"
    decimal_places: 2
    symbol_position: before
    thousands_separator: "."
    decimal_separator: ","
`)
	rates := writeDataFile(t, "rates.json", `{"rates": {"EUR": "0.9", "TRY": "32.1"}}`)
	countries := writeDataFile(t, "countries.yml", `
countries:
  - code: TR
    name: "Türkiye"
    currency: TRY
`)

	loader := NewCatalogLoader().
		WithCurrencyOverrides(currencies, " ").
		WithExchangeRateOverrides(rates).
		WithCountryOverrides(countries)

	cfg, err := NewConfig(WithCatalogLoader(loader))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	formatter := cfg.CurrencyFormatter()
	if got := formatter.Format(1234.5, "USD"); got != "US$1,234.50" {
		t.Errorf("overridden USD = %q", got)
	}
	if got := formatter.Format(1234.5, "TRY"); got != "₺1.234,50" {
		t.Errorf("added TRY = %q", got)
	}
	if !slices.Contains(cfg.CurrencyCatalog().Codes(), "EUR") {
		t.Error("embedded currencies should survive an override")
	}

	if got := cfg.Converter().Convert(100, "USD", "EUR"); got != 90 {
		t.Errorf("overridden EUR rate gives %v", got)
	}
	if _, ok := cfg.ExchangeRates().Rate("GBP"); !ok {
		t.Error("embedded rates should survive an override")
	}

	if got := cfg.Countries().FormatCountryName("TR"); got != "Türkiye" {
		t.Errorf("added country = %q", got)
	}
}

func TestCatalogLoaderErrors(t *testing.T) {
	tests := []struct {
		name   string
		loader *CatalogLoader
	}{
		{"missing file", NewCatalogLoader().WithCurrencyOverrides(filepath.Join(t.TempDir(), "missing.yaml"))},
		{"unsupported format", NewCatalogLoader().WithCountryOverrides(writeDataFile(t, "countries.txt", "countries: []"))},
		{"malformed yaml", NewCatalogLoader().WithExchangeRateOverrides(writeDataFile(t, "rates.yaml", "rates: [unterminated"))},
		{"invalid rate", NewCatalogLoader().WithExchangeRateOverrides(writeDataFile(t, "rates.json", `{"rates": {"EUR": "-1"}}`))},
		{"invalid currency", NewCatalogLoader().WithCurrencyOverrides(writeDataFile(t, "bad.json", `{"currencies": [{"code": "ZZZZ"}]}`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewConfig(WithCatalogLoader(tt.loader)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestNewCurrencyCatalog(t *testing.T) {
	usd := CurrencyConfig{Code: "USD", Symbol: "$", DecimalPlaces: 2}

	tests := []struct {
		name     string
		configs  []CurrencyConfig
		fallback string
	}{
		{"unknown ISO code", []CurrencyConfig{usd, {Code: "DOGE"}}, "USD"},
		{"negative precision", []CurrencyConfig{usd, {Code: "EUR", DecimalPlaces: -1}}, "USD"},
		{"bad symbol position", []CurrencyConfig{usd, {Code: "EUR", SymbolPosition: "middle"}}, "USD"},
		{"fallback missing", []CurrencyConfig{usd}, "EUR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCurrencyCatalog(tt.configs, tt.fallback); !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}

	catalog, err := NewCurrencyCatalog([]CurrencyConfig{{Code: "eur"}}, "eur")
	if err != nil {
		t.Fatalf("NewCurrencyCatalog: %v", err)
	}
	eur := catalog.Get("EUR")
	if eur.Symbol != "EUR" || eur.SymbolPosition != SymbolBefore || eur.DecimalSeparator != "." {
		t.Errorf("defaults not applied: %+v", eur)
	}
	if catalog.Fallback() != "EUR" || catalog.Get("USD").Code != "EUR" {
		t.Error("unknown codes should resolve to the fallback")
	}
	if _, err := catalog.Lookup("USD"); !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("Lookup(USD) error = %v", err)
	}
	if !catalog.Has("eur") || catalog.Has("usd") {
		t.Error("Has")
	}
}
