package i18n

import (
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.DefaultLocale != DefaultLocale {
		t.Errorf("DefaultLocale = %q", cfg.DefaultLocale)
	}
	if cfg.DefaultCurrency != "USD" || cfg.DefaultCountry != "US" {
		t.Errorf("defaults = %s / %s", cfg.DefaultCurrency, cfg.DefaultCountry)
	}
	if cfg.Logger == nil {
		t.Error("expected a no-op logger")
	}
	if cfg.CurrencyCatalog() != DefaultCurrencyCatalog() {
		t.Error("default config should share the embedded currency catalog")
	}
	if cfg.UnitResolver().Resolve("") != UnitSystemImperial {
		t.Error("the primary market should resolve to imperial units")
	}
}

func TestNewConfigOptions(t *testing.T) {
	cfg, err := NewConfig(
		WithDefaultLocale("de_DE"),
		WithDefaultCurrency("eur"),
		WithDefaultCountry("de"),
		WithLogger(zap.NewNop()),
		nil,
	)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	if cfg.DefaultLocale != "de-DE" || cfg.DefaultCurrency != "EUR" || cfg.DefaultCountry != "DE" {
		t.Fatalf("options not normalized: %+v", cfg)
	}
	if got := cfg.CurrencyCatalog().Fallback(); got != "EUR" {
		t.Errorf("catalog fallback = %q", got)
	}
	if got := cfg.CurrencyFormatter().Format(5, "XYZ"); got != "5,00 €" {
		t.Errorf("unknown code with EUR default = %q", got)
	}
	if got := cfg.UnitFormatter("").FormatWeight(500); got != "500 g" {
		t.Errorf("default country weight = %q", got)
	}
	if got := cfg.NumberFormatter("").Locale(); got != "de-DE" {
		t.Errorf("NumberFormatter default locale = %q", got)
	}
	if got := cfg.ResolveI18n(nil).Currency; got != "EUR" {
		t.Errorf("ResolveI18n base currency = %q", got)
	}
}

func TestNewConfigErrors(t *testing.T) {
	if _, err := NewConfig(WithDefaultCurrency("XAU")); !errors.Is(err, ErrInvalidCatalog) {
		t.Errorf("currency missing from the table: %v", err)
	}
	if _, err := NewConfig(WithExchangeRates("USD", map[string]float64{"EUR": -1})); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("negative rate: %v", err)
	}

	failing := func(*Config) error { return errors.New("boom") }
	if _, err := NewConfig(failing); err == nil {
		t.Error("option errors should be returned")
	}
}

func TestNilConfig(t *testing.T) {
	var cfg *Config

	if got := cfg.CurrencyFormatter().Format(100, "USD"); got != "$100.00" {
		t.Errorf("Format = %q", got)
	}
	if got := cfg.UnitFormatter("DE").FormatWeight(999); got != "999 g" {
		t.Errorf("FormatWeight = %q", got)
	}
	if got := cfg.NumberFormatter("").Locale(); got != DefaultLocale {
		t.Errorf("Locale = %q", got)
	}
	if got := cfg.ResolveI18n(nil); got != DefaultI18nConfig() {
		t.Errorf("ResolveI18n = %+v", got)
	}
	if got := cfg.Countries().FormatCountryName("FR"); got != "France" {
		t.Errorf("FormatCountryName = %q", got)
	}
}

func TestSitePriceScenario(t *testing.T) {
	cfg, err := NewConfig(WithExchangeRates("USD", map[string]float64{"USD": 1, "GBP": 0.8}))
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	settings := cfg.ResolveI18n(&PartialI18nConfig{Currency: ptr("GBP")})
	got := cfg.CurrencyFormatter().FormatPrice(100, "USD", settings.Currency)
	if got != "£80.00" {
		t.Errorf("FormatPrice = %q, want %q", got, "£80.00")
	}

	if got := cfg.NumberFormatter("en-US").FormatPercent(45.56); got != "45.6%" {
		t.Errorf("FormatPercent = %q", got)
	}
}
