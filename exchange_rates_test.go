package i18n

import (
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

func TestConvert(t *testing.T) {
	converter := NewCurrencyConverter(nil)

	tests := []struct {
		name     string
		amount   float64
		from, to string
		want     float64
	}{
		{"same currency", 19.99, "EUR", "EUR", 19.99},
		{"same currency mixed case", 19.99, "eur", "EUR", 19.99},
		{"base to other", 100, "USD", "EUR", 92},
		{"other to base", 79, "GBP", "USD", 100},
		{"cross rate", 92, "EUR", "GBP", 79},
		{"unknown source counts as one", 10, "XYZ", "GBP", 7.9},
		{"unknown target counts as one", 79, "GBP", "XYZ", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := converter.Convert(tt.amount, tt.from, tt.to)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Convert(%v, %s, %s) = %v, want %v", tt.amount, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestConvertStrict(t *testing.T) {
	converter := NewCurrencyConverter(nil)

	if _, err := converter.ConvertStrict(1, "USD", "XYZ"); !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency, got %v", err)
	}

	got, err := converter.ConvertStrict(100, "USD", "EUR")
	if err != nil {
		t.Fatalf("ConvertStrict: %v", err)
	}
	if math.Abs(got-92) > 1e-9 {
		t.Errorf("ConvertStrict = %v, want 92", got)
	}
}

func TestConvertDecimal(t *testing.T) {
	converter := NewCurrencyConverter(nil)

	got := converter.ConvertDecimal(decimal.RequireFromString("100"), "USD", "GBP")
	if !got.Equal(decimal.RequireFromString("79")) {
		t.Errorf("ConvertDecimal = %s, want 79", got)
	}
}

func TestNewExchangeRateTable(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		rates map[string]string
		err   bool
	}{
		{"valid", "USD", map[string]string{"EUR": "0.9"}, false},
		{"base added", "usd", map[string]string{}, false},
		{"zero rate", "USD", map[string]string{"EUR": "0"}, true},
		{"negative rate", "USD", map[string]string{"EUR": "-1"}, true},
		{"base not one", "USD", map[string]string{"USD": "2"}, true},
		{"not a number", "USD", map[string]string{"EUR": "abc"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ParseExchangeRates(tt.base, tt.rates)
			if tt.err {
				if !errors.Is(err, ErrInvalidRate) {
					t.Fatalf("expected ErrInvalidRate, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseExchangeRates: %v", err)
			}
			rate, ok := table.Rate(table.Base())
			if !ok || !rate.Equal(decimal.NewFromInt(1)) {
				t.Errorf("base rate = %s, %v", rate, ok)
			}
		})
	}
}

func TestDefaultExchangeRateTable(t *testing.T) {
	table := DefaultExchangeRateTable()
	if table.Base() != "USD" {
		t.Fatalf("Base = %q", table.Base())
	}
	for _, code := range table.Codes() {
		rate, _ := table.Rate(code)
		if !rate.IsPositive() {
			t.Errorf("rate for %s is %s", code, rate)
		}
	}

	var nilTable *ExchangeRateTable
	if nilTable.Base() != "USD" {
		t.Errorf("nil table should use the embedded rates")
	}
}

var currencyCodes = gen.OneConstOf("USD", "EUR", "GBP", "JPY", "KRW", "CHF", "BRL", "INR", "XYZ")

func TestConversionProperties(t *testing.T) {
	converter := NewCurrencyConverter(nil)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("converting to the same currency is exact", prop.ForAll(
		func(amount float64, code string) bool {
			return converter.Convert(amount, code, code) == amount
		},
		gen.Float64Range(-1e12, 1e12),
		currencyCodes,
	))

	properties.Property("conversion is transitive", prop.ForAll(
		func(amount float64, a, b, c string) bool {
			via := converter.Convert(converter.Convert(amount, a, b), b, c)
			direct := converter.Convert(amount, a, c)
			return math.Abs(via-direct) <= 1e-6+1e-9*math.Abs(direct)
		},
		gen.Float64Range(-1e6, 1e6),
		currencyCodes,
		currencyCodes,
		currencyCodes,
	))

	properties.TestingRun(t)
}
