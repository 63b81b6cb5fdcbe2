package i18n

import (
	"math"
	"strings"
	"testing"
	"unicode"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestCurrencyFormatterFormat(t *testing.T) {
	formatter := NewCurrencyFormatter(nil, nil)

	tests := []struct {
		name   string
		amount float64
		code   string
		opts   []FormatOption
		want   string
	}{
		{"dollars", 100, "USD", nil, "$100.00"},
		{"negative sign next to number", -50.25, "USD", nil, "-$50.25"},
		{"rounds half up", 10.999, "USD", nil, "$11.00"},
		{"rounds half up at precision", 1.005, "USD", nil, "$1.01"},
		{"grouping", 1234567.89, "USD", nil, "$1,234,567.89"},
		{"with code", 100, "USD", []FormatOption{WithCode()}, "$100.00 USD"},
		{"symbol after", 100, "EUR", nil, "100,00 €"},
		{"symbol after grouped", 1234.5, "EUR", nil, "1.234,50 €"},
		{"negative symbol after", -100, "EUR", nil, "-100,00 €"},
		{"apostrophe grouping", 1000, "CHF", nil, "CHF1'000.00"},
		{"space grouping", 10000, "SEK", nil, "10 000,00 kr"},
		{"no subunits", 1000, "JPY", nil, "¥1,000"},
		{"no subunits rounds", 1000.5, "JPY", nil, "¥1,001"},
		{"won", 100, "KRW", nil, "₩100"},
		{"real", 100, "BRL", nil, "R$100,00"},
		{"zloty", 100, "PLN", nil, "100,00 zł"},
		{"lower case code", 5, "gbp", nil, "£5.00"},
		{"unknown code uses fallback", 5, "XYZ", nil, "$5.00"},
		{"empty code uses fallback", 5, "", nil, "$5.00"},
		{"negative zero", -0.001, "USD", nil, "$0.00"},
		{"compact", 1234567, "USD", []FormatOption{WithCompact()}, "$1.2M"},
		{"compact after", 1500, "EUR", []FormatOption{WithCompact()}, "1,5K €"},
		{"compact negative", -2500, "USD", []FormatOption{WithCompact()}, "-$2.5K"},
		{"code display", 100, "USD", []FormatOption{WithDisplay(CurrencyDisplayCode)}, "USD 100.00"},
		{"code display after", 100, "EUR", []FormatOption{WithDisplay(CurrencyDisplayCode)}, "100,00 EUR"},
		{"code display with code", 100, "USD", []FormatOption{WithDisplay(CurrencyDisplayCode), WithCode()}, "USD 100.00"},
		{"name display", 100, "USD", []FormatOption{WithDisplay(CurrencyDisplayName)}, "US Dollar 100.00"},
		{"invalid display ignored", 100, "USD", []FormatOption{WithDisplay("loud")}, "$100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatter.Format(tt.amount, tt.code, tt.opts...); got != tt.want {
				t.Errorf("Format(%v, %q) = %q, want %q", tt.amount, tt.code, got, tt.want)
			}
		})
	}
}

func TestCurrencyFormatterNonFinite(t *testing.T) {
	formatter := NewCurrencyFormatter(nil, nil)

	for _, value := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		first := formatter.Format(value, "USD")
		if first == "" {
			t.Fatalf("Format(%v) returned an empty string", value)
		}
		if again := formatter.Format(value, "USD"); again != first {
			t.Errorf("Format(%v) is not deterministic: %q then %q", value, first, again)
		}
	}
}

func TestCurrencyFormatterRangeAndPrice(t *testing.T) {
	formatter := NewCurrencyFormatter(nil, nil)

	if got := formatter.FormatRange(10, 20, "USD"); got != "$10.00 - $20.00" {
		t.Errorf("FormatRange = %q", got)
	}

	if got := formatter.FormatPrice(100, "USD", "EUR"); got != "92,00 €" {
		t.Errorf("FormatPrice = %q, want %q", got, "92,00 €")
	}

	if got := formatter.FormatPrice(19.99, "EUR", "EUR"); got != "19,99 €" {
		t.Errorf("FormatPrice same currency = %q", got)
	}

	if got := formatter.Symbol("gbp"); got != "£" {
		t.Errorf("Symbol(gbp) = %q", got)
	}
	if got := formatter.Symbol("xyz"); got != "XYZ" {
		t.Errorf("Symbol(xyz) = %q", got)
	}
}

func TestNilCurrencyFormatter(t *testing.T) {
	var formatter *CurrencyFormatter
	if got := formatter.Format(1, "USD"); got != "$1.00" {
		t.Errorf("nil formatter Format = %q", got)
	}
	if got := formatter.FormatPrice(1, "USD", "USD"); got != "$1.00" {
		t.Errorf("nil formatter FormatPrice = %q", got)
	}
}

func TestCurrencyFormatterDecimalPlaces(t *testing.T) {
	formatter := NewCurrencyFormatter(nil, nil)
	catalog := formatter.Catalog()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("fraction digits match the currency precision", prop.ForAll(
		func(amount float64, code string) bool {
			cfg := catalog.Get(code)
			out := strings.TrimPrefix(formatter.Format(amount, code), "-")
			digits := strings.TrimSpace(strings.Replace(out, cfg.Symbol, "", 1))

			if cfg.DecimalPlaces == 0 {
				return !strings.Contains(digits, cfg.DecimalSeparator)
			}

			idx := strings.LastIndex(digits, cfg.DecimalSeparator)
			if idx < 0 {
				return false
			}
			fraction := digits[idx+len(cfg.DecimalSeparator):]
			if len(fraction) != cfg.DecimalPlaces {
				return false
			}
			for _, r := range fraction {
				if !unicode.IsDigit(r) {
					return false
				}
			}
			return true
		},
		gen.Float64Range(-1e9, 1e9),
		gen.OneConstOf("USD", "EUR", "GBP", "JPY", "CHF", "SEK", "KRW", "BRL", "PLN", "IDR"),
	))

	properties.TestingRun(t)
}
