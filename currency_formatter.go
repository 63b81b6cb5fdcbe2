package i18n

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

type currencyFormatOptions struct {
	showCode bool
	compact  bool
	display  CurrencyDisplay
}

// FormatOption adjusts a single CurrencyFormatter.Format call
type FormatOption func(*currencyFormatOptions)

// WithCode appends the ISO code after the formatted amount ("$100.00 USD")
func WithCode() FormatOption {
	return func(o *currencyFormatOptions) {
		o.showCode = true
	}
}

// WithCompact abbreviates the amount ("$1.2M")
func WithCompact() FormatOption {
	return func(o *currencyFormatOptions) {
		o.compact = true
	}
}

// WithDisplay selects whether the symbol, code or name labels the amount
func WithDisplay(display CurrencyDisplay) FormatOption {
	return func(o *currencyFormatOptions) {
		if display.Valid() {
			o.display = display
		}
	}
}

// CurrencyFormatter renders money using the rules of a CurrencyCatalog
type CurrencyFormatter struct {
	catalog   *CurrencyCatalog
	converter *CurrencyConverter
}

// NewCurrencyFormatter creates a formatter. Nil arguments use the embedded tables.
func NewCurrencyFormatter(catalog *CurrencyCatalog, converter *CurrencyConverter) *CurrencyFormatter {
	if converter == nil {
		converter = NewCurrencyConverter(nil)
	}
	return &CurrencyFormatter{
		catalog:   catalog.orDefault(),
		converter: converter,
	}
}

// Catalog returns the catalog backing the formatter
func (f *CurrencyFormatter) Catalog() *CurrencyCatalog {
	if f == nil {
		return DefaultCurrencyCatalog()
	}
	return f.catalog.orDefault()
}

// Format renders amount in currencyCode. Unknown codes use the catalog fallback;
// the sign always sits next to the number ("-$50.25", "-100,00 €").
func (f *CurrencyFormatter) Format(amount float64, currencyCode string, opts ...FormatOption) string {
	o := currencyFormatOptions{display: CurrencyDisplaySymbol}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	cfg := f.Catalog().Get(currencyCode)

	negative := amount < 0
	var digits string
	switch {
	case math.IsNaN(amount):
		digits, negative = "NaN", false
	case math.IsInf(amount, 0):
		digits = "∞"
	case o.compact:
		digits = compactNumber(math.Abs(amount), cfg.DecimalSeparator)
	default:
		var zero bool
		digits, zero = formatCurrencyDigits(math.Abs(amount), cfg)
		if zero {
			negative = false
		}
	}

	label, spaced := cfg.Symbol, false
	switch o.display {
	case CurrencyDisplayCode:
		label, spaced = cfg.Code, true
	case CurrencyDisplayName:
		label, spaced = cfg.Name, true
	}

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	if cfg.SymbolPosition == SymbolAfter {
		b.WriteString(digits)
		b.WriteString(" ")
		b.WriteString(label)
	} else {
		b.WriteString(label)
		if spaced {
			b.WriteString(" ")
		}
		b.WriteString(digits)
	}

	if o.showCode && o.display != CurrencyDisplayCode {
		b.WriteString(" ")
		b.WriteString(cfg.Code)
	}

	return b.String()
}

// formatCurrencyDigits rounds half up to the currency precision and applies its
// separators. zero reports whether the rounded value is zero.
func formatCurrencyDigits(amount float64, cfg CurrencyConfig) (digits string, zero bool) {
	rounded := decimal.NewFromFloat(amount).Round(int32(cfg.DecimalPlaces))
	fixed := rounded.StringFixed(int32(cfg.DecimalPlaces))

	integer, fraction, _ := strings.Cut(fixed, ".")
	digits = groupDigits(integer, cfg.ThousandsSeparator)
	if cfg.DecimalPlaces > 0 {
		digits += cfg.DecimalSeparator + fraction
	}
	return digits, rounded.IsZero()
}

// FormatRange renders "<min> - <max>" in the same currency
func (f *CurrencyFormatter) FormatRange(minAmount, maxAmount float64, currencyCode string, opts ...FormatOption) string {
	return f.Format(minAmount, currencyCode, opts...) + " - " + f.Format(maxAmount, currencyCode, opts...)
}

// FormatPrice converts amount from its currency into the display currency and formats it
func (f *CurrencyFormatter) FormatPrice(amount float64, from, display string, opts ...FormatOption) string {
	converter := NewCurrencyConverter(nil)
	if f != nil && f.converter != nil {
		converter = f.converter
	}
	return f.Format(converter.Convert(amount, from, display), display, opts...)
}

// Symbol returns the symbol of code, or the code itself when unknown
func (f *CurrencyFormatter) Symbol(code string) string {
	return f.Catalog().Symbol(code)
}
