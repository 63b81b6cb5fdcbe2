package i18n

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// ExchangeRateTable maps currency codes to their value relative to a base currency
type ExchangeRateTable struct {
	base  string
	rates map[string]decimal.Decimal
}

// NewExchangeRateTable validates rates and builds a table. The base currency is
// added with a rate of exactly one when missing; any other value is rejected.
func NewExchangeRateTable(base string, rates map[string]decimal.Decimal) (*ExchangeRateTable, error) {
	base = normalizeCode(base)
	if base == "" {
		base = DefaultCurrency
	}

	table := &ExchangeRateTable{
		base:  base,
		rates: make(map[string]decimal.Decimal, len(rates)+1),
	}

	for code, rate := range rates {
		code = normalizeCode(code)
		if code == "" {
			continue
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("%w: %s=%s", ErrInvalidRate, code, rate.String())
		}
		table.rates[code] = rate
	}

	one := decimal.NewFromInt(1)
	if rate, ok := table.rates[base]; ok && !rate.Equal(one) {
		return nil, fmt.Errorf("%w: base currency %s must have rate 1, got %s", ErrInvalidRate, base, rate.String())
	}
	table.rates[base] = one

	return table, nil
}

// ParseExchangeRates builds a table from rate strings such as those in the embedded YAML
func ParseExchangeRates(base string, rates map[string]string) (*ExchangeRateTable, error) {
	parsed := make(map[string]decimal.Decimal, len(rates))
	for code, raw := range rates {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q: %v", ErrInvalidRate, code, raw, err)
		}
		parsed[code] = rate
	}
	return NewExchangeRateTable(base, parsed)
}

var defaultExchangeRates = sync.OnceValues(func() (*ExchangeRateTable, error) {
	base, rates, err := NewCatalogLoader().LoadExchangeRates()
	if err != nil {
		return nil, err
	}
	return ParseExchangeRates(base, rates)
})

// DefaultExchangeRateTable returns the table built from the embedded rates
func DefaultExchangeRateTable() *ExchangeRateTable {
	table, err := defaultExchangeRates()
	if err != nil {
		panic(fmt.Sprintf("i18n: embedded exchange rates: %v", err))
	}
	return table
}

func (t *ExchangeRateTable) orDefault() *ExchangeRateTable {
	if t == nil {
		return DefaultExchangeRateTable()
	}
	return t
}

// Base returns the reference currency
func (t *ExchangeRateTable) Base() string {
	return t.orDefault().base
}

// Rate returns the rate for code and whether it is known
func (t *ExchangeRateTable) Rate(code string) (decimal.Decimal, bool) {
	rate, ok := t.orDefault().rates[normalizeCode(code)]
	return rate, ok
}

// rateOrOne treats unknown codes as rate one
func (t *ExchangeRateTable) rateOrOne(code string) decimal.Decimal {
	if rate, ok := t.Rate(code); ok {
		return rate
	}
	return decimal.NewFromInt(1)
}

// Codes returns the currencies with a known rate
func (t *ExchangeRateTable) Codes() []string {
	t = t.orDefault()
	codes := make([]string, 0, len(t.rates))
	for code := range t.rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// CurrencyConverter converts amounts through the base currency of a rate table
type CurrencyConverter struct {
	rates *ExchangeRateTable
}

// NewCurrencyConverter creates a converter; a nil table uses the embedded rates
func NewCurrencyConverter(rates *ExchangeRateTable) *CurrencyConverter {
	return &CurrencyConverter{rates: rates.orDefault()}
}

func (c *CurrencyConverter) table() *ExchangeRateTable {
	if c == nil {
		return DefaultExchangeRateTable()
	}
	return c.rates.orDefault()
}

// Rates returns the table backing the converter
func (c *CurrencyConverter) Rates() *ExchangeRateTable {
	return c.table()
}

// Convert converts amount from one currency to another. Identical codes return
// amount untouched and unknown codes count as rate one.
func (c *CurrencyConverter) Convert(amount float64, from, to string) float64 {
	from, to = normalizeCode(from), normalizeCode(to)
	if from == to {
		return amount
	}

	table := c.table()
	fromRate, toRate := table.rateOrOne(from), table.rateOrOne(to)

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return amount / fromRate.InexactFloat64() * toRate.InexactFloat64()
	}

	converted, _ := decimal.NewFromFloat(amount).Div(fromRate).Mul(toRate).Float64()
	return converted
}

// ConvertDecimal is Convert for callers that keep amounts as decimals
func (c *CurrencyConverter) ConvertDecimal(amount decimal.Decimal, from, to string) decimal.Decimal {
	from, to = normalizeCode(from), normalizeCode(to)
	if from == to {
		return amount
	}

	table := c.table()
	return amount.Div(table.rateOrOne(from)).Mul(table.rateOrOne(to))
}

// ConvertStrict converts like Convert but rejects codes without a known rate
func (c *CurrencyConverter) ConvertStrict(amount float64, from, to string) (float64, error) {
	table := c.table()
	for _, code := range []string{from, to} {
		if _, ok := table.Rate(code); !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
		}
	}
	return c.Convert(amount, from, to), nil
}
