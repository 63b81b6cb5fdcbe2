package i18n

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/nyaruka/phonenumbers"
)

// Country describes a shipping destination served by the storefront
type Country struct {
	Code            string `yaml:"code" json:"code"`
	Name            string `yaml:"name" json:"name"`
	Currency        string `yaml:"currency" json:"currency"`
	CurrencySymbol  string `yaml:"currency_symbol" json:"currency_symbol"`
	PhonePrefix     string `yaml:"phone_prefix" json:"phone_prefix"`
	PostalCodeLabel string `yaml:"postal_code_label" json:"postal_code_label"`
	StateLabel      string `yaml:"state_label" json:"state_label"`
	HasStates       bool   `yaml:"has_states" json:"has_states"`
}

// CountryCatalog is an immutable lookup of countries keyed by ISO 3166-1 alpha-2 code
type CountryCatalog struct {
	countries map[string]Country
	order     []string
}

// NewCountryCatalog builds a catalog, keeping the order of countries for listing
func NewCountryCatalog(countries []Country) (*CountryCatalog, error) {
	catalog := &CountryCatalog{
		countries: make(map[string]Country, len(countries)),
		order:     make([]string, 0, len(countries)),
	}

	for _, country := range countries {
		country.Code = normalizeCode(country.Code)
		country.Currency = normalizeCode(country.Currency)
		if len(country.Code) != 2 {
			return nil, fmt.Errorf("%w: country code %q", ErrInvalidCatalog, country.Code)
		}
		if _, exists := catalog.countries[country.Code]; !exists {
			catalog.order = append(catalog.order, country.Code)
		}
		catalog.countries[country.Code] = country
	}

	return catalog, nil
}

var defaultCountryCatalog = sync.OnceValues(func() (*CountryCatalog, error) {
	countries, err := NewCatalogLoader().LoadCountries()
	if err != nil {
		return nil, err
	}
	return NewCountryCatalog(countries)
})

// DefaultCountryCatalog returns the catalog built from the embedded table
func DefaultCountryCatalog() *CountryCatalog {
	catalog, err := defaultCountryCatalog()
	if err != nil {
		panic(fmt.Sprintf("i18n: embedded country table: %v", err))
	}
	return catalog
}

func (c *CountryCatalog) orDefault() *CountryCatalog {
	if c == nil {
		return DefaultCountryCatalog()
	}
	return c
}

// Get returns the country for code and whether it exists
func (c *CountryCatalog) Get(code string) (Country, bool) {
	country, ok := c.orDefault().countries[normalizeCode(code)]
	return country, ok
}

// Lookup is the strict form of Get
func (c *CountryCatalog) Lookup(code string) (Country, error) {
	country, ok := c.Get(code)
	if !ok {
		return Country{}, fmt.Errorf("%w: %q", ErrUnknownCountry, code)
	}
	return country, nil
}

// All returns the countries in table order
func (c *CountryCatalog) All() []Country {
	c = c.orDefault()
	result := make([]Country, 0, len(c.order))
	for _, code := range c.order {
		result = append(result, c.countries[code])
	}
	return result
}

// ByCurrency returns the codes of countries using currency, sorted
func (c *CountryCatalog) ByCurrency(currency string) []string {
	currency = normalizeCode(currency)
	var codes []string
	for code, country := range c.orDefault().countries {
		if country.Currency == currency {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// CurrencyForCountry returns the currency of code, or DefaultCurrency when unknown
func (c *CountryCatalog) CurrencyForCountry(code string) string {
	if country, ok := c.Get(code); ok && country.Currency != "" {
		return country.Currency
	}
	return DefaultCurrency
}

// FormatCountryName returns the display name of code, or the code when unknown
func (c *CountryCatalog) FormatCountryName(code string) string {
	if country, ok := c.Get(code); ok {
		return country.Name
	}
	return code
}

// CountryFlag converts a two letter code into its regional indicator emoji
func CountryFlag(code string) string {
	code = normalizeCode(code)
	if len(code) != 2 {
		return ""
	}

	var b strings.Builder
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(0x1F1E6 + (r - 'A'))
	}
	return b.String()
}

// FormatPhoneNumber formats raw in the national format of country. Input that
// cannot be parsed as a possible number is returned unchanged.
func FormatPhoneNumber(raw, country string) string {
	value := strings.TrimSpace(raw)
	region := normalizeCode(country)
	if value == "" || region == "" {
		return raw
	}

	number, err := phonenumbers.Parse(value, region)
	if err != nil {
		return raw
	}
	if !phonenumbers.IsPossibleNumber(number) {
		return raw
	}
	return phonenumbers.Format(number, phonenumbers.NATIONAL)
}

// FormatInternationalPhoneNumber formats raw with its country calling code
func FormatInternationalPhoneNumber(raw, country string) string {
	value := strings.TrimSpace(raw)
	region := normalizeCode(country)
	if value == "" || region == "" {
		return raw
	}

	number, err := phonenumbers.Parse(value, region)
	if err != nil || !phonenumbers.IsPossibleNumber(number) {
		return raw
	}
	return phonenumbers.Format(number, phonenumbers.INTERNATIONAL)
}
