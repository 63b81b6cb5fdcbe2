package i18n

// CurrencyDisplay selects how a currency is labelled
type CurrencyDisplay string

const (
	CurrencyDisplaySymbol CurrencyDisplay = "symbol"
	CurrencyDisplayCode   CurrencyDisplay = "code"
	CurrencyDisplayName   CurrencyDisplay = "name"
)

func (d CurrencyDisplay) Valid() bool {
	switch d {
	case CurrencyDisplaySymbol, CurrencyDisplayCode, CurrencyDisplayName:
		return true
	}
	return false
}

// DateFormat orders numeric date components
type DateFormat string

const (
	DateFormatMDY DateFormat = "MDY"
	DateFormatDMY DateFormat = "DMY"
	DateFormatYMD DateFormat = "YMD"
)

func (d DateFormat) Valid() bool {
	switch d {
	case DateFormatMDY, DateFormatDMY, DateFormatYMD:
		return true
	}
	return false
}

// TimeFormat selects the 12 or 24 hour clock
type TimeFormat string

const (
	TimeFormat12h TimeFormat = "12h"
	TimeFormat24h TimeFormat = "24h"
)

func (t TimeFormat) Valid() bool {
	return t == TimeFormat12h || t == TimeFormat24h
}

// NameOrder selects given-name-first or family-name-first rendering
type NameOrder string

const (
	NameOrderWestern NameOrder = "western"
	NameOrderEastern NameOrder = "eastern"
)

func (n NameOrder) Valid() bool {
	return n == NameOrderWestern || n == NameOrderEastern
}

// NameFormat selects whether titles are used when addressing people
type NameFormat string

const (
	NameFormatFormal NameFormat = "formal"
	NameFormatCasual NameFormat = "casual"
)

func (n NameFormat) Valid() bool {
	return n == NameFormatFormal || n == NameFormatCasual
}

// I18nConfig is the resolved internationalization configuration of a site
type I18nConfig struct {
	Currency        string          `json:"currency" yaml:"currency"`
	CurrencyDisplay CurrencyDisplay `json:"currencyDisplay" yaml:"currency_display"`
	DecimalPlaces   int             `json:"decimalPlaces" yaml:"decimal_places"`
	Timezone        string          `json:"timezone" yaml:"timezone"`
	DateFormat      DateFormat      `json:"dateFormat" yaml:"date_format"`
	TimeFormat      TimeFormat      `json:"timeFormat" yaml:"time_format"`
	NameOrder       NameOrder       `json:"nameOrder" yaml:"name_order"`
	NameFormat      NameFormat      `json:"nameFormat" yaml:"name_format"`
}

// PartialI18nConfig is a tenant supplied override. A nil field was not provided;
// a non nil field is kept even when it holds a zero value such as 0 or "".
type PartialI18nConfig struct {
	Currency        *string          `json:"currency,omitempty" yaml:"currency,omitempty"`
	CurrencyDisplay *CurrencyDisplay `json:"currencyDisplay,omitempty" yaml:"currency_display,omitempty"`
	DecimalPlaces   *int             `json:"decimalPlaces,omitempty" yaml:"decimal_places,omitempty"`
	Timezone        *string          `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	DateFormat      *DateFormat      `json:"dateFormat,omitempty" yaml:"date_format,omitempty"`
	TimeFormat      *TimeFormat      `json:"timeFormat,omitempty" yaml:"time_format,omitempty"`
	NameOrder       *NameOrder       `json:"nameOrder,omitempty" yaml:"name_order,omitempty"`
	NameFormat      *NameFormat      `json:"nameFormat,omitempty" yaml:"name_format,omitempty"`
}

// DefaultI18nConfig returns the platform defaults
func DefaultI18nConfig() I18nConfig {
	return I18nConfig{
		Currency:        DefaultCurrency,
		CurrencyDisplay: CurrencyDisplaySymbol,
		DecimalPlaces:   2,
		Timezone:        "America/New_York",
		DateFormat:      DateFormatMDY,
		TimeFormat:      TimeFormat12h,
		NameOrder:       NameOrderWestern,
		NameFormat:      NameFormatCasual,
	}
}

// ResolveI18nConfig merges partial over the defaults field by field
func ResolveI18nConfig(partial *PartialI18nConfig) I18nConfig {
	return partial.ApplyTo(DefaultI18nConfig())
}

// ApplyTo returns base with every provided field of p copied over it
func (p *PartialI18nConfig) ApplyTo(base I18nConfig) I18nConfig {
	if p == nil {
		return base
	}

	resolved := base
	if p.Currency != nil {
		resolved.Currency = *p.Currency
	}
	if p.CurrencyDisplay != nil {
		resolved.CurrencyDisplay = *p.CurrencyDisplay
	}
	if p.DecimalPlaces != nil {
		resolved.DecimalPlaces = *p.DecimalPlaces
	}
	if p.Timezone != nil {
		resolved.Timezone = *p.Timezone
	}
	if p.DateFormat != nil {
		resolved.DateFormat = *p.DateFormat
	}
	if p.TimeFormat != nil {
		resolved.TimeFormat = *p.TimeFormat
	}
	if p.NameOrder != nil {
		resolved.NameOrder = *p.NameOrder
	}
	if p.NameFormat != nil {
		resolved.NameFormat = *p.NameFormat
	}
	return resolved
}

// Clone returns a deep copy of p
func (p *PartialI18nConfig) Clone() *PartialI18nConfig {
	if p == nil {
		return nil
	}
	clone := &PartialI18nConfig{}
	if p.Currency != nil {
		clone.Currency = ptr(*p.Currency)
	}
	if p.CurrencyDisplay != nil {
		clone.CurrencyDisplay = ptr(*p.CurrencyDisplay)
	}
	if p.DecimalPlaces != nil {
		clone.DecimalPlaces = ptr(*p.DecimalPlaces)
	}
	if p.Timezone != nil {
		clone.Timezone = ptr(*p.Timezone)
	}
	if p.DateFormat != nil {
		clone.DateFormat = ptr(*p.DateFormat)
	}
	if p.TimeFormat != nil {
		clone.TimeFormat = ptr(*p.TimeFormat)
	}
	if p.NameOrder != nil {
		clone.NameOrder = ptr(*p.NameOrder)
	}
	if p.NameFormat != nil {
		clone.NameFormat = ptr(*p.NameFormat)
	}
	return clone
}

func ptr[T any](v T) *T {
	return &v
}
