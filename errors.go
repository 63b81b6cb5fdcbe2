package i18n

import "errors"

// ErrUnknownCurrency is returned by strict lookups for codes missing from the catalog.
var ErrUnknownCurrency = errors.New("i18n: unknown currency")

// ErrUnknownCountry is returned by strict lookups for codes missing from the country table.
var ErrUnknownCountry = errors.New("i18n: unknown country")

// ErrInvalidAmount reports a string that could not be read back as a monetary amount
var ErrInvalidAmount = errors.New("i18n: invalid amount")

// ErrInvalidRate marks exchange rate tables with a missing or non positive rate.
var ErrInvalidRate = errors.New("i18n: invalid exchange rate")

var ErrInvalidCatalog = errors.New("i18n: invalid catalog data")
