package i18n

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// ParseCurrencyAmount reads an amount back from a formatted string such as
// "$1,234.56", "-$50.00" or "1.234,56 €". It is a best effort inverse of
// CurrencyFormatter.Format: compact values and localized digits are not supported.
func ParseCurrencyAmount(s string) (float64, error) {
	d, err := ParseCurrencyDecimal(s)
	if err != nil {
		return 0, err
	}
	value, _ := d.Float64()
	return value, nil
}

// ParseCurrencyDecimal is ParseCurrencyAmount returning a decimal
func ParseCurrencyDecimal(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	negative, leadingSep := false, false
	// a separator directly before the first digit starts a fraction (".5");
	// one inside a symbol such as "kr." does not
	var pending rune

	var b strings.Builder
	for _, r := range trimmed {
		switch {
		case unicode.IsDigit(r) && r < unicode.MaxASCII:
			if b.Len() == 0 && pending != 0 {
				leadingSep = true
				b.WriteByte('0')
				b.WriteRune(pending)
			}
			b.WriteRune(r)
		case r == '.' || r == ',':
			if b.Len() > 0 {
				b.WriteRune(r)
			} else {
				pending = r
			}
		case r == '-' || r == '(':
			if b.Len() == 0 {
				negative = true
			}
			pending = 0
		default:
			pending = 0
		}
	}

	raw := strings.TrimRight(b.String(), ".,")
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	var normalized string
	if leadingSep && strings.IndexAny(raw[2:], ".,") < 0 {
		normalized = "0." + raw[2:]
	} else {
		normalized = normalizeSeparators(raw)
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// normalizeSeparators keeps the last separator as the decimal point when both
// kinds appear. A lone separator is decimal only when it is followed by one or
// two digits and appears once.
func normalizeSeparators(raw string) string {
	lastDot := strings.LastIndex(raw, ".")
	lastComma := strings.LastIndex(raw, ",")

	decimalIdx := -1
	switch {
	case lastDot >= 0 && lastComma >= 0:
		decimalIdx = max(lastDot, lastComma)
	case lastDot >= 0 || lastComma >= 0:
		idx := max(lastDot, lastComma)
		sep := raw[idx]
		trailing := len(raw) - idx - 1
		if strings.Count(raw, string(sep)) == 1 && trailing > 0 && trailing <= 2 {
			decimalIdx = idx
		} else if sep == '.' && strings.Count(raw, ".") == 1 && trailing != 3 {
			decimalIdx = idx
		}
	}

	var b strings.Builder
	for i, r := range raw {
		switch {
		case i == decimalIdx:
			b.WriteByte('.')
		case r == '.' || r == ',':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
