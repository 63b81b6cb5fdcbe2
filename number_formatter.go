package i18n

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is used when a formatter is created with an empty locale
const DefaultLocale = "en-US"

// NumberFormatter renders numbers with the grouping and decimal symbols of a locale.
// Formatting never fails: when the locale cannot be parsed, or the underlying
// primitive panics, the value is rendered with strconv and a warning is logged.
type NumberFormatter struct {
	locale     string
	tag        language.Tag
	printer    *message.Printer
	decimalSep string
	degraded   bool
	logger     *zap.Logger
}

// NumberFormatterOption configures a NumberFormatter
type NumberFormatterOption func(*NumberFormatter)

// WithNumberLogger sets the logger used for degraded formatting warnings
func WithNumberLogger(logger *zap.Logger) NumberFormatterOption {
	return func(f *NumberFormatter) {
		f.logger = logger
	}
}

// NewNumberFormatter creates a formatter for locale
func NewNumberFormatter(locale string, opts ...NumberFormatterOption) *NumberFormatter {
	f := &NumberFormatter{
		locale:     normalizeLocale(locale),
		decimalSep: ".",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.logger = loggerOrNop(f.logger)

	if f.locale == "" {
		f.locale = DefaultLocale
	}

	tag, err := language.Parse(f.locale)
	if err != nil {
		f.degraded = true
		f.logger.Warn("invalid locale tag, using plain number formatting",
			zap.String(fieldLocale, f.locale),
			zap.Error(err),
		)
		return f
	}

	f.tag = tag
	f.printer = message.NewPrinter(tag)
	f.decimalSep = f.detectDecimalSeparator()
	return f
}

// Locale returns the normalized locale tag
func (f *NumberFormatter) Locale() string {
	if f == nil {
		return ""
	}
	return f.locale
}

type numberOptions struct {
	minFraction int
	maxFraction int
}

// NumberOption adjusts FormatNumber
type NumberOption func(*numberOptions)

// WithFractionDigits bounds the number of fraction digits
func WithFractionDigits(minDigits, maxDigits int) NumberOption {
	return func(o *numberOptions) {
		o.minFraction = max(minDigits, 0)
		o.maxFraction = max(maxDigits, o.minFraction)
	}
}

// FormatNumber formats value with between zero and three fraction digits unless
// options say otherwise.
func (f *NumberFormatter) FormatNumber(value float64, opts ...NumberOption) string {
	o := numberOptions{minFraction: 0, maxFraction: 3}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return f.format(value, o.minFraction, o.maxFraction)
}

// FormatInteger rounds value half up and formats it without fraction digits
func (f *NumberFormatter) FormatInteger(value float64) string {
	return f.format(value, 0, 0)
}

// FormatDecimal formats value with exactly decimals fraction digits
func (f *NumberFormatter) FormatDecimal(value float64, decimals int) string {
	if decimals < 0 {
		decimals = 2
	}
	return f.format(value, decimals, decimals)
}

// FormatPercent formats a value that is already a percentage (45.5 -> "45.5%")
// with one fraction digit.
func (f *NumberFormatter) FormatPercent(value float64) string {
	return f.format(value, 1, 1) + "%"
}

// FormatCompact abbreviates value with K, M, B and T suffixes
func (f *NumberFormatter) FormatCompact(value float64) (out string) {
	if f == nil {
		return plainNumber(value)
	}
	if f.degraded {
		return f.fallback(value)
	}
	defer f.recoverTo(&out, value)
	return compactNumber(value, f.decimalSep)
}

func (f *NumberFormatter) format(value float64, minFraction, maxFraction int) (out string) {
	if f == nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return plainNumber(value)
	}
	if f.degraded {
		return f.fallback(value)
	}
	defer f.recoverTo(&out, value)

	rounded, _ := decimal.NewFromFloat(value).Round(int32(maxFraction)).Float64()
	return f.printer.Sprintf("%v", number.Decimal(rounded,
		number.MinFractionDigits(minFraction),
		number.MaxFractionDigits(maxFraction),
	))
}

// fallback logs every call made with an unusable locale
func (f *NumberFormatter) fallback(value float64) string {
	f.logger.Warn("number formatted without locale rules",
		zap.String(fieldLocale, f.locale),
		zap.Float64(fieldValue, value),
	)
	return plainNumber(value)
}

func (f *NumberFormatter) recoverTo(out *string, value float64) {
	if r := recover(); r != nil {
		f.logger.Warn("number formatting failed, using plain formatting",
			zap.String(fieldLocale, f.locale),
			zap.Float64(fieldValue, value),
			zap.String("panic", fmt.Sprint(r)),
		)
		*out = plainNumber(value)
	}
}

func (f *NumberFormatter) detectDecimalSeparator() (sep string) {
	sep = "."
	defer func() {
		if recover() != nil {
			sep = "."
		}
	}()

	sample := f.printer.Sprintf("%v", number.Decimal(1.5,
		number.MinFractionDigits(1),
		number.MaxFractionDigits(1),
	))
	trimmed := strings.TrimFunc(sample, unicode.IsDigit)
	if trimmed != "" {
		return trimmed
	}
	return sep
}

// plainNumber is the degraded rendering used when locale formatting is unavailable
func plainNumber(value float64) string {
	switch {
	case math.IsNaN(value):
		return "NaN"
	case math.IsInf(value, 1):
		return "∞"
	case math.IsInf(value, -1):
		return "-∞"
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

var compactSuffixes = []struct {
	threshold float64
	suffix    string
}{
	{1e3, "K"},
	{1e6, "M"},
	{1e9, "B"},
	{1e12, "T"},
}

// compactNumber keeps two significant digits below ten and whole numbers above,
// promoting to the next suffix when rounding reaches one thousand.
func compactNumber(value float64, decimalSep string) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return plainNumber(value)
	}

	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}

	scaled, suffix := value, ""
	for i := len(compactSuffixes) - 1; i >= 0; i-- {
		if value >= compactSuffixes[i].threshold {
			scaled = value / compactSuffixes[i].threshold
			suffix = compactSuffixes[i].suffix
			break
		}
	}

	rounded := roundCompact(scaled)
	if rounded.GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		for i, candidate := range compactSuffixes {
			if candidate.suffix == suffix && i+1 < len(compactSuffixes) {
				suffix = compactSuffixes[i+1].suffix
				rounded = roundCompact(rounded.InexactFloat64() / 1000)
				break
			}
			if suffix == "" {
				suffix = compactSuffixes[0].suffix
				rounded = roundCompact(rounded.InexactFloat64() / 1000)
				break
			}
		}
	}

	if rounded.IsZero() {
		return "0"
	}

	digits := rounded.String()
	if decimalSep != "." {
		digits = strings.Replace(digits, ".", decimalSep, 1)
	}
	return sign + digits + suffix
}

func roundCompact(value float64) decimal.Decimal {
	places := int32(0)
	if value < 10 {
		places = 1
	}
	return decimal.NewFromFloat(value).Round(places)
}

// groupDigits inserts sep between every three digits counted from the right
func groupDigits(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}

	var result strings.Builder
	result.Grow(len(digits) + len(digits)/3*len(sep))
	for i, digit := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			result.WriteString(sep)
		}
		result.WriteRune(digit)
	}
	return result.String()
}
