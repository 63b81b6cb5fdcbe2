package i18n

import (
	"strconv"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/ja"
	"github.com/go-playground/locales/ko"
	"github.com/go-playground/locales/pt_BR"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"go.uber.org/zap"
)

// InvalidDate is returned for zero times
const InvalidDate = "Invalid Date"

var universalTranslator = sync.OnceValue(func() *ut.UniversalTranslator {
	fallback := en.New()
	return ut.New(fallback,
		fallback,
		en_GB.New(),
		de.New(),
		es.New(),
		fr.New(),
		ja.New(),
		ko.New(),
		pt_BR.New(),
		zh.New(),
	)
})

// DateFormatter formats dates and times with the month names and patterns of a locale
type DateFormatter struct {
	locale     string
	trans      locales.Translator
	dateFormat DateFormat
	timeFormat TimeFormat
	timezone   string
	location   *time.Location
	logger     *zap.Logger
}

// DateFormatterOption configures a DateFormatter
type DateFormatterOption func(*DateFormatter)

func WithDateLogger(logger *zap.Logger) DateFormatterOption {
	return func(f *DateFormatter) {
		f.logger = logger
	}
}

// WithTimeFormat overrides the locale clock preference
func WithTimeFormat(format TimeFormat) DateFormatterOption {
	return func(f *DateFormatter) {
		if format.Valid() {
			f.timeFormat = format
		}
	}
}

// WithDateOrder sets the component order used by FormatNumericDate
func WithDateOrder(format DateFormat) DateFormatterOption {
	return func(f *DateFormatter) {
		if format.Valid() {
			f.dateFormat = format
		}
	}
}

// WithTimezone renders times in the IANA zone name
func WithTimezone(name string) DateFormatterOption {
	return func(f *DateFormatter) {
		f.timezone = strings.TrimSpace(name)
	}
}

// WithI18nConfig applies the date, time and timezone settings of a site
func WithI18nConfig(cfg I18nConfig) DateFormatterOption {
	return func(f *DateFormatter) {
		WithDateOrder(cfg.DateFormat)(f)
		WithTimeFormat(cfg.TimeFormat)(f)
		WithTimezone(cfg.Timezone)(f)
	}
}

// NewDateFormatter creates a formatter for locale. Locales without translation
// data fall back to their parent language and then to English.
func NewDateFormatter(locale string, opts ...DateFormatterOption) *DateFormatter {
	f := &DateFormatter{
		locale:     normalizeLocale(locale),
		dateFormat: DateFormatMDY,
	}
	if f.locale == "" {
		f.locale = DefaultLocale
	}
	if baseLanguage(f.locale) == "en" {
		f.timeFormat = TimeFormat12h
	} else {
		f.timeFormat = TimeFormat24h
	}

	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.logger = loggerOrNop(f.logger)

	uni := universalTranslator()
	trans, found := uni.FindTranslator(translatorCandidates(f.locale)...)
	if !found {
		f.logger.Debug("no date translations for locale, using fallback", zap.String(fieldLocale, f.locale))
		trans = uni.GetFallback()
	}
	f.trans = trans

	f.location = time.UTC
	if f.timezone != "" {
		loc, err := time.LoadLocation(f.timezone)
		if err != nil {
			f.logger.Warn("unknown timezone, using UTC", zap.String(fieldTimezone, f.timezone), zap.Error(err))
		} else {
			f.location = loc
		}
	}

	return f
}

// translatorCandidates lists universal-translator keys for locale, closest first
func translatorCandidates(locale string) []string {
	candidates := []string{strings.ReplaceAll(locale, "-", "_")}
	for _, parent := range localeParentChain(locale) {
		candidates = append(candidates, strings.ReplaceAll(parent, "-", "_"))
	}
	if base := baseLanguage(locale); base != "" {
		candidates = append(candidates, base)
	}
	return candidates
}

// Locale returns the locale of the translation data in use
func (f *DateFormatter) Locale() string {
	if f == nil || f.trans == nil {
		return ""
	}
	return f.trans.Locale()
}

func (f *DateFormatter) in(t time.Time) time.Time {
	if f == nil || f.location == nil {
		return t.UTC()
	}
	return t.In(f.location)
}

func (f *DateFormatter) translator() locales.Translator {
	if f == nil || f.trans == nil {
		return universalTranslator().GetFallback()
	}
	return f.trans
}

// FormatDate renders the long form, e.g. "January 15, 2024"
func (f *DateFormatter) FormatDate(t time.Time) string {
	if t.IsZero() {
		return InvalidDate
	}
	return f.translator().FmtDateLong(f.in(t))
}

// FormatShortDate renders the abbreviated form, e.g. "Jan 15, 2024"
func (f *DateFormatter) FormatShortDate(t time.Time) string {
	if t.IsZero() {
		return InvalidDate
	}
	return f.translator().FmtDateMedium(f.in(t))
}

// FormatTime renders hours and minutes on the configured clock
func (f *DateFormatter) FormatTime(t time.Time) string {
	if t.IsZero() {
		return InvalidDate
	}
	if f != nil && f.timeFormat == TimeFormat24h {
		return f.in(t).Format("15:04")
	}
	return f.in(t).Format("3:04 PM")
}

// FormatDateTime joins FormatDate and FormatTime
func (f *DateFormatter) FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return InvalidDate
	}
	return f.FormatDate(t) + " " + f.FormatTime(t)
}

// FormatNumericDate renders digits in the configured component order
func (f *DateFormatter) FormatNumericDate(t time.Time) string {
	if t.IsZero() {
		return InvalidDate
	}

	order := DateFormatMDY
	if f != nil {
		order = f.dateFormat
	}

	local := f.in(t)
	switch order {
	case DateFormatDMY:
		return local.Format("02/01/2006")
	case DateFormatYMD:
		return local.Format("2006-01-02")
	default:
		return local.Format("01/02/2006")
	}
}

// MonthName returns the wide month name of the locale
func (f *DateFormatter) MonthName(month time.Month) string {
	return f.translator().MonthWide(month)
}

// FormatRelative describes t relative to now in calendar days of the configured zone:
// "today", "yesterday", "in 3 days", "2 weeks ago", "2 months ago".
func (f *DateFormatter) FormatRelative(t, now time.Time) string {
	if t.IsZero() {
		return InvalidDate
	}

	days := calendarDays(f.in(t), f.in(now))
	switch days {
	case 0:
		return "today"
	case -1:
		return "yesterday"
	case 1:
		return "tomorrow"
	}

	abs := days
	if abs < 0 {
		abs = -abs
	}

	var count int
	var unit string
	switch {
	case abs < 7:
		count, unit = abs, "day"
	case abs < 30:
		count, unit = abs/7, "week"
	case abs < 365:
		count, unit = abs/30, "month"
	default:
		count, unit = abs/365, "year"
	}

	phrase := strconv.Itoa(count) + " " + unit
	if count != 1 {
		phrase += "s"
	}
	if days < 0 {
		return phrase + " ago"
	}
	return "in " + phrase
}

func calendarDays(t, now time.Time) int {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b).Hours() / 24)
}
