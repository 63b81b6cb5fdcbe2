package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// languages that put the family name first
var easternNameLanguages = map[string]struct{}{
	"ja": {},
	"zh": {},
	"ko": {},
}

// NameOrderForLocale returns the customary name order of locale
func NameOrderForLocale(locale string) NameOrder {
	if _, ok := easternNameLanguages[baseLanguage(locale)]; ok {
		return NameOrderEastern
	}
	return NameOrderWestern
}

// NameFormatter renders personal names in a fixed order
type NameFormatter struct {
	order NameOrder
}

// NewNameFormatter creates a formatter using the customary order of locale
func NewNameFormatter(locale string) *NameFormatter {
	return &NameFormatter{order: NameOrderForLocale(locale)}
}

// NameFormatterForOrder creates a formatter with an explicit order, as configured per site
func NameFormatterForOrder(order NameOrder) *NameFormatter {
	if !order.Valid() {
		order = NameOrderWestern
	}
	return &NameFormatter{order: order}
}

func (f *NameFormatter) Order() NameOrder {
	if f == nil {
		return NameOrderWestern
	}
	return f.order
}

// FormatFullName joins the non empty parts: "First Middle Last" for western
// order and "Last Middle First" for eastern order.
func (f *NameFormatter) FormatFullName(first, last, middle string) string {
	if f.Order() == NameOrderEastern {
		return joinNameParts(last, middle, first)
	}
	return joinNameParts(first, middle, last)
}

// FormatFormalName prefixes the full name with title when one is given
func (f *NameFormatter) FormatFormalName(first, last, title string) string {
	return joinNameParts(title, f.FormatFullName(first, last, ""))
}

func joinNameParts(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, " ")
}

func baseLanguage(locale string) string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return ""
	}
	if tag, err := language.Parse(locale); err == nil {
		base, _ := tag.Base()
		return base.String()
	}
	lang, _, _ := strings.Cut(locale, "-")
	return strings.ToLower(lang)
}
