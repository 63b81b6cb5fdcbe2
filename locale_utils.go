package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// normalizeLocale turns "en_US " into "en-US"
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

// localeParentChain returns the parents of locale from closest to most generic,
// e.g. "pt-BR" -> ["pt"]. Tags x/text cannot parse are trimmed at hyphens.
func localeParentChain(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return nil
	}

	var chain []string
	seen := map[string]struct{}{locale: {}}
	add := func(value string) {
		if value == "" || value == "und" {
			return
		}
		if _, ok := seen[value]; ok {
			return
		}
		seen[value] = struct{}{}
		chain = append(chain, value)
	}

	if tag, err := language.Parse(locale); err == nil {
		for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
			add(parent.String())
		}
	}

	for current := locale; ; {
		idx := strings.LastIndex(current, "-")
		if idx <= 0 {
			break
		}
		current = current[:idx]
		add(current)
	}

	return chain
}
