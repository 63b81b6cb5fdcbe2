package i18n

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TemplateHelpers returns helpers that read the locale from the template data
// under localeKey, for templates shared between locales. The registry settings
// decide the currency display and the site currency.
func TemplateHelpers(registry *FormatterRegistry, localeKey string) map[string]any {
	if registry == nil {
		registry = NewFormatterRegistry(nil)
	}

	call := func(data any, name string, args ...any) (any, error) {
		locale := extractLocale(data, localeKey)
		fn, ok := registry.Formatter(name, locale)
		if !ok {
			return nil, fmt.Errorf("unknown helper %q", name)
		}
		return callHelper(fn, args...)
	}

	return map[string]any{
		"localize": call,

		"locale_number": func(data, v any) (string, error) {
			n, err := toFloat64(v)
			if err != nil {
				return "", err
			}
			return registry.NumberFormatter(extractLocale(data, localeKey)).FormatNumber(n), nil
		},

		"locale_price": func(data, v any, from string) (string, error) {
			out, err := call(data, "site_price", v, from)
			if err != nil {
				return "", err
			}
			return out.(string), nil
		},

		"locale_name": func(data any) string {
			return extractLocale(data, localeKey)
		},
	}
}

func callHelper(fn any, args ...any) (any, error) {
	value := reflect.ValueOf(fn)
	fnType := value.Type()
	if fnType.Kind() != reflect.Func || fnType.NumIn() != len(args) {
		return nil, fmt.Errorf("helper expects %d arguments, got %d", fnType.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		want := fnType.In(i)
		if arg == nil {
			in[i] = reflect.Zero(want)
			continue
		}
		v := reflect.ValueOf(arg)
		switch {
		case v.Type().AssignableTo(want):
		case v.Type().ConvertibleTo(want) && want.Kind() != reflect.String:
			v = v.Convert(want)
		default:
			return nil, fmt.Errorf("argument %d: cannot use %T as %s", i, arg, want)
		}
		in[i] = v
	}

	out := value.Call(in)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

// extractLocale reads the locale from template data: a string, a map entry or
// a struct field named localeKey ("Locale" when empty).
func extractLocale(data any, localeKey string) string {
	if data == nil {
		return DefaultLocale
	}
	if localeKey == "" {
		localeKey = "Locale"
	}

	if str, ok := data.(string); ok {
		return str
	}

	switch d := data.(type) {
	case map[string]any:
		if v, ok := d[localeKey]; ok {
			if str, ok := v.(string); ok {
				return str
			}
		}
	case map[string]string:
		if v, ok := d[localeKey]; ok {
			return v
		}
	}

	value := reflect.ValueOf(data)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return DefaultLocale
		}
		value = value.Elem()
	}

	if value.Kind() == reflect.Struct {
		field := value.FieldByName(localeKey)
		if field.IsValid() && field.Kind() == reflect.String {
			return field.String()
		}
	}

	return DefaultLocale
}

// toFloat64 accepts the numeric types templates produce plus decimals and numeric strings
func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case decimal.Decimal:
		return n.InexactFloat64(), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, n)
		}
		return f, nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidAmount, v)
	}
}
