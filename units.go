package i18n

import "strconv"

// UnitSystem selects metric or imperial display units
type UnitSystem string

const (
	UnitSystemMetric   UnitSystem = "metric"
	UnitSystemImperial UnitSystem = "imperial"
)

// DefaultCountry is the primary market used when no country is known
const DefaultCountry = "US"

// countries that still display imperial units
var imperialCountries = map[string]struct{}{
	"US": {},
	"LR": {},
	"MM": {},
}

// Valid reports whether s is a known unit system
func (s UnitSystem) Valid() bool {
	return s == UnitSystemMetric || s == UnitSystemImperial
}

// UnitSystemResolver maps ISO 3166-1 alpha-2 country codes to a unit system
type UnitSystemResolver struct {
	defaultCountry string
}

// NewUnitSystemResolver creates a resolver; an empty default country uses DefaultCountry
func NewUnitSystemResolver(defaultCountry string) *UnitSystemResolver {
	defaultCountry = normalizeCode(defaultCountry)
	if defaultCountry == "" {
		defaultCountry = DefaultCountry
	}
	return &UnitSystemResolver{defaultCountry: defaultCountry}
}

// DefaultCountry returns the country used for empty input
func (r *UnitSystemResolver) DefaultCountry() string {
	if r == nil || r.defaultCountry == "" {
		return DefaultCountry
	}
	return r.defaultCountry
}

// Resolve returns the unit system for countryCode. Empty codes use the default
// country and unrecognized codes are metric.
func (r *UnitSystemResolver) Resolve(countryCode string) UnitSystem {
	code := normalizeCode(countryCode)
	if code == "" {
		code = r.DefaultCountry()
	}
	if _, ok := imperialCountries[code]; ok {
		return UnitSystemImperial
	}
	return UnitSystemMetric
}

// Formatter returns a UnitFormatter for countryCode
func (r *UnitSystemResolver) Formatter(countryCode string) *UnitFormatter {
	return NewUnitFormatter(r.Resolve(countryCode))
}

// UnitPreference describes the display unit for one measurement. PerUnit holds
// how many source units make up one display unit.
type UnitPreference struct {
	Unit      string
	Precision int
	PerUnit   map[string]float64
}

// MeasurementPrefs groups the preferred units of a unit system
type MeasurementPrefs struct {
	Weight UnitPreference
	Length UnitPreference
}

const (
	gramsPerPound      = 453.592
	centimetersPerInch = 2.54
	gramsPerKilogram   = 1000.0
)

var measurementPreferences = map[UnitSystem]MeasurementPrefs{
	UnitSystemImperial: {
		Weight: UnitPreference{Unit: "lbs", Precision: 2, PerUnit: map[string]float64{"g": gramsPerPound}},
		Length: UnitPreference{Unit: "in", Precision: 1, PerUnit: map[string]float64{"cm": centimetersPerInch}},
	},
	UnitSystemMetric: {
		Weight: UnitPreference{Unit: "kg", Precision: 2, PerUnit: map[string]float64{"g": gramsPerKilogram}},
		Length: UnitPreference{Unit: "cm", Precision: -1, PerUnit: map[string]float64{"cm": 1}},
	},
}

// UnitFormatter formats weights and lengths for a unit system
type UnitFormatter struct {
	system UnitSystem
	prefs  MeasurementPrefs
}

// NewUnitFormatter creates a formatter; unknown systems format as metric
func NewUnitFormatter(system UnitSystem) *UnitFormatter {
	if !system.Valid() {
		system = UnitSystemMetric
	}
	return &UnitFormatter{
		system: system,
		prefs:  measurementPreferences[system],
	}
}

// UnitFormatterForCountry is a shortcut over the default resolver
func UnitFormatterForCountry(countryCode string) *UnitFormatter {
	return NewUnitSystemResolver("").Formatter(countryCode)
}

// System returns the unit system used by the formatter
func (f *UnitFormatter) System() UnitSystem {
	if f == nil {
		return UnitSystemMetric
	}
	return f.system
}

func (f *UnitFormatter) preferences() MeasurementPrefs {
	if f == nil {
		return measurementPreferences[UnitSystemMetric]
	}
	return f.prefs
}

// FormatWeight formats a weight given in grams. Imperial renders pounds with two
// decimals; metric renders kilograms from 1000 g up and raw grams below.
func (f *UnitFormatter) FormatWeight(grams float64) string {
	pref := f.preferences().Weight
	perUnit := pref.PerUnit["g"]

	if f.System() == UnitSystemMetric && grams < perUnit {
		return formatRaw(grams) + " g"
	}
	return formatFixed(grams/perUnit, pref.Precision) + " " + pref.Unit
}

// FormatLength formats a length given in centimeters
func (f *UnitFormatter) FormatLength(cm float64) string {
	pref := f.preferences().Length
	converted := cm / pref.PerUnit["cm"]
	if pref.Precision < 0 {
		return formatRaw(converted) + " " + pref.Unit
	}
	return formatFixed(converted, pref.Precision) + " " + pref.Unit
}

func formatFixed(value float64, precision int) string {
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func formatRaw(value float64) string {
	return plainNumber(value)
}
