package i18n

import (
	"testing"
	"time"
)

var sampleTime = time.Date(2024, time.January, 15, 14, 30, 0, 0, time.UTC)

func TestDateFormatter(t *testing.T) {
	en := NewDateFormatter("en-US")
	de := NewDateFormatter("de-DE")
	newYork := NewDateFormatter("en-US", WithTimezone("America/New_York"))

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"long date", en.FormatDate(sampleTime), "January 15, 2024"},
		{"short date", en.FormatShortDate(sampleTime), "Jan 15, 2024"},
		{"12 hour clock", en.FormatTime(sampleTime), "2:30 PM"},
		{"24 hour clock", de.FormatTime(sampleTime), "14:30"},
		{"date time", en.FormatDateTime(sampleTime), "January 15, 2024 2:30 PM"},
		{"timezone", newYork.FormatTime(sampleTime), "9:30 AM"},
		{"german month", de.MonthName(time.March), "März"},
		{"english month", en.MonthName(time.March), "March"},
		{"zero time", en.FormatDate(time.Time{}), InvalidDate},
		{"zero time clock", en.FormatTime(time.Time{}), InvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestDateFormatterNumericOrder(t *testing.T) {
	tests := []struct {
		order DateFormat
		want  string
	}{
		{DateFormatMDY, "01/15/2024"},
		{DateFormatDMY, "15/01/2024"},
		{DateFormatYMD, "2024-01-15"},
		{"bogus", "01/15/2024"},
	}

	for _, tt := range tests {
		f := NewDateFormatter("en-US", WithDateOrder(tt.order))
		if got := f.FormatNumericDate(sampleTime); got != tt.want {
			t.Errorf("FormatNumericDate with %s = %q, want %q", tt.order, got, tt.want)
		}
	}
}

func TestDateFormatterSiteSettings(t *testing.T) {
	settings := DefaultI18nConfig()
	settings.TimeFormat = TimeFormat24h
	settings.DateFormat = DateFormatDMY
	settings.Timezone = "Europe/Berlin"

	f := NewDateFormatter("en-GB", WithI18nConfig(settings))
	if got := f.FormatTime(sampleTime); got != "15:30" {
		t.Errorf("FormatTime = %q", got)
	}
	if got := f.FormatNumericDate(sampleTime); got != "15/01/2024" {
		t.Errorf("FormatNumericDate = %q", got)
	}
}

func TestDateFormatterFallbacks(t *testing.T) {
	if got := NewDateFormatter("de-AT").Locale(); got != "de" {
		t.Errorf("de-AT translator = %q, want parent de", got)
	}
	if got := NewDateFormatter("xx-YY").Locale(); got != "en" {
		t.Errorf("unknown locale translator = %q, want en", got)
	}

	bad := NewDateFormatter("en-US", WithTimezone("Mars/Olympus"))
	if got := bad.FormatTime(sampleTime); got != "2:30 PM" {
		t.Errorf("unknown timezone should render UTC, got %q", got)
	}
}

func TestFormatRelative(t *testing.T) {
	f := NewDateFormatter("en-US")
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		offset time.Duration
		want   string
	}{
		{0, "today"},
		{-11 * time.Hour, "today"},
		{-day, "yesterday"},
		{day, "tomorrow"},
		{3 * day, "in 3 days"},
		{-7 * day, "1 week ago"},
		{-14 * day, "2 weeks ago"},
		{-60 * day, "2 months ago"},
		{400 * day, "in 1 year"},
	}

	for _, tt := range tests {
		if got := f.FormatRelative(now.Add(tt.offset), now); got != tt.want {
			t.Errorf("FormatRelative(%s) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}
