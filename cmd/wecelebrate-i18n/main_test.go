package main

import (
	"bytes"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", "testdata-missing.env"}, args...))
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"currency", []string{"format", "currency", "1234.5", "USD"}, "$1,234.50"},
		{"currency with code", []string{"format", "currency", "100", "usd", "--show-code"}, "$100.00 USD"},
		{"currency after symbol", []string{"format", "currency", "100", "EUR"}, "100,00 €"},
		{"percent", []string{"format", "number", "45.56", "--style", "percent"}, "45.6%"},
		{"integer", []string{"format", "number", "1234.5", "--style", "integer"}, "1,235"},
		{"convert identity", []string{"convert", "19.99", "EUR", "EUR"}, "19.99"},
		{"metric weight", []string{"units", "weight", "999", "--country", "DE"}, "999 g"},
		{"imperial length", []string{"units", "length", "2.54", "--country", "US"}, "1.0 in"},
		{"site from query", []string{"site", "detect", "https://acme.wecelebrate.com/?siteId=beta"}, "beta"},
		{"site from stored id", []string{"site", "detect", "https://wecelebrate.com/gifts", "--stored", "acme"}, "acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runCLI(t, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad amount", []string{"format", "currency", "abc", "USD"}},
		{"bad style", []string{"format", "number", "1", "--style", "roman"}},
		{"bad measurement", []string{"units", "volume", "1"}},
		{"no site", []string{"site", "detect", "https://www.wecelebrate.com/"}},
		{"fetch without api", []string{"site", "fetch", "acme"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.args...); err == nil {
				t.Fatalf("expected an error for %v", tt.args)
			}
		})
	}
}
