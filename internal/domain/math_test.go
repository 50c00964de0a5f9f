package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSafeParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"integer", "100", "100"},
		{"decimal", "3.14", "3.14"},
		{"empty", "", "0"},
		{"invalid", "abc", "0"},
		{"negative", "-5", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeParse(tt.input)
			if got.String() != tt.want {
				t.Errorf("SafeParse(%q) = %s, want %s", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"integer", "28000", "28000"},
		{"trailing zeros stripped", "100.50", "100.5"},
		{"two places kept", "0.99", "0.99"},
		{"rounds half up", "10.005", "10.01"},
		{"zero", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.input)
			if err != nil {
				t.Fatalf("bad test input: %v", err)
			}
			if got := FormatUSD(d); got != tt.want {
				t.Errorf("FormatUSD(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
