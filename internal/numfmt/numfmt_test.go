package numfmt

import (
	"math"
	"testing"
)

func TestParseArgentineNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"5.183,00", 5183.00},
		{"-502.685,77", -502685.77},
		{"1.000.000,50", 1000000.50},
		{"31,52", 31.52},
		{"5.000.000,00", 5000000.00},
		{"0,00", 0},
		{"", 0},
		{"   ", 0},
		{"no es un numero", 0},
		{"  1.234,56  ", 1234.56},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseArgentineNumber(tt.input)
			if math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("ParseArgentineNumber(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatArgentineNumber(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{5183, "5.183,00"},
		{-502685.77, "-502.685,77"},
		{1000000.5, "1.000.000,50"},
		{31.52, "31,52"},
		{0, "0,00"},
		{999, "999,00"},
		{1000, "1.000,00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := FormatArgentineNumber(tt.input)
			if got != tt.expected {
				t.Errorf("FormatArgentineNumber(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// Parsing a formatted value must reproduce the original number.
func TestParseFormatRoundTrip(t *testing.T) {
	inputs := []string{"5.183,00", "-502.685,77", "1.000.000,50", "31,52", "123,45"}
	for _, s := range inputs {
		v := ParseArgentineNumber(s)
		back := ParseArgentineNumber(FormatArgentineNumber(v))
		if math.Abs(v-back) > 0.005 {
			t.Errorf("round trip for %q: %v != %v", s, v, back)
		}
	}
}

func TestFormatArgentineCurrency(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{1234.5, "$1.234,50"},
		{-1234.5, "-$1.234,50"},
		{0, "$0,00"},
		// Rounds to zero; the sign must round away with it.
		{-0.001, "$0,00"},
		{-0.005, "-$0,01"},
	}

	for _, tt := range tests {
		if got := FormatArgentineCurrency(tt.input); got != tt.expected {
			t.Errorf("FormatArgentineCurrency(%v) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestParseDateDDMMYY(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"01/12/25", "2025-12-01"},
		{"26/12/25", "2025-12-26"},
		{"30/01/26", "2026-01-30"},
		{"not a date", "not a date"},
		{"01/12/2025", "01/12/2025"}, // four-digit year is a different format
	}

	for _, tt := range tests {
		if got := ParseDateDDMMYY(tt.input); got != tt.expected {
			t.Errorf("ParseDateDDMMYY(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestParseDateDDMMYYYY(t *testing.T) {
	if got := ParseDateDDMMYYYY("26/12/2025"); got != "2025-12-26" {
		t.Errorf("got %q", got)
	}
	if got := ParseDateDDMMYYYY("26/12/25"); got != "26/12/25" {
		t.Errorf("got %q", got)
	}
}

func TestFormatDateArgentine(t *testing.T) {
	if got := FormatDateArgentine("2025-12-01"); got != "01/12/2025" {
		t.Errorf("got %q", got)
	}
}
