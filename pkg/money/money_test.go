package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain integer", "500000", "500000"},
		{"thousands separators", "1.500.000", "1500000"},
		{"decimal comma", "1.500.000,50", "1500000.5"},
		{"comma only", "12,5", "12.5"},
		{"rounds to cents", "10,005", "10.01"},
		{"rupiah prefix", "Rp 2.000", "2000"},
		{"surrounding spaces", "  750 ", "750"},
		{"negative", "-1.000", "-1000"},
		{"zero", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if err != nil {
				t.Fatalf("ParseAmount(%q) returned error: %v", tt.input, err)
			}
			want := decimal.RequireFromString(tt.expected)
			if !got.Equal(want) {
				t.Errorf("ParseAmount(%q) = %s, expected %s", tt.input, got, want)
			}
		})
	}
}

func TestParseAmountRejects(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty", "", ErrEmptyAmount},
		{"blank", "   ", ErrEmptyAmount},
		{"two decimal separators", "1,000,50", ErrMalformedAmount},
		{"letters", "abc", ErrMalformedAmount},
		{"exponent", "1e5", ErrMalformedAmount},
		{"trailing comma", "100,", ErrMalformedAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAmount(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseAmount(%q) error = %v, expected %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1.000"},
		{"1500000", "1.500.000"},
		{"1500000.5", "1.500.000,5"},
		{"1234.05", "1.234,05"},
		{"-700", "-700"},
		{"-123456.78", "-123.456,78"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Format(decimal.RequireFromString(tt.input))
			if got != tt.expected {
				t.Errorf("Format(%s) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatInputRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "12.5", "500000", "1234567.89"} {
		d := decimal.RequireFromString(s)
		text := FormatInput(d)
		back, err := ParseAmount(text)
		if err != nil {
			t.Fatalf("ParseAmount(FormatInput(%s)) error: %v", s, err)
		}
		if !back.Equal(d) {
			t.Errorf("round trip of %s via %q gave %s", s, text, back)
		}
	}
}
