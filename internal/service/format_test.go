package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "2600000", want: "2600000"},
		{input: " 2600000\n", want: "2600000"},
		{input: "2600000.50", want: "2600000.5"},
		{input: "2.6e6", want: "2600000"},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
		{input: "NaN", wantErr: true},
		{input: "12abc", wantErr: true},
		{input: "999999999999999999", want: "999999999999999999"},
		{input: "1e17", want: "100000000000000000"},
		{input: "0.00000001", want: "0.00000001"},
		{input: "1e18", wantErr: true},
		{input: "1e19", wantErr: true},
		{input: "1e5000000", wantErr: true},
		{input: "1e-5000000", wantErr: true},
		{input: "0.000000001", wantErr: true},
		{input: "1" + strings.Repeat("0", 80), wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("ParseAmount(%q) error got %v, want %v", tt.input, err, ErrInvalidAmount)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseAmount(%q) got %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"2500000", "2,500,000"},
		{"950", "950"},
		{"2600000.5", "2,600,000.5"},
		{"-0.5", "-0.5"},
		{"-2500000", "-2,500,000"},
		{"9223372036854775807", "9,223,372,036,854,775,807"},
		{"10000000000000000000", "10,000,000,000,000,000,000"},
	}

	for _, tt := range tests {
		got := FormatAmount(decimal.RequireFromString(tt.in))
		if got != tt.want {
			t.Errorf("FormatAmount(%s) got %q, want %q", tt.in, got, tt.want)
		}
	}
}
