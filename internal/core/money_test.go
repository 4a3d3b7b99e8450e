package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple dot decimal", "12.34", "12.34"},
		{"comma decimal separator", "12,34", "12.34"},
		{"integer", "1200", "1200"},
		{"surrounding whitespace", "  45.50  ", "45.5"},
		{"empty string is zero", "", "0"},
		{"garbage is zero", "abc", "0"},
		{"mixed garbage is zero", "12abc", "0"},
		{"negative passes through", "-3.50", "-3.5"},
		{"zero", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseMoney(tt.input)
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("ParseMoney(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestParseMoneyStrict(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid amount", "99.99", false},
		{"comma separator", "99,99", false},
		{"empty", "", true},
		{"non-numeric", "abc", true},
		{"negative rejected", "-1.00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMoneyStrict(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseMoneyStrict(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
