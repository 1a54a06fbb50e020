package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"200.01", "200.01"},
		{"200.010", "200.01"},
		{"1.005", "1.01"},
		{"2.675", "2.68"},
		{"-1.005", "-1.01"},
		{"45.0018", "45"},
		{"0.004", "0"},
		{"-0.005", "-0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Round2(decimal.RequireFromString(tt.in))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "Round2(%s) = %s, want %s", tt.in, got, tt.want)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		symbol string
		want   string
	}{
		{"fixed two decimals", "295.01", "₹", "₹295.01"},
		{"pads zeros", "50", "₹", "₹50.00"},
		{"no thousands separator", "1234567.5", "$", "$1234567.50"},
		{"rounds before formatting", "10.005", "€", "€10.01"},
		{"default symbol", "1", "", "₹1.00"},
		{"negative after symbol", "-5", "₹", "₹-5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(decimal.RequireFromString(tt.amount), tt.symbol))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"100.005", "100.005"},
		{"  42 ", "42"},
		{"", "0"},
		{"abc", "0"},
		{"12.5kg", "12.5"},
		{"-3", "-3"},
		{"+7", "7"},
		{".5", "0.5"},
		{"5.", "5"},
		{"1e3", "1000"},
		{"2e", "2"},
		{"-", "0"},
		{".", "0"},
		{"NaN", "0"},
		{"1.e5", "100000"},
		{"1e308", "1e308"},
		{"1e309", "0"},
		{"1e100000000", "0"},
		{"-1e100000000", "0"},
		{"1e-100000000", "0"},
		{"0.000", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseAmount(tt.raw)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "ParseAmount(%q) = %s, want %s", tt.raw, got, tt.want)
		})
	}
}

func TestFromJSON(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`295.01`, "295.01"},
		{`"295.01"`, "295.01"},
		{`null`, "0"},
		{`true`, "0"},
		{`"n/a"`, "0"},
		{`{"x":1}`, "0"},
		{``, "0"},
		{`1e100000000`, "0"},
		{`"1e100000000"`, "0"},
		{`"1e-100000000"`, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := FromJSON([]byte(tt.raw))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "FromJSON(%s) = %s, want %s", tt.raw, got, tt.want)
		})
	}
}

func TestPercent(t *testing.T) {
	got := Percent(decimal.RequireFromString("250.01"), decimal.NewFromInt(18))
	assert.True(t, got.Equal(decimal.RequireFromString("45.0018")), "got %s", got)
}
