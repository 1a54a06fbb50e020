// Package money implements the two-decimal arithmetic used for every amount
// that is stored on an invoice or shown to the user.
//
// Amounts are github.com/shopspring/decimal values. Rounding is always half
// away from zero to two fraction digits, and parsing of user input is
// permissive: anything that is not a number becomes zero instead of an error.
package money

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of fraction digits kept on every amount.
const Places = 2

// DefaultSymbol is used when no currency symbol is configured.
const DefaultSymbol = "₹"

// Round2 rounds half away from zero to two fraction digits.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Percent returns amount × rate / 100 without rounding.
func Percent(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Shift(-2)
}

// Format renders the symbol followed by the amount fixed to two decimals.
// No thousands separators are added.
func Format(amount decimal.Decimal, symbol string) string {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return symbol + Round2(amount).StringFixed(Places)
}

// ParseAmount parses a user-entered number. Leading whitespace is skipped and
// the longest numeric prefix is used ("12.5kg" is 12.5). Empty or
// non-numeric input yields zero; it never fails.
//
// Values outside the finite float64 range, or so small they are zero as a
// float64, also yield zero. Their exponents would make rounding unbounded.
func ParseAmount(raw string) decimal.Decimal {
	prefix := numericPrefix(strings.TrimSpace(raw))
	if prefix == "" {
		return decimal.Zero
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil || f == 0 {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(prefix)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FromJSON coerces a raw JSON value into an amount. Numbers and numeric
// strings are parsed with ParseAmount semantics; null, booleans, objects and
// anything else become zero.
func FromJSON(raw []byte) decimal.Decimal {
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return decimal.Zero
		}
		s = unquoted
	}
	return ParseAmount(s)
}

// numericPrefix returns the longest prefix of s that looks like
// [+-]digits[.digits][e[+-]digits].
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return ""
	}
	end := strings.TrimSuffix(s[:i], ".")
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			expDigits++
		}
		if expDigits > 0 {
			end = s[:j]
		}
	}
	return end
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
