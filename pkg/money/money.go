// Package money parses and formats monetary magnitudes written in Indonesian
// notation ("." groups thousands, "," separates decimals).
package money

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits kept for every amount.
const Places = 2

var (
	// ErrEmptyAmount is returned when the amount text is blank.
	ErrEmptyAmount = errors.New("amount is empty")

	// ErrMalformedAmount is returned when the amount text is not a number.
	ErrMalformedAmount = errors.New("malformed amount")
)

var plainNumber = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// ParseAmount normalizes locale-formatted text such as "1.500.000,50" and
// returns it as a decimal rounded to hundredths.
//
// Text without a comma is read with every "." as a thousands separator, so
// "1.500" is fifteen hundred. More than one comma is rejected before parsing.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "Rp")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmptyAmount
	}

	if strings.Count(s, ",") > 1 {
		return decimal.Zero, fmt.Errorf("%w: %q has more than one decimal separator", ErrMalformedAmount, text)
	}

	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)

	if !plainNumber.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedAmount, text)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedAmount, text)
	}

	return d.Round(Places), nil
}

// MustParse is ParseAmount for constants in tests and seed data.
func MustParse(text string) decimal.Decimal {
	d, err := ParseAmount(text)
	if err != nil {
		panic(err)
	}
	return d
}

// Format renders d the way the front end displays money: "1.500.000" or
// "1.500.000,5". Trailing fractional zeros are dropped.
func Format(d decimal.Decimal) string {
	d = d.Round(Places)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	intPart := d.Truncate(0)
	frac := d.Sub(intPart)

	var sb strings.Builder
	sb.WriteString(sign)
	sb.WriteString(groupThousands(intPart.String()))

	if !frac.IsZero() {
		// "0.5" -> "5", "0.05" -> "05"
		digits := strings.TrimPrefix(frac.StringFixed(Places), "0.")
		digits = strings.TrimRight(digits, "0")
		sb.WriteString(",")
		sb.WriteString(digits)
	}

	return sb.String()
}

// FormatInput renders d for an input field: always two decimals, e.g. "500.000,00".
func FormatInput(d decimal.Decimal) string {
	d = d.Round(Places)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(Places)
	parts := strings.SplitN(fixed, ".", 2)

	return sign + groupThousands(parts[0]) + "," + parts[1]
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var sb strings.Builder
	head := len(digits) % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteString(".")
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
