// Package money turns loosely formatted funding strings ("$74,000,000",
// " 93.5 ") into whole currency units.
//
// Rounding rule: half away from zero, applied once on the exact decimal value.
// Sanitize never fails; malformed or oversized input degrades to 0.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var (
	// ErrEmpty is returned by Parse when nothing numeric is left after cleaning.
	ErrEmpty = errors.New("no numeric content")
	// ErrOutOfRange is returned when a value does not fit a whole int64 unit.
	ErrOutOfRange = errors.New("amount out of range")
)

var (
	maxWhole = decimal.NewFromInt(math.MaxInt64)
	minWhole = decimal.NewFromInt(math.MinInt64)
)

// Clean drops every rune that is not an ASCII digit or a decimal point.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Parse cleans s and parses what remains as an exact decimal.
func Parse(s string) (decimal.Decimal, error) {
	cleaned := Clean(s)
	if cleaned == "" {
		return decimal.Zero, ErrEmpty
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if _, err := Whole(d); err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d, nil
}

// ParseNumber parses s as a signed decimal. Only currency symbols, thousands
// commas and whitespace are dropped; any other stray character is an error.
func ParseNumber(s string) (decimal.Decimal, error) {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == ',' || unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) {
			continue
		}
		b.WriteRune(r)
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, ErrEmpty
	}
	if strings.IndexFunc(cleaned, notNumeric) >= 0 {
		return decimal.Zero, fmt.Errorf("parse number %q: unexpected character", s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse number %q: %w", s, err)
	}
	return d, nil
}

func notNumeric(r rune) bool {
	return (r < '0' || r > '9') && r != '.' && r != '-' && r != '+'
}

// Whole rounds d like Round and fails with ErrOutOfRange when the result
// does not fit in an int64.
func Whole(d decimal.Decimal) (int64, error) {
	r := d.Round(0)
	if r.GreaterThan(maxWhole) || r.LessThan(minWhole) {
		return 0, ErrOutOfRange
	}
	return r.IntPart(), nil
}

// Round rounds d to a whole unit, ties away from zero. d must be within the
// int64 range; see Whole.
func Round(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// RoundFloat applies the same rule to a float value.
func RoundFloat(f float64) int64 {
	return Round(decimal.NewFromFloat(f))
}

// Sanitize parses and rounds s, returning 0 for empty, invalid or
// out-of-range input.
func Sanitize(s string) int64 {
	d, err := Parse(s)
	if err != nil {
		return 0
	}
	return Round(d)
}

// Format renders v with thousands separators, e.g. "$74,000,000".
func Format(v int64) string {
	if v < 0 {
		return "-$" + humanize.Comma(-v)
	}
	return "$" + humanize.Comma(v)
}

var (
	billion = decimal.New(1, 9)
	million = decimal.New(1, 6)
)

// Humanize renders v in the short card form used on the dashboard:
// "$74 Million", "$93.5 Million", "$3.7 Billion". Amounts below a million
// fall back to Format.
func Humanize(v int64) string {
	d := decimal.NewFromInt(v)
	switch abs := d.Abs(); {
	case abs.GreaterThanOrEqual(billion):
		return "$" + d.Div(billion).Round(1).String() + " Billion"
	case abs.GreaterThanOrEqual(million):
		return "$" + d.Div(million).Round(1).String() + " Million"
	default:
		return Format(v)
	}
}
