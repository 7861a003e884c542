package util

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumber reads a spreadsheet cell as a float. Thousand separators are not
// accepted; raw cell values never carry them.
func ParseNumber(input string) (float64, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// RoundText rounds a numeric string to places decimals, dropping trailing
// zeros ("2.71420001" -> "2.7142", "3.0" -> "3"). Non-numeric input is
// returned unchanged with ok=false.
func RoundText(input string, places int32) (string, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return input, false
	}
	return d.Round(places).String(), true
}

// CompareValues orders two nullable cells: numerically when both parse,
// otherwise lexically. Nulls sort last.
func CompareValues(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	af, aok := ParseNumber(*a)
	bf, bok := ParseNumber(*b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	return strings.Compare(*a, *b)
}
