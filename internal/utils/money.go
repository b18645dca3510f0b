package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney parses "1,250.50" or "$1250.5" into a decimal amount.
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("invalid amount")
	}
	return decimal.NewFromString(s)
}

// FormatMoney renders a dollar amount with thousand separators, e.g. $1,250.50.
func FormatMoney(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return fmt.Sprintf("%s$%s.%s", sign, formatThousand(whole), frac)
}

func formatThousand(digits string) string {
	var out strings.Builder
	for i, c := range digits {
		if i != 0 && (len(digits)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
