package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatFCFA formats an amount in CFA francs with a space as the thousands
// separator, the way amounts are written in the region.
// Example: 250000 returns "250 000 FCFA".
func FormatFCFA(amount decimal.Decimal) string {
	return FormatAmount(amount) + " FCFA"
}

// FormatAmount formats a decimal amount with space-separated thousands.
// Fractional parts are kept when present, rounded to two decimal places.
func FormatAmount(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	s := rounded.String()

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart = s[:idx]
		fracPart = s[idx:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	b.WriteString(fracPart)
	return b.String()
}
