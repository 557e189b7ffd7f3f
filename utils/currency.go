package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount with two decimals and grouped thousands.
// Example: 1234567.5 -> "1 234 567,50 RUB"
func FormatCurrency(amount decimal.Decimal) string {
	formatted := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(formatted, "-") {
		sign = "-"
		formatted = formatted[1:]
	}

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	// Tambahkan pemisah ribuan
	var result []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		result = append([]string{integerPart[start:i]}, result...)
	}

	return sign + strings.Join(result, " ") + "," + decimalPart + " RUB"
}
