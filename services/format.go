package services

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol prefixes every formatted amount.
var CurrencySymbol = "$"

var amountPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency formats an amount with thousands grouping and exactly two
// decimal places, e.g. $1,234.56. Negative amounts render as -$1,234.56.
func FormatCurrency(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)

	result := CurrencySymbol + groupDigits(parts[0]) + "." + parts[1]
	if negative && raw != "0.00" {
		result = "-" + result
	}
	return result
}

// groupDigits inserts thousands separators into an unsigned integer string.
func groupDigits(s string) string {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return s
	}
	return amountPrinter.Sprintf("%d", n)
}

// FormatQuantity formats a quantity, showing decimals only when needed.
func FormatQuantity(q float64) string {
	if q == float64(int64(q)) {
		return amountPrinter.Sprintf("%d", int64(q))
	}
	return strconv.FormatFloat(q, 'f', 2, 64)
}

// FormatPercent formats a fractional rate as a percentage, e.g. 0.0825 as 8.25%.
func FormatPercent(rate float64) string {
	s := strconv.FormatFloat(rate*100, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + "%"
}
