package quote

import "github.com/shopspring/decimal"

// Amounts are carried as exact decimals inside the engine and rounded to
// cents once, when a line item or total is emitted.

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func cents(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Round2 rounds a currency amount half away from zero to two decimals.
func Round2(f float64) float64 {
	return cents(dec(f))
}

// sumAmounts adds already-rounded line amounts exactly.
func sumAmounts(lines []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(dec(l.Amount))
	}
	return total
}
