package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer = message.NewPrinter(language.English)

	// amounts from here up are printed without digit grouping
	groupingLimit = decimal.New(1, 18)
)

// Format renders amount with two fraction digits and digit grouping, e.g. ₹1,234.50.
// Rounding happens here and nowhere earlier.
func Format(symbol string, amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	abs := rounded.Abs()

	whole, frac, _ := strings.Cut(abs.StringFixed(2), ".")
	if abs.LessThan(groupingLimit) {
		whole = printer.Sprintf("%d", abs.IntPart())
	}
	return symbol + sign + whole + "." + frac
}

// FormatTotals renders every line of a breakdown
func FormatTotals(symbol string, t Totals) map[string]string {
	return map[string]string{
		"subtotal":     Format(symbol, t.Subtotal),
		"delivery_fee": Format(symbol, t.DeliveryFee),
		"discount":     Format(symbol, t.Discount),
		"total":        Format(symbol, t.Total),
	}
}
