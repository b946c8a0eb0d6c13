package reports

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders an amount with Indian digit grouping, e.g.
// ₹12,34,567.50.
func FormatINR(amount float64) string {
	return inrPrinter.Sprintf("₹%v", number.Decimal(amount,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
