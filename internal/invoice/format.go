package invoice

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatINR renders an amount as rupees with thousands grouping, e.g. ₹1,234.50.
func FormatINR(d decimal.Decimal) string {
	return "₹" + printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

// FormatDate renders a calendar date as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
