package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	smallNumbers = []string{
		"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
		"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
		"Seventeen", "Eighteen", "Nineteen",
	}
	tensNames = []string{
		"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
	}
)

// indianScales are applied largest first; crore recurses so amounts above
// 99 crore read as "One Hundred Crore".
var indianScales = []struct {
	value int64
	name  string
}{
	{10_000_000, "Crore"},
	{100_000, "Lakh"},
	{1_000, "Thousand"},
	{100, "Hundred"},
}

// AmountInWords spells the integer part of amount using lakh/crore grouping
// and the "Only" suffix, e.g. "One Lakh Twenty-Three Thousand Only".
func AmountInWords(amount decimal.Decimal) string {
	n := amount.IntPart()
	if n < 0 {
		n = -n
	}
	if n == 0 {
		return "Zero Only"
	}
	return strings.Join(spell(n), " ") + " Only"
}

func spell(n int64) []string {
	var words []string
	for _, s := range indianScales {
		if n >= s.value {
			words = append(words, spell(n/s.value)...)
			words = append(words, s.name)
			n %= s.value
		}
	}
	if n > 0 {
		words = append(words, belowHundred(n))
	}
	return words
}

func belowHundred(n int64) string {
	if n < 20 {
		return smallNumbers[n]
	}
	w := tensNames[n/10]
	if n%10 != 0 {
		w += "-" + smallNumbers[n%10]
	}
	return w
}
