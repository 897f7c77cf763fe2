// Package format renders won amounts the way the calculators display them.
package format

import (
	"math"

	"github.com/iwvelando/moneywiki/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	eok = 100_000_000
	man = 10_000
)

var printer = message.NewPrinter(language.Korean)

// Won returns an amount rounded to whole won with separators (e.g., "-1,234원").
func Won(amount float64) string {
	return NumericWon(amount) + "원"
}

// NumericWon returns a rounded amount with separators and no unit (e.g., "1,234").
func NumericWon(amount float64) string {
	return printer.Sprintf("%.0f", mathutil.RoundWon(amount))
}

// WonShort abbreviates an amount to 억 and 만 units, truncating the
// remainder (e.g., 123,450,000 becomes "1억 2,345만원"). Amounts under 만 are
// shown in full.
func WonShort(amount float64) string {
	rounded := mathutil.RoundWon(amount)
	sign := ""
	if rounded < 0 {
		sign = "-"
	}
	abs := math.Abs(rounded)

	switch {
	case abs >= eok:
		e := math.Floor(abs / eok)
		m := math.Floor(math.Mod(abs, eok) / man)
		if m > 0 {
			return printer.Sprintf("%s%.0f억 %.0f만원", sign, e, m)
		}
		return printer.Sprintf("%s%.0f억원", sign, e)
	case abs >= man:
		return printer.Sprintf("%s%.0f만원", sign, math.Floor(abs/man))
	}
	return sign + NumericWon(abs) + "원"
}

// Percent returns a percentage with two decimals (e.g., "7.13%").
func Percent(value float64) string {
	return printer.Sprintf("%.2f%%", value)
}
