package silverscrape

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// amountRe matches a currency amount: an optional dollar sign, digit
// groups with optional thousands separators, and an optional decimal
// fraction.
var amountRe = regexp.MustCompile(`\$?([0-9][0-9,]*(?:\.[0-9]+)?)`)

// fragmentRe matches a displayed price fragment including the dollar
// sign, e.g. "$1,234.50".
var fragmentRe = regexp.MustCompile(`\$[0-9][0-9,]*(?:\.[0-9]+)?`)

var pricePrinter = message.NewPrinter(language.English)

// ParsePrice extracts the first currency amount from text as a
// decimal. The second return value is false when no amount is present
// or the match does not parse as a number.
func ParsePrice(text string) (float64, bool) {
	m := amountRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// LastPriceFragment returns the last displayed currency amount in a
// text blob, or "" when none is present. Listing and detail markup on
// this site renders a struck-through original price before the active
// sale price, so the final amount is the one currently charged.
func LastPriceFragment(text string) string {
	frags := fragmentRe.FindAllString(text, -1)
	if len(frags) == 0 {
		return ""
	}
	return frags[len(frags)-1]
}

// FormatPrice renders the canonical display form of a numeric price,
// e.g. 1234.5 -> "$1,234.50".
func FormatPrice(v float64) string {
	return pricePrinter.Sprintf("$%.2f", v)
}
