// Package narrative renders computed metrics into governance sentences.
// It formats numbers and nothing else.
package narrative

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Formatter controls how amounts are written.
type Formatter struct {
	CurrencySymbol string
	UnitSuffix     string
}

// DefaultFormatter writes amounts as £ millions, e.g. "£8.8m".
var DefaultFormatter = Formatter{CurrencySymbol: "£", UnitSuffix: "m"}

// Currency formats v to one decimal place.
func (f Formatter) Currency(v float64) string {
	return f.CurrencyPlaces(v, 1)
}

func (f Formatter) CurrencyPlaces(v float64, places int32) string {
	s := fixed(v, places)
	if strings.HasPrefix(s, "-") {
		return "-" + f.CurrencySymbol + s[1:] + f.UnitSuffix
	}
	return f.CurrencySymbol + s + f.UnitSuffix
}

// Percent formats v, already a percentage, to one decimal place.
func Percent(v float64) string {
	return fixed(v, 1) + "%"
}

// Number formats v to one decimal place without a unit.
func Number(v float64) string {
	return fixed(v, 1)
}

// Plain drops trailing zeros, for levers entered as whole percentages.
func Plain(v float64) string {
	return decimal.NewFromFloat(v).String()
}

func fixed(v float64, places int32) string {
	s := decimal.NewFromFloat(v).StringFixed(places)
	if strings.TrimLeft(s, "-0.") == "" {
		return strings.TrimPrefix(s, "-")
	}
	return s
}
