// Package money formats amounts for display. All amounts in the service share
// one currency, so values stay plain decimals and only presentation lives
// here.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Places is the currency precision.
const Places = 2

// DefaultSymbol is the Peruvian sol sign.
const DefaultSymbol = "S/"

// Formatter renders amounts with grouping separators for a language.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter creates a Formatter for tag. An empty symbol uses DefaultSymbol.
func NewFormatter(tag language.Tag, symbol string) Formatter {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return Formatter{printer: message.NewPrinter(tag), symbol: symbol}
}

// Default formats with English separators, e.g. "S/ 1,066.20".
var Default = NewFormatter(language.English, DefaultSymbol)

// Amount renders d rounded to currency precision without a symbol.
func (f Formatter) Amount(d decimal.Decimal) string {
	return f.printer.Sprintf("%.2f", Round(d).InexactFloat64())
}

// Format renders d with the currency symbol.
func (f Formatter) Format(d decimal.Decimal) string {
	return f.symbol + " " + f.Amount(d)
}

// Percent renders a percentage such as "1.50%".
func (f Formatter) Percent(d decimal.Decimal) string {
	return f.printer.Sprintf("%.2f%%", d.Round(Places).InexactFloat64())
}

// Round rounds half away from zero to currency precision.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Parse reads a plain decimal amount such as "1200" or "1200.50".
func Parse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
