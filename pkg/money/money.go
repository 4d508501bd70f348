// Package money formats amounts for display: a currency symbol followed by
// digits grouped the English way.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultSymbol is the rupee sign the shop prices in.
const DefaultSymbol = "₹"

// Formatter renders decimal amounts with a fixed currency symbol.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter creates a Formatter for the given symbol. An empty symbol falls back to DefaultSymbol.
func NewFormatter(symbol string) Formatter {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return Formatter{
		symbol:  symbol,
		printer: message.NewPrinter(language.English),
	}
}

// Format renders whole amounts without decimals (₹1,250) and everything else with two (₹1,250.50).
func (f Formatter) Format(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	if amount.IsInteger() {
		return sign + f.symbol + f.printer.Sprintf("%d", amount.IntPart())
	}
	value, _ := amount.Round(2).Float64()
	return sign + f.symbol + f.printer.Sprintf("%.2f", value)
}

// Symbol returns the currency symbol used by the formatter.
func (f Formatter) Symbol() string {
	return f.symbol
}
