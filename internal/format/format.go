// Package format renders amounts, percentages and labels for chart and
// notification payloads.
package format

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrency is used when no ISO 4217 code is configured.
const DefaultCurrency = "INR"

var printer = message.NewPrinter(language.MustParse("en-IN"))

// Currency formats an amount with the symbol of the given ISO 4217 code and
// localized digit grouping. An unknown code falls back to the default
// currency.
func Currency(amount decimal.Decimal, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.MustParseISO(DefaultCurrency)
	}

	value, _ := amount.Float64()
	return printer.Sprintf("%v%v", currency.Symbol(unit), number.Decimal(value, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Compact renders an amount in Indian notation: crores, lakhs and
// thousands.
func Compact(amount decimal.Decimal) string {
	value, _ := amount.Float64()

	switch {
	case value >= 1e7:
		return fmt.Sprintf("₹%.1fCr", value/1e7)
	case value >= 1e5:
		return fmt.Sprintf("₹%.1fL", value/1e5)
	case value >= 1e3:
		return fmt.Sprintf("₹%.1fK", value/1e3)
	default:
		return Currency(amount, DefaultCurrency)
	}
}

// Percentage formats a ratio scaled to percent with a fixed number of
// decimals.
func Percentage(value float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, value)
}

// Number formats a number with localized digit grouping.
func Number(value float64, decimals int) string {
	return printer.Sprintf("%v", number.Decimal(value, number.MinFractionDigits(decimals), number.MaxFractionDigits(decimals)))
}

// Truncate shortens text to at most maxLen runes, appending an ellipsis
// when it cuts.
func Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	return string(runes[:maxLen]) + "..."
}
