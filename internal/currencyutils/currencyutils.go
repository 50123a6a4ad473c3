// Package currencyutils provides the decimal handling for ISO 20022 amounts.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// decimalPattern matches the lexical form of an xs:decimal without exponent.
var decimalPattern = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?$`)

// ParseDecimal parses an amount string in xs:decimal form ("1000.00", "0.5").
// Unlike decimal.NewFromString it rejects exponents, thousands separators and
// surrounding whitespace so that malformed input is never reinterpreted.
func ParseDecimal(amountStr string) (decimal.Decimal, error) {
	if !decimalPattern.MatchString(amountStr) {
		return decimal.Zero, fmt.Errorf("'%s' is not a decimal number", amountStr)
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// Scale returns the number of fractional digits carried by amount.
func Scale(amount decimal.Decimal) int32 {
	if exp := amount.Exponent(); exp < 0 {
		return -exp
	}
	return 0
}

// FormatDecimal renders amount keeping its own scale, so a value parsed from
// "1000.00" is written back as "1000.00" and not "1000".
func FormatDecimal(amount decimal.Decimal) string {
	return amount.StringFixed(Scale(amount))
}

// FormatAmount formats a decimal amount for display with the specified currency.
// The amount is formatted with two decimal places without inserting thousands separators.
// Returns strings like "CHF 1234.56" or "€1234.56"
func FormatAmount(amount decimal.Decimal, currency string) string {
	places := Scale(amount)
	if places < 2 {
		places = 2
	}
	formattedAmount := amount.StringFixed(places)

	if currency != "" {
		switch strings.ToUpper(currency) {
		case "EUR":
			return "€" + formattedAmount
		case "USD":
			return "$" + formattedAmount
		case "GBP":
			return "£" + formattedAmount
		case "JPY":
			return "¥" + formattedAmount
		default:
			return currency + " " + formattedAmount
		}
	}

	return formattedAmount
}

// SignedAmount returns amount negated for debits ("DBIT") and unchanged otherwise.
func SignedAmount(amount decimal.Decimal, creditDebit string) decimal.Decimal {
	if creditDebit == "DBIT" {
		return amount.Neg()
	}
	return amount
}
