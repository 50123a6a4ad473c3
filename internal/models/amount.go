package models

import (
	"fmt"

	"github.com/rayslava/camt053/internal/currencyutils"

	"github.com/shopspring/decimal"
)

// Amount is a currency amount as carried by Amt and TxAmt elements: the
// currency goes to the Ccy attribute and the value to the element text.
// Value is an exact decimal; its scale is kept so "1000.00" stays "1000.00".
type Amount struct {
	Currency string
	Value    decimal.Decimal
}

// NewAmount creates a new Amount with the given value and currency
func NewAmount(value decimal.Decimal, currency string) Amount {
	return Amount{
		Currency: currency,
		Value:    value,
	}
}

// ParseAmount creates an Amount from a decimal string such as "1000.00".
func ParseAmount(value, currency string) (Amount, error) {
	dec, err := currencyutils.ParseDecimal(value)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount: %w", err)
	}
	return Amount{Currency: currency, Value: dec}, nil
}

// MustParseAmount is like ParseAmount but panics on malformed input.
// It is meant for literals in tests and examples.
func MustParseAmount(value, currency string) Amount {
	a, err := ParseAmount(value, currency)
	if err != nil {
		panic(err)
	}
	return a
}

// Text returns the value in the lexical form written to XML.
func (a Amount) Text() string {
	return currencyutils.FormatDecimal(a.Value)
}

// String returns a string representation such as "1000.00 EUR"
func (a Amount) String() string {
	return fmt.Sprintf("%s %s", a.Text(), a.Currency)
}

// IsZero returns true if the value is zero
func (a Amount) IsZero() bool {
	return a.Value.IsZero()
}

// Equal returns true if both amounts have the same currency and numeric value.
func (a Amount) Equal(other Amount) bool {
	return a.Currency == other.Currency && a.Value.Equal(other.Value)
}

// Identical is stricter than Equal: the written text must match as well,
// so 1000.0 and 1000.00 are Equal but not Identical.
func (a Amount) Identical(other Amount) bool {
	return a.Equal(other) && a.Text() == other.Text()
}

// Add adds another amount to this one
// Returns an error if currencies don't match
func (a Amount) Add(other Amount) (Amount, error) {
	if a.Currency != other.Currency {
		return Amount{}, fmt.Errorf("cannot add different currencies: %s and %s", a.Currency, other.Currency)
	}
	return Amount{Currency: a.Currency, Value: a.Value.Add(other.Value)}, nil
}

// Sub subtracts another amount from this one
// Returns an error if currencies don't match
func (a Amount) Sub(other Amount) (Amount, error) {
	if a.Currency != other.Currency {
		return Amount{}, fmt.Errorf("cannot subtract different currencies: %s and %s", a.Currency, other.Currency)
	}
	return Amount{Currency: a.Currency, Value: a.Value.Sub(other.Value)}, nil
}
