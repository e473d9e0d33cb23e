package domain

import "github.com/shopspring/decimal"

// Money is a fixed-point monetary amount. The backend exchanges amounts as
// bare JSON numbers, so MarshalJSON is overridden to avoid decimal's default
// quoted form; UnmarshalJSON accepts both quoted and unquoted numbers.
type Money struct {
	decimal.Decimal
}

// MoneyFromFloat converts a float value into Money.
func MoneyFromFloat(v float64) Money {
	return Money{decimal.NewFromFloat(v)}
}

// MoneyFromString parses a decimal string into Money.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// MarshalJSON renders the amount as an unquoted JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// Display formats the amount as a dollar string with two decimal places,
// e.g. "$120.50".
func (m Money) Display() string {
	return "$" + m.StringFixed(2)
}
