package model

import (
	"fmt"

	"github.com/govalues/decimal"
)

// Price is a decimal amount in a given ISO-4217 currency.
type Price struct {
	Number   decimal.Decimal `json:"number"`
	Currency string          `json:"currency_code"`
}

// NewPrice parses a decimal string into Price.
func NewPrice(number, currency string) (Price, error) {
	d, err := decimal.Parse(number)
	if err != nil {
		return Price{}, fmt.Errorf("parse price %q: %w", number, err)
	}
	return Price{Number: d, Currency: currency}, nil
}

// MustPrice is NewPrice that panics on malformed input. Intended for fixtures.
func MustPrice(number, currency string) Price {
	p, err := NewPrice(number, currency)
	if err != nil {
		panic(err)
	}
	return p
}

// Add sums two prices of the same currency.
func (p Price) Add(other Price) (Price, error) {
	if err := p.sameCurrency(other); err != nil {
		return Price{}, err
	}
	sum, err := p.Number.Add(other.Number)
	if err != nil {
		return Price{}, err
	}
	return Price{Number: sum, Currency: p.currencyWith(other)}, nil
}

// Sub subtracts other from p.
func (p Price) Sub(other Price) (Price, error) {
	if err := p.sameCurrency(other); err != nil {
		return Price{}, err
	}
	diff, err := p.Number.Sub(other.Number)
	if err != nil {
		return Price{}, err
	}
	return Price{Number: diff, Currency: p.currencyWith(other)}, nil
}

// Equal reports whether both prices carry the same numeric value and currency.
func (p Price) Equal(other Price) bool {
	return p.Currency == other.Currency && p.Number.Cmp(other.Number) == 0
}

// IsZero reports whether the amount is zero.
func (p Price) IsZero() bool {
	return p.Number.IsZero()
}

// IsPositive reports whether the amount is strictly above zero.
func (p Price) IsPositive() bool {
	return p.Number.Sign() > 0
}

func (p Price) String() string {
	return p.Number.String() + " " + p.Currency
}

func (p Price) sameCurrency(other Price) error {
	// Zero value prices carry no currency and combine with anything.
	if p.Currency == "" || other.Currency == "" || p.Currency == other.Currency {
		return nil
	}
	return fmt.Errorf("currency mismatch: %s vs %s", p.Currency, other.Currency)
}

func (p Price) currencyWith(other Price) string {
	if p.Currency != "" {
		return p.Currency
	}
	return other.Currency
}
