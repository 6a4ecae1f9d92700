// Package money converts decimal prices to Klarna's integer wire units and back.
package money

import (
	"fmt"
	"math"

	"github.com/govalues/decimal"

	"github.com/polkiloo/klarnapay/internal/domain/model"
)

var taxRateScale = decimal.MustNew(10000, 0)

// ToAmount converts price to minor units (×100), truncating extra precision.
// With forcePositive a negative result is negated.
func ToAmount(price model.Price, forcePositive bool) int64 {
	amount := scaleTrunc(price.Number, decimal.Hundred)
	if forcePositive && amount < 0 {
		amount = -amount
	}
	return amount
}

// ToTaxRate converts a percentage string ("24", "24.5555") to Klarna tax rate (×10000).
func ToTaxRate(percentage string) (int64, error) {
	d, err := decimal.Parse(percentage)
	if err != nil {
		return 0, fmt.Errorf("parse tax percentage %q: %w", percentage, err)
	}
	return TaxRate(d), nil
}

// TaxRate converts an already parsed percentage to Klarna tax rate.
func TaxRate(percentage decimal.Decimal) int64 {
	return scaleTrunc(percentage, taxRateScale)
}

// ToPrice converts minor units back to a decimal price.
func ToPrice(amount int64, currency string) model.Price {
	return model.Price{Number: decimal.MustNew(amount, 2), Currency: currency}
}

// scaleTrunc multiplies d by factor and truncates toward zero.
func scaleTrunc(d, factor decimal.Decimal) int64 {
	scaled, err := d.Mul(factor)
	if err != nil {
		// overflow of the coefficient, nothing sane to send
		return 0
	}
	scaled = scaled.Trunc(0)
	if scaled.Coef() > math.MaxInt64 {
		return 0
	}

	n := int64(scaled.Coef())
	for i := 0; i < scaled.Scale(); i++ {
		n /= 10
	}
	if scaled.Sign() < 0 {
		n = -n
	}
	return n
}
