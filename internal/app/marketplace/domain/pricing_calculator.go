package domain

import (
	"math/big"
	"strconv"
)

// PricingCalculator is a domain service for the stored discount figures of a product.
//
// The percentage is derived on every write from the two prices and is never
// taken from user input. A new price above the original yields a negative
// percentage; this layer does not reject it.
type PricingCalculator struct{}

// NewPricingCalculator creates a new PricingCalculator instance.
func NewPricingCalculator() *PricingCalculator {
	return &PricingCalculator{}
}

// Package-level calculator instance for domain object use
var defaultPricingCalculator = NewPricingCalculator()

var hundred = big.NewRat(100, 1)

// PercentageDiscount returns (original - new) / original * 100 rounded to the
// nearest integer, halves away from zero. A zero original price yields 0.
func (pc *PricingCalculator) PercentageDiscount(original, newPrice *Money) int64 {
	ratio, err := original.Subtract(newPrice).Quo(original)
	if err != nil {
		return 0
	}

	percent := new(big.Rat).Mul(ratio, hundred)
	// FloatString rounds halves away from zero.
	n, err := strconv.ParseInt(percent.FloatString(0), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
