package domain

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Price precision of the products table: 12 significant digits, 2 of them decimals.
const (
	PriceDigits = 12
	PricePlaces = 2
)

// Money represents a monetary value with precise decimal arithmetic using big.Rat.
// It stores the value as a rational number to avoid floating-point precision issues.
type Money struct {
	rat *big.Rat
}

// ParseMoney parses a decimal string such as "1999.99".
func ParseMoney(s string) (*Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return NewMoneyFromDecimal(d), nil
}

// NewMoneyFromDecimal converts a decimal into Money without loss.
func NewMoneyFromDecimal(d decimal.Decimal) *Money {
	return &Money{rat: d.Rat()}
}

// NewMoneyFromRat creates a new Money instance from a big.Rat.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return &Money{rat: big.NewRat(0, 1)}
	}
	return &Money{rat: new(big.Rat).Set(rat)}
}

// Rat returns a copy of the underlying rational, the form Spanner NUMERIC columns take.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.rat)
}

// Decimal returns the value rounded to the price scale.
func (m *Money) Decimal() decimal.Decimal {
	return decimal.NewFromBigRat(m.rat, PricePlaces)
}

// Subtract subtracts another Money value from this one and returns a new Money instance.
func (m *Money) Subtract(other *Money) *Money {
	return &Money{rat: new(big.Rat).Sub(m.rat, other.rat)}
}

// Quo divides this Money value by another and returns the ratio.
func (m *Money) Quo(other *Money) (*big.Rat, error) {
	if other.rat.Sign() == 0 {
		return nil, fmt.Errorf("cannot divide by zero")
	}
	return new(big.Rat).Quo(m.rat, other.rat), nil
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// Equals returns true if this Money value equals another.
func (m *Money) Equals(other *Money) bool {
	return m.rat.Cmp(other.rat) == 0
}

// FitsPrecision reports whether the value is representable as decimal(digits, places).
func (m *Money) FitsPrecision(digits, places int) bool {
	scale := new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil))
	scaled := new(big.Rat).Mul(m.rat, scale)
	if !scaled.IsInt() {
		return false
	}

	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	return new(big.Int).Abs(scaled.Num()).Cmp(limit) < 0
}

// String returns the value with two decimals.
func (m *Money) String() string {
	return m.rat.FloatString(PricePlaces)
}

// Copy creates a deep copy of this Money instance.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}
