package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// Money is a currency amount with decimal precision.
type Money struct {
	decimal.Decimal
}

// NewMoney converts a float amount. Non-finite input becomes zero.
func NewMoney(value float64) Money {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Zero()
	}
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal wraps a decimal.Decimal.
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString parses a decimal string such as "1234.56".
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{decimal.Zero}
}

// Round rounds to cents.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Deflate divides by cumulative inflation over years: m / (1+rate)^years.
func (m Money) Deflate(rate float64, years int) Money {
	if years <= 0 {
		return m
	}
	factor := decimal.NewFromFloat(1 + rate).Pow(decimal.NewFromInt(int64(years)))
	if factor.IsZero() {
		return m
	}
	return Money{m.Decimal.Div(factor)}
}

// AfterTax taxes only the gain above principal: principal + max(0, m−principal)·(1−rate).
func (m Money) AfterTax(principal Money, rate float64) Money {
	gains := m.Decimal.Sub(principal.Decimal)
	if gains.IsNegative() {
		gains = decimal.Zero
	}
	keep := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(rate))
	return Money{principal.Decimal.Add(gains.Mul(keep))}
}

// Add adds another amount.
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another amount.
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Gain is the amount above principal, floored at zero.
func (m Money) Gain(principal Money) Money {
	return Max(Zero(), m.Sub(principal))
}

// Max returns the larger amount.
func Max(a, b Money) Money {
	if a.GreaterThan(b.Decimal) {
		return a
	}
	return b
}

// String returns the amount with two decimals.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}
