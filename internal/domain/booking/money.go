package booking

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid money amount")

// Money is an amount in minor units (cents). Arithmetic never goes through floats.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

// ParseMoney accepts a decimal string such as "5" or "12.50" with at most two fractional digits.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.IsNegative() || !d.Equal(d.Round(2)) {
		return Money{}, ErrInvalidAmount
	}
	return Money{cents: d.Shift(2).IntPart()}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Times(n int64) Money {
	return Money{cents: m.cents * n}
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.cents, -2)
}

// String renders the amount with two fractional digits, e.g. "15.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}
