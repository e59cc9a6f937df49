package kernel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"roboshop/internal/pkg/errs"
)

// Money is an amount in minor currency units (1/100 of the unit). The zero value
// is a valid zero amount. Money is never negative.
type Money struct {
	amount int64
}

// NewMoney builds a Money from minor units.
func NewMoney(minor int64) (Money, error) {
	if minor < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", minor, 0, int64(math.MaxInt64))
	}
	return Money{amount: minor}, nil
}

// MustMoney is NewMoney for constants and tests.
func MustMoney(minor int64) Money {
	m, err := NewMoney(minor)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseMoney reads a decimal major-unit string such as "1499", "1499.5" or "1,499.50".
// More than two fractional digits is an error.
func ParseMoney(s string) (Money, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return Money{}, errs.NewValueIsRequiredError("amount")
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if !isDigits(whole) || (hasFrac && !isDigits(frac)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not a plain decimal number", s))
	}
	if len(frac) > 2 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q has more than two fractional digits", s))
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > (math.MaxInt64-99)/100 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is too large", s))
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(units*100 + cents)
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Amount returns the value in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

func (m Money) IsZero() bool {
	return m.amount == 0
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// Sub subtracts other, flooring at zero.
func (m Money) Sub(other Money) Money {
	if other.amount >= m.amount {
		return Money{}
	}
	return Money{amount: m.amount - other.amount}
}

// Times multiplies by a non-negative quantity.
func (m Money) Times(qty int) Money {
	if qty <= 0 {
		return Money{}
	}
	return Money{amount: m.amount * int64(qty)}
}

// BasisPoints returns bps/10000 of the amount, rounded half up.
func (m Money) BasisPoints(bps int) Money {
	if bps <= 0 {
		return Money{}
	}
	return Money{amount: (m.amount*int64(bps) + 5000) / 10000}
}

func (m Money) Less(other Money) bool {
	return m.amount < other.amount
}

// Min returns the smaller of the two amounts.
func (m Money) Min(other Money) Money {
	if other.amount < m.amount {
		return other
	}
	return m
}

// String renders major units with two decimals, e.g. "1499.50".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.amount/100, m.amount%100)
}
