package kernel

import (
	"fmt"
	"math"

	"quickbite/internal/pkg/errs"
)

// Money is an immutable amount in minor currency units (e.g. cents).
// Negative amounts are not representable; subtraction that would go below
// zero fails instead of producing a negative balance.
type Money struct {
	amount int64
}

// NewMoney creates a Money value. The amount must not be negative.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}
	return Money{amount: amount}, nil
}

// Amount returns the amount in minor units.
func (m Money) Amount() int64 {
	return m.amount
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// Sub returns m minus other, or an error when the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	if other.amount > m.amount {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("subtracting %d from %d would be negative", other.amount, m.amount))
	}
	return Money{amount: m.amount - other.amount}, nil
}

// MultiplyInt returns the amount multiplied by a non-negative integer
// factor. Negative factors are clamped to zero.
func (m Money) MultiplyInt(n int) Money {
	if n < 0 {
		return Money{}
	}
	return Money{amount: m.amount * int64(n)}
}

// MultiplyRounded returns the amount scaled by rate and rounded to the
// nearest minor unit. Used for percentage-based earning calculations.
func (m Money) MultiplyRounded(rate float64) Money {
	return Money{amount: int64(math.Round(float64(m.amount) * rate))}
}

// IsEqual reports whether two amounts are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String implements fmt.Stringer.
func (m Money) String() string {
	return fmt.Sprintf("Money(%d)", m.amount)
}
