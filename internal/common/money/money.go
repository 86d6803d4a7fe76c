// Package money provides an exact integer-cents monetary value type.
package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
)

// Money is a signed monetary amount in minor units (cents). The zero value
// is zero cents. Money carries no sign restriction of its own; callers such
// as Wallet enforce non-negativity where it matters.
type Money struct {
	cents int64
}

// FromCents creates a Money value from an amount in cents.
func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{}
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Subtract returns the difference of two amounts.
func (m Money) Subtract(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// Equal checks equality.
func (m Money) Equal(other Money) bool {
	return m.cents == other.cents
}

// LessThan checks if m < other.
func (m Money) LessThan(other Money) bool {
	return m.cents < other.cents
}

// LessThanOrEqual checks if m <= other.
func (m Money) LessThanOrEqual(other Money) bool {
	return m.cents <= other.cents
}

// GreaterThan checks if m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.cents > other.cents
}

// GreaterThanOrEqual checks if m >= other.
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.cents >= other.cents
}

// String returns the amount formatted in major units, e.g. "123.45".
func (m Money) String() string {
	sign := ""
	cents := m.cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// MarshalJSON encodes the amount as a bare integer of cents.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(m.cents, 10)), nil
}

// UnmarshalJSON decodes an integer of cents.
func (m *Money) UnmarshalJSON(data []byte) error {
	cents, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("parsing money: %w", err)
	}
	m.cents = cents
	return nil
}

// Scan implements sql.Scanner.
func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = Money{}
		return nil
	case int64:
		m.cents = v
		return nil
	case int32:
		m.cents = int64(v)
		return nil
	default:
		return errors.New("cannot scan into Money")
	}
}

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) {
	return m.cents, nil
}
