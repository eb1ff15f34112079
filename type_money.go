package ledger

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the single unit of account for the whole ledger.
// The operation is dollarized; there is no multi-currency support.
const Currency = money.USD

// Money represents a monetary value in the ledger currency.
type Money struct {
	value decimal.Decimal
}

// M builds a Money from any numeric value.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// String returns the money value formatted as currency, e.g. "$176.01".
func (m Money) String() string {
	cur := money.GetCurrency(Currency)
	cents := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(cents.IntPart())
}

// SignedString returns the formatted value with an explicit sign.
// Zero is represented as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                   { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money            { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money            { return Money{value: m.value.Sub(n.value)} }
func (m Money) MulWeight(w Weight) Money     { return Money{value: m.value.Mul(w.value)} }
func (m Money) MulRate(r decimal.Decimal) Money { return Money{value: m.value.Mul(r)} }

// Round2 returns the value rounded to the currency's two-decimal precision.
// Derived fields are persisted rounded; intermediate arithmetic is exact.
func (m Money) Round2() Money { return Money{value: m.value.Round(2)} }

// Decimal exposes the underlying exact value.
func (m Money) Decimal() decimal.Decimal { return m.value }

// Float64 returns an inexact float, for spreadsheet cells only.
func (m Money) Float64() float64 { return m.value.InexactFloat64() }

// MarshalJSON implements the json.Marshaler interface for Money. The value
// is written as a bare number rounded to the cent.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.Round(2).String()), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface for Money.
func (m *Money) UnmarshalJSON(b []byte) error {
	return m.value.UnmarshalJSON(b)
}
