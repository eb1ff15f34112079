package ledger

import "github.com/shopspring/decimal"

// PoundsPerKilo is the fixed conversion factor between the scale unit (kg)
// and the pricing unit (lb).
var PoundsPerKilo = decimal.NewFromFloat(2.20462)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Weight is a mass quantity. Whether a given value is in kilograms or pounds
// is carried by the field holding it, not by the type.
type Weight struct {
	value decimal.Decimal
}

// W builds a Weight from any numeric value.
func W[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Weight {
	return Weight{value: newDecimal(value)}
}

// Pounds converts a kilogram weight into pounds at the fixed factor.
func (w Weight) Pounds() Weight { return Weight{value: w.value.Mul(PoundsPerKilo)} }

// DivUnits returns the per-unit average weight. A zero unit count yields
// zero, not an error.
func (w Weight) DivUnits(n int) Weight {
	if n == 0 {
		return Weight{}
	}
	return Weight{value: w.value.Div(decimal.NewFromInt(int64(n)))}
}

func (w Weight) Equal(x Weight) bool       { return w.value.Equal(x.value) }
func (w Weight) IsZero() bool              { return w.value.IsZero() }
func (w Weight) IsNegative() bool          { return w.value.IsNegative() }
func (w Weight) LessThan(x Weight) bool    { return w.value.LessThan(x.value) }
func (w Weight) GreaterThan(x Weight) bool { return w.value.GreaterThan(x.value) }
func (w Weight) Add(x Weight) Weight       { return Weight{value: w.value.Add(x.value)} }
func (w Weight) Sub(x Weight) Weight       { return Weight{value: w.value.Sub(x.value)} }

// MulPrice prices the weight at a per-pound unit price.
func (w Weight) MulPrice(p Money) Money { return Money{value: w.value.Mul(p.value)} }

// MulRate applies a fractional rate, used for debit-note possible discounts.
func (w Weight) MulRate(r decimal.Decimal) Money { return Money{value: w.value.Mul(r)} }

// Decimal exposes the underlying exact value.
func (w Weight) Decimal() decimal.Decimal { return w.value }

// Float64 returns an inexact float, for spreadsheet cells only.
func (w Weight) Float64() float64 { return w.value.InexactFloat64() }

func (w Weight) String() string { return w.value.StringFixed(2) }

// MarshalJSON implements the json.Marshaler interface for Weight. The value
// is written as a bare number at full precision.
func (w Weight) MarshalJSON() ([]byte, error) {
	return []byte(w.value.String()), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface for Weight.
func (w *Weight) UnmarshalJSON(b []byte) error {
	return w.value.UnmarshalJSON(b)
}
