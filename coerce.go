package ledger

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// This file defines the coercion fallback policy for recomputation paths.
//
// Malformed numeric or date values found while re-reading historical rows
// degrade to zero/empty instead of failing the whole recompute. Entry
// validation (validation.go) is the strict boundary; these primitives are
// deliberately forgiving so a partially corrupt dataset still reconciles.

// numOrZero converts a decoded JSON value to a decimal, degrading to zero.
func numOrZero(v any) decimal.Decimal {
	switch x := v.(type) {
	case float64:
		return decimal.NewFromFloat(x)
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// intOrZero converts a decoded JSON value to an int, degrading to zero.
func intOrZero(v any) int {
	return int(numOrZero(v).IntPart())
}

// strOrEmpty converts a decoded JSON value to a string, degrading to "".
func strOrEmpty(v any) string {
	s, _ := v.(string)
	return s
}

// dateOrZero converts a decoded JSON value to a Date, degrading to the zero
// Date.
func dateOrZero(v any) Date {
	s, ok := v.(string)
	if !ok {
		return Date{}
	}
	return ParseDateLenient(s)
}
