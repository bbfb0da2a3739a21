package pricegraph

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Price is the value of a single point of a graph.
//
// It is persisted as a bare JSON number.
type Price struct {
	value decimal.Decimal
}

// P returns the Price for value.
func P[T float64 | int | int64 | decimal.Decimal](value T) Price {
	return Price{value: newDecimal(value)}
}

// ParsePrice parses a decimal number like "30000" or "12.50".
func ParsePrice(s string) (Price, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return Price{value: v}, nil
}

func (p Price) Decimal() decimal.Decimal { return p.value }
func (p Price) Equal(q Price) bool       { return p.value.Equal(q.value) }
func (p Price) IsNegative() bool         { return p.value.IsNegative() }
func (p Price) IsZero() bool             { return p.value.IsZero() }
func (p Price) Sub(q Price) Price        { return Price{value: p.value.Sub(q.value)} }
func (p Price) InexactFloat64() float64  { return p.value.InexactFloat64() }
func (p Price) StringFixed(n int) string { return p.value.StringFixed(int32(n)) }
func (p Price) String() string           { return p.value.String() }
func (p Price) Cmp(q Price) int          { return p.value.Cmp(q.value) }
func (p Price) GreaterThan(q Price) bool { return p.value.GreaterThan(q.value) }

// RelativeTo returns the change from base to p in percent, and false when
// base is zero.
func (p Price) RelativeTo(base Price) (decimal.Decimal, bool) {
	if base.value.IsZero() {
		return decimal.Zero, false
	}
	return p.value.Sub(base.value).Div(base.value).Mul(decimal.NewFromInt(100)), true
}

// MarshalJSON writes the price as a JSON number.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.value.String()), nil
}

// UnmarshalJSON reads a JSON number, or a string holding a number.
func (p *Price) UnmarshalJSON(data []byte) error {
	return p.value.UnmarshalJSON(data)
}
