package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/etnz/pricegraph"
	"github.com/shopspring/decimal"
)

// Amount is a price ready to be displayed, as money when the reporting
// currency is known to go-money, as a plain number otherwise.
type Amount struct {
	value    decimal.Decimal
	currency string
}

// NewAmount returns the Amount for p in currency. An empty or unknown
// currency displays p as a plain number.
func NewAmount(p pricegraph.Price, currency string) Amount {
	return Amount{value: p.Decimal(), currency: currency}
}

// ValidCurrency reports whether code is a currency that amounts can be
// displayed in. The empty code is valid and means no currency.
func ValidCurrency(code string) bool {
	return code == "" || money.GetCurrency(code) != nil
}

func (a Amount) String() string {
	cur := money.GetCurrency(a.currency)
	if cur == nil {
		return a.value.String()
	}
	// Rounded to the minor unit, half away from zero.
	minor := a.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// SignedString is like String but always shows the sign.
func (a Amount) SignedString() string {
	if a.value.IsPositive() {
		return "+" + a.String()
	}
	return a.String()
}

// Percent is a relative change, displayed with two decimals and a sign.
type Percent struct {
	value decimal.Decimal
}

func (p Percent) String() string {
	s := p.value.StringFixed(2) + "%"
	if p.value.IsPositive() {
		return "+" + s
	}
	return s
}
