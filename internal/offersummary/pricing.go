package offersummary

import "github.com/shopspring/decimal"

// Rounding is the call-site rounding policy for money amounts.
type Rounding int

const (
	// RoundCents rounds to two decimals and renders fixed-point text ("90.00").
	RoundCents Rounding = iota
	// RoundWhole rounds to the nearest whole currency unit ("90").
	RoundWhole
)

// ParseRounding maps the configuration names "cents" and "whole" to a policy.
func ParseRounding(name string) (Rounding, bool) {
	switch name {
	case "cents", "":
		return RoundCents, true
	case "whole":
		return RoundWhole, true
	default:
		return RoundCents, false
	}
}

func (r Rounding) places() int32 {
	if r == RoundWhole {
		return 0
	}
	return 2
}

var hundred = decimal.NewFromInt(100)

// Amount is a rounded money amount, or NotProvided when it could not be computed.
type Amount struct {
	Value  decimal.Decimal
	Valid  bool
	places int32
}

// String renders the amount with the policy's fixed number of decimals, or NotProvided.
func (a Amount) String() string {
	if !a.Valid {
		return NotProvided
	}
	return a.Value.StringFixed(a.places)
}

// PriceAfterDiscount computes price * (1 - discountPercent/100) rounded by policy.
// It returns an invalid Amount when either input is not numeric.
func PriceAfterDiscount(price, discountPercent Numeric, policy Rounding) Amount {
	p, ok := price.Decimal()
	if !ok {
		return Amount{}
	}
	d, ok := discountPercent.Decimal()
	if !ok {
		return Amount{}
	}

	factor := decimal.NewFromInt(1).Sub(d.Div(hundred))
	places := policy.places()
	return Amount{Value: p.Mul(factor).Round(places), Valid: true, places: places}
}

// LineTotal multiplies the discounted unit price by quantity, clamped at zero.
// An invalid price or a non-numeric quantity yields zero.
func LineTotal(price Amount, quantity Numeric) decimal.Decimal {
	if !price.Valid {
		return decimal.Zero
	}
	q, ok := quantity.Decimal()
	if !ok {
		return decimal.Zero
	}
	total := price.Value.Mul(q).Round(price.places)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
