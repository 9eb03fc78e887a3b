package ledger

import (
	"github.com/shopspring/decimal"

	"salespoint/internal/model"
)

// DiscountKind selects how a row discount is applied.
type DiscountKind int

const (
	// DiscountPercent scales with the line subtotal: amount = qty * price * value / 100.
	DiscountPercent DiscountKind = iota
	// DiscountFixed is a flat amount per line, not scaled by quantity.
	DiscountFixed
)

var hundred = decimal.NewFromInt(100)

// DiscountSpec is a tagged discount value: Percent(0..100) or Fixed(>= 0).
type DiscountSpec struct {
	Kind  DiscountKind
	Value decimal.Decimal
}

// PercentDiscount builds a percentage discount, clamped into [0, 100].
func PercentDiscount(value decimal.Decimal) DiscountSpec {
	if value.IsNegative() {
		value = decimal.Zero
	} else if value.GreaterThan(hundred) {
		value = hundred
	}
	return DiscountSpec{Kind: DiscountPercent, Value: value}
}

// FixedDiscount builds a flat discount, clamped to >= 0.
func FixedDiscount(value decimal.Decimal) DiscountSpec {
	if value.IsNegative() {
		value = decimal.Zero
	}
	return DiscountSpec{Kind: DiscountFixed, Value: value}
}

// Amount computes the discount for a line.
func (d DiscountSpec) Amount(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	switch d.Kind {
	case DiscountFixed:
		return d.Value
	default:
		return quantity.Mul(unitPrice).Mul(d.Value).Div(hundred)
	}
}

// TypeString returns the wire value for the submission payload.
func (d DiscountSpec) TypeString() string {
	if d.Kind == DiscountFixed {
		return model.DiscountTypeFixed
	}
	return model.DiscountTypePercentage
}

// DiscountFromWire rebuilds a spec from the fetched discount_type /
// discount_value pair. Unknown types decode as a zero percentage so a stale
// document still loads.
func DiscountFromWire(discountType string, value decimal.Decimal) DiscountSpec {
	switch discountType {
	case model.DiscountTypeFixed:
		return FixedDiscount(value)
	case model.DiscountTypePercentage:
		return PercentDiscount(value)
	default:
		return PercentDiscount(decimal.Zero)
	}
}
