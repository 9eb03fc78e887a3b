package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"salespoint/internal/model"
)

// Row is one editable line: a product snapshot, a quantity, a discount and a
// derived total. The line total is never set directly; every mutation
// recomputes it, so it can never go stale.
//
// The quantity is kept twice: the raw string exactly as typed (so the user is
// not fighting the input field) and the parsed decimal used for arithmetic.
type Row struct {
	// Key is a client-side identity assigned at construction, stable across
	// edits and independent of any server id.
	Key string
	// ItemID is the server-assigned line id; empty for rows not yet saved.
	ItemID string

	ProductID   string
	ProductName string
	SKU         string
	UnitID      string
	UnitName    string

	// UnitPrice is snapshotted from the product's reference price at
	// selection time and not re-read afterwards.
	UnitPrice decimal.Decimal

	// QuantityInput is the raw field text; quantity is its parsed value.
	QuantityInput string
	quantity      decimal.Decimal

	Discount  DiscountSpec
	LineTotal decimal.Decimal
}

// NewRow returns a blank row with a zero-percent discount.
func NewRow() *Row {
	return &Row{
		Key:      uuid.NewString(),
		Discount: PercentDiscount(decimal.Zero),
	}
}

// HasProduct reports whether a product has been chosen. Blank rows contribute
// nothing to the ledger aggregates.
func (r *Row) HasProduct() bool { return r.ProductID != "" }

// Persisted reports whether this row exists server-side.
func (r *Row) Persisted() bool { return r.ItemID != "" }

// Quantity returns the parsed quantity used for arithmetic.
func (r *Row) Quantity() decimal.Decimal { return r.quantity }

// Subtotal is quantity x unit price before discount.
func (r *Row) Subtotal() decimal.Decimal { return r.quantity.Mul(r.UnitPrice) }

// SetProduct assigns the product and snapshots its pricing fields. Quantity
// defaults to 1 on first selection. Availability filtering happens in the
// catalog before the product is offered; the row accepts the assignment
// unconditionally.
func (r *Row) SetProduct(p model.Product) {
	r.ProductID = p.ID
	r.ProductName = p.Name
	r.SKU = p.SKU
	r.UnitID = p.UnitID
	r.UnitName = p.UnitName
	r.UnitPrice = p.ReferencePrice
	if r.QuantityInput == "" && r.quantity.IsZero() {
		r.QuantityInput = "1"
		r.quantity = decimal.NewFromInt(1)
	}
	r.recompute()
}

// SetQuantity accepts any string from a numeric-style field. Invalid or
// empty input computes as zero but the raw text is retained for display.
// Negative input clamps to zero.
func (r *Row) SetQuantity(input string) {
	r.QuantityInput = input
	qty, err := decimal.NewFromString(input)
	if err != nil || qty.IsNegative() {
		qty = decimal.Zero
	}
	r.quantity = qty
	r.recompute()
}

// SetDiscount replaces the discount spec and recomputes the total.
func (r *Row) SetDiscount(d DiscountSpec) {
	r.Discount = d
	r.recompute()
}

// recompute derives LineTotal = max(0, qty x price - discount), rounded to
// two decimal places.
func (r *Row) recompute() {
	total := r.Subtotal().Sub(r.Discount.Amount(r.quantity, r.UnitPrice))
	if total.IsNegative() {
		total = decimal.Zero
	}
	r.LineTotal = total.Round(2)
}

// RowFromInvoiceItem rebuilds a row from a persisted invoice line.
func RowFromInvoiceItem(item model.InvoiceItem) *Row {
	r := NewRow()
	r.ItemID = item.ID
	r.ProductID = item.ProductID
	r.ProductName = item.ProductName
	r.SKU = item.SKU
	r.UnitID = item.UnitID
	r.UnitName = item.UnitName
	r.UnitPrice = item.Price
	r.QuantityInput = item.Quantity.String()
	r.quantity = item.Quantity
	r.Discount = DiscountFromWire(item.DiscountType, item.DiscountValue)
	r.recompute()
	return r
}

// RowFromStockItem rebuilds a row from a persisted stock line. Stock lines
// carry no discount.
func RowFromStockItem(item model.StockItem) *Row {
	r := NewRow()
	r.ItemID = item.ID
	r.ProductID = item.ProductID
	r.ProductName = item.ProductName
	r.SKU = item.SKU
	r.UnitID = item.UnitID
	r.UnitName = item.UnitName
	r.UnitPrice = item.Price
	r.QuantityInput = item.Quantity.String()
	r.quantity = item.Quantity
	r.recompute()
	return r
}
