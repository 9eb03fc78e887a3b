// Package ledger implements the line-item editor core: an ordered set of
// product rows plus derived aggregate totals. All computation is pure and
// synchronous; nothing in this package touches the network.
package ledger

import (
	"github.com/shopspring/decimal"
)

// Totals are the derived aggregates over all rows with a product chosen.
type Totals struct {
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	Discount   decimal.Decimal
	GrandTotal decimal.Decimal
}

// Ledger owns the ordered rows of one document. Insertion order is display
// order and has no other weight. A ledger is exclusively owned by the form
// session that created it and is discarded on navigation, never persisted.
type Ledger struct {
	rows []*Row
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Len returns the number of rows, including blank ones.
func (l *Ledger) Len() int { return len(l.rows) }

// Rows returns the rows in display order. The slice is shared; callers
// mutate rows only through the Row setters.
func (l *Ledger) Rows() []*Row { return l.rows }

// Row returns the row at index i, or nil when out of range.
func (l *Ledger) Row(i int) *Row {
	if i < 0 || i >= len(l.rows) {
		return nil
	}
	return l.rows[i]
}

// AddRow appends a blank row and returns it. Users keep a blank trailing row
// while composing; it contributes zero to every aggregate.
func (l *Ledger) AddRow() *Row {
	r := NewRow()
	l.rows = append(l.rows, r)
	return r
}

// Append attaches an already-built row (used when loading a fetched
// document's line items).
func (l *Ledger) Append(r *Row) {
	l.rows = append(l.rows, r)
}

// RemoveAt splices the row at index i out of the sequence. This is the local
// half of row removal; persisted rows must be deleted server-side first,
// which is the editor's job.
func (l *Ledger) RemoveAt(i int) bool {
	if i < 0 || i >= len(l.rows) {
		return false
	}
	l.rows = append(l.rows[:i], l.rows[i+1:]...)
	return true
}

// UsesProduct reports whether any row other than excluding references the
// product. excluding < 0 checks every row.
func (l *Ledger) UsesProduct(productID string, excluding int) bool {
	for i, r := range l.rows {
		if i == excluding {
			continue
		}
		if r.ProductID == productID {
			return true
		}
	}
	return false
}

// DuplicateProducts returns product ids referenced by more than one row.
// The availability filter prevents duplicates structurally, but two pickers
// opened in quick succession can race; this is the post-hoc revalidation
// pass run before a payload is built (last write wins, then reject here).
func (l *Ledger) DuplicateProducts() []string {
	seen := make(map[string]int, len(l.rows))
	var dups []string
	for _, r := range l.rows {
		if !r.HasProduct() {
			continue
		}
		seen[r.ProductID]++
		if seen[r.ProductID] == 2 {
			dups = append(dups, r.ProductID)
		}
	}
	return dups
}

// Totals walks all rows and derives the aggregates. Rows without a product
// contribute zero regardless of stray quantity or price values. The result
// is a pure function of row state: two calls with no intervening mutation
// return identical values.
func (l *Ledger) Totals() Totals {
	t := Totals{
		Quantity:   decimal.Zero,
		Price:      decimal.Zero,
		Discount:   decimal.Zero,
		GrandTotal: decimal.Zero,
	}
	for _, r := range l.rows {
		if !r.HasProduct() {
			continue
		}
		sub := r.Subtotal()
		t.Quantity = t.Quantity.Add(r.Quantity())
		t.Price = t.Price.Add(sub)
		t.Discount = t.Discount.Add(sub.Sub(r.LineTotal))
	}
	t.Price = t.Price.Round(2)
	t.Discount = t.Discount.Round(2)
	t.GrandTotal = t.Price.Sub(t.Discount)
	return t
}
