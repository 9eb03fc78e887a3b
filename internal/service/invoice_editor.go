package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"salespoint/internal/catalog"
	"salespoint/internal/ledger"
	"salespoint/internal/model"
	"salespoint/pkg/validate"
)

// --- DTOs ---

// InvoiceHeader is the editable document header. The invoice number is
// server-assigned and read-only on the client.
type InvoiceHeader struct {
	ID            string
	InvoiceNumber string
	InvoiceDate   string
	Status        string
	Description   string
	CustomerID    string
}

// --- Collaborator interfaces ---

// InvoiceAPI is the slice of the REST client the invoice editor needs.
// *api.Client satisfies it.
type InvoiceAPI interface {
	ActiveProducts(ctx context.Context) ([]model.Product, error)
	Statuses(ctx context.Context) (model.StatusSet, error)
	Invoice(ctx context.Context, id string) (model.Invoice, error)
	SubmitInvoice(ctx context.Context, mode model.SubmitMode, id string, req model.InvoiceRequest) (model.Invoice, error)
	DeleteInvoiceItem(ctx context.Context, itemID string) error
}

// --- Interface ---

// InvoiceEditor drives one invoice form session: a header, a ledger and the
// catalog loaded for that session. All row mutations are synchronous; only
// catalog load, submit and persisted-row delete touch the network.
type InvoiceEditor interface {
	OpenNew(ctx context.Context) error
	OpenExisting(ctx context.Context, id string) error
	Header() *InvoiceHeader
	Ledger() *ledger.Ledger
	Catalog() *catalog.Cache
	Statuses() model.StatusSet
	AddRow() *ledger.Row
	SelectProduct(rowIndex int, productID string) error
	SetQuantity(rowIndex int, input string) error
	SetDiscount(rowIndex int, spec ledger.DiscountSpec) error
	RemoveRow(ctx context.Context, rowIndex int) error
	Totals() ledger.Totals
	Submit(ctx context.Context) (model.Invoice, error)
}

type invoiceEditor struct {
	client  InvoiceAPI
	confirm Confirmer

	header   InvoiceHeader
	items    *ledger.Ledger
	products *catalog.Cache
	statuses model.StatusSet
	mode     model.SubmitMode

	submitting atomic.Bool
	deleting   atomic.Bool
}

// NewInvoiceEditor builds an editor; call OpenNew or OpenExisting before
// editing rows.
func NewInvoiceEditor(client InvoiceAPI, confirm Confirmer) InvoiceEditor {
	return &invoiceEditor{
		client:   client,
		confirm:  confirm,
		items:    ledger.New(),
		products: catalog.New(),
		statuses: model.StatusSet{},
	}
}

// --- Implementation ---

// OpenNew starts a blank invoice dated today with one empty row. A failed
// catalog load is returned but the form stays open with degraded pickers.
func (e *invoiceEditor) OpenNew(ctx context.Context) error {
	e.header = InvoiceHeader{InvoiceDate: time.Now().Format("2006-01-02")}
	e.items = ledger.New()
	e.items.AddRow()
	e.mode = model.SubmitCreate

	e.loadStatuses(ctx)
	if key := e.statuses.ActiveKey(); key != "" {
		e.header.Status = key
	}
	return e.products.Load(ctx, e.client)
}

// OpenExisting fetches the invoice and rebuilds the ledger from its line
// items, retaining their server ids so edits round-trip correctly.
func (e *invoiceEditor) OpenExisting(ctx context.Context, id string) error {
	inv, err := e.client.Invoice(ctx, id)
	if err != nil {
		return fmt.Errorf("open invoice %s: %w", id, err)
	}

	e.applyInvoice(inv)
	e.mode = model.SubmitUpdate

	e.loadStatuses(ctx)
	return e.products.Load(ctx, e.client)
}

func (e *invoiceEditor) Header() *InvoiceHeader { return &e.header }

func (e *invoiceEditor) Ledger() *ledger.Ledger { return e.items }

func (e *invoiceEditor) Catalog() *catalog.Cache { return e.products }

func (e *invoiceEditor) Statuses() model.StatusSet { return e.statuses }

func (e *invoiceEditor) Totals() ledger.Totals { return e.items.Totals() }

func (e *invoiceEditor) AddRow() *ledger.Row { return e.items.AddRow() }

// SelectProduct assigns a catalog product to a row. The product must be in
// the session catalog and not booked on another row; the availability filter
// is the structural half of the one-product-per-row invariant, the payload
// build performs the post-hoc half.
func (e *invoiceEditor) SelectProduct(rowIndex int, productID string) error {
	row := e.items.Row(rowIndex)
	if row == nil {
		return ErrRowNotFound
	}
	if !e.products.Loaded() {
		return ErrCatalogNotLoaded
	}
	p, ok := e.products.FindByID(productID)
	if !ok {
		return ErrProductUnavailable
	}
	if e.items.UsesProduct(productID, rowIndex) {
		return ErrProductUnavailable
	}
	row.SetProduct(p)
	return nil
}

func (e *invoiceEditor) SetQuantity(rowIndex int, input string) error {
	row := e.items.Row(rowIndex)
	if row == nil {
		return ErrRowNotFound
	}
	row.SetQuantity(input)
	return nil
}

func (e *invoiceEditor) SetDiscount(rowIndex int, spec ledger.DiscountSpec) error {
	row := e.items.Row(rowIndex)
	if row == nil {
		return ErrRowNotFound
	}
	row.SetDiscount(spec)
	return nil
}

// RemoveRow drops a row. Unsaved rows are spliced out locally with no
// network call. Persisted rows need a confirmation and a successful DELETE
// round-trip first, otherwise a reload would resurrect them; on failure
// (including DeleteConflict) the row stays.
func (e *invoiceEditor) RemoveRow(ctx context.Context, rowIndex int) error {
	row := e.items.Row(rowIndex)
	if row == nil {
		return ErrRowNotFound
	}

	if !row.Persisted() {
		e.items.RemoveAt(rowIndex)
		return nil
	}

	if !e.confirm.Confirm(ctx, fmt.Sprintf("Delete line %q?", row.ProductName)) {
		return ErrDeclined
	}
	if !e.deleting.CompareAndSwap(false, true) {
		return ErrSubmitInFlight
	}
	defer e.deleting.Store(false)

	if err := e.client.DeleteInvoiceItem(ctx, row.ItemID); err != nil {
		return err
	}
	e.items.RemoveAt(rowIndex)
	return nil
}

// Submit validates and sends the document. Duplicate submits are rejected
// while one is outstanding. Any failure leaves header and ledger exactly as
// they were so the user can retry without re-entering data.
func (e *invoiceEditor) Submit(ctx context.Context) (model.Invoice, error) {
	if !e.submitting.CompareAndSwap(false, true) {
		return model.Invoice{}, ErrSubmitInFlight
	}
	defer e.submitting.Store(false)

	req, err := e.buildPayload()
	if err != nil {
		return model.Invoice{}, err
	}

	inv, err := e.client.SubmitInvoice(ctx, e.mode, e.header.ID, req)
	if err != nil {
		return model.Invoice{}, err
	}

	// The response is authoritative: server-assigned ids flow back into the
	// header and rows, and a created document switches to update mode.
	e.applyInvoice(inv)
	e.mode = model.SubmitUpdate
	return inv, nil
}

// buildPayload flattens header and ledger into the request shape. Blank rows
// are dropped; duplicate products (possible through racing pickers) are
// rejected here as the last-line revalidation pass.
func (e *invoiceEditor) buildPayload() (model.InvoiceRequest, error) {
	if dups := e.items.DuplicateProducts(); len(dups) > 0 {
		return model.InvoiceRequest{}, ErrDuplicateProduct
	}

	req := model.InvoiceRequest{
		InvoiceDate: e.header.InvoiceDate,
		Status:      e.header.Status,
		Description: e.header.Description,
		CustomerID:  e.header.CustomerID,
	}
	for _, row := range e.items.Rows() {
		if !row.HasProduct() {
			continue
		}
		req.Items = append(req.Items, model.InvoiceItemRequest{
			ID:            row.ItemID,
			ProductID:     row.ProductID,
			Quantity:      row.Quantity().String(),
			UnitID:        row.UnitID,
			DiscountType:  row.Discount.TypeString(),
			DiscountValue: row.Discount.Value.String(),
			Price:         row.UnitPrice.String(),
			TotalAmount:   row.LineTotal.StringFixed(2),
		})
	}

	if err := validate.Struct(req); err != nil {
		return model.InvoiceRequest{}, err
	}
	return req, nil
}

// applyInvoice replaces the in-memory document with a fetched or returned
// one.
func (e *invoiceEditor) applyInvoice(inv model.Invoice) {
	e.header = InvoiceHeader{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		Status:        inv.Status,
		Description:   inv.Description,
		CustomerID:    inv.CustomerID,
	}
	e.items = ledger.New()
	for _, item := range inv.Details {
		e.items.Append(ledger.RowFromInvoiceItem(item))
	}
}

// loadStatuses fetches the status vocabulary; a failed load degrades to an
// empty set rather than blocking the form.
func (e *invoiceEditor) loadStatuses(ctx context.Context) {
	statuses, err := e.client.Statuses(ctx)
	if err != nil {
		e.statuses = model.StatusSet{}
		return
	}
	e.statuses = statuses
}
