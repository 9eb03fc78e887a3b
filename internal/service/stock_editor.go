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

// StockHeader is the editable stock document header. The document number is
// user-entered and becomes read-only once the document is posted.
type StockHeader struct {
	ID             string
	DocumentNumber string
	DocumentDate   string
	Status         string
	Description    string
}

// LifecycleState is the two-state document lifecycle.
type LifecycleState int

const (
	// StateActive permits row edits, header edits and submission.
	StateActive LifecycleState = iota
	// StatePosted is terminal: viewing only. There is no unpost.
	StatePosted
)

func (s LifecycleState) String() string {
	if s == StatePosted {
		return "posted"
	}
	return "active"
}

// --- Collaborator interfaces ---

// StockAPI is the slice of the REST client the stock editor needs.
// *api.Client satisfies it.
type StockAPI interface {
	ActiveProducts(ctx context.Context) ([]model.Product, error)
	Statuses(ctx context.Context) (model.StatusSet, error)
	Stock(ctx context.Context, id string) (model.StockDocument, error)
	SubmitStock(ctx context.Context, mode model.SubmitMode, id string, req model.StockRequest) (model.StockDocument, error)
	DeleteStockItem(ctx context.Context, itemID string) error
}

// --- Interface ---

// StockEditor drives one stock document form session. It is the invoice
// editor's shape plus the Active/Posted lifecycle gate: every mutating
// operation checks the state first, and a posted document rejects everything
// without issuing a network call.
type StockEditor interface {
	OpenNew(ctx context.Context) error
	OpenExisting(ctx context.Context, id string) error
	Header() *StockHeader
	Ledger() *ledger.Ledger
	Catalog() *catalog.Cache
	Statuses() model.StatusSet
	State() LifecycleState
	SetDocumentNumber(number string) error
	SetDocumentDate(date string) error
	SetDescription(text string) error
	AddRow() (*ledger.Row, error)
	SelectProduct(rowIndex int, productID string) error
	SetQuantity(rowIndex int, input string) error
	RemoveRow(ctx context.Context, rowIndex int) error
	Totals() ledger.Totals
	Submit(ctx context.Context) (model.StockDocument, error)
	Post(ctx context.Context) (model.StockDocument, error)
}

type stockEditor struct {
	client  StockAPI
	confirm Confirmer

	header   StockHeader
	items    *ledger.Ledger
	products *catalog.Cache
	statuses model.StatusSet
	state    LifecycleState
	mode     model.SubmitMode

	submitting atomic.Bool
	deleting   atomic.Bool
}

// NewStockEditor builds an editor; call OpenNew or OpenExisting before
// editing.
func NewStockEditor(client StockAPI, confirm Confirmer) StockEditor {
	return &stockEditor{
		client:   client,
		confirm:  confirm,
		items:    ledger.New(),
		products: catalog.New(),
		statuses: model.StatusSet{},
	}
}

// --- Implementation ---

func (e *stockEditor) OpenNew(ctx context.Context) error {
	e.header = StockHeader{DocumentDate: time.Now().Format("2006-01-02")}
	e.items = ledger.New()
	e.items.AddRow()
	e.state = StateActive
	e.mode = model.SubmitCreate

	e.loadStatuses(ctx)
	if key := e.statuses.ActiveKey(); key != "" {
		e.header.Status = key
	}
	return e.products.Load(ctx, e.client)
}

// OpenExisting fetches the document and derives the lifecycle state from the
// backend's posted sentinel: a posted document opens read-only.
func (e *stockEditor) OpenExisting(ctx context.Context, id string) error {
	doc, err := e.client.Stock(ctx, id)
	if err != nil {
		return fmt.Errorf("open stock document %s: %w", id, err)
	}

	e.loadStatuses(ctx)
	e.applyDocument(doc)
	e.mode = model.SubmitUpdate
	return e.products.Load(ctx, e.client)
}

func (e *stockEditor) Header() *StockHeader { return &e.header }

func (e *stockEditor) Ledger() *ledger.Ledger { return e.items }

func (e *stockEditor) Catalog() *catalog.Cache { return e.products }

func (e *stockEditor) Statuses() model.StatusSet { return e.statuses }

func (e *stockEditor) State() LifecycleState { return e.state }

func (e *stockEditor) Totals() ledger.Totals { return e.items.Totals() }

func (e *stockEditor) SetDocumentNumber(number string) error {
	if e.state == StatePosted {
		return ErrDocumentPosted
	}
	e.header.DocumentNumber = number
	return nil
}

func (e *stockEditor) SetDocumentDate(date string) error {
	if e.state == StatePosted {
		return ErrDocumentPosted
	}
	e.header.DocumentDate = date
	return nil
}

func (e *stockEditor) SetDescription(text string) error {
	if e.state == StatePosted {
		return ErrDocumentPosted
	}
	e.header.Description = text
	return nil
}

func (e *stockEditor) AddRow() (*ledger.Row, error) {
	if e.state == StatePosted {
		return nil, ErrDocumentPosted
	}
	return e.items.AddRow(), nil
}

func (e *stockEditor) SelectProduct(rowIndex int, productID string) error {
	if e.state == StatePosted {
		return ErrDocumentPosted
	}
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

func (e *stockEditor) SetQuantity(rowIndex int, input string) error {
	if e.state == StatePosted {
		return ErrDocumentPosted
	}
	row := e.items.Row(rowIndex)
	if row == nil {
		return ErrRowNotFound
	}
	row.SetQuantity(input)
	return nil
}

// RemoveRow mirrors the invoice editor: unsaved rows splice out locally,
// persisted rows need confirmation and a successful server delete first.
func (e *stockEditor) RemoveRow(ctx context.Context, rowIndex int) error {
	if e.state == StatePosted {
		return ErrDocumentPosted
	}
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

	if err := e.client.DeleteStockItem(ctx, row.ItemID); err != nil {
		return err
	}
	e.items.RemoveAt(rowIndex)
	return nil
}

// Submit saves the document without posting it; the lifecycle state does not
// change.
func (e *stockEditor) Submit(ctx context.Context) (model.StockDocument, error) {
	if e.state == StatePosted {
		return model.StockDocument{}, ErrDocumentPosted
	}
	return e.send(ctx, false)
}

// Post runs the one-way Active -> Posted transition: user confirmation, then
// a submit with is_post set and the status overridden to the posted key. On
// server acceptance the in-memory state moves to Posted; on rejection it
// stays Active and the error is surfaced.
func (e *stockEditor) Post(ctx context.Context) (model.StockDocument, error) {
	if e.state == StatePosted {
		return model.StockDocument{}, ErrDocumentPosted
	}
	if !e.confirm.Confirm(ctx, fmt.Sprintf("Post document %q? This cannot be undone.", e.header.DocumentNumber)) {
		return model.StockDocument{}, ErrDeclined
	}

	doc, err := e.send(ctx, true)
	if err != nil {
		return model.StockDocument{}, err
	}
	e.state = StatePosted
	return doc, nil
}

func (e *stockEditor) send(ctx context.Context, post bool) (model.StockDocument, error) {
	if !e.submitting.CompareAndSwap(false, true) {
		return model.StockDocument{}, ErrSubmitInFlight
	}
	defer e.submitting.Store(false)

	req, err := e.buildPayload(post)
	if err != nil {
		return model.StockDocument{}, err
	}

	doc, err := e.client.SubmitStock(ctx, e.mode, e.header.ID, req)
	if err != nil {
		return model.StockDocument{}, err
	}

	e.applyDocument(doc)
	e.mode = model.SubmitUpdate
	return doc, nil
}

// buildPayload flattens header and ledger. Stock lines carry no discount
// fields; posting overrides the status with the backend's posted key.
func (e *stockEditor) buildPayload(post bool) (model.StockRequest, error) {
	if dups := e.items.DuplicateProducts(); len(dups) > 0 {
		return model.StockRequest{}, ErrDuplicateProduct
	}

	status := e.header.Status
	if post {
		status = e.statuses.PostedKey()
	}

	req := model.StockRequest{
		DocumentNumber: e.header.DocumentNumber,
		DocumentDate:   e.header.DocumentDate,
		Status:         status,
		Description:    e.header.Description,
		IsPost:         post,
	}
	for _, row := range e.items.Rows() {
		if !row.HasProduct() {
			continue
		}
		req.Items = append(req.Items, model.StockItemRequest{
			ID:          row.ItemID,
			ProductID:   row.ProductID,
			Quantity:    row.Quantity().String(),
			UnitID:      row.UnitID,
			Price:       row.UnitPrice.String(),
			TotalAmount: row.LineTotal.StringFixed(2),
		})
	}

	if err := validate.Struct(req); err != nil {
		return model.StockRequest{}, err
	}
	return req, nil
}

func (e *stockEditor) applyDocument(doc model.StockDocument) {
	e.header = StockHeader{
		ID:             doc.ID,
		DocumentNumber: doc.DocumentNumber,
		DocumentDate:   doc.DocumentDate,
		Status:         doc.Status,
		Description:    doc.Description,
	}
	e.items = ledger.New()
	for _, item := range doc.Lines() {
		e.items.Append(ledger.RowFromStockItem(item))
	}
	if e.statuses.IsPosted(doc.Status) {
		e.state = StatePosted
	} else {
		e.state = StateActive
	}
}

func (e *stockEditor) loadStatuses(ctx context.Context) {
	statuses, err := e.client.Statuses(ctx)
	if err != nil {
		e.statuses = model.StatusSet{}
		return
	}
	e.statuses = statuses
}
