package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespoint/internal/api"
	"salespoint/internal/apierror"
	"salespoint/internal/apitest"
	"salespoint/internal/ledger"
	"salespoint/internal/model"
	"salespoint/internal/session"
)

func yes() Confirmer {
	return ConfirmerFunc(func(context.Context, string) bool { return true })
}

func no() Confirmer {
	return ConfirmerFunc(func(context.Context, string) bool { return false })
}

func testClient(t *testing.T, srv *apitest.Server) *api.Client {
	t.Helper()
	sess := session.New(&session.MemoryStore{})
	require.NoError(t, sess.SignIn(model.LoginResult{Token: srv.Token}))
	return api.New(srv.URL, 0, sess)
}

func seedProducts(srv *apitest.Server) {
	srv.Products = []model.Product{
		{ID: "p1", Name: "Widget", SKU: "W-1", UnitID: "u1", UnitName: "pcs", ReferencePrice: decimal.NewFromInt(50)},
		{ID: "p2", Name: "Gadget", SKU: "G-1", UnitID: "u1", UnitName: "pcs", ReferencePrice: decimal.NewFromInt(30)},
	}
}

func TestInvoiceOpenNewStartsBlank(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seedProducts(srv)

	e := NewInvoiceEditor(testClient(t, srv), yes())
	require.NoError(t, e.OpenNew(context.Background()))

	assert.Equal(t, 1, e.Ledger().Len())
	assert.False(t, e.Ledger().Row(0).HasProduct())
	assert.NotEmpty(t, e.Header().InvoiceDate)
	// Status defaults to the vocabulary's active key.
	assert.Equal(t, "1", e.Header().Status)
	assert.True(t, e.Catalog().Loaded())
}

func TestInvoiceSelectProductAvailability(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seedProducts(srv)

	e := NewInvoiceEditor(testClient(t, srv), yes())
	require.NoError(t, e.OpenNew(context.Background()))

	require.NoError(t, e.SelectProduct(0, "p1"))
	e.AddRow()

	// p1 is booked on row 0; row 1 cannot take it.
	assert.ErrorIs(t, e.SelectProduct(1, "p1"), ErrProductUnavailable)
	// Unknown products are refused too.
	assert.ErrorIs(t, e.SelectProduct(1, "ghost"), ErrProductUnavailable)
	// Row 0 may re-select its own product.
	assert.NoError(t, e.SelectProduct(0, "p1"))

	assert.ErrorIs(t, e.SelectProduct(9, "p2"), ErrRowNotFound)
}

func TestInvoiceSubmitRoundTrip(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seedProducts(srv)

	e := NewInvoiceEditor(testClient(t, srv), yes())
	require.NoError(t, e.OpenNew(context.Background()))

	e.Header().CustomerID = "cu1"
	require.NoError(t, e.SelectProduct(0, "p1"))
	require.NoError(t, e.SetQuantity(0, "2"))

	inv, err := e.Submit(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, inv.ID)
	assert.NotEmpty(t, inv.InvoiceNumber)

	// Server-assigned ids flow back into the editor.
	assert.Equal(t, inv.ID, e.Header().ID)
	require.Equal(t, 1, e.Ledger().Len())
	assert.True(t, e.Ledger().Row(0).Persisted())

	// A second submit updates in place rather than creating a duplicate.
	require.NoError(t, e.SetQuantity(0, "3"))
	_, err = e.Submit(context.Background())
	require.NoError(t, err)
	assert.Len(t, srv.Invoices, 1)
}

func TestInvoiceSubmitLocalValidationSkipsNetwork(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seedProducts(srv)

	e := NewInvoiceEditor(testClient(t, srv), yes())
	require.NoError(t, e.OpenNew(context.Background()))
	require.NoError(t, e.SelectProduct(0, "p1"))
	before := srv.RequestCount()

	// No customer chosen: payload validation fails before any request.
	_, err := e.Submit(context.Background())
	var verrs *apierror.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.NotEmpty(t, verrs.Messages("customer_id"))
	assert.Equal(t, before, srv.RequestCount())
}

func TestInvoiceSubmitServerValidation(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seedProducts(srv)

	e := NewInvoiceEditor(testClient(t, srv), yes())
	require.NoError(t, e.OpenNew(context.Background()))
	e.Header().CustomerID = "cu1"
	require.NoError(t, e.SelectProduct(0, "p1"))

	srv.ValidationFields = map[string][]string{"invoice_date": {"The date is invalid."}}
	_, err := e.Submit(context.Background())

	var verrs *apierror.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.NotEmpty(t, verrs.Messages("invoice_date"))
	// Form state is preserved for a retry.
	assert.Equal(t, "cu1", e.Header().CustomerID)
	assert.True(t, e.Ledger().Row(0).HasProduct())
}

func TestInvoiceDuplicateProductsRejected(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seedProducts(srv)

	e := NewInvoiceEditor(testClient(t, srv), yes())
	require.NoError(t, e.OpenNew(context.Background()))
	e.Header().CustomerID = "cu1"
	require.NoError(t, e.SelectProduct(0, "p1"))

	// Simulate the picker race: force a duplicate under the editor.
	row := e.AddRow()
	row.SetProduct(model.Product{ID: "p1", Name: "Widget", ReferencePrice: decimal.NewFromInt(50)})

	_, err := e.Submit(context.Background())
	assert.ErrorIs(t, err, ErrDuplicateProduct)
}

func TestInvoiceRemoveUnsavedRowIsLocal(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seedProducts(srv)

	e := NewInvoiceEditor(testClient(t, srv), no())
	require.NoError(t, e.OpenNew(context.Background()))
	require.NoError(t, e.SelectProduct(0, "p1"))
	before := srv.RequestCount()

	// No confirmation, no network: the row has no server id.
	require.NoError(t, e.RemoveRow(context.Background(), 0))
	assert.Equal(t, 0, e.Ledger().Len())
	assert.Equal(t, before, srv.RequestCount())
}

func openPersistedInvoice(t *testing.T, srv *apitest.Server, confirm Confirmer) InvoiceEditor {
	t.Helper()
	srv.Invoices["inv-1"] = &model.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-0001",
		InvoiceDate:   "2026-08-01",
		Status:        "1",
		CustomerID:    "cu1",
		Details: []model.InvoiceItem{{
			ID:        "item-1",
			ProductID: "p1",
			Quantity:  decimal.NewFromInt(2),
			UnitID:    "u1",
			Price:     decimal.NewFromInt(50),
		}},
	}
	e := NewInvoiceEditor(testClient(t, srv), confirm)
	require.NoError(t, e.OpenExisting(context.Background(), "inv-1"))
	return e
}

func TestInvoiceRemovePersistedRowDeclined(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seedProducts(srv)

	e := openPersistedInvoice(t, srv, no())
	before := srv.RequestCount()

	err := e.RemoveRow(context.Background(), 0)
	assert.ErrorIs(t, err, ErrDeclined)
	assert.Equal(t, 1, e.Ledger().Len())
	assert.Equal(t, before, srv.RequestCount(), "declined removal must not issue a request")
}

func TestInvoiceRemovePersistedRowConfirmed(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seedProducts(srv)

	e := openPersistedInvoice(t, srv, yes())

	require.NoError(t, e.RemoveRow(context.Background(), 0))
	assert.Equal(t, 0, e.Ledger().Len())
	assert.Equal(t, []string{"item-1"}, srv.DeletedItems)
}

func TestInvoiceRemoveConflictKeepsRow(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seedProducts(srv)

	e := openPersistedInvoice(t, srv, yes())
	// The item vanished server-side before the delete call.
	srv.Invoices["inv-1"].Details = nil

	err := e.RemoveRow(context.Background(), 0)
	var conflict *apierror.DeleteConflict
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, e.Ledger().Len(), "row must stay until the server confirms")
}

// blockingInvoiceAPI stalls SubmitInvoice until released, to exercise the
// in-flight guard deterministically.
type blockingInvoiceAPI struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingInvoiceAPI) ActiveProducts(context.Context) ([]model.Product, error) {
	return []model.Product{{ID: "p1", Name: "Widget", UnitID: "u1", ReferencePrice: decimal.NewFromInt(50)}}, nil
}

func (b *blockingInvoiceAPI) Statuses(context.Context) (model.StatusSet, error) {
	return model.StatusSet{"1": "Active"}, nil
}

func (b *blockingInvoiceAPI) Invoice(context.Context, string) (model.Invoice, error) {
	return model.Invoice{}, errors.New("not implemented")
}

func (b *blockingInvoiceAPI) SubmitInvoice(context.Context, model.SubmitMode, string, model.InvoiceRequest) (model.Invoice, error) {
	close(b.entered)
	<-b.release
	return model.Invoice{ID: "inv-1"}, nil
}

func (b *blockingInvoiceAPI) DeleteInvoiceItem(context.Context, string) error { return nil }

func TestInvoiceSubmitInFlightGuard(t *testing.T) {
	stub := &blockingInvoiceAPI{entered: make(chan struct{}), release: make(chan struct{})}
	e := NewInvoiceEditor(stub, yes())
	require.NoError(t, e.OpenNew(context.Background()))
	e.Header().CustomerID = "cu1"
	require.NoError(t, e.SelectProduct(0, "p1"))

	done := make(chan error, 1)
	go func() {
		_, err := e.Submit(context.Background())
		done <- err
	}()

	<-stub.entered
	_, err := e.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(stub.release)
	require.NoError(t, <-done)
}

func TestInvoiceTotalsThroughEditor(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seedProducts(srv)

	e := NewInvoiceEditor(testClient(t, srv), yes())
	require.NoError(t, e.OpenNew(context.Background()))
	require.NoError(t, e.SelectProduct(0, "p1"))
	require.NoError(t, e.SetQuantity(0, "2"))

	e.AddRow()
	require.NoError(t, e.SelectProduct(1, "p2"))
	require.NoError(t, e.SetQuantity(1, "1"))
	require.NoError(t, e.SetDiscount(1, ledger.FixedDiscount(decimal.NewFromInt(5))))

	totals := e.Totals()
	assert.True(t, totals.Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, totals.Price.Equal(decimal.RequireFromString("130.00")))
	assert.True(t, totals.Discount.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, totals.GrandTotal.Equal(decimal.RequireFromString("125.00")))
}
