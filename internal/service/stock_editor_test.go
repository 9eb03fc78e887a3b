package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespoint/internal/apierror"
	"salespoint/internal/apitest"
	"salespoint/internal/model"
)

func seedStock(srv *apitest.Server, status string) {
	srv.Stocks["stk-1"] = &model.StockDocument{
		ID:             "stk-1",
		DocumentNumber: "GRN-0001",
		DocumentDate:   "2026-08-01",
		Status:         status,
		Details: []model.StockItem{{
			ID:        "item-1",
			ProductID: "p1",
			Quantity:  decimal.NewFromInt(4),
			UnitID:    "u1",
			Price:     decimal.NewFromInt(25),
		}},
	}
}

func TestStockOpenNewIsActive(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seedProducts(srv)

	e := NewStockEditor(testClient(t, srv), yes())
	require.NoError(t, e.OpenNew(context.Background()))

	assert.Equal(t, StateActive, e.State())
	assert.Equal(t, 1, e.Ledger().Len())
	assert.Equal(t, "1", e.Header().Status)
}

func TestStockOpenPostedDocumentIsReadOnly(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seedProducts(srv)
	// "3" is the posted key in the fixture vocabulary.
	seedStock(srv, "3")

	e := NewStockEditor(testClient(t, srv), yes())
	require.NoError(t, e.OpenExisting(context.Background(), "stk-1"))
	require.Equal(t, StatePosted, e.State())

	before := srv.RequestCount()
	assert.ErrorIs(t, e.SetDocumentNumber("GRN-0002"), ErrDocumentPosted)
	assert.ErrorIs(t, e.SetDocumentDate("2026-08-02"), ErrDocumentPosted)
	assert.ErrorIs(t, e.SetDescription("late edit"), ErrDocumentPosted)
	_, err := e.AddRow()
	assert.ErrorIs(t, err, ErrDocumentPosted)
	assert.ErrorIs(t, e.SelectProduct(0, "p2"), ErrDocumentPosted)
	assert.ErrorIs(t, e.SetQuantity(0, "9"), ErrDocumentPosted)
	assert.ErrorIs(t, e.RemoveRow(context.Background(), 0), ErrDocumentPosted)
	_, err = e.Submit(context.Background())
	assert.ErrorIs(t, err, ErrDocumentPosted)
	_, err = e.Post(context.Background())
	assert.ErrorIs(t, err, ErrDocumentPosted)

	// Rejections are local; none of them may reach the server.
	assert.Equal(t, before, srv.RequestCount())
	// The document itself is still readable.
	assert.Equal(t, "GRN-0001", e.Header().DocumentNumber)
	assert.Equal(t, 1, e.Ledger().Len())
}

func TestStockPostDeclined(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seedProducts(srv)
	seedStock(srv, "1")

	e := NewStockEditor(testClient(t, srv), no())
	require.NoError(t, e.OpenExisting(context.Background(), "stk-1"))
	before := srv.RequestCount()

	_, err := e.Post(context.Background())
	assert.ErrorIs(t, err, ErrDeclined)
	assert.Equal(t, StateActive, e.State())
	assert.Equal(t, before, srv.RequestCount(), "declined posting must not issue a request")
}

func TestStockPostConfirmed(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seedProducts(srv)
	seedStock(srv, "1")

	e := NewStockEditor(testClient(t, srv), yes())
	require.NoError(t, e.OpenExisting(context.Background(), "stk-1"))

	doc, err := e.Post(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatePosted, e.State())
	// The payload carried the posted status key, not the editing status.
	assert.Equal(t, "3", doc.Status)
	assert.Equal(t, "3", srv.Stocks["stk-1"].Status)

	// Posting is terminal: a second Post is rejected locally.
	before := srv.RequestCount()
	_, err = e.Post(context.Background())
	assert.ErrorIs(t, err, ErrDocumentPosted)
	assert.Equal(t, before, srv.RequestCount())
}

func TestStockPostRejectedStaysActive(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seedProducts(srv)
	seedStock(srv, "1")

	e := NewStockEditor(testClient(t, srv), yes())
	require.NoError(t, e.OpenExisting(context.Background(), "stk-1"))

	srv.ValidationFields = map[string][]string{"document_date": {"The date is invalid."}}
	_, err := e.Post(context.Background())

	var verrs *apierror.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, StateActive, e.State(), "a rejected post must not flip the state")

	// After the server-side problem clears, the same document can be posted.
	srv.ValidationFields = nil
	_, err = e.Post(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatePosted, e.State())
}

func TestStockSubmitKeepsStateActive(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seedProducts(srv)

	e := NewStockEditor(testClient(t, srv), yes())
	require.NoError(t, e.OpenNew(context.Background()))

	require.NoError(t, e.SetDocumentNumber("GRN-0100"))
	require.NoError(t, e.SelectProduct(0, "p1"))
	require.NoError(t, e.SetQuantity(0, "4"))

	doc, err := e.Submit(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, StateActive, e.State())
	assert.NotEqual(t, "3", srv.Stocks[doc.ID].Status)

	// Lines round-trip with server-assigned item ids.
	require.Equal(t, 1, e.Ledger().Len())
	assert.True(t, e.Ledger().Row(0).Persisted())
}

func TestStockRemovePersistedRow(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seedProducts(srv)
	seedStock(srv, "1")

	e := NewStockEditor(testClient(t, srv), yes())
	require.NoError(t, e.OpenExisting(context.Background(), "stk-1"))

	require.NoError(t, e.RemoveRow(context.Background(), 0))
	assert.Equal(t, 0, e.Ledger().Len())
	assert.Equal(t, []string{"item-1"}, srv.DeletedItems)
}
