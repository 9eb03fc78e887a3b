package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespoint/internal/apierror"
	"salespoint/internal/ledger"
	"salespoint/internal/model"
)

type stubLoader struct {
	products []model.Product
	err      error
}

func (s *stubLoader) ActiveProducts(context.Context) ([]model.Product, error) {
	return s.products, s.err
}

func fixtures() []model.Product {
	return []model.Product{
		{ID: "pA", Name: "Alpha", SKU: "A-1", ReferencePrice: decimal.NewFromInt(10)},
		{ID: "pB", Name: "Beta", SKU: "B-1", ReferencePrice: decimal.NewFromInt(20)},
		{ID: "pC", Name: "Gamma", SKU: "C-1", ReferencePrice: decimal.NewFromInt(30)},
	}
}

func TestLoadAndFindByID(t *testing.T) {
	c := New()
	assert.False(t, c.Loaded())

	require.NoError(t, c.Load(context.Background(), &stubLoader{products: fixtures()}))
	assert.True(t, c.Loaded())
	assert.Len(t, c.Products(), 3)

	p, ok := c.FindByID("pB")
	require.True(t, ok)
	assert.Equal(t, "Beta", p.Name)

	_, ok = c.FindByID("nope")
	assert.False(t, ok)
}

func TestLoadFailureIsFetchError(t *testing.T) {
	c := New()
	err := c.Load(context.Background(), &stubLoader{err: errors.New("boom")})
	require.Error(t, err)

	var fetchErr *apierror.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "products", fetchErr.Resource)
	assert.False(t, c.Loaded())
}

func TestLoadEmptyCatalogIsNotAnError(t *testing.T) {
	c := New()
	require.NoError(t, c.Load(context.Background(), &stubLoader{}))
	assert.True(t, c.Loaded())
	assert.Empty(t, c.Products())
}

func TestAvailableForExcludesOtherRows(t *testing.T) {
	c := New()
	require.NoError(t, c.Load(context.Background(), &stubLoader{products: fixtures()}))

	l := ledger.New()
	l.AddRow().SetProduct(fixtures()[0]) // row 0 -> pA
	l.AddRow().SetProduct(fixtures()[1]) // row 1 -> pB
	l.AddRow()                           // row 2 blank

	// Picking for row 0: pB is booked elsewhere, pA stays reselectable.
	ids := productIDs(c.AvailableFor(l, 0))
	assert.Contains(t, ids, "pA")
	assert.NotContains(t, ids, "pB")
	assert.Contains(t, ids, "pC")

	// Picking for the blank row: only pC is free.
	ids = productIDs(c.AvailableFor(l, 2))
	assert.Equal(t, []string{"pC"}, ids)
}

func productIDs(products []model.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}
