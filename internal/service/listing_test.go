package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespoint/internal/apitest"
	"salespoint/internal/model"
)

func TestListSessionPaging(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i + 1
	}
	s := NewListSession(items, 10)

	assert.Equal(t, 25, s.Total())
	assert.Equal(t, 3, s.Pages())
	assert.Equal(t, items[:10], s.Page(1))
	assert.Equal(t, items[20:], s.Page(3))
	assert.Empty(t, s.Page(4))
	// Page 0 clamps to the first page.
	assert.Equal(t, items[:10], s.Page(0))
}

func TestListSessionFilterRestartsPaging(t *testing.T) {
	items := []string{"alpha", "beta", "gamma", "delta", "ace"}
	s := NewListSession(items, 2)

	s.Filter(func(v string) bool { return v[0] == 'a' })
	assert.Equal(t, 2, s.Total())
	assert.Equal(t, 1, s.Pages())
	assert.Equal(t, []string{"alpha", "ace"}, s.Page(1))

	s.ClearFilter()
	assert.Equal(t, 5, s.Total())
	assert.Equal(t, 3, s.Pages())
}

func TestListSessionEmpty(t *testing.T) {
	s := NewListSession([]int(nil), 10)
	assert.Equal(t, 0, s.Total())
	assert.Equal(t, 1, s.Pages())
	assert.Empty(t, s.Page(1))
}

func TestSearchProducts(t *testing.T) {
	s := NewListSession([]model.Product{
		{ID: "p1", Name: "Steel Widget", SKU: "SW-01"},
		{ID: "p2", Name: "Brass Gadget", SKU: "BG-02"},
		{ID: "p3", Name: "Copper Pipe", SKU: "CP-03"},
	}, 10)

	SearchProducts(s, "widget")
	require.Equal(t, 1, s.Total())
	assert.Equal(t, "p1", s.Page(1)[0].ID)

	// SKU matches too, case-insensitive.
	SearchProducts(s, "bg-")
	require.Equal(t, 1, s.Total())
	assert.Equal(t, "p2", s.Page(1)[0].ID)

	// Blank query clears the filter.
	SearchProducts(s, "   ")
	assert.Equal(t, 3, s.Total())
}

func TestCollectionsCityCRUD(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	c := NewCollections(testClient(t, srv), 10)

	city, err := c.SaveCity(context.Background(), "", model.CityRequest{Name: "Springfield"})
	require.NoError(t, err)
	require.NotEmpty(t, city.ID)

	updated, err := c.SaveCity(context.Background(), city.ID, model.CityRequest{Name: "Shelbyville"})
	require.NoError(t, err)
	assert.Equal(t, "Shelbyville", updated.Name)

	list, err := c.Cities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total())

	require.NoError(t, c.DeleteCity(context.Background(), city.ID))
}

func TestCollectionsSaveValidatesLocally(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	c := NewCollections(testClient(t, srv), 10)
	before := srv.RequestCount()

	_, err := c.SaveCustomer(context.Background(), "", model.CustomerRequest{Email: "not-an-email"})
	require.Error(t, err)
	assert.Equal(t, before, srv.RequestCount(), "invalid payloads must not reach the server")
}
