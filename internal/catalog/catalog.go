// Package catalog holds the read-only product list loaded once per form
// session. Rows pick products from here; the availability filter keeps one
// product from being booked on two rows at once.
package catalog

import (
	"context"

	"salespoint/internal/apierror"
	"salespoint/internal/ledger"
	"salespoint/internal/model"
)

// Loader is the slice of the API client the cache needs.
type Loader interface {
	ActiveProducts(ctx context.Context) ([]model.Product, error)
}

// Cache is a pure read cache of selectable products. It performs no
// mutation after Load.
type Cache struct {
	products []model.Product
	byID     map[string]model.Product
	loaded   bool
}

// New returns an empty, unloaded cache.
func New() *Cache {
	return &Cache{byID: make(map[string]model.Product)}
}

// Load fetches the active products. A backend with no active products yields
// an empty cache, not an error; a failed call is a FetchError and leaves the
// cache unloaded.
func (c *Cache) Load(ctx context.Context, loader Loader) error {
	products, err := loader.ActiveProducts(ctx)
	if err != nil {
		return &apierror.FetchError{Resource: "products", Err: err}
	}
	c.products = products
	c.byID = make(map[string]model.Product, len(products))
	for _, p := range products {
		c.byID[p.ID] = p
	}
	c.loaded = true
	return nil
}

// Loaded reports whether Load has succeeded this session.
func (c *Cache) Loaded() bool { return c.loaded }

// Products returns every cached product in backend order.
func (c *Cache) Products() []model.Product { return c.products }

// FindByID looks a product up by id.
func (c *Cache) FindByID(id string) (model.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// AvailableFor returns the products offerable to the row at excludingRow:
// everything not already referenced by another row. The current row's own
// selection stays reselectable.
func (c *Cache) AvailableFor(l *ledger.Ledger, excludingRow int) []model.Product {
	available := make([]model.Product, 0, len(c.products))
	for _, p := range c.products {
		if l.UsesProduct(p.ID, excludingRow) {
			continue
		}
		available = append(available, p)
	}
	return available
}
