package service

import (
	"context"
	"fmt"
	"strings"

	"salespoint/internal/api"
	"salespoint/internal/model"
	"salespoint/pkg/pagination"
	"salespoint/pkg/validate"
)

// ListSession holds one screen's full fetched collection and serves pages
// from it locally. The session lives as long as the screen; navigating away
// discards it.
type ListSession[T any] struct {
	all      []T
	filtered []T
	limit    int
}

// NewListSession wraps a fetched collection. A non-positive limit uses the
// default page size.
func NewListSession[T any](items []T, limit int) *ListSession[T] {
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}
	return &ListSession[T]{all: items, filtered: items, limit: limit}
}

// Filter narrows the visible set; paging restarts from the narrowed set.
func (s *ListSession[T]) Filter(keep func(T) bool) {
	filtered := make([]T, 0, len(s.all))
	for _, item := range s.all {
		if keep(item) {
			filtered = append(filtered, item)
		}
	}
	s.filtered = filtered
}

// ClearFilter restores the full collection.
func (s *ListSession[T]) ClearFilter() {
	s.filtered = s.all
}

// Total is the number of visible items.
func (s *ListSession[T]) Total() int { return len(s.filtered) }

// Pages is the number of pages under the session's limit.
func (s *ListSession[T]) Pages() int {
	return pagination.Clamp(1, s.limit).Pages(len(s.filtered))
}

// Page returns the items on page n (1-based). Pages past the end are empty.
func (s *ListSession[T]) Page(n int) []T {
	return pagination.Window(s.filtered, pagination.Clamp(n, s.limit))
}

// Collections loads list-screen data and performs the simple record CRUD
// around it. Every list fetch pulls the full collection once; pagination is
// purely client-side.
type Collections struct {
	client   *api.Client
	pageSize int
}

// NewCollections builds the collection service with the given page size.
func NewCollections(client *api.Client, pageSize int) *Collections {
	return &Collections{client: client, pageSize: pageSize}
}

// Cities opens a city list session.
func (s *Collections) Cities(ctx context.Context) (*ListSession[model.City], error) {
	items, err := s.client.Cities(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}
	return NewListSession(items, s.pageSize), nil
}

// SaveCity creates or updates a city. An empty id creates.
func (s *Collections) SaveCity(ctx context.Context, id string, req model.CityRequest) (model.City, error) {
	if err := validate.Struct(req); err != nil {
		return model.City{}, err
	}
	if id == "" {
		return s.client.CreateCity(ctx, req)
	}
	return s.client.UpdateCity(ctx, id, req)
}

// DeleteCity removes a city after confirmation by the caller.
func (s *Collections) DeleteCity(ctx context.Context, id string) error {
	return s.client.DeleteCity(ctx, id)
}

// Customers opens a customer list session.
func (s *Collections) Customers(ctx context.Context) (*ListSession[model.Customer], error) {
	items, err := s.client.Customers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	return NewListSession(items, s.pageSize), nil
}

// SaveCustomer creates or updates a customer. An empty id creates.
func (s *Collections) SaveCustomer(ctx context.Context, id string, req model.CustomerRequest) (model.Customer, error) {
	if err := validate.Struct(req); err != nil {
		return model.Customer{}, err
	}
	if id == "" {
		return s.client.CreateCustomer(ctx, req)
	}
	return s.client.UpdateCustomer(ctx, id, req)
}

// DeleteCustomer removes a customer record.
func (s *Collections) DeleteCustomer(ctx context.Context, id string) error {
	return s.client.DeleteCustomer(ctx, id)
}

// Products opens a product list session.
func (s *Collections) Products(ctx context.Context) (*ListSession[model.Product], error) {
	items, err := s.client.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	return NewListSession(items, s.pageSize), nil
}

// SearchProducts filters a product session by name or SKU, case-insensitive.
func SearchProducts(session *ListSession[model.Product], query string) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		session.ClearFilter()
		return
	}
	session.Filter(func(p model.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.SKU), q)
	})
}

// SaveProduct creates or updates a product. An empty id creates.
func (s *Collections) SaveProduct(ctx context.Context, id string, req model.ProductRequest) (model.Product, error) {
	if err := validate.Struct(req); err != nil {
		return model.Product{}, err
	}
	if id == "" {
		return s.client.CreateProduct(ctx, req)
	}
	return s.client.UpdateProduct(ctx, id, req)
}

// DeleteProduct removes a product record.
func (s *Collections) DeleteProduct(ctx context.Context, id string) error {
	return s.client.DeleteProduct(ctx, id)
}

// Brands opens a brand list session.
func (s *Collections) Brands(ctx context.Context) (*ListSession[model.Brand], error) {
	items, err := s.client.Brands(ctx)
	if err != nil {
		return nil, fmt.Errorf("load brands: %w", err)
	}
	return NewListSession(items, s.pageSize), nil
}

// SaveBrand creates or updates a brand. An empty id creates.
func (s *Collections) SaveBrand(ctx context.Context, id string, req model.BrandRequest) (model.Brand, error) {
	if err := validate.Struct(req); err != nil {
		return model.Brand{}, err
	}
	if id == "" {
		return s.client.CreateBrand(ctx, req)
	}
	return s.client.UpdateBrand(ctx, id, req)
}

// DeleteBrand removes a brand record.
func (s *Collections) DeleteBrand(ctx context.Context, id string) error {
	return s.client.DeleteBrand(ctx, id)
}

// Invoices opens an invoice list session.
func (s *Collections) Invoices(ctx context.Context) (*ListSession[model.Invoice], error) {
	items, err := s.client.Invoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}
	return NewListSession(items, s.pageSize), nil
}

// Stocks opens a stock document list session.
func (s *Collections) Stocks(ctx context.Context) (*ListSession[model.StockDocument], error) {
	items, err := s.client.Stocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stock documents: %w", err)
	}
	return NewListSession(items, s.pageSize), nil
}
