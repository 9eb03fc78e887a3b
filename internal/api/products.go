package api

import (
	"context"
	"fmt"

	"salespoint/internal/model"
)

// ActiveProducts fetches the selectable product catalog. An empty catalog is
// a valid response, not an error.
func (c *Client) ActiveProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.get(ctx, "/active/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Products fetches the full product collection for the list screen.
func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct creates a product record.
func (c *Client) CreateProduct(ctx context.Context, req model.ProductRequest) (model.Product, error) {
	var p model.Product
	if err := c.post(ctx, "/products", req, &p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// UpdateProduct updates a product record.
func (c *Client) UpdateProduct(ctx context.Context, id string, req model.ProductRequest) (model.Product, error) {
	var p model.Product
	if err := c.put(ctx, fmt.Sprintf("/products/%s", id), req, &p); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// DeleteProduct removes a product record.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.delete(ctx, fmt.Sprintf("/products/%s", id))
}
