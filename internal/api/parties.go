package api

import (
	"context"
	"fmt"

	"salespoint/internal/model"
)

// Customers fetches the full customer collection.
func (c *Client) Customers(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	if err := c.get(ctx, "/customers", &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// CreateCustomer creates a customer record.
func (c *Client) CreateCustomer(ctx context.Context, req model.CustomerRequest) (model.Customer, error) {
	var out model.Customer
	if err := c.post(ctx, "/customers", req, &out); err != nil {
		return model.Customer{}, err
	}
	return out, nil
}

// UpdateCustomer updates a customer record.
func (c *Client) UpdateCustomer(ctx context.Context, id string, req model.CustomerRequest) (model.Customer, error) {
	var out model.Customer
	if err := c.put(ctx, fmt.Sprintf("/customers/%s", id), req, &out); err != nil {
		return model.Customer{}, err
	}
	return out, nil
}

// DeleteCustomer removes a customer record.
func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.delete(ctx, fmt.Sprintf("/customers/%s", id))
}

// Cities fetches the city reference list.
func (c *Client) Cities(ctx context.Context) ([]model.City, error) {
	var cities []model.City
	if err := c.get(ctx, "/cities", &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

// CreateCity creates a city record.
func (c *Client) CreateCity(ctx context.Context, req model.CityRequest) (model.City, error) {
	var out model.City
	if err := c.post(ctx, "/cities", req, &out); err != nil {
		return model.City{}, err
	}
	return out, nil
}

// UpdateCity updates a city record.
func (c *Client) UpdateCity(ctx context.Context, id string, req model.CityRequest) (model.City, error) {
	var out model.City
	if err := c.put(ctx, fmt.Sprintf("/cities/%s", id), req, &out); err != nil {
		return model.City{}, err
	}
	return out, nil
}

// DeleteCity removes a city record.
func (c *Client) DeleteCity(ctx context.Context, id string) error {
	return c.delete(ctx, fmt.Sprintf("/cities/%s", id))
}

// Brands fetches the brand list.
func (c *Client) Brands(ctx context.Context) ([]model.Brand, error) {
	var brands []model.Brand
	if err := c.get(ctx, "/brands", &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// CreateBrand creates a brand record.
func (c *Client) CreateBrand(ctx context.Context, req model.BrandRequest) (model.Brand, error) {
	var out model.Brand
	if err := c.post(ctx, "/brands", req, &out); err != nil {
		return model.Brand{}, err
	}
	return out, nil
}

// UpdateBrand updates a brand record.
func (c *Client) UpdateBrand(ctx context.Context, id string, req model.BrandRequest) (model.Brand, error) {
	var out model.Brand
	if err := c.put(ctx, fmt.Sprintf("/brands/%s", id), req, &out); err != nil {
		return model.Brand{}, err
	}
	return out, nil
}

// DeleteBrand removes a brand record.
func (c *Client) DeleteBrand(ctx context.Context, id string) error {
	return c.delete(ctx, fmt.Sprintf("/brands/%s", id))
}
