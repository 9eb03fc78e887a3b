package model

import (
	"github.com/shopspring/decimal"
)

// Product is a read-only catalog entry. It is immutable for the duration of a
// form session; rows snapshot its reference price at selection time and never
// re-read it, even if the catalog is reloaded.
type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	SKU            string          `json:"sku"`
	UnitID         string          `json:"unit_id"`
	UnitName       string          `json:"unit_name"`
	ReferencePrice decimal.Decimal `json:"reference_price"`
	BrandID        string          `json:"brand_id,omitempty"`
}

// ProductRequest is the payload for creating or updating a product record.
type ProductRequest struct {
	Name           string `json:"name" validate:"required"`
	SKU            string `json:"sku" validate:"required"`
	UnitID         string `json:"unit_id" validate:"required"`
	ReferencePrice string `json:"reference_price" validate:"required"`
	BrandID        string `json:"brand_id"`
}
