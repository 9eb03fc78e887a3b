package model

import (
	"github.com/shopspring/decimal"
)

// DiscountType wire values. The discount vocabulary is the one piece of the
// document model that is fixed rather than fetched: the backend only knows
// these two kinds.
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// SubmitMode selects POST vs PUT on document submission.
type SubmitMode int

const (
	SubmitCreate SubmitMode = iota
	SubmitUpdate
)

// Invoice is the fetched invoice document: header plus its line items.
// The invoice number is server-assigned.
type Invoice struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	InvoiceDate   string        `json:"invoice_date"`
	Status        string        `json:"status"`
	Description   string        `json:"description"`
	CustomerID    string        `json:"customer_id"`
	Details       []InvoiceItem `json:"details"`
}

// InvoiceItem is one persisted invoice line.
type InvoiceItem struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	SKU           string          `json:"sku"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitID        string          `json:"unit_id"`
	UnitName      string          `json:"unit_name"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	Price         decimal.Decimal `json:"price"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// InvoiceRequest is the flattened submission payload for an invoice.
type InvoiceRequest struct {
	InvoiceDate string               `json:"invoice_date" validate:"required"`
	Status      string               `json:"status" validate:"required"`
	Description string               `json:"description"`
	CustomerID  string               `json:"customer_id" validate:"required"`
	Items       []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// InvoiceItemRequest is one line of the invoice payload. ID is present only
// for rows that already exist server-side.
type InvoiceItemRequest struct {
	ID            string `json:"id,omitempty"`
	ProductID     string `json:"product_id" validate:"required"`
	Quantity      string `json:"quantity" validate:"required"`
	UnitID        string `json:"unit_id"`
	DiscountType  string `json:"discount_type,omitempty"`
	DiscountValue string `json:"discount_value,omitempty"`
	Price         string `json:"price" validate:"required"`
	TotalAmount   string `json:"total_amount" validate:"required"`
}

// StockDocument is the fetched stock entry. Older backend versions return the
// lines under "items", newer ones under "details"; Lines resolves that
// explicitly instead of duck-typing at every call site.
type StockDocument struct {
	ID             string      `json:"id"`
	DocumentNumber string      `json:"document_number"`
	DocumentDate   string      `json:"document_date"`
	Status         string      `json:"status"`
	Description    string      `json:"description"`
	Items          []StockItem `json:"items"`
	Details        []StockItem `json:"details"`
}

// Lines returns the line items regardless of which wire key carried them.
func (d *StockDocument) Lines() []StockItem {
	if len(d.Details) > 0 {
		return d.Details
	}
	return d.Items
}

// StockItem is one persisted stock line. Stock lines carry no discount.
type StockItem struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitID      string          `json:"unit_id"`
	UnitName    string          `json:"unit_name"`
	Price       decimal.Decimal `json:"price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// StockRequest is the flattened submission payload for a stock document.
// IsPost marks the one-way posting transition; Status carries the posted
// status key when posting, the current status otherwise.
type StockRequest struct {
	DocumentNumber string             `json:"document_number" validate:"required"`
	DocumentDate   string             `json:"document_date" validate:"required"`
	Status         string             `json:"status" validate:"required"`
	Description    string             `json:"description"`
	IsPost         bool               `json:"is_post"`
	Items          []StockItemRequest `json:"items" validate:"required,min=1,dive"`
}

// StockItemRequest is one line of the stock payload.
type StockItemRequest struct {
	ID          string `json:"id,omitempty"`
	ProductID   string `json:"product_id" validate:"required"`
	Quantity    string `json:"quantity" validate:"required"`
	UnitID      string `json:"unit_id"`
	Price       string `json:"price" validate:"required"`
	TotalAmount string `json:"total_amount" validate:"required"`
}
