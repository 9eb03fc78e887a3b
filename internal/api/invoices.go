package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"salespoint/internal/apierror"
	"salespoint/internal/model"
)

// Invoices fetches the invoice collection for the list screen.
func (c *Client) Invoices(ctx context.Context) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := c.get(ctx, "/invoices", &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// Invoice fetches one invoice with its line items.
func (c *Client) Invoice(ctx context.Context, id string) (model.Invoice, error) {
	var inv model.Invoice
	if err := c.get(ctx, fmt.Sprintf("/invoices/%s", id), &inv); err != nil {
		return model.Invoice{}, err
	}
	return inv, nil
}

// SubmitInvoice creates or updates an invoice. On update the id must be the
// server-assigned document id.
func (c *Client) SubmitInvoice(ctx context.Context, mode model.SubmitMode, id string, req model.InvoiceRequest) (model.Invoice, error) {
	var inv model.Invoice
	var err error
	switch mode {
	case model.SubmitUpdate:
		err = c.put(ctx, fmt.Sprintf("/invoices/%s", id), req, &inv)
	default:
		err = c.post(ctx, "/invoices", req, &inv)
	}
	if err != nil {
		return model.Invoice{}, err
	}
	return inv, nil
}

// DeleteInvoiceItem removes one persisted line item. A 404 or 409 means the
// server-side row no longer matches what the client holds, reported as a
// DeleteConflict so the caller keeps the row visible.
func (c *Client) DeleteInvoiceItem(ctx context.Context, itemID string) error {
	err := c.delete(ctx, fmt.Sprintf("/invoices/items/%s", itemID))
	var reqErr *apierror.RequestError
	if errors.As(err, &reqErr) && (reqErr.StatusCode == http.StatusNotFound || reqErr.StatusCode == http.StatusConflict) {
		return &apierror.DeleteConflict{ItemID: itemID, StatusCode: reqErr.StatusCode}
	}
	return err
}
