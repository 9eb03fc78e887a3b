package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"salespoint/internal/apierror"
	"salespoint/internal/model"
)

// Stocks fetches the stock document collection for the list screen.
func (c *Client) Stocks(ctx context.Context) ([]model.StockDocument, error) {
	var docs []model.StockDocument
	if err := c.get(ctx, "/stocks", &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Stock fetches one stock document with its line items.
func (c *Client) Stock(ctx context.Context, id string) (model.StockDocument, error) {
	var doc model.StockDocument
	if err := c.get(ctx, fmt.Sprintf("/stocks/%s", id), &doc); err != nil {
		return model.StockDocument{}, err
	}
	return doc, nil
}

// DeleteStockItem removes one persisted stock line, with the same conflict
// semantics as invoice items.
func (c *Client) DeleteStockItem(ctx context.Context, itemID string) error {
	err := c.delete(ctx, fmt.Sprintf("/stocks/items/%s", itemID))
	var reqErr *apierror.RequestError
	if errors.As(err, &reqErr) && (reqErr.StatusCode == http.StatusNotFound || reqErr.StatusCode == http.StatusConflict) {
		return &apierror.DeleteConflict{ItemID: itemID, StatusCode: reqErr.StatusCode}
	}
	return err
}

// SubmitStock creates or updates a stock document. Posting rides on the same
// call with req.IsPost set and the status overridden to the posted key.
func (c *Client) SubmitStock(ctx context.Context, mode model.SubmitMode, id string, req model.StockRequest) (model.StockDocument, error) {
	var doc model.StockDocument
	var err error
	switch mode {
	case model.SubmitUpdate:
		err = c.put(ctx, fmt.Sprintf("/stocks/%s", id), req, &doc)
	default:
		err = c.post(ctx, "/stocks", req, &doc)
	}
	if err != nil {
		return model.StockDocument{}, err
	}
	return doc, nil
}
