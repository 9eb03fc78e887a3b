package api

import (
	"context"

	"salespoint/internal/apierror"
	"salespoint/internal/model"
)

// Statuses fetches the runtime status vocabulary (key -> label).
func (c *Client) Statuses(ctx context.Context) (model.StatusSet, error) {
	var statuses model.StatusSet
	if err := c.get(ctx, "/status", &statuses); err != nil {
		return nil, &apierror.FetchError{Resource: "statuses", Err: err}
	}
	return statuses, nil
}

// Settings fetches the settings rows and flattens them into a map.
func (c *Client) Settings(ctx context.Context) (model.Settings, error) {
	var rows []model.Setting
	if err := c.get(ctx, "/settings", &rows); err != nil {
		return nil, &apierror.FetchError{Resource: "settings", Err: err}
	}
	return model.FlattenSettings(rows), nil
}
