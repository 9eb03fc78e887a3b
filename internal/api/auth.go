package api

import (
	"context"

	"salespoint/internal/model"
)

// Login exchanges credentials for a bearer token and records the result on
// the session.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.LoginResult, error) {
	var res model.LoginResult
	if err := c.post(ctx, "/login", creds, &res); err != nil {
		return model.LoginResult{}, err
	}
	if err := c.session.SignIn(res); err != nil {
		return model.LoginResult{}, err
	}
	return res, nil
}

// Profile fetches the signed-in user's account record.
func (c *Client) Profile(ctx context.Context) (model.Profile, error) {
	var p model.Profile
	if err := c.get(ctx, "/profile", &p); err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

// UpdateProfile updates the signed-in user's account fields and refreshes the
// session's cached profile on success.
func (c *Client) UpdateProfile(ctx context.Context, req model.ProfileRequest) (model.Profile, error) {
	var p model.Profile
	if err := c.put(ctx, "/profile", req, &p); err != nil {
		return model.Profile{}, err
	}
	c.session.SetUser(p)
	return p, nil
}
