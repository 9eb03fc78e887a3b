package service

import (
	"context"
	"fmt"

	"salespoint/internal/api"
	"salespoint/internal/model"
	"salespoint/pkg/validate"
)

// Account wraps login and profile maintenance for the signed-in user.
type Account struct {
	client *api.Client
}

// NewAccount builds the account service.
func NewAccount(client *api.Client) *Account {
	return &Account{client: client}
}

// Login validates credentials locally, then exchanges them for a session.
func (s *Account) Login(ctx context.Context, creds model.Credentials) (model.LoginResult, error) {
	if err := validate.Struct(creds); err != nil {
		return model.LoginResult{}, err
	}
	res, err := s.client.Login(ctx, creds)
	if err != nil {
		return model.LoginResult{}, fmt.Errorf("login: %w", err)
	}
	return res, nil
}

// Profile fetches the account record.
func (s *Account) Profile(ctx context.Context) (model.Profile, error) {
	return s.client.Profile(ctx)
}

// UpdateProfile validates and saves the account fields.
func (s *Account) UpdateProfile(ctx context.Context, req model.ProfileRequest) (model.Profile, error) {
	if err := validate.Struct(req); err != nil {
		return model.Profile{}, err
	}
	return s.client.UpdateProfile(ctx, req)
}
