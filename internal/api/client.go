// Package api is the typed REST client for the sales backend. Every method
// takes a context, carries the session's bearer token, and converts transport
// and HTTP failures into the apierror taxonomy before returning.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"salespoint/internal/apierror"
	"salespoint/internal/session"
)

const defaultTimeout = 30 * time.Second

// Client wraps an *http.Client with the base URL and session. A zero token is
// sent as no Authorization header, which the backend answers with 401.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
}

// New builds a client against baseURL. A non-positive timeout falls back to
// the default.
func New(baseURL string, timeout time.Duration, sess *session.Session) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		session:    sess,
	}
}

// Session exposes the session so services can observe logout.
func (c *Client) Session() *session.Session { return c.session }

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do executes one request and maps the outcome onto the error taxonomy:
// transport failure -> NetworkError, 401 -> AuthError (and a session logout
// transition), 422 -> ValidationErrors, 5xx -> ServerError, other non-2xx ->
// RequestError. Successful bodies go through envelope normalization.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request for %s: %w", path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &apierror.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apierror.NetworkError{Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.session.Logout()
		return &apierror.AuthError{Path: path}
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return parseValidation(raw)
	case resp.StatusCode >= 500:
		return &apierror.ServerError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &apierror.RequestError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil {
		return nil
	}
	return normalize(path, raw, out)
}

// parseValidation decodes the structured 422 shape {errors:{field:[msgs]}}.
// A 422 without that shape degrades to a RequestError with whatever message
// the body carried.
func parseValidation(raw []byte) error {
	var payload struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Errors) == 0 {
		return &apierror.RequestError{StatusCode: http.StatusUnprocessableEntity, Message: errorMessage(raw)}
	}
	return &apierror.ValidationErrors{Fields: payload.Errors}
}

// errorMessage extracts a human-readable message from an error body.
func errorMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return ""
}
