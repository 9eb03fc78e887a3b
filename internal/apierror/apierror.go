// Package apierror defines the error taxonomy for everything that crosses the
// REST boundary. All transport and HTTP failures are converted to one of these
// types at the client call site, so the ledger and editor logic never see a
// raw *url.Error or a bare status code.
package apierror

import (
	"fmt"
	"sort"
	"strings"
)

// FetchError covers failed reference-data loads (catalog, settings, statuses).
// The form stays usable with degraded pickers, so callers usually log it and
// fall back to an empty list.
type FetchError struct {
	Resource string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ValidationErrors is the structured 422 payload: a field-keyed map of
// messages, rendered inline next to the offending inputs.
type ValidationErrors struct {
	Fields map[string][]string
}

func (e *ValidationErrors) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Messages returns the messages for one field, nil if the field is clean.
func (e *ValidationErrors) Messages(field string) []string {
	if e == nil {
		return nil
	}
	return e.Fields[field]
}

// AuthError is a 401 anywhere. It is not locally recoverable: the session
// layer observes it, clears credentials and notifies its logout listeners.
type AuthError struct {
	Path string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("unauthorized: %s", e.Path)
}

// ServerError is any 5xx response. The in-memory document state is left
// untouched so the user can retry without re-entering data.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server error (%d)", e.StatusCode)
}

// NetworkError is a transport-level failure: no connectivity, DNS, timeout.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// DeleteConflict means a line-item delete call failed (typically 404 because
// the item was already removed server-side). The row is kept in the ledger so
// the UI stays consistent with server truth.
type DeleteConflict struct {
	ItemID     string
	StatusCode int
}

func (e *DeleteConflict) Error() string {
	return fmt.Sprintf("could not delete item %s (status %d)", e.ItemID, e.StatusCode)
}

// EnvelopeError means a response matched none of the expected envelope shapes
// (data / records / bare payload). This replaces the legacy duck-typed
// fallthrough with a typed rejection.
type EnvelopeError struct {
	Path string
}

func (e *EnvelopeError) Error() string {
	return fmt.Sprintf("unexpected response shape from %s", e.Path)
}

// RequestError is any other non-2xx response (400, 404, 409, ...), surfaced
// as a single human-readable message.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed (%d)", e.StatusCode)
}
