package model

import "strings"

// Setting is one row of the backend's settings table.
type Setting struct {
	DataName  string `json:"data_name"`
	DataValue string `json:"data_value"`
}

// Settings is the flattened data_name -> data_value map.
type Settings map[string]string

// FlattenSettings converts the wire array into a lookup map. Later duplicates
// win, matching how the backend serves the table.
func FlattenSettings(rows []Setting) Settings {
	m := make(Settings, len(rows))
	for _, r := range rows {
		m[r.DataName] = r.DataValue
	}
	return m
}

// CurrencySymbol returns the configured symbol, or the given fallback when
// the backend did not supply one.
func (s Settings) CurrencySymbol(fallback string) string {
	if v, ok := s["currency_symbol"]; ok && v != "" {
		return v
	}
	return fallback
}

// DefaultPostedStatus is used only when the fetched status vocabulary does
// not contain a "posted" entry at all.
const DefaultPostedStatus = "posted"

// StatusSet is the runtime status vocabulary: a key -> label map fetched
// from GET /status. Keys are opaque; labels are display text. Nothing here is
// hardcoded beyond the single documented fallback.
type StatusSet map[string]string

// PostedKey returns the key whose label reads "posted" (case-insensitive).
// Falls back to DefaultPostedStatus when the vocabulary lacks one.
func (s StatusSet) PostedKey() string {
	for k, label := range s {
		if strings.EqualFold(label, "posted") {
			return k
		}
	}
	return DefaultPostedStatus
}

// ActiveKey returns the key whose label reads "active" (case-insensitive),
// or the empty string when the vocabulary lacks one. New documents default
// their status to this key when available; there is no hardcoded fallback.
func (s StatusSet) ActiveKey() string {
	for k, label := range s {
		if strings.EqualFold(label, "active") {
			return k
		}
	}
	return ""
}

// IsPosted reports whether the given status key is the posted sentinel.
func (s StatusSet) IsPosted(status string) bool {
	return status != "" && status == s.PostedKey()
}

// Label resolves a status key to its display label, returning the key itself
// for unknown entries so raw server values remain visible.
func (s StatusSet) Label(status string) string {
	if label, ok := s[status]; ok {
		return label
	}
	return status
}
