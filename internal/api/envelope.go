package api

import (
	"encoding/json"

	"salespoint/internal/apierror"
)

// envelope is the set of wrappers the backend is known to use. Older
// endpoints wrap payloads in "data", list endpoints in "records", and a few
// return the payload bare.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Records json.RawMessage `json:"records"`
}

// normalize resolves the response envelope in one place. The candidate
// shapes are tried in a fixed order: data, records, then the bare body. A
// body matching none of them is rejected with a typed EnvelopeError instead
// of silently falling through.
func normalize(path string, raw []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if len(env.Data) > 0 && string(env.Data) != "null" {
			if err := json.Unmarshal(env.Data, out); err == nil {
				return nil
			}
			return &apierror.EnvelopeError{Path: path}
		}
		if len(env.Records) > 0 && string(env.Records) != "null" {
			if err := json.Unmarshal(env.Records, out); err == nil {
				return nil
			}
			return &apierror.EnvelopeError{Path: path}
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &apierror.EnvelopeError{Path: path}
	}
	return nil
}
