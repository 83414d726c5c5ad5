// Package types holds the JSON envelopes shared by every API response.
package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// ListEnvelope wraps collection responses with an item count so
// clients can size paging controls without walking the slice.
type ListEnvelope struct {
	Data  any `json:"data"`
	Count int `json:"count"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
