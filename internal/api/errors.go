package api

import (
	"encoding/json"
	"fmt"
)

// Error is returned for every failed exchange with the backend: network
// failures (StatusCode 0), non-2xx responses and undecodable success bodies.
// Its message is safe to show to the user.
type Error struct {
	Err        error
	Endpoint   string
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Transport reports whether the request never produced an HTTP response.
func (e *Error) Transport() bool {
	return e.StatusCode == 0
}

type errorPayload struct {
	Detail json.RawMessage `json:"detail"`
}

// errorFromResponse builds the error for a non-2xx response, preferring the
// server's detail message over the generic status text.
func errorFromResponse(endpoint string, status int, body []byte) *Error {
	apiErr := &Error{
		Endpoint:   endpoint,
		StatusCode: status,
		Message:    fmt.Sprintf("HTTP %d", status),
	}

	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil || detail == "" {
		return apiErr
	}
	apiErr.Message = detail
	return apiErr
}
