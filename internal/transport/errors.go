package transport

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError means the server was reached and rejected the request with a
// non-success status. It carries whatever detail the error body provided.
type APIError struct {
	Status int
	Detail string
	Body   json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (HTTP %d): %s", e.Status, e.Detail)
}

// errorBody matches the two error envelope shapes the backend uses.
type errorBody struct {
	Detail string `json:"detail"`
	Err    string `json:"error"`
}

func newAPIError(status int, raw []byte) *APIError {
	detail := "request failed"
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case strings.TrimSpace(body.Detail) != "":
			detail = body.Detail
		case strings.TrimSpace(body.Err) != "":
			detail = body.Err
		}
	}
	return &APIError{Status: status, Detail: detail, Body: raw}
}

// NetworkError means the server was unreachable and the retry budget is
// exhausted.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to connect to the API server: %v", e.Err)
	}
	return "failed to connect to the API server"
}

func (e *NetworkError) Unwrap() error { return e.Err }
