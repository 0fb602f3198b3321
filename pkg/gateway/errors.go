package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrorCancelled is returned when the user declines the confirmation
	// gate in front of a mutation; no request was issued
	ErrorCancelled = errors.New("cancelled")

	// ErrorSuperseded is returned when a page load resolved after a newer
	// load was issued on the same cursor; the window was left unchanged
	ErrorSuperseded = errors.New("superseded")

	// ErrorNoDraft is returned when an editor is asked to submit while
	// no draft is open
	ErrorNoDraft = errors.New("no draft open")
)

// ApiError is a non-2xx response from the gateway service
type ApiError struct {
	StatusCode int
	Detail     string
}

func (e *ApiError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("failed to receive a successful response (status code: %v)", e.StatusCode)
}

// parseDetail extracts the server-provided error message from an error
// body, returning an empty string when the body carries none
func parseDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}
