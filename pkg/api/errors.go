package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is an error response returned by the backend.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Message returns a message suitable for showing to the user.
func (e *Error) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return http.StatusText(e.StatusCode)
}

func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
	Error  string          `json:"error"`
}

func decodeError(statusCode int, body []byte) *Error {
	apiErr := &Error{StatusCode: statusCode}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return apiErr
	}

	var detail string
	if len(eb.Detail) > 0 && json.Unmarshal(eb.Detail, &detail) == nil {
		apiErr.Detail = detail
	} else if eb.Error != "" {
		apiErr.Detail = eb.Error
	} else if len(eb.Detail) > 0 {
		// validation errors come back as a list
		apiErr.Detail = "Invalid request"
	}
	return apiErr
}
