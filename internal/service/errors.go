package service

import (
	"context"
	"errors"

	"github.com/sefazor/taskflow-client/pkg/api"
)

var (
	ErrInvalidCheckout    = errors.New("invalid checkout request")
	ErrMissingRedirectURL = errors.New("backend returned no usable checkout url")
)

// InputError is a form that failed client-side validation.
type InputError struct {
	Message string
	Err     error
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// UserMessage picks the text shown in a toast for err.
func UserMessage(err error) string {
	var inputErr *InputError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &inputErr):
		return inputErr.Message
	case errors.Is(err, ErrMissingRedirectURL):
		return "The payment provider did not return a checkout page. Please try again later."
	case errors.Is(err, context.DeadlineExceeded):
		return "The server took too long to respond. Please try again."
	}

	if apiErr, ok := api.AsError(err); ok {
		return apiErr.Message()
	}
	return "Something went wrong. Please try again."
}
