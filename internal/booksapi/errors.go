package booksapi

import (
	"errors"
	"fmt"
	"strings"
)

// FallbackMessage is shown for failures that carry no usable message.
const FallbackMessage = "An unexpected error occurred"

// RequestError reports a non-2xx response.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	StatusText string
}

func (e *RequestError) Error() string {
	return "Error: " + e.StatusText
}

// UnexpectedError wraps failures that never produced an HTTP status, such as
// transport errors or undecodable bodies.
type UnexpectedError struct {
	Op  string
	Err error
}

func (e *UnexpectedError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

// Message converts err into the text shown to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Error()
	}
	var unexpected *UnexpectedError
	if errors.As(err, &unexpected) {
		return FallbackMessage
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return FallbackMessage
}
