package model

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a completion failed.
type FailureKind int

const (
	// FailureTransport: no HTTP response (DNS, refused, reset, cancelled).
	FailureTransport FailureKind = iota
	// FailureProvider: the provider answered with a non-2xx status.
	FailureProvider
	// FailureMalformed: 2xx response without a usable first choice.
	FailureMalformed
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureProvider:
		return "provider"
	case FailureMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

const UnknownErrorMessage = "Unknown error"

// CompletionError is the classified failure returned by every Provider.
type CompletionError struct {
	Kind       FailureKind
	StatusCode int
	Message    string
	Err        error
}

func (e *CompletionError) Error() string {
	switch e.Kind {
	case FailureProvider:
		msg := e.Message
		if msg == "" {
			msg = UnknownErrorMessage
		}
		return fmt.Sprintf("API Error: %d - %s", e.StatusCode, msg)
	case FailureMalformed:
		return fmt.Sprintf("malformed response: %s", e.Message)
	default:
		if e.Err != nil {
			return fmt.Sprintf("transport error: %v", e.Err)
		}
		return "transport error"
	}
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// AsCompletionError unwraps err to a *CompletionError if it carries one.
func AsCompletionError(err error) (*CompletionError, bool) {
	var ce *CompletionError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
