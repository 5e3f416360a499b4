package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrTransport   = errors.New("transport error")
	ErrDecode      = errors.New("unexpected response")
)

// TransportError reports a response whose status is not 200 OK.
type TransportError struct {
	Endpoint   string
	Method     string
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("request to %s failed with status %d", e.Endpoint, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *TransportError) Unwrap() error { return ErrTransport }

// DecodeError reports a 200 response whose body does not have the expected
// shape.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }
