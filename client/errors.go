package client

import (
	"errors"
	"fmt"

	"github.com/vibekanban/desktop/common/api"
)

// ErrTransportUnavailable is returned when the bridge has no command for a (verb, path) pair.
var ErrTransportUnavailable = errors.New("transport unavailable")

func transportUnavailable(verb api.Verb, path string) error {
	return fmt.Errorf("%w: no bridge command mapped for %s %s", ErrTransportUnavailable, verb, path)
}

// HTTPStatusError is a response with a status outside 200-299.
type HTTPStatusError struct {
	StatusCode int
	Method     string
	URL        string
	// Message is the server's error text, when the body carried one.
	Message string
}

func (e *HTTPStatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP error! status: %d (%s %s: %s)", e.StatusCode, e.Method, e.URL, e.Message)
	}
	return fmt.Sprintf("HTTP error! status: %d (%s %s)", e.StatusCode, e.Method, e.URL)
}

// DecodeError is a 2xx response whose body is not valid JSON.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// BridgeInvocationError is a host command failure, wrapped without alteration.
type BridgeInvocationError struct {
	Command api.Command
	Err     error
}

func (e *BridgeInvocationError) Error() string {
	return fmt.Sprintf("bridge command %s failed: %v", e.Command, e.Err)
}

func (e *BridgeInvocationError) Unwrap() error { return e.Err }
