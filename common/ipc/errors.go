package ipc

import (
	"errors"
	"net/http"
)

// Common errors for handlers
var (
	ErrInvalidArgs     = errors.New("invalid arguments")
	ErrHandlerNotFound = errors.New("handler not found")
	ErrNotFound        = errors.New("not found")
	ErrNotInitialized  = errors.New("deployment not initialized")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrEmptyOutput     = errors.New("bridge returned empty output")
)

// StatusCode maps an error to the HTTP status used by the web API and carried
// in bridge error responses.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidArgs), errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrHandlerNotFound), errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNotInitialized):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RemoteError is a failure reported by the host on the other end of a bridge stream.
type RemoteError struct {
	Message string
	Code    int
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Unwrap maps the carried status code back to the sentinel it came from, so
// errors.Is works the same on both sides of the socket.
func (e *RemoteError) Unwrap() error {
	switch e.Code {
	case http.StatusBadRequest:
		return ErrInvalidArgs
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrNotInitialized
	}
	return nil
}
