package ipc

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vibekanban/desktop/common/api"
)

// Request types carried on a bridge stream.
const (
	TypeInvoke = "invoke"
	TypeListen = "listen"
	TypeWindow = "window"
)

// Response statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
	StatusEvent = "event"
)

// Request/Response are the on-the-wire schema used over the unix socket.
// One request per yamux stream; listen streams then carry event responses until closed.
type Request struct {
	Type    string          `json:"type"`
	Command api.Command     `json:"command,omitempty"`
	Args    json.RawMessage `json:"args,omitempty"`
	Event   string          `json:"event,omitempty"`
	Window  api.WindowOp    `json:"window,omitempty"`
}

type Response struct {
	Status string          `json:"status"`
	Output json.RawMessage `json:"output,omitempty"` // handler result as raw JSON (avoids double-encoding)
	Error  string          `json:"error,omitempty"`
	Code   int             `json:"code,omitempty"`
}

// Validate checks the request shape before it is dispatched.
func (r *Request) Validate() error {
	switch r.Type {
	case TypeInvoke:
		if r.Command == "" {
			return fmt.Errorf("%w: empty command", ErrInvalidRequest)
		}
		if strings.ContainsAny(string(r.Command), "./\\ ") {
			return fmt.Errorf("%w: invalid characters in command %q", ErrInvalidRequest, r.Command)
		}
	case TypeListen:
		if strings.TrimSpace(r.Event) == "" {
			return fmt.Errorf("%w: empty event", ErrInvalidRequest)
		}
	case TypeWindow:
		if !r.Window.Valid() {
			return fmt.Errorf("%w: unknown window op %q", ErrInvalidRequest, r.Window)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidRequest, r.Type)
	}
	return nil
}

// OKResponse wraps a handler result.
func OKResponse(output json.RawMessage) *Response {
	return &Response{Status: StatusOK, Output: output}
}

// ErrorResponse encodes err together with its status code so the remote side
// can rebuild a matching error.
func ErrorResponse(err error) *Response {
	return &Response{Status: StatusError, Error: err.Error(), Code: StatusCode(err)}
}
