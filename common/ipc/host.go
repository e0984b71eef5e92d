package ipc

import (
	"context"
	"encoding/json"

	"github.com/vibekanban/desktop/common/api"
)

// Host is the capability a desktop shell hands to the client at startup.
// Its presence is what puts the client into bridge mode.
type Host interface {
	// Acquire returns a handle scoped to a single invocation. Callers close it
	// right after use; handles are never pooled or reused.
	Acquire(ctx context.Context) (Handle, error)

	// Listen calls fn with the payload of every event the host emits under name,
	// until the returned unlisten function is called.
	Listen(ctx context.Context, event string, fn func(payload json.RawMessage)) (unlisten func(), err error)

	// Window applies a window-control primitive.
	Window(ctx context.Context, op api.WindowOp) error
}

// Handle invokes named host commands.
type Handle interface {
	// Invoke runs command with args (any JSON-serializable value, nil for none)
	// and returns the command's result as raw JSON.
	Invoke(ctx context.Context, command api.Command, args any) (json.RawMessage, error)
	Close() error
}
