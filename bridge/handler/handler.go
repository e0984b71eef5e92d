package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vibekanban/desktop/common/ipc"
)

// Handler executes one named command against the host.
// args is the raw JSON argument object sent by the caller (may be empty).
// The returned value is JSON-serialized and handed back as the command output.
type Handler interface {
	Execute(ctx context.Context, args json.RawMessage) (any, error)
}

// HandlerFunc is a function adapter for Handler interface.
type HandlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

func (f HandlerFunc) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	return f(ctx, args)
}

// Emitter publishes host events to listeners.
type Emitter interface {
	Emit(event string, payload any)
}

// Bind decodes args into T. Missing or null args yield the zero value.
func Bind[T any](args json.RawMessage) (T, error) {
	var v T
	if len(args) == 0 || string(args) == "null" {
		return v, nil
	}
	if err := json.Unmarshal(args, &v); err != nil {
		return v, fmt.Errorf("%w: %v", ipc.ErrInvalidArgs, err)
	}
	return v, nil
}

// Typed wraps a function taking a decoded argument struct.
//
// Example:
//
//	reg.Register(api.CmdGetProject, handler.Typed(func(ctx context.Context, p api.IDParams) (any, error) {
//	    return store.GetProject(ctx, p.ID)
//	}))
func Typed[T any](fn func(ctx context.Context, args T) (any, error)) Handler {
	return HandlerFunc(func(ctx context.Context, raw json.RawMessage) (any, error) {
		args, err := Bind[T](raw)
		if err != nil {
			return nil, err
		}
		return fn(ctx, args)
	})
}
