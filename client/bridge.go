package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/vibekanban/desktop/common/api"
)

// BridgeTransport serves requests by invoking host commands.
type BridgeTransport struct {
	host Host
}

func NewBridgeTransport(host Host) *BridgeTransport {
	return &BridgeTransport{host: host}
}

func (t *BridgeTransport) Do(ctx context.Context, r Request) (json.RawMessage, error) {
	cmd, ok := api.Resolve(r.Verb, r.Path)
	if !ok {
		return nil, transportUnavailable(r.Verb, r.Path)
	}

	var args any
	switch r.Verb {
	case api.GET, api.DELETE:
		if present := r.Params.present(); len(present) > 0 {
			args = present
		}
	case api.POST, api.PUT:
		args = r.Body
	}
	return t.invoke(ctx, cmd, args)
}

// invoke acquires a handle for this call only and releases it before returning.
func (t *BridgeTransport) invoke(ctx context.Context, cmd api.Command, args any) (json.RawMessage, error) {
	h, err := t.host.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire bridge: %w", err)
	}
	defer func() {
		if cerr := h.Close(); cerr != nil {
			logger.DebugKV("bridge handle close failed", "command", cmd, "error", cerr)
		}
	}()

	logger.DebugKV("bridge invoke", "command", cmd)
	out, err := h.Invoke(ctx, cmd, args)
	if err != nil {
		return nil, &BridgeInvocationError{Command: cmd, Err: err}
	}
	return out, nil
}
