package client

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/vibekanban/desktop/common/api"
)

type invocation struct {
	Command api.Command
	Args    json.RawMessage
}

// fakeHost records every acquisition and invocation.
type fakeHost struct {
	mu        sync.Mutex
	acquired  int
	released  int
	calls     []invocation
	windowOps []api.WindowOp
	listeners map[string]func(json.RawMessage)

	result json.RawMessage
	err    error
}

func newFakeHost(result string) *fakeHost {
	return &fakeHost{result: json.RawMessage(result), listeners: map[string]func(json.RawMessage){}}
}

func (h *fakeHost) Acquire(ctx context.Context) (Handle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.acquired++
	return &fakeHandle{host: h}, nil
}

func (h *fakeHost) Listen(ctx context.Context, event string, fn func(json.RawMessage)) (func(), error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners[event] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, event)
	}, nil
}

func (h *fakeHost) Window(ctx context.Context, op api.WindowOp) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.windowOps = append(h.windowOps, op)
	return nil
}

func (h *fakeHost) emit(event string, payload string) {
	h.mu.Lock()
	fn := h.listeners[event]
	h.mu.Unlock()
	if fn != nil {
		fn(json.RawMessage(payload))
	}
}

func (h *fakeHost) lastCall() invocation {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls[len(h.calls)-1]
}

type fakeHandle struct {
	host *fakeHost
}

func (fh *fakeHandle) Invoke(ctx context.Context, command api.Command, args any) (json.RawMessage, error) {
	var raw json.RawMessage
	if args != nil {
		b, err := json.Marshal(args)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	fh.host.mu.Lock()
	defer fh.host.mu.Unlock()
	fh.host.calls = append(fh.host.calls, invocation{Command: command, Args: raw})
	return fh.host.result, fh.host.err
}

func (fh *fakeHandle) Close() error {
	fh.host.mu.Lock()
	defer fh.host.mu.Unlock()
	fh.host.released++
	return nil
}
