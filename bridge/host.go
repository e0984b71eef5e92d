package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/vibekanban/desktop/bridge/handler"
	"github.com/vibekanban/desktop/common/api"
	"github.com/vibekanban/desktop/common/ipc"
)

// Host runs command handlers in the current process.
// It is the capability the desktop shell injects into the client, and the
// backend Serve exposes over the bridge socket.
type Host struct {
	registry *handler.Registry
	events   *EventBus
	window   *window

	mu      sync.Mutex
	onClose func()
}

func NewHost(registry *handler.Registry, events *EventBus) *Host {
	if events == nil {
		events = NewEventBus()
	}
	return &Host{registry: registry, events: events, window: newWindow()}
}

// Events returns the bus handlers emit on.
func (h *Host) Events() *EventBus {
	return h.events
}

// OnWindowClose sets a callback run after a close window op.
func (h *Host) OnWindowClose(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onClose = fn
}

// WindowState returns the current window state.
func (h *Host) WindowState() WindowState {
	return h.window.snapshot()
}

func (h *Host) Acquire(ctx context.Context) (ipc.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &localHandle{host: h}, nil
}

func (h *Host) Listen(ctx context.Context, event string, fn func(payload json.RawMessage)) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if event == "" {
		return nil, fmt.Errorf("%w: empty event", ipc.ErrInvalidRequest)
	}
	return h.events.Subscribe(event, fn), nil
}

func (h *Host) Window(ctx context.Context, op api.WindowOp) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !op.Valid() {
		return fmt.Errorf("%w: unknown window op %q", ipc.ErrInvalidRequest, op)
	}
	state := h.window.apply(op)
	logger.DebugKV("window op applied", "op", op, "visible", state.Visible, "maximized", state.Maximized)
	h.events.Emit(api.EventWindowChanged, state)

	if op == api.WindowClose {
		h.mu.Lock()
		fn := h.onClose
		h.mu.Unlock()
		if fn != nil {
			fn()
		}
	}
	return nil
}

// Dispatch runs the handler registered for command and returns its result as JSON.
func (h *Host) Dispatch(ctx context.Context, command api.Command, args json.RawMessage) (out json.RawMessage, err error) {
	hd, ok := h.registry.Get(command)
	if !ok {
		logger.WarnKV("unknown command", "command", command)
		return nil, fmt.Errorf("%w: %s", ipc.ErrHandlerNotFound, command)
	}

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorKV("handler panic", "command", command, "panic", r)
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	logger.DebugKV("command dispatched", "command", command)
	result, err := hd.Execute(ctx, args)
	if err != nil {
		if errors.Is(err, ipc.ErrNotInitialized) || errors.Is(err, ipc.ErrNotFound) {
			logger.DebugKV("handler error", "command", command, "error", err)
		} else {
			logger.WarnKV("handler error", "command", command, "error", err)
		}
		return nil, err
	}

	out, err = json.Marshal(result)
	if err != nil {
		logger.ErrorKV("failed to marshal handler output", "command", command, "error", err)
		return nil, fmt.Errorf("marshal %s output: %w", command, err)
	}
	return out, nil
}

type localHandle struct {
	host   *Host
	closed bool
}

func (lh *localHandle) Invoke(ctx context.Context, command api.Command, args any) (json.RawMessage, error) {
	if lh.closed {
		return nil, errors.New("bridge handle closed")
	}
	var raw json.RawMessage
	switch v := args.(type) {
	case nil:
	case json.RawMessage:
		raw = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ipc.ErrInvalidArgs, err)
		}
		raw = b
	}
	return lh.host.Dispatch(ctx, command, raw)
}

func (lh *localHandle) Close() error {
	lh.closed = true
	return nil
}
