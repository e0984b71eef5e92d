package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/vibekanban/desktop/common/api"
)

// RemoteHost is a Host served by another process over a unix socket.
// Every Acquire, Listen and Window call opens its own yamux stream; a handle
// carries exactly one invocation and its stream is closed with the handle.
type RemoteHost struct {
	session *Session
}

// DialHost connects to a host socket, retrying briefly while the host starts up.
func DialHost(ctx context.Context, socketPath string) (*RemoteHost, error) {
	conn, err := dialWithRetry(ctx, socketPath)
	if err != nil {
		return nil, err
	}
	h, err := NewRemoteHost(conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	logger.DebugKV("bridge socket connected", "socket_path", socketPath)
	return h, nil
}

// NewRemoteHost wraps an established connection to a host.
func NewRemoteHost(conn net.Conn) (*RemoteHost, error) {
	session, err := ClientSession(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to create yamux session: %w", err)
	}
	return &RemoteHost{session: session}, nil
}

// Close tears down the session and every open stream.
func (h *RemoteHost) Close() error {
	return h.session.Close()
}

func (h *RemoteHost) Acquire(ctx context.Context) (Handle, error) {
	stream, err := h.openStream(ctx)
	if err != nil {
		return nil, err
	}
	return &remoteHandle{stream: stream}, nil
}

func (h *RemoteHost) Window(ctx context.Context, op api.WindowOp) error {
	stream, err := h.openStream(ctx)
	if err != nil {
		return err
	}
	defer closeStream(stream)
	_, err = roundTrip(ctx, stream, &Request{Type: TypeWindow, Window: op})
	return err
}

func (h *RemoteHost) Listen(ctx context.Context, event string, fn func(payload json.RawMessage)) (func(), error) {
	stream, err := h.openStream(ctx)
	if err != nil {
		return nil, err
	}
	if err := WriteRequest(stream, &Request{Type: TypeListen, Event: event}); err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("failed to send listen request: %w", err)
	}

	rr := NewResponseReader(stream)
	ack, err := rr.Read()
	if err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("failed to read listen ack: %w", err)
	}
	if ack.Status != StatusOK {
		_ = stream.Close()
		return nil, &RemoteError{Message: ack.Error, Code: ack.Code}
	}

	go func() {
		for {
			resp, err := rr.Read()
			if err != nil {
				if !errors.Is(err, io.EOF) && !h.session.IsClosed() {
					logger.DebugKV("listen stream ended", "event", event, "error", err)
				}
				return
			}
			if resp.Status == StatusEvent {
				fn(resp.Output)
			}
		}
	}()

	return func() { _ = stream.Close() }, nil
}

func (h *RemoteHost) openStream(ctx context.Context) (net.Conn, error) {
	if h.session.IsClosed() {
		return nil, errors.New("bridge session is closed")
	}
	stream, err := h.session.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open bridge stream: %w", err)
	}
	return stream, nil
}

func closeStream(stream net.Conn) {
	if cerr := stream.Close(); cerr != nil {
		logger.DebugKV("bridge stream close failed", "error", cerr)
	}
}

// roundTrip sends one request on stream and reads one response.
func roundTrip(ctx context.Context, stream net.Conn, req *Request) (json.RawMessage, error) {
	if dl, ok := ctx.Deadline(); ok {
		_ = stream.SetDeadline(dl)
	}
	if err := WriteRequest(stream, req); err != nil {
		return nil, fmt.Errorf("failed to send request to bridge: %w", err)
	}
	resp, err := NewResponseReader(stream).Read()
	if err != nil {
		return nil, fmt.Errorf("failed to decode response from bridge: %w", err)
	}
	if resp.Status != StatusOK {
		return nil, &RemoteError{Message: resp.Error, Code: resp.Code}
	}
	return resp.Output, nil
}

type remoteHandle struct {
	stream net.Conn
	used   bool
}

func (rh *remoteHandle) Invoke(ctx context.Context, command api.Command, args any) (json.RawMessage, error) {
	if rh.used {
		return nil, errors.New("bridge handle already used")
	}
	rh.used = true

	req := &Request{Type: TypeInvoke, Command: command}
	if args != nil {
		raw, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
		}
		req.Args = raw
	}
	out, err := roundTrip(ctx, rh.stream, req)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmptyOutput
	}
	return out, nil
}

func (rh *remoteHandle) Close() error {
	return rh.stream.Close()
}

func dialWithRetry(ctx context.Context, socketPath string) (net.Conn, error) {
	const (
		totalWait   = 2 * time.Second
		step        = 100 * time.Millisecond
		dialTimeout = 500 * time.Millisecond
	)
	deadline := time.Now().Add(totalWait)
	d := net.Dialer{Timeout: dialTimeout}

	for {
		conn, err := d.DialContext(ctx, "unix", socketPath)
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) || ctx.Err() != nil {
			return nil, fmt.Errorf("failed to connect to bridge (%s): %w", socketPath, err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(step):
		}
	}
}
