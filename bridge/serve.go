package bridge

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/google/uuid"
	"github.com/mordilloSan/go-logger/logger"

	"github.com/vibekanban/desktop/common/ipc"
)

// listenBuffer bounds the events queued for one slow listen stream.
const listenBuffer = 64

// bufferedConn wraps a net.Conn with a buffered reader for protocol detection
type bufferedConn struct {
	net.Conn
	r *bufio.Reader
}

func (bc *bufferedConn) Read(p []byte) (int, error) {
	return bc.r.Read(p)
}

// Serve exposes host on ln until ctx is cancelled or ln fails.
// Each connection is a yamux session; each stream carries one request.
func Serve(ctx context.Context, ln net.Listener, host ipc.Host) error {
	var wg sync.WaitGroup
	sessions := ipc.NewSessionSet()

	stop := context.AfterFunc(ctx, func() {
		_ = ln.Close()
		sessions.CloseAll()
	})
	defer stop()

	logger.InfoKV("bridge listening", "addr", ln.Addr().String())

	for {
		conn, err := ln.Accept()
		if err != nil {
			sessions.CloseAll()
			wg.Wait()
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				logger.InfoKV("bridge stopped")
				return nil
			}
			return fmt.Errorf("bridge accept: %w", err)
		}

		id := uuid.NewString()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()

			session := openSession(conn, id)
			if session == nil {
				return
			}
			if !sessions.Add(session) {
				_ = session.Close()
				return
			}
			defer sessions.Remove(id)

			handleSession(ctx, session, host)
		}()
	}
}

func openSession(conn net.Conn, id string) *ipc.Session {
	// Peek at first byte to detect protocol
	peekable := bufio.NewReader(conn)
	firstByte, err := peekable.Peek(1)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			logger.WarnKV("failed to peek connection", "conn_id", id, "error", err)
		}
		return nil
	}
	if !ipc.IsYamuxConnection(firstByte[0]) {
		logger.WarnKV("unknown protocol (expected yamux)", "conn_id", id, "first_byte", fmt.Sprintf("0x%02x", firstByte[0]))
		return nil
	}

	session, err := ipc.ServerSession(&bufferedConn{Conn: conn, r: peekable}, id)
	if err != nil {
		logger.ErrorKV("failed to create yamux session", "session_id", id, "error", err)
		return nil
	}
	return session
}

// handleSession accepts streams until the session closes.
func handleSession(ctx context.Context, session *ipc.Session, host ipc.Host) {
	sessionID := session.ID
	defer session.Close()
	logger.InfoKV("yamux session started", "session_id", sessionID)

	var streamWg sync.WaitGroup
	for {
		stream, err := session.Accept()
		if err != nil {
			if session.IsClosed() {
				logger.DebugKV("yamux session closed", "session_id", sessionID)
			} else {
				logger.WarnKV("yamux accept error", "session_id", sessionID, "error", err)
			}
			break
		}

		streamWg.Add(1)
		go func(s net.Conn) {
			defer streamWg.Done()
			defer s.Close()
			handleStream(ctx, s, host, sessionID+"/"+uuid.NewString())
		}(stream)
	}

	streamWg.Wait()
	logger.InfoKV("yamux session ended", "session_id", sessionID)
}

func handleStream(ctx context.Context, stream net.Conn, host ipc.Host, id string) {
	req, err := ipc.ReadRequest(stream)
	if err != nil {
		if errors.Is(err, io.EOF) {
			logger.DebugKV("yamux stream closed", "stream_id", id)
		} else {
			logger.WarnKV("failed to read yamux request", "stream_id", id, "error", err)
			_ = ipc.WriteResponse(stream, ipc.ErrorResponse(fmt.Errorf("%w: %v", ipc.ErrInvalidRequest, err)))
		}
		return
	}
	if err := req.Validate(); err != nil {
		logger.WarnKV("rejected request", "stream_id", id, "req_type", req.Type, "error", err)
		_ = ipc.WriteResponse(stream, ipc.ErrorResponse(err))
		return
	}

	logger.DebugKV("yamux request received", "stream_id", id, "req_type", req.Type, "command", req.Command)

	var resp *ipc.Response
	switch req.Type {
	case ipc.TypeInvoke:
		resp = invoke(ctx, host, req)
	case ipc.TypeWindow:
		if err := host.Window(ctx, req.Window); err != nil {
			resp = ipc.ErrorResponse(err)
		} else {
			resp = ipc.OKResponse(json.RawMessage("null"))
		}
	case ipc.TypeListen:
		serveListen(ctx, stream, host, req.Event, id)
		return
	}

	if err := ipc.WriteResponse(stream, resp); err != nil {
		logger.WarnKV("failed to send yamux response", "stream_id", id, "error", err)
	}
}

func invoke(ctx context.Context, host ipc.Host, req *ipc.Request) *ipc.Response {
	h, err := host.Acquire(ctx)
	if err != nil {
		return ipc.ErrorResponse(err)
	}
	defer h.Close()

	var args any
	if len(req.Args) > 0 {
		args = req.Args
	}
	out, err := h.Invoke(ctx, req.Command, args)
	if err != nil {
		return ipc.ErrorResponse(err)
	}
	return ipc.OKResponse(out)
}

// serveListen streams events to the client until it closes its side.
// Events that arrive while the queue is full are dropped.
func serveListen(ctx context.Context, stream net.Conn, host ipc.Host, event, id string) {
	queue := make(chan json.RawMessage, listenBuffer)
	done := make(chan struct{})

	unlisten, err := host.Listen(ctx, event, func(payload json.RawMessage) {
		select {
		case <-done:
		case queue <- payload:
		default:
			logger.WarnKV("listen queue full, dropping event", "stream_id", id, "event", event)
		}
	})
	if err != nil {
		_ = ipc.WriteResponse(stream, ipc.ErrorResponse(err))
		return
	}
	defer unlisten()

	if err := ipc.WriteResponse(stream, ipc.OKResponse(nil)); err != nil {
		logger.WarnKV("failed to ack listen", "stream_id", id, "error", err)
		return
	}
	logger.DebugKV("listen stream opened", "stream_id", id, "event", event)

	go func() {
		// The client sends nothing after the request; EOF means it unlistened.
		_, _ = io.Copy(io.Discard, stream)
		close(done)
	}()

	for {
		select {
		case <-done:
			logger.DebugKV("listen stream closed", "stream_id", id, "event", event)
			return
		case <-ctx.Done():
			return
		case payload := <-queue:
			if err := ipc.WriteResponse(stream, &ipc.Response{Status: ipc.StatusEvent, Output: payload}); err != nil {
				logger.DebugKV("listen write failed", "stream_id", id, "error", err)
				return
			}
		}
	}
}
