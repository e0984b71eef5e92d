package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mordilloSan/go-logger/logger"

	"github.com/vibekanban/desktop/common/api"
)

// Listen calls fn with the payload of every event named event until the
// returned function is called. In bridge mode the host delivers events
// directly; in network mode they arrive over a websocket.
func (c *Client) Listen(ctx context.Context, event string, fn func(payload json.RawMessage)) (func(), error) {
	if event == "" {
		return nil, errors.New("event name is required")
	}
	if c.mode == ModeBridge {
		return c.host.Listen(ctx, event, fn)
	}
	return c.listenWebSocket(ctx, event, fn)
}

func (c *Client) eventsURL(event string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("%w: event stream needs an absolute base URL", ErrTransportUnavailable)
	}
	u, err := url.Parse(strings.TrimRight(c.baseURL, "/") + api.EventsPath)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported base URL scheme %q", u.Scheme)
	}
	u.RawQuery = url.Values{"event": {event}}.Encode()
	return u.String(), nil
}

func (c *Client) listenWebSocket(ctx context.Context, event string, fn func(json.RawMessage)) (func(), error) {
	target, err := c.eventsURL(event)
	if err != nil {
		return nil, err
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		if resp != nil {
			return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Method: "GET", URL: target}
		}
		return nil, fmt.Errorf("dial event stream: %w", err)
	}
	logger.DebugKV("event stream connected", "event", event, "url", target)

	go func() {
		for {
			var frame struct {
				Event   string          `json:"event"`
				Payload json.RawMessage `json:"payload"`
			}
			if err := conn.ReadJSON(&frame); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
					!errors.Is(err, net.ErrClosed) {
					logger.DebugKV("event stream ended", "event", event, "error", err)
				}
				return
			}
			if frame.Event == event {
				fn(frame.Payload)
			}
		}
	}()

	return func() {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		_ = conn.Close()
	}, nil
}
