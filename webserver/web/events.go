package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mordilloSan/go-logger/logger"

	"github.com/vibekanban/desktop/common/api"
	"github.com/vibekanban/desktop/common/ipc"
)

// WebSocket keepalive configuration
const (
	// How often to send ping frames to the client
	pingInterval = 25 * time.Second

	// How long to wait for a pong before considering the connection dead
	pongWait = 35 * time.Second

	// Maximum time allowed to write a message (ping or data)
	writeWait = 10 * time.Second

	// Events buffered per connection before new ones are dropped
	eventBuffer = 64
)

var upgrader = websocket.Upgrader{
	// The desktop webview and dev servers connect from other origins.
	CheckOrigin: func(*http.Request) bool { return true },
}

func isExpectedWSClose(err error) bool {
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		switch ce.Code {
		case websocket.CloseNormalClosure, websocket.CloseGoingAway,
			websocket.CloseNoStatusReceived, websocket.CloseAbnormalClosure:
			return true
		}
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "use of closed network connection") ||
		strings.Contains(errStr, "i/o timeout")
}

// EventsHandler relays host events named by ?event= to a websocket client
// as api.Event frames.
func EventsHandler(host ipc.Host) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		event := strings.TrimSpace(r.URL.Query().Get("event"))
		if event == "" {
			WriteError(w, http.StatusBadRequest, "missing event parameter")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Errorf("[events] upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		done := make(chan struct{})
		queue := make(chan json.RawMessage, eventBuffer)

		unlisten, err := host.Listen(r.Context(), event, func(payload json.RawMessage) {
			select {
			case <-done:
			case queue <- payload:
			default:
				logger.WarnKV("event relay queue full, dropping event", "event", event)
			}
		})
		if err != nil {
			logger.WarnKV("event relay listen failed", "event", event, "error", err)
			msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "listen failed")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return
		}
		defer unlisten()

		logger.InfoKV("event relay connected", "event", event, "remote", r.RemoteAddr)

		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		// Reader: the client sends nothing but control frames; any error ends the relay.
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					if !isExpectedWSClose(err) {
						logger.DebugKV("event relay read ended", "event", event, "error", err)
					}
					return
				}
			}
		}()

		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				logger.DebugKV("event relay closed", "event", event)
				return
			case <-r.Context().Done():
				return
			case payload := <-queue:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(api.Event{Name: event, Payload: payload}); err != nil {
					logger.DebugKV("event relay write failed", "event", event, "error", err)
					return
				}
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	})
}
