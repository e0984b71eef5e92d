package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibekanban/desktop/common/api"
)

func TestListen_NetworkWebSocket(t *testing.T) {
	upgrader := websocket.Upgrader{}
	gotEvent := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != api.EventsPath {
			http.NotFound(w, r)
			return
		}
		gotEvent <- r.URL.Query().Get("event")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteJSON(api.Event{Name: "other", Payload: map[string]string{"id": "skip"}})
		_ = conn.WriteJSON(api.Event{Name: api.EventProjectChanged, Payload: map[string]string{"id": "p1"}})
		_, _, _ = conn.ReadMessage()
	}))
	defer srv.Close()

	c := New(Capabilities{}, WithBaseURL(srv.URL))
	payloads := make(chan string, 2)
	unlisten, err := c.Listen(context.Background(), api.EventProjectChanged, func(p json.RawMessage) {
		payloads <- string(p)
	})
	require.NoError(t, err)
	defer unlisten()

	assert.Equal(t, api.EventProjectChanged, <-gotEvent)
	select {
	case p := <-payloads:
		assert.JSONEq(t, `{"id":"p1"}`, p)
	case <-time.After(3 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestListen_NetworkNeedsAbsoluteBaseURL(t *testing.T) {
	c := New(Capabilities{})
	_, err := c.Listen(context.Background(), api.EventTaskChanged, func(json.RawMessage) {})
	assert.ErrorIs(t, err, ErrTransportUnavailable)
}

func TestEventsURL(t *testing.T) {
	c := New(Capabilities{}, WithBaseURL("https://kanban.example.com/"))
	u, err := c.eventsURL("task:changed")
	require.NoError(t, err)
	assert.Equal(t, "wss://kanban.example.com/api/events?event=task%3Achanged", u)

	c = New(Capabilities{}, WithBaseURL("ftp://host"))
	_, err = c.eventsURL("x")
	assert.Error(t, err)
}
