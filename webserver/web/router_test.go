package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibekanban/desktop/bridge"
	"github.com/vibekanban/desktop/bridge/handlers"
	"github.com/vibekanban/desktop/client"
	"github.com/vibekanban/desktop/common/api"
	appconfig "github.com/vibekanban/desktop/common/config"
)

func newTestServer(t *testing.T) (*httptest.Server, *bridge.Host) {
	t.Helper()
	host, state := handlers.NewHost(appconfig.Env{DataDir: t.TempDir()})
	srv := httptest.NewServer(BuildRouter(Config{Host: host}))
	t.Cleanup(func() {
		srv.Close()
		_ = state.Close()
	})
	return srv, host
}

func do(t *testing.T, method, url, body string) (int, string) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func TestRouter_ErrorStatuses(t *testing.T) {
	srv, _ := newTestServer(t)

	status, body := do(t, http.MethodGet, srv.URL+"/api/projects", "")
	assert.Equal(t, http.StatusConflict, status)
	assert.JSONEq(t, `{"error":"deployment not initialized"}`, body)

	status, _ = do(t, http.MethodPost, srv.URL+"/api/deployment/initialize", "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = do(t, http.MethodGet, srv.URL+"/api/projects/5a1c1a43-2a4f-4d7f-9f59-0a1e3c7b0000", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, http.MethodPost, srv.URL+"/api/projects", `["not","an","object"]`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, http.MethodPost, srv.URL+"/api/projects", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = do(t, http.MethodGet, srv.URL+"/api/unmapped-path", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "no route")
}

func TestRouter_NullResultIsNoContent(t *testing.T) {
	srv, _ := newTestServer(t)
	status, body := do(t, http.MethodPut, srv.URL+"/api/config", `{"config":{"theme":"dark"}}`)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Empty(t, body)
}

func TestRouter_GenericVerbPaths(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx := context.Background()
	c := client.New(client.Capabilities{}, client.WithBaseURL(srv.URL))

	_, err := c.InitializeDeployment(ctx)
	require.NoError(t, err)

	p, err := client.Post[api.Project](ctx, c, "/api/projects", map[string]any{"name": "Demo"})
	require.NoError(t, err)

	p, err = client.Put[api.Project](ctx, c, "/api/projects", map[string]any{"id": p.ID, "name": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Name)

	list, err := client.Get[[]api.Project](ctx, c, "/api/projects", nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Renamed", list[0].Name)
}

// The same operations give the same results through either transport.
func TestRouter_BothTransportsReachTheSameCommands(t *testing.T) {
	srv, host := newTestServer(t)
	ctx := context.Background()

	browser := client.New(client.Capabilities{}, client.WithBaseURL(srv.URL))
	desktop := client.New(client.Capabilities{Host: host})

	msg, err := desktop.InitializeDeployment(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Deployment initialized successfully", msg)

	info, err := browser.GetDeploymentInfo(ctx)
	require.NoError(t, err)
	assert.True(t, info.IsInitialized)

	p, err := browser.CreateProject(ctx, "Demo", nil)
	require.NoError(t, err)

	fromDesktop, err := desktop.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, fromDesktop)

	task, err := desktop.CreateTask(ctx, p.ID, "Write tests", nil)
	require.NoError(t, err)

	status := api.TaskInReview
	updated, err := browser.UpdateTask(ctx, task.ID, nil, nil, &status)
	require.NoError(t, err)
	assert.Equal(t, api.TaskInReview, updated.Status)

	tasks, err := browser.GetTasks(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, api.TaskInReview, tasks[0].Status)

	require.NoError(t, browser.UpdateExecutorConfig(ctx, "codex", map[string]any{"model": "o3"}))
	cfg, err := desktop.GetExecutorConfig(ctx, "codex")
	require.NoError(t, err)
	assert.Equal(t, "o3", cfg["model"])

	require.NoError(t, browser.DeleteProject(ctx, p.ID))
	_, err = desktop.GetTask(ctx, task.ID)
	var berr *client.BridgeInvocationError
	assert.True(t, errors.As(err, &berr))

	_, err = browser.GetProject(ctx, p.ID)
	var herr *client.HTTPStatusError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusNotFound, herr.StatusCode)
}

func TestEventsRelay(t *testing.T) {
	srv, host := newTestServer(t)
	ctx := context.Background()
	c := client.New(client.Capabilities{}, client.WithBaseURL(srv.URL))

	got := make(chan json.RawMessage, 1)
	unlisten, err := c.Listen(ctx, api.EventConfigChanged, func(p json.RawMessage) { got <- p })
	require.NoError(t, err)
	defer unlisten()

	require.Eventually(t, func() bool {
		return host.Events().Listeners(api.EventConfigChanged) == 1
	}, 3*time.Second, 10*time.Millisecond)

	require.NoError(t, c.UpdateConfig(ctx, map[string]any{"theme": "dark"}))
	select {
	case p := <-got:
		assert.JSONEq(t, `{"theme":"dark"}`, string(p))
	case <-time.After(3 * time.Second):
		t.Fatal("event not relayed")
	}
}

func TestEventsRelay_RequiresEventName(t *testing.T) {
	srv, _ := newTestServer(t)
	status, _ := do(t, http.MethodGet, srv.URL+api.EventsPath, "")
	assert.Equal(t, http.StatusBadRequest, status)
}
