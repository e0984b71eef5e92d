package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibekanban/desktop/common/api"
)

type recorded struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	Body        string
}

type recorder struct {
	mu   sync.Mutex
	reqs []recorded
}

func (r *recorder) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded(nil), r.reqs...)
}

// recordingServer answers every request with status and body and records what it saw.
func recordingServer(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.reqs = append(rec.reqs, recorded{
			Method:      r.Method,
			Path:        r.URL.Path,
			RawQuery:    r.URL.RawQuery,
			ContentType: r.Header.Get("Content-Type"),
			Body:        string(b),
		})
		rec.mu.Unlock()
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestScenarioA_NetworkGet(t *testing.T) {
	srv, seen := recordingServer(t, http.StatusOK, `[{"id":"p1","name":"Demo"}]`)
	c := New(Capabilities{}, WithBaseURL(srv.URL))

	projects, err := Get[[]api.Project](context.Background(), c, "/api/projects", nil)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "p1", projects[0].ID)

	reqs := seen.all()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodGet, reqs[0].Method)
	assert.Equal(t, "/api/projects", reqs[0].Path)
	assert.Empty(t, reqs[0].RawQuery)
	assert.Empty(t, reqs[0].Body)
}

func TestScenarioA_NetworkGetNotFound(t *testing.T) {
	srv, _ := recordingServer(t, http.StatusNotFound, `{"error":"no such thing"}`)
	c := New(Capabilities{}, WithBaseURL(srv.URL))

	raw, err := c.Get(context.Background(), "/api/projects", nil)
	assert.Nil(t, raw)

	var herr *HTTPStatusError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusNotFound, herr.StatusCode)
	assert.Equal(t, "no such thing", herr.Message)
	assert.Contains(t, err.Error(), "HTTP error! status: 404")
}

func TestNetwork_ServerErrorIsNeverSuccess(t *testing.T) {
	srv, _ := recordingServer(t, http.StatusInternalServerError, "")
	c := New(Capabilities{}, WithBaseURL(srv.URL))

	_, err := Get[[]api.Project](context.Background(), c, "/api/projects", nil)
	var herr *HTTPStatusError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusInternalServerError, herr.StatusCode)
}

func TestNetwork_AbsentParamsAreOmitted(t *testing.T) {
	srv, seen := recordingServer(t, http.StatusOK, `{}`)
	c := New(Capabilities{}, WithBaseURL(srv.URL))

	var missing *string
	_, err := c.Get(context.Background(), "/x", Params{"a": 1, "b": nil, "c": missing})
	require.NoError(t, err)
	assert.Equal(t, "a=1", seen.all()[0].RawQuery)

	name := "demo"
	_, err = c.Get(context.Background(), "/x", Params{"name": &name, "on": true})
	require.NoError(t, err)
	assert.Equal(t, "name=demo&on=true", seen.all()[1].RawQuery)
}

func TestNetwork_BodyHandling(t *testing.T) {
	srv, seen := recordingServer(t, http.StatusOK, `{"ok":true}`)
	c := New(Capabilities{}, WithBaseURL(srv.URL+"/"))
	ctx := context.Background()

	_, err := c.Post(ctx, "/api/tasks", map[string]any{"title": "x"})
	require.NoError(t, err)
	_, err = c.Put(ctx, "/api/tasks", nil)
	require.NoError(t, err)
	_, err = c.Delete(ctx, "/api/tasks")
	require.NoError(t, err)

	reqs := seen.all()
	require.Len(t, reqs, 3)
	post, put, del := reqs[0], reqs[1], reqs[2]

	assert.Equal(t, "/api/tasks", post.Path, "trailing slash on the base URL is trimmed")
	assert.Equal(t, "application/json", post.ContentType)
	assert.JSONEq(t, `{"title":"x"}`, post.Body)

	assert.Equal(t, http.MethodPut, put.Method)
	assert.Empty(t, put.Body, "no placeholder body when none is supplied")
	assert.Empty(t, put.ContentType)

	assert.Equal(t, http.MethodDelete, del.Method)
	assert.Empty(t, del.Body)
}

func TestNetwork_NoContentDecodesToZero(t *testing.T) {
	srv, _ := recordingServer(t, http.StatusNoContent, "")
	c := New(Capabilities{}, WithBaseURL(srv.URL))

	v, err := Delete[api.Task](context.Background(), c, "/api/tasks")
	require.NoError(t, err)
	assert.Equal(t, api.Task{}, v)
}

func TestNetwork_MalformedJSON(t *testing.T) {
	srv, _ := recordingServer(t, http.StatusOK, `{"id":`)
	c := New(Capabilities{}, WithBaseURL(srv.URL))

	_, err := c.Get(context.Background(), "/api/projects", nil)
	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
	assert.Error(t, errors.Unwrap(err))
	assert.Contains(t, derr.URL, "/api/projects")
}

func TestNetwork_TransportErrorsPropagate(t *testing.T) {
	srv, _ := recordingServer(t, http.StatusOK, `{}`)
	srv.Close()
	c := New(Capabilities{}, WithBaseURL(srv.URL))

	_, err := c.Get(context.Background(), "/api/projects", nil)
	assert.Error(t, err)
}

func TestNetworkTransport_URL(t *testing.T) {
	tr := NewNetworkTransport("", nil)
	assert.Equal(t, "/api/projects", tr.URL("/api/projects", nil))
	assert.Equal(t, "/api/tasks?project_id=p+1", tr.URL("/api/tasks", Params{"project_id": "p 1"}))
}
