package client

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibekanban/desktop/common/api"
)

func TestScenarioB_BridgePost(t *testing.T) {
	host := newFakeHost(`{"id":"t1","project_id":"p1","title":"Ship","status":"todo"}`)
	c := New(Capabilities{Host: host})

	body := map[string]any{"project_id": "p1", "title": "Ship", "extra": []int{1, 2}}
	raw, err := c.Post(context.Background(), "/api/tasks", body)
	require.NoError(t, err)
	assert.JSONEq(t, string(host.result), string(raw), "result is returned untouched")

	call := host.lastCall()
	assert.Equal(t, api.CmdCreateTask, call.Command)
	assert.JSONEq(t, `{"project_id":"p1","title":"Ship","extra":[1,2]}`, string(call.Args))
	assert.Equal(t, 1, host.acquired)
	assert.Equal(t, 1, host.released)
}

func TestScenarioB_BridgeRejectionPropagates(t *testing.T) {
	hostErr := errors.New("project p1 is archived")
	host := newFakeHost("null")
	host.err = hostErr
	c := New(Capabilities{Host: host})

	_, err := c.Post(context.Background(), "/api/tasks", map[string]any{"title": "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, hostErr)

	var berr *BridgeInvocationError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, api.CmdCreateTask, berr.Command)
	assert.Same(t, hostErr, berr.Err)
	assert.Equal(t, 1, host.released, "the handle is released on failure too")
}

func TestScenarioC_UnmappedPathFailsBeforeAnyBridgeCall(t *testing.T) {
	host := newFakeHost("null")
	c := New(Capabilities{Host: host})

	_, err := c.Get(context.Background(), "/api/unmapped-path", nil)
	require.ErrorIs(t, err, ErrTransportUnavailable)
	assert.Contains(t, err.Error(), "/api/unmapped-path")
	assert.Contains(t, err.Error(), "GET")
	assert.Zero(t, host.acquired)
	assert.Empty(t, host.calls)
}

func TestBridge_UnregisteredVerbForKnownPath(t *testing.T) {
	host := newFakeHost("null")
	c := New(Capabilities{Host: host})

	_, err := c.Get(context.Background(), "/api/tasks", nil)
	assert.ErrorIs(t, err, ErrTransportUnavailable)
	_, err = c.Post(context.Background(), "/api/executors", nil)
	assert.ErrorIs(t, err, ErrTransportUnavailable)
	assert.Zero(t, host.acquired)
}

func TestBridge_EveryBindingResolvesToItsCommand(t *testing.T) {
	host := newFakeHost("null")
	c := New(Capabilities{Host: host})

	for i, b := range api.Bindings() {
		_, err := c.Do(context.Background(), Request{Verb: b.Verb, Path: b.Path})
		require.NoError(t, err, "%s %s", b.Verb, b.Path)
		assert.Equal(t, b.Command, host.lastCall().Command)
		assert.Equal(t, i+1, host.acquired, "each call acquires its own handle")
	}
	assert.Equal(t, host.acquired, host.released)
}

func TestBridge_ArgumentsPerVerb(t *testing.T) {
	host := newFakeHost("null")
	c := New(Capabilities{Host: host})
	ctx := context.Background()

	_, err := c.Get(ctx, "/api/projects", Params{"limit": 5, "cursor": nil})
	require.NoError(t, err)
	assert.JSONEq(t, `{"limit":5}`, string(host.lastCall().Args))

	_, err = c.Get(ctx, "/api/projects", nil)
	require.NoError(t, err)
	assert.Nil(t, host.lastCall().Args)

	_, err = c.Get(ctx, "/api/projects", Params{"cursor": nil})
	require.NoError(t, err)
	assert.Nil(t, host.lastCall().Args, "all-absent params send no args")

	_, err = c.Put(ctx, "/api/projects", json.RawMessage(`{"id":"p1","name":"n"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p1","name":"n"}`, string(host.lastCall().Args))

	_, err = c.Delete(ctx, "/api/projects")
	require.NoError(t, err)
	assert.Equal(t, api.CmdDeleteProject, host.lastCall().Command)
	assert.Nil(t, host.lastCall().Args)

	_, err = c.Do(ctx, Request{Verb: api.DELETE, Path: "/api/projects", Params: Params{"id": "p1", "force": nil}})
	require.NoError(t, err)
	assert.Equal(t, api.CmdDeleteProject, host.lastCall().Command)
	assert.JSONEq(t, `{"id":"p1"}`, string(host.lastCall().Args))
}
