package handler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibekanban/desktop/common/api"
	"github.com/vibekanban/desktop/common/ipc"
)

func TestRegistry_RegisterGetUnregister(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterFunc(api.CmdHealthCheck, func(ctx context.Context, args json.RawMessage) (any, error) {
		return "ok", nil
	})

	h, ok := reg.Get(api.CmdHealthCheck)
	require.True(t, ok)
	out, err := h.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)

	_, ok = reg.Get(api.CmdGetProjects)
	assert.False(t, ok)

	assert.True(t, reg.Unregister(api.CmdHealthCheck))
	assert.False(t, reg.Unregister(api.CmdHealthCheck))
	assert.Empty(t, reg.List())
}

func TestRegistry_Panics(t *testing.T) {
	reg := NewRegistry()
	noop := HandlerFunc(func(context.Context, json.RawMessage) (any, error) { return nil, nil })

	assert.Panics(t, func() { reg.Register("", noop) })
	assert.Panics(t, func() { reg.Register(api.CmdGetTask, nil) })

	reg.Register(api.CmdGetTask, noop)
	assert.Panics(t, func() { reg.Register(api.CmdGetTask, noop) })
}

func TestRegistry_ListSorted(t *testing.T) {
	reg := NewRegistry()
	noop := HandlerFunc(func(context.Context, json.RawMessage) (any, error) { return nil, nil })
	reg.Register(api.CmdUpdateTask, noop)
	reg.Register(api.CmdCreateProject, noop)
	reg.Register(api.CmdGetConfig, noop)

	assert.Equal(t, []api.Command{api.CmdCreateProject, api.CmdGetConfig, api.CmdUpdateTask}, reg.List())
}

func TestTyped(t *testing.T) {
	h := Typed(func(ctx context.Context, p api.IDParams) (any, error) {
		return "got " + p.ID, nil
	})

	out, err := h.Execute(context.Background(), json.RawMessage(`{"id":"p1"}`))
	require.NoError(t, err)
	assert.Equal(t, "got p1", out)

	out, err = h.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "got ", out)

	_, err = h.Execute(context.Background(), json.RawMessage(`{"id":`))
	assert.ErrorIs(t, err, ipc.ErrInvalidArgs)

	_, err = h.Execute(context.Background(), json.RawMessage(`[1,2]`))
	assert.ErrorIs(t, err, ipc.ErrInvalidArgs)
}
