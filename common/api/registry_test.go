package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_RegisteredPairs(t *testing.T) {
	cases := []struct {
		verb Verb
		path string
		want Command
	}{
		{GET, "/api/projects", CmdGetProjects},
		{GET, "/api/executors", CmdGetExecutors},
		{POST, "/api/projects", CmdCreateProject},
		{POST, "/api/tasks", CmdCreateTask},
		{PUT, "/api/projects", CmdUpdateProject},
		{PUT, "/api/tasks", CmdUpdateTask},
		{DELETE, "/api/projects", CmdDeleteProject},
		{DELETE, "/api/tasks", CmdDeleteTask},
		{GET, "/api/health", CmdHealthCheck},
		{GET, "/api/config", CmdGetConfig},
	}
	for _, tc := range cases {
		got, ok := Resolve(tc.verb, tc.path)
		require.True(t, ok, "%s %s should resolve", tc.verb, tc.path)
		assert.Equal(t, tc.want, got)
	}
}

func TestResolve_EveryBindingResolvesToExactlyOneCommand(t *testing.T) {
	seen := map[string]Command{}
	for _, b := range Bindings() {
		key := string(b.Verb) + " " + b.Path
		_, dup := seen[key]
		assert.False(t, dup, "duplicate binding %s", key)
		seen[key] = b.Command

		got, ok := Resolve(b.Verb, b.Path)
		require.True(t, ok)
		assert.Equal(t, b.Command, got)
	}
}

func TestResolve_UnregisteredPairs(t *testing.T) {
	cases := []struct {
		verb Verb
		path string
	}{
		{GET, "/api/unmapped-path"},
		{GET, "/api/tasks"},             // only POST/PUT/DELETE are bound for tasks
		{GET, "/api/projects/p1"},       // no parameter extraction from paths
		{GET, "/api/projects/"},         // exact match only
		{POST, "/api/executors"},        // verb matters
		{Verb("PATCH"), "/api/projects"}, // unknown verb
	}
	for _, tc := range cases {
		_, ok := Resolve(tc.verb, tc.path)
		assert.False(t, ok, "%s %s should not resolve", tc.verb, tc.path)
	}
}

func TestRoutes_EveryCommandHasOneRoute(t *testing.T) {
	for _, c := range Commands() {
		r, ok := RouteFor(c)
		require.True(t, ok, "command %s has no route", c)
		assert.Equal(t, c, r.Command)
		assert.True(t, r.Verb.Valid())
	}
	assert.Len(t, Routes(), len(Commands()))
}

func TestRoute_Expand(t *testing.T) {
	r, ok := RouteFor(CmdGetExecutorConfig)
	require.True(t, ok)
	assert.Equal(t, []string{"name"}, r.PathParams())

	got, err := r.Expand(map[string]string{"name": "claude code"})
	require.NoError(t, err)
	assert.Equal(t, "/api/executors/claude%20code/config", got)

	_, err = r.Expand(nil)
	assert.Error(t, err, "missing path value must fail")

	r, _ = RouteFor(CmdGetProjects)
	assert.Empty(t, r.PathParams())
	got, err = r.Expand(nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/projects", got)
	assert.Equal(t, "GET /api/projects", r.ServeMuxPattern())
}

func TestBindings_ReturnsCopy(t *testing.T) {
	b := Bindings()
	b[0].Command = "tampered"
	got, ok := Resolve(GET, "/api/health")
	require.True(t, ok)
	assert.Equal(t, CmdHealthCheck, got)
}
