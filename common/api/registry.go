package api

import (
	"fmt"
	"net/url"
	"strings"
)

// Binding maps a generic (verb, path) pair to the host command that serves it in bridge mode.
type Binding struct {
	Verb    Verb
	Path    string
	Command Command
}

// bindings is the static command map used by the bridge transport.
// Lookup is exact on path; ids travel in the argument bundle, never in the path.
var bindings = []Binding{
	{GET, "/api/health", CmdHealthCheck},
	{GET, "/api/info", CmdGetDeploymentInfo},
	{GET, "/api/projects", CmdGetProjects},
	{GET, "/api/executors", CmdGetExecutors},
	{GET, "/api/config", CmdGetConfig},

	{POST, "/api/projects", CmdCreateProject},
	{POST, "/api/tasks", CmdCreateTask},

	{PUT, "/api/projects", CmdUpdateProject},
	{PUT, "/api/tasks", CmdUpdateTask},
	{PUT, "/api/config", CmdUpdateConfig},

	{DELETE, "/api/projects", CmdDeleteProject},
	{DELETE, "/api/tasks", CmdDeleteTask},
}

// Route is the HTTP endpoint that serves a host command in network mode.
// Pattern segments written as {name} are filled from the argument bundle.
type Route struct {
	Command Command
	Verb    Verb
	Pattern string
}

var routes = []Route{
	{CmdHealthCheck, GET, "/api/health"},

	{CmdGetDeploymentInfo, GET, "/api/info"},
	{CmdInitializeDeployment, POST, "/api/deployment/initialize"},

	{CmdGetProjects, GET, "/api/projects"},
	{CmdGetProject, GET, "/api/projects/{id}"},
	{CmdCreateProject, POST, "/api/projects"},
	{CmdUpdateProject, PUT, "/api/projects/{id}"},
	{CmdDeleteProject, DELETE, "/api/projects/{id}"},

	{CmdGetTasks, GET, "/api/tasks"},
	{CmdGetTask, GET, "/api/tasks/{id}"},
	{CmdCreateTask, POST, "/api/tasks"},
	{CmdUpdateTask, PUT, "/api/tasks/{id}"},
	{CmdDeleteTask, DELETE, "/api/tasks/{id}"},

	{CmdGetExecutors, GET, "/api/executors"},
	{CmdGetExecutorConfig, GET, "/api/executors/{name}/config"},
	{CmdUpdateExecutorConfig, PUT, "/api/executors/{name}/config"},

	{CmdReadFile, GET, "/api/filesystem/file"},
	{CmdWriteFile, PUT, "/api/filesystem/file"},
	{CmdListDirectory, GET, "/api/filesystem/directory"},

	{CmdGetConfig, GET, "/api/config"},
	{CmdUpdateConfig, PUT, "/api/config"},
}

var (
	byVerb  map[Verb]map[string]Command
	byRoute map[Command]Route
)

// init builds the lookup tables and panics on any duplicate or dangling entry,
// so a broken table stops the process before the first call.
func init() {
	known := make(map[Command]bool, len(Commands()))
	for _, c := range Commands() {
		known[c] = true
	}

	byVerb = make(map[Verb]map[string]Command)
	for _, b := range bindings {
		if !b.Verb.Valid() {
			panic(fmt.Sprintf("api: binding %s %s has invalid verb", b.Verb, b.Path))
		}
		if !known[b.Command] {
			panic(fmt.Sprintf("api: binding %s %s names unknown command %q", b.Verb, b.Path, b.Command))
		}
		if byVerb[b.Verb] == nil {
			byVerb[b.Verb] = make(map[string]Command)
		}
		if prev, dup := byVerb[b.Verb][b.Path]; dup {
			panic(fmt.Sprintf("api: %s %s bound twice (%s, %s)", b.Verb, b.Path, prev, b.Command))
		}
		byVerb[b.Verb][b.Path] = b.Command
	}

	byRoute = make(map[Command]Route, len(routes))
	for _, r := range routes {
		if !known[r.Command] {
			panic(fmt.Sprintf("api: route %s %s names unknown command %q", r.Verb, r.Pattern, r.Command))
		}
		if _, dup := byRoute[r.Command]; dup {
			panic(fmt.Sprintf("api: command %s routed twice", r.Command))
		}
		byRoute[r.Command] = r
	}
	for c := range known {
		if _, ok := byRoute[c]; !ok {
			panic(fmt.Sprintf("api: command %s has no HTTP route", c))
		}
	}
}

// Resolve returns the host command bound to (verb, path).
func Resolve(verb Verb, path string) (Command, bool) {
	cmd, ok := byVerb[verb][path]
	return cmd, ok
}

// Bindings returns a copy of the generic verb map.
func Bindings() []Binding {
	out := make([]Binding, len(bindings))
	copy(out, bindings)
	return out
}

// RouteFor returns the HTTP route of a host command.
func RouteFor(cmd Command) (Route, bool) {
	r, ok := byRoute[cmd]
	return r, ok
}

// Routes returns a copy of the HTTP route table.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// PathParams lists the {name} segments of the route pattern.
func (r Route) PathParams() []string {
	var names []string
	for _, seg := range strings.Split(r.Pattern, "/") {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			names = append(names, seg[1:len(seg)-1])
		}
	}
	return names
}

// Expand fills the pattern's {name} segments from values, path-escaping each one.
func (r Route) Expand(values map[string]string) (string, error) {
	segs := strings.Split(r.Pattern, "/")
	for i, seg := range segs {
		if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
			continue
		}
		name := seg[1 : len(seg)-1]
		v, ok := values[name]
		if !ok || v == "" {
			return "", fmt.Errorf("route %s: missing path value %q", r.Pattern, name)
		}
		segs[i] = url.PathEscape(v)
	}
	return strings.Join(segs, "/"), nil
}

// ServeMuxPattern renders the route the way net/http.ServeMux expects it ("GET /api/x/{id}").
func (r Route) ServeMuxPattern() string {
	return string(r.Verb) + " " + r.Pattern
}
