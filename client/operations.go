package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vibekanban/desktop/common/api"
)

// Operation is one named host operation. The set is closed: every variant is
// declared in this file, and each knows its command and argument bundle. In
// network mode the command's HTTP route is taken from api.RouteFor.
type Operation interface {
	Command() api.Command
	// Args is the argument bundle handed to the host command, or nil.
	Args() any
	operation()
}

type (
	HealthCheck          struct{}
	GetDeploymentInfo    struct{}
	InitializeDeployment struct{}

	GetProjects   struct{}
	GetProject    struct{ ID string }
	CreateProject struct {
		Name        string
		Description *string
	}
	UpdateProject struct {
		ID          string
		Name        *string
		Description *string
	}
	DeleteProject struct{ ID string }

	GetTasks   struct{ ProjectID string }
	GetTask    struct{ ID string }
	CreateTask struct {
		ProjectID   string
		Title       string
		Description *string
	}
	UpdateTask struct {
		ID          string
		Title       *string
		Description *string
		Status      *string
	}
	DeleteTask struct{ ID string }

	GetExecutors         struct{}
	GetExecutorConfig    struct{ Name string }
	UpdateExecutorConfig struct {
		Name   string
		Config map[string]any
	}

	ReadFile      struct{ Path string }
	WriteFile     struct{ Path, Content string }
	ListDirectory struct{ Path string }

	GetConfig    struct{}
	UpdateConfig struct{ Config map[string]any }
)

func (HealthCheck) Command() api.Command          { return api.CmdHealthCheck }
func (GetDeploymentInfo) Command() api.Command    { return api.CmdGetDeploymentInfo }
func (InitializeDeployment) Command() api.Command { return api.CmdInitializeDeployment }
func (GetProjects) Command() api.Command          { return api.CmdGetProjects }
func (GetProject) Command() api.Command           { return api.CmdGetProject }
func (CreateProject) Command() api.Command        { return api.CmdCreateProject }
func (UpdateProject) Command() api.Command        { return api.CmdUpdateProject }
func (DeleteProject) Command() api.Command        { return api.CmdDeleteProject }
func (GetTasks) Command() api.Command             { return api.CmdGetTasks }
func (GetTask) Command() api.Command              { return api.CmdGetTask }
func (CreateTask) Command() api.Command           { return api.CmdCreateTask }
func (UpdateTask) Command() api.Command           { return api.CmdUpdateTask }
func (DeleteTask) Command() api.Command           { return api.CmdDeleteTask }
func (GetExecutors) Command() api.Command         { return api.CmdGetExecutors }
func (GetExecutorConfig) Command() api.Command    { return api.CmdGetExecutorConfig }
func (UpdateExecutorConfig) Command() api.Command { return api.CmdUpdateExecutorConfig }
func (ReadFile) Command() api.Command             { return api.CmdReadFile }
func (WriteFile) Command() api.Command            { return api.CmdWriteFile }
func (ListDirectory) Command() api.Command        { return api.CmdListDirectory }
func (GetConfig) Command() api.Command            { return api.CmdGetConfig }
func (UpdateConfig) Command() api.Command         { return api.CmdUpdateConfig }

func (HealthCheck) Args() any          { return nil }
func (GetDeploymentInfo) Args() any    { return nil }
func (InitializeDeployment) Args() any { return nil }
func (GetProjects) Args() any          { return nil }
func (o GetProject) Args() any         { return api.IDParams{ID: o.ID} }
func (o CreateProject) Args() any {
	return api.CreateProjectParams{Name: o.Name, Description: o.Description}
}
func (o UpdateProject) Args() any {
	return api.UpdateProjectParams{ID: o.ID, Name: o.Name, Description: o.Description}
}
func (o DeleteProject) Args() any { return api.IDParams{ID: o.ID} }
func (o GetTasks) Args() any      { return api.ProjectTasksParams{ProjectID: o.ProjectID} }
func (o GetTask) Args() any       { return api.IDParams{ID: o.ID} }
func (o CreateTask) Args() any {
	return api.CreateTaskParams{ProjectID: o.ProjectID, Title: o.Title, Description: o.Description}
}
func (o UpdateTask) Args() any {
	return api.UpdateTaskParams{ID: o.ID, Title: o.Title, Description: o.Description, Status: o.Status}
}
func (o DeleteTask) Args() any        { return api.IDParams{ID: o.ID} }
func (GetExecutors) Args() any        { return nil }
func (o GetExecutorConfig) Args() any { return api.ExecutorParams{Name: o.Name} }
func (o UpdateExecutorConfig) Args() any {
	return api.ExecutorConfigParams{Name: o.Name, Config: o.Config}
}
func (o ReadFile) Args() any      { return api.PathParams{Path: o.Path} }
func (o WriteFile) Args() any     { return api.WriteFileParams{Path: o.Path, Content: o.Content} }
func (o ListDirectory) Args() any { return api.PathParams{Path: o.Path} }
func (GetConfig) Args() any       { return nil }
func (o UpdateConfig) Args() any  { return api.ConfigParams{Config: o.Config} }

func (HealthCheck) operation()          {}
func (GetDeploymentInfo) operation()    {}
func (InitializeDeployment) operation() {}
func (GetProjects) operation()          {}
func (GetProject) operation()           {}
func (CreateProject) operation()        {}
func (UpdateProject) operation()        {}
func (DeleteProject) operation()        {}
func (GetTasks) operation()             {}
func (GetTask) operation()              {}
func (CreateTask) operation()           {}
func (UpdateTask) operation()           {}
func (DeleteTask) operation()           {}
func (GetExecutors) operation()         {}
func (GetExecutorConfig) operation()    {}
func (UpdateExecutorConfig) operation() {}
func (ReadFile) operation()             {}
func (WriteFile) operation()            {}
func (ListDirectory) operation()        {}
func (GetConfig) operation()            {}
func (UpdateConfig) operation()         {}

// Invoke runs op. In bridge mode the host command is called with op.Args()
// as is; in network mode the command's HTTP route is called, with path
// segments filled from the argument bundle.
func (c *Client) Invoke(ctx context.Context, op Operation) (json.RawMessage, error) {
	if c.mode == ModeBridge {
		return c.bridge.invoke(ctx, op.Command(), op.Args())
	}
	req, err := routeRequest(op)
	if err != nil {
		return nil, err
	}
	return c.network.Do(ctx, req)
}

// Call runs op and decodes its result into T.
func Call[T any](ctx context.Context, c *Client, op Operation) (T, error) {
	return decode[T](c.Invoke(ctx, op))
}

// routeRequest maps an operation onto its HTTP route. Argument fields named
// by the route pattern go into the path; the rest become the query (GET,
// DELETE) or the JSON body (POST, PUT).
func routeRequest(op Operation) (Request, error) {
	route, ok := api.RouteFor(op.Command())
	if !ok {
		return Request{}, fmt.Errorf("%w: no HTTP route for %s", ErrTransportUnavailable, op.Command())
	}

	fields := map[string]any{}
	if args := op.Args(); args != nil {
		b, err := json.Marshal(args)
		if err != nil {
			return Request{}, fmt.Errorf("encode %s args: %w", op.Command(), err)
		}
		if err := json.Unmarshal(b, &fields); err != nil {
			return Request{}, fmt.Errorf("%s args must be an object: %w", op.Command(), err)
		}
	}

	values := make(map[string]string)
	for _, name := range route.PathParams() {
		if v, ok := fields[name]; ok && v != nil {
			values[name] = fmt.Sprint(v)
		}
		delete(fields, name)
	}
	path, err := route.Expand(values)
	if err != nil {
		return Request{}, fmt.Errorf("%s: %w", op.Command(), err)
	}

	req := Request{Verb: route.Verb, Path: path}
	switch route.Verb {
	case api.GET, api.DELETE:
		req.Params = Params(fields)
	case api.POST, api.PUT:
		if len(fields) > 0 {
			req.Body = fields
		}
	}
	return req, nil
}
