// Package api holds the contract shared by the web client, the HTTP API and the desktop host:
// verbs, host command names, event names, argument bundles and payload types.
package api

// Verb is the HTTP-style verb of a logical operation.
type Verb string

const (
	GET    Verb = "GET"
	POST   Verb = "POST"
	PUT    Verb = "PUT"
	DELETE Verb = "DELETE"
)

// Valid reports whether v is one of the four supported verbs.
func (v Verb) Valid() bool {
	switch v {
	case GET, POST, PUT, DELETE:
		return true
	}
	return false
}

// Command is the name of a host command.
type Command string

const (
	CmdHealthCheck Command = "health_check"

	CmdGetDeploymentInfo    Command = "get_deployment_info"
	CmdInitializeDeployment Command = "initialize_deployment"

	CmdGetProjects   Command = "get_projects"
	CmdGetProject    Command = "get_project"
	CmdCreateProject Command = "create_project"
	CmdUpdateProject Command = "update_project"
	CmdDeleteProject Command = "delete_project"

	CmdGetTasks   Command = "get_tasks"
	CmdGetTask    Command = "get_task"
	CmdCreateTask Command = "create_task"
	CmdUpdateTask Command = "update_task"
	CmdDeleteTask Command = "delete_task"

	CmdGetExecutors         Command = "get_executors"
	CmdGetExecutorConfig    Command = "get_executor_config"
	CmdUpdateExecutorConfig Command = "update_executor_config"

	CmdReadFile      Command = "read_file"
	CmdWriteFile     Command = "write_file"
	CmdListDirectory Command = "list_directory"

	CmdGetConfig    Command = "get_config"
	CmdUpdateConfig Command = "update_config"
)

// Commands lists every host command, in registration order.
func Commands() []Command {
	return []Command{
		CmdHealthCheck,
		CmdGetDeploymentInfo, CmdInitializeDeployment,
		CmdGetProjects, CmdGetProject, CmdCreateProject, CmdUpdateProject, CmdDeleteProject,
		CmdGetTasks, CmdGetTask, CmdCreateTask, CmdUpdateTask, CmdDeleteTask,
		CmdGetExecutors, CmdGetExecutorConfig, CmdUpdateExecutorConfig,
		CmdReadFile, CmdWriteFile, CmdListDirectory,
		CmdGetConfig, CmdUpdateConfig,
	}
}

// EventsPath is the websocket endpoint the HTTP API relays host events on,
// one event name per connection (?event=<name>).
const EventsPath = "/api/events"

// Events emitted by the host.
const (
	EventDeploymentInitialized = "deployment:initialized"
	EventProjectChanged        = "project:changed"
	EventTaskChanged           = "task:changed"
	EventConfigChanged         = "config:changed"
	EventWindowChanged         = "window:changed"
)

// WindowOp is a window-control primitive of the desktop shell.
type WindowOp string

const (
	WindowMinimize       WindowOp = "minimize"
	WindowToggleMaximize WindowOp = "toggle_maximize"
	WindowClose          WindowOp = "close"
	WindowHide           WindowOp = "hide"
	WindowShow           WindowOp = "show"
	WindowFocus          WindowOp = "focus"
)

// Valid reports whether op is a known window operation.
func (op WindowOp) Valid() bool {
	switch op {
	case WindowMinimize, WindowToggleMaximize, WindowClose, WindowHide, WindowShow, WindowFocus:
		return true
	}
	return false
}
