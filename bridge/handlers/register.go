package handlers

import (
	"path/filepath"

	"github.com/vibekanban/desktop/bridge"
	"github.com/vibekanban/desktop/bridge/handler"
	"github.com/vibekanban/desktop/bridge/handlers/config"
	"github.com/vibekanban/desktop/bridge/handlers/deployment"
	"github.com/vibekanban/desktop/bridge/handlers/executors"
	"github.com/vibekanban/desktop/bridge/handlers/filesystem"
	"github.com/vibekanban/desktop/bridge/handlers/projects"
	"github.com/vibekanban/desktop/bridge/handlers/system"
	"github.com/vibekanban/desktop/bridge/handlers/tasks"
	"github.com/vibekanban/desktop/bridge/userconfig"
	appconfig "github.com/vibekanban/desktop/common/config"
)

// Deps are the resources shared by the command handlers.
type Deps struct {
	Deployment *deployment.State
	Settings   *userconfig.Store
	Events     handler.Emitter
}

// RegisterAllHandlers registers a handler for every host command.
func RegisterAllHandlers(reg *handler.Registry, deps Deps) {
	system.RegisterHandlers(reg)
	deployment.RegisterHandlers(reg, deps.Deployment, deps.Events)
	projects.RegisterHandlers(reg, deps.Deployment, deps.Events)
	tasks.RegisterHandlers(reg, deps.Deployment, deps.Events)
	executors.RegisterHandlers(reg, deps.Settings)
	filesystem.RegisterHandlers(reg)
	config.RegisterHandlers(reg, deps.Settings, deps.Events)
}

// NewHost builds an in-process host with every command registered. Data
// lives under env.DataDir; the returned State must be closed on shutdown.
func NewHost(env appconfig.Env) (*bridge.Host, *deployment.State) {
	reg := handler.NewRegistry()
	host := bridge.NewHost(reg, bridge.NewEventBus())
	state := deployment.NewState(env.DatabasePath(), filepath.Join(env.DataDir, "assets"))

	RegisterAllHandlers(reg, Deps{
		Deployment: state,
		Settings:   userconfig.New(env.ConfigPath()),
		Events:     host.Events(),
	})
	return host, state
}
