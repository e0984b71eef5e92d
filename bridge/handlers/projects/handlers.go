package projects

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vibekanban/desktop/bridge/handler"
	"github.com/vibekanban/desktop/bridge/handlers/deployment"
	"github.com/vibekanban/desktop/common/api"
	"github.com/vibekanban/desktop/common/ipc"
)

// changed is the payload of project:changed.
type changed struct {
	Action string `json:"action"`
	ID     string `json:"id"`
}

func RegisterHandlers(reg *handler.Registry, state *deployment.State, emit handler.Emitter) {
	reg.RegisterFunc(api.CmdGetProjects, func(ctx context.Context, _ json.RawMessage) (any, error) {
		st, err := state.Store()
		if err != nil {
			return nil, err
		}
		return st.ListProjects(ctx)
	})

	reg.Register(api.CmdGetProject, handler.Typed(func(ctx context.Context, p api.IDParams) (any, error) {
		st, err := state.Store()
		if err != nil {
			return nil, err
		}
		return st.GetProject(ctx, p.ID)
	}))

	reg.Register(api.CmdCreateProject, handler.Typed(func(ctx context.Context, p api.CreateProjectParams) (any, error) {
		st, err := state.Store()
		if err != nil {
			return nil, err
		}
		project, err := st.CreateProject(ctx, p.Name, p.Description)
		if err != nil {
			return nil, err
		}
		emit.Emit(api.EventProjectChanged, changed{Action: "created", ID: project.ID})
		return project, nil
	}))

	reg.Register(api.CmdUpdateProject, handler.Typed(func(ctx context.Context, p api.UpdateProjectParams) (any, error) {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: id is required", ipc.ErrInvalidArgs)
		}
		st, err := state.Store()
		if err != nil {
			return nil, err
		}
		project, err := st.UpdateProject(ctx, p.ID, p.Name, p.Description)
		if err != nil {
			return nil, err
		}
		emit.Emit(api.EventProjectChanged, changed{Action: "updated", ID: project.ID})
		return project, nil
	}))

	reg.Register(api.CmdDeleteProject, handler.Typed(func(ctx context.Context, p api.IDParams) (any, error) {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: id is required", ipc.ErrInvalidArgs)
		}
		st, err := state.Store()
		if err != nil {
			return nil, err
		}
		if err := st.DeleteProject(ctx, p.ID); err != nil {
			return nil, err
		}
		emit.Emit(api.EventProjectChanged, changed{Action: "deleted", ID: p.ID})
		return nil, nil
	}))
}
