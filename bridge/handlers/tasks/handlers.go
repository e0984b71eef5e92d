package tasks

import (
	"context"
	"fmt"

	"github.com/vibekanban/desktop/bridge/handler"
	"github.com/vibekanban/desktop/bridge/handlers/deployment"
	"github.com/vibekanban/desktop/common/api"
	"github.com/vibekanban/desktop/common/ipc"
)

// changed is the payload of task:changed.
type changed struct {
	Action    string `json:"action"`
	ID        string `json:"id"`
	ProjectID string `json:"project_id,omitempty"`
}

func RegisterHandlers(reg *handler.Registry, state *deployment.State, emit handler.Emitter) {
	reg.Register(api.CmdGetTasks, handler.Typed(func(ctx context.Context, p api.ProjectTasksParams) (any, error) {
		if p.ProjectID == "" {
			return nil, fmt.Errorf("%w: project_id is required", ipc.ErrInvalidArgs)
		}
		st, err := state.Store()
		if err != nil {
			return nil, err
		}
		return st.ListTasks(ctx, p.ProjectID)
	}))

	reg.Register(api.CmdGetTask, handler.Typed(func(ctx context.Context, p api.IDParams) (any, error) {
		st, err := state.Store()
		if err != nil {
			return nil, err
		}
		return st.GetTask(ctx, p.ID)
	}))

	reg.Register(api.CmdCreateTask, handler.Typed(func(ctx context.Context, p api.CreateTaskParams) (any, error) {
		if p.ProjectID == "" {
			return nil, fmt.Errorf("%w: project_id is required", ipc.ErrInvalidArgs)
		}
		st, err := state.Store()
		if err != nil {
			return nil, err
		}
		task, err := st.CreateTask(ctx, p.ProjectID, p.Title, p.Description)
		if err != nil {
			return nil, err
		}
		emit.Emit(api.EventTaskChanged, changed{Action: "created", ID: task.ID, ProjectID: task.ProjectID})
		return task, nil
	}))

	reg.Register(api.CmdUpdateTask, handler.Typed(func(ctx context.Context, p api.UpdateTaskParams) (any, error) {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: id is required", ipc.ErrInvalidArgs)
		}
		st, err := state.Store()
		if err != nil {
			return nil, err
		}
		task, err := st.UpdateTask(ctx, p.ID, p.Title, p.Description, p.Status)
		if err != nil {
			return nil, err
		}
		emit.Emit(api.EventTaskChanged, changed{Action: "updated", ID: task.ID, ProjectID: task.ProjectID})
		return task, nil
	}))

	reg.Register(api.CmdDeleteTask, handler.Typed(func(ctx context.Context, p api.IDParams) (any, error) {
		if p.ID == "" {
			return nil, fmt.Errorf("%w: id is required", ipc.ErrInvalidArgs)
		}
		st, err := state.Store()
		if err != nil {
			return nil, err
		}
		if err := st.DeleteTask(ctx, p.ID); err != nil {
			return nil, err
		}
		emit.Emit(api.EventTaskChanged, changed{Action: "deleted", ID: p.ID})
		return nil, nil
	}))
}
