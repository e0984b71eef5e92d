package deployment

import (
	"context"
	"encoding/json"

	"github.com/vibekanban/desktop/bridge/handler"
	"github.com/vibekanban/desktop/common/api"
)

const initializedMessage = "Deployment initialized successfully"

func RegisterHandlers(reg *handler.Registry, state *State, emit handler.Emitter) {
	reg.RegisterFunc(api.CmdGetDeploymentInfo, func(ctx context.Context, _ json.RawMessage) (any, error) {
		return api.DeploymentInfo{
			AssetsDir:     state.AssetsDir(),
			IsInitialized: state.Initialized(),
		}, nil
	})

	reg.RegisterFunc(api.CmdInitializeDeployment, func(ctx context.Context, _ json.RawMessage) (any, error) {
		fresh, err := state.Initialize(ctx)
		if err != nil {
			return nil, err
		}
		if fresh {
			emit.Emit(api.EventDeploymentInitialized, api.DeploymentInfo{
				AssetsDir:     state.AssetsDir(),
				IsInitialized: true,
			})
		}
		return initializedMessage, nil
	})
}
