package config

import (
	"context"
	"encoding/json"

	"github.com/vibekanban/desktop/bridge/handler"
	"github.com/vibekanban/desktop/bridge/userconfig"
	"github.com/vibekanban/desktop/common/api"
)

func RegisterHandlers(reg *handler.Registry, settings *userconfig.Store, emit handler.Emitter) {
	reg.RegisterFunc(api.CmdGetConfig, func(ctx context.Context, _ json.RawMessage) (any, error) {
		return settings.App()
	})

	reg.Register(api.CmdUpdateConfig, handler.Typed(func(ctx context.Context, p api.ConfigParams) (any, error) {
		if err := settings.SetApp(p.Config); err != nil {
			return nil, err
		}
		emit.Emit(api.EventConfigChanged, p.Config)
		return nil, nil
	}))
}
