package system

import (
	"context"
	"encoding/json"

	"github.com/vibekanban/desktop/bridge/handler"
	"github.com/vibekanban/desktop/common/api"
	appconfig "github.com/vibekanban/desktop/common/config"
)

func RegisterHandlers(reg *handler.Registry) {
	reg.RegisterFunc(api.CmdHealthCheck, func(ctx context.Context, _ json.RawMessage) (any, error) {
		return api.HealthStatus{Status: "ok", Version: appconfig.Version}, nil
	})
}
