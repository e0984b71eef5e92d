package executors

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vibekanban/desktop/bridge/handler"
	"github.com/vibekanban/desktop/bridge/userconfig"
	"github.com/vibekanban/desktop/common/api"
	"github.com/vibekanban/desktop/common/ipc"
)

// known lists the coding agents the desktop app can drive.
var known = []api.ExecutorInfo{
	{Name: "claude-code", DisplayName: "Claude Code", Description: "Anthropic's Claude Code AI assistant"},
	{Name: "codex", DisplayName: "OpenAI Codex", Description: "OpenAI's Codex AI assistant"},
	{Name: "gemini-cli", DisplayName: "Gemini CLI", Description: "Google's Gemini AI assistant"},
}

func lookup(name string) bool {
	for _, e := range known {
		if e.Name == name {
			return true
		}
	}
	return false
}

func RegisterHandlers(reg *handler.Registry, settings *userconfig.Store) {
	reg.RegisterFunc(api.CmdGetExecutors, func(ctx context.Context, _ json.RawMessage) (any, error) {
		out := make([]api.ExecutorInfo, 0, len(known))
		for _, e := range known {
			_, ok, err := settings.Executor(e.Name)
			if err != nil {
				return nil, err
			}
			e.Configured = ok
			out = append(out, e)
		}
		return out, nil
	})

	reg.Register(api.CmdGetExecutorConfig, handler.Typed(func(ctx context.Context, p api.ExecutorParams) (any, error) {
		if !lookup(p.Name) {
			return nil, fmt.Errorf("%w: executor %q", ipc.ErrNotFound, p.Name)
		}
		cfg, _, err := settings.Executor(p.Name)
		return cfg, err
	}))

	reg.Register(api.CmdUpdateExecutorConfig, handler.Typed(func(ctx context.Context, p api.ExecutorConfigParams) (any, error) {
		if !lookup(p.Name) {
			return nil, fmt.Errorf("%w: executor %q", ipc.ErrNotFound, p.Name)
		}
		return nil, settings.SetExecutor(p.Name, p.Config)
	}))
}
