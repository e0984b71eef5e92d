package cmd

import (
	"context"
	"errors"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/vibekanban/desktop/bridge"
	"github.com/vibekanban/desktop/bridge/handlers"
	appconfig "github.com/vibekanban/desktop/common/config"
)

// shutdownGrace bounds the wait for open sessions after shutdown starts.
const shutdownGrace = 5 * time.Second

// RunBridge exposes the host on env.SocketPath until a signal arrives or the
// window is closed.
func RunBridge(env appconfig.Env) error {
	appconfig.InitLogger(env.Verbose)
	logger.Infof("[bridge] starting %s (data dir %s)", appconfig.Version, env.DataDir)

	host, state := handlers.NewHost(env)
	defer func() {
		if err := state.Close(); err != nil {
			logger.Warnf("[bridge] close store: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var windowClosed atomic.Bool
	host.OnWindowClose(func() {
		windowClosed.Store(true)
		stop()
	})

	ln, err := bridge.ListenSocket(env.SocketPath)
	if err != nil {
		return err
	}
	logger.Infof("[bridge] listening at %s", env.SocketPath)

	done := make(chan error, 1)
	go func() { done <- bridge.Serve(ctx, ln, host) }()

	select {
	case err := <-done:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		select {
		case err := <-done:
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Warnf("[bridge] serve: %v", err)
			}
		case <-time.After(shutdownGrace):
			logger.WarnKV("open sessions exceeded grace", "grace_period", shutdownGrace)
		}
	}

	reason := "signal"
	if windowClosed.Load() {
		reason = "window closed"
	}
	logger.InfoKV("bridge stopped", "reason", reason)
	return nil
}
