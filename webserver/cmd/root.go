package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/activation"
	"github.com/mordilloSan/go-logger/logger"

	"github.com/vibekanban/desktop/bridge"
	"github.com/vibekanban/desktop/bridge/handlers"
	appconfig "github.com/vibekanban/desktop/common/config"
	"github.com/vibekanban/desktop/webserver/web"
)

// ServerConfig is the runtime config passed to the server.
type ServerConfig struct {
	Env appconfig.Env
	// Socket also exposes the host on Env.SocketPath for bridge-mode clients.
	Socket bool
}

// RunServer serves the HTTP API until SIGINT/SIGTERM or a server failure.
func RunServer(cfg ServerConfig) error {
	appconfig.InitLogger(cfg.Env.Verbose)
	logger.InfoKV("server starting", "verbose", cfg.Env.Verbose, "data_dir", cfg.Env.DataDir)

	host, state := handlers.NewHost(cfg.Env)
	defer func() {
		if err := state.Close(); err != nil {
			logger.Warnf("close store: %v", err)
		}
	}()

	srv := &http.Server{
		Handler:           web.BuildRouter(web.Config{Host: host, Verbose: cfg.Env.Verbose}),
		ErrorLog:          web.ErrorLog(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listeners, err := serverListeners(cfg.Env.Port)
	if err != nil {
		return err
	}

	errc := make(chan error, len(listeners)+1)
	for _, ln := range listeners {
		go func(ln net.Listener) {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- fmt.Errorf("http server: %w", err)
			}
		}(ln)
	}

	bridgeDone := make(chan struct{})
	if cfg.Socket {
		sock, err := bridge.ListenSocket(cfg.Env.SocketPath)
		if err != nil {
			_ = srv.Close()
			return err
		}
		logger.Infof("bridge socket listening at %s", cfg.Env.SocketPath)
		go func() {
			defer close(bridgeDone)
			if err := bridge.Serve(ctx, sock, host); err != nil {
				errc <- fmt.Errorf("bridge socket: %w", err)
			}
		}()
	} else {
		close(bridgeDone)
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Infof("Shutdown signal received")
	case runErr = <-errc:
		logger.Errorf("%v", runErr)
	}
	stop()

	srv.SetKeepAlivesEnabled(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Warnf("Graceful HTTP shutdown timed out; forcing close of remaining connections.")
			if cerr := srv.Close(); cerr != nil && !errors.Is(cerr, http.ErrServerClosed) {
				logger.Warnf("HTTP server force-close error: %v", cerr)
			}
		} else {
			logger.Warnf("HTTP server shutdown error: %v", err)
		}
	} else {
		logger.Infof("HTTP server closed")
	}

	select {
	case <-bridgeDone:
	case <-shutdownCtx.Done():
		logger.Warnf("bridge socket did not stop in time")
	}

	logger.Infof("Server stopped.")
	return runErr
}

// serverListeners prefers systemd-activated sockets and falls back to binding port.
func serverListeners(port int) ([]net.Listener, error) {
	listeners, err := activation.Listeners()
	if err != nil {
		logger.Warnf("activation.Listeners error: %v", err)
	}

	var inherited []net.Listener
	for _, l := range listeners {
		if l != nil {
			inherited = append(inherited, l)
		}
	}
	if len(inherited) > 0 {
		logger.Infof("Socket-activated HTTP server listening on %d inherited sockets", len(inherited))
		return inherited, nil
	}

	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("listen: %w", err)
	}
	logger.Infof("HTTP server (self-bound) at http://localhost:%d", port)
	return []net.Listener{ln}, nil
}

