package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vibekanban/desktop/client"
	appconfig "github.com/vibekanban/desktop/common/config"
	"github.com/vibekanban/desktop/common/ipc"
)

var (
	useSocket bool
	verbose   bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           appconfig.BinaryName,
	Short:         "Vibe Kanban host, API server and client",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&useSocket, "socket", false, "talk to the local bridge socket instead of the HTTP API")
}

// loadEnv reads the environment; --verbose overrides VK_VERBOSE.
func loadEnv() (appconfig.Env, error) {
	env, err := appconfig.LoadEnv()
	if err != nil {
		return appconfig.Env{}, err
	}
	if verbose {
		env.Verbose = true
	}
	return env, nil
}

// newClient builds a client for CLI commands. With --socket the client runs in
// bridge mode against the socket host; otherwise it calls VK_API_URL.
// The returned func releases the connection.
func newClient(ctx context.Context) (*client.Client, func(), error) {
	env, err := loadEnv()
	if err != nil {
		return nil, nil, err
	}
	appconfig.InitLogger(env.Verbose)

	if useSocket {
		remote, err := ipc.DialHost(ctx, env.SocketPath)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to %s: %w", env.SocketPath, err)
		}
		c := client.New(client.Capabilities{Host: remote})
		return c, func() { _ = remote.Close() }, nil
	}

	if env.BaseURL == "" {
		return nil, nil, fmt.Errorf("VK_API_URL is not set (or pass --socket)")
	}
	return client.New(client.Capabilities{}, client.WithBaseURL(env.BaseURL)), func() {}, nil
}
