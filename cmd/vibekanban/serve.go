package main

import (
	"github.com/spf13/cobra"

	bridgecmd "github.com/vibekanban/desktop/bridge/cmd"
	servercmd "github.com/vibekanban/desktop/webserver/cmd"
)

var (
	servePort   int
	serveSocket bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API over the in-process host. Systemd socket activation is used
when available; otherwise the server binds --port (VK_PORT).

With --with-socket the host is also exposed on VK_BRIDGE_SOCKET for bridge-mode clients.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			env.Port = servePort
		}
		return servercmd.RunServer(servercmd.ServerConfig{Env: env, Socket: serveSocket})
	},
}

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Run the host on the bridge socket only",
	Long:  `Run the host on VK_BRIDGE_SOCKET. The process exits on SIGINT/SIGTERM or when a client closes the window.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		return bridgecmd.RunBridge(env)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8090, "HTTP server port (1-65535)")
	serveCmd.Flags().BoolVar(&serveSocket, "with-socket", false, "also serve the bridge socket")
	rootCmd.AddCommand(serveCmd, bridgeCmd)
}
