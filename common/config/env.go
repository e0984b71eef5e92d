package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Env holds the process configuration read from the environment.
type Env struct {
	// BaseURL prefixes every network-mode request. Empty means relative paths.
	BaseURL    string `env:"VK_API_URL"`
	SocketPath string `env:"VK_BRIDGE_SOCKET"`
	DataDir    string `env:"VK_DATA_DIR"`
	Port       int    `env:"VK_PORT" envDefault:"8090"`
	Mode       string `env:"VK_ENV" envDefault:"production"`
	Verbose    bool   `env:"VK_VERBOSE"`
}

// LoadEnv parses the environment and fills in derived defaults.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	e.BaseURL = strings.TrimRight(e.BaseURL, "/")
	e.Mode = strings.ToLower(e.Mode)
	if e.Mode != EnvDevelopment && e.Mode != EnvProduction {
		return Env{}, fmt.Errorf("invalid VK_ENV %q (want %s|%s)", e.Mode, EnvDevelopment, EnvProduction)
	}
	if e.DataDir == "" {
		e.DataDir = DefaultDataDir()
	}
	if e.SocketPath == "" {
		e.SocketPath = filepath.Join(e.DataDir, DefaultSocketName)
	}
	return e, nil
}

// DefaultDataDir resolves a writable base folder:
//   - $XDG_DATA_HOME/vibe-kanban
//   - else ~/.local/share/vibe-kanban
//   - else /var/tmp/vibe-kanban-<uid>
func DefaultDataDir() string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" && filepath.IsAbs(base) {
		return filepath.Join(base, AppName)
	}
	if h, _ := os.UserHomeDir(); h != "" {
		return filepath.Join(h, ".local", "share", AppName)
	}
	return filepath.Join("/var", "tmp", fmt.Sprintf("%s-%d", AppName, os.Getuid()))
}

// ConfigPath is the YAML app-config file inside the data dir.
func (e Env) ConfigPath() string {
	return filepath.Join(e.DataDir, ConfigFileName)
}

// DatabasePath is the sqlite file inside the data dir.
func (e Env) DatabasePath() string {
	return filepath.Join(e.DataDir, DatabaseFileName)
}
