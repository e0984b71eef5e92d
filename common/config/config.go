package config

// Environment modes
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Application identity
const (
	AppName    = "vibe-kanban"
	BinaryName = "vibekanban"
)

// Defaults used when the environment does not override them.
const (
	DefaultPort       = 8090
	DefaultSocketName = "bridge.sock"
	ConfigFileName    = "config.yaml"
	DatabaseFileName  = "kanban.db"
)

// Build info - set at build time via ldflags:
// go build -ldflags "-X github.com/vibekanban/desktop/common/config.Version=v1.0.0"
var (
	Version   = "untracked"
	CommitSHA = ""
	BuildTime = ""
)
