package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadEnv_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	unsetEnv(t, "VK_API_URL", "VK_DATA_DIR", "VK_BRIDGE_SOCKET", "VK_ENV", "VK_PORT", "VK_VERBOSE")

	e, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "", e.BaseURL, "absent base URL must stay empty")
	assert.Equal(t, DefaultPort, e.Port)
	assert.Equal(t, EnvProduction, e.Mode)
	assert.Equal(t, filepath.Join(dir, AppName), e.DataDir)
	assert.Equal(t, filepath.Join(dir, AppName, DefaultSocketName), e.SocketPath)
	assert.Equal(t, filepath.Join(dir, AppName, ConfigFileName), e.ConfigPath())
	assert.Equal(t, filepath.Join(dir, AppName, DatabaseFileName), e.DatabasePath())
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("VK_API_URL", "http://localhost:3000/")
	t.Setenv("VK_DATA_DIR", "/srv/kanban")
	t.Setenv("VK_BRIDGE_SOCKET", "/run/kanban.sock")
	t.Setenv("VK_ENV", "Development")
	t.Setenv("VK_PORT", "9000")
	t.Setenv("VK_VERBOSE", "true")

	e, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", e.BaseURL)
	assert.Equal(t, "/srv/kanban", e.DataDir)
	assert.Equal(t, "/run/kanban.sock", e.SocketPath)
	assert.Equal(t, EnvDevelopment, e.Mode)
	assert.Equal(t, 9000, e.Port)
	assert.True(t, e.Verbose)
}

func TestLoadEnv_RejectsUnknownMode(t *testing.T) {
	unsetEnv(t, "VK_PORT")
	t.Setenv("VK_ENV", "staging")

	_, err := LoadEnv()
	assert.Error(t, err)
}

func TestLoadEnv_RejectsBadPort(t *testing.T) {
	unsetEnv(t, "VK_ENV")
	t.Setenv("VK_PORT", "not-a-port")

	_, err := LoadEnv()
	assert.Error(t, err)
}
