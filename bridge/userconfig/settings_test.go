package userconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_DefaultsToEmptyObject(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "config.yaml"))

	app, err := s.App()
	require.NoError(t, err)
	assert.NotNil(t, app)
	assert.Empty(t, app)
}

func TestApp_ReplaceAndPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	s := New(path)

	require.NoError(t, s.SetApp(map[string]any{"theme": "dark", "telemetry": false}))
	require.NoError(t, s.SetApp(map[string]any{"theme": "light"}))

	app, err := New(path).App()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"theme": "light"}, app)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerm), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files should be left behind")
}

func TestExecutor(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "config.yaml"))

	ec, ok, err := s.Executor("codex")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, ec)

	require.NoError(t, s.SetExecutor("codex", map[string]any{"model": "o3"}))
	require.NoError(t, s.SetApp(map[string]any{"theme": "dark"}))

	ec, ok, err = s.Executor("codex")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "o3", ec["model"])

	app, err := s.App()
	require.NoError(t, err)
	assert.Equal(t, "dark", app["theme"])
}

func TestRejectsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.yaml")
	require.NoError(t, os.WriteFile(target, []byte("app: {}\n"), 0o600))
	link := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.Symlink(target, link))

	_, err := New(link).App()
	assert.ErrorContains(t, err, "symlink")
}

func TestRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colour: blue\n"), 0o600))

	_, err := New(path).App()
	assert.Error(t, err)
}

func TestSettings_MultilineStringsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	values := map[string]any{
		"leading":  "\n x",
		"indented": "line1\n  indented",
		"trailing": "ends with newline\n",
		"crlf":     "a\r\n b",
		"plain":    "  spaced  ",
		"list":     []any{"\n  item", "ok"},
		"nested":   map[string]any{"prompt": "\n\tTabbed"},
	}
	require.NoError(t, New(path).SetApp(values))
	require.NoError(t, New(path).SetExecutor("codex", map[string]any{"system": "\n  be brief"}))

	app, err := New(path).App()
	require.NoError(t, err)
	assert.Equal(t, values, app)

	cfg, ok, err := New(path).Executor("codex")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "\n  be brief", cfg["system"])
}
