package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vibekanban/desktop/bridge/handler"
	"github.com/vibekanban/desktop/common/api"
	"github.com/vibekanban/desktop/common/ipc"
)

func RegisterHandlers(reg *handler.Registry) {
	reg.Register(api.CmdReadFile, handler.Typed(func(ctx context.Context, p api.PathParams) (any, error) {
		path, err := cleanPath(p.Path)
		if err != nil {
			return nil, err
		}
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fsError("read file", err)
		}
		return string(b), nil
	}))

	reg.Register(api.CmdWriteFile, handler.Typed(func(ctx context.Context, p api.WriteFileParams) (any, error) {
		path, err := cleanPath(p.Path)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, []byte(p.Content), 0o644); err != nil {
			return nil, fsError("write file", err)
		}
		return nil, nil
	}))

	reg.Register(api.CmdListDirectory, handler.Typed(func(ctx context.Context, p api.PathParams) (any, error) {
		path, err := cleanPath(p.Path)
		if err != nil {
			return nil, err
		}
		return listDirectory(path)
	}))
}

// listDirectory returns the full paths of the entries of dir, sorted.
func listDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fsError("list directory", err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, filepath.Join(dir, e.Name()))
	}
	slices.Sort(out)
	return out, nil
}

func cleanPath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("%w: path is required", ipc.ErrInvalidArgs)
	}
	return filepath.Clean(p), nil
}

func fsError(op string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %v", ipc.ErrNotFound, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
