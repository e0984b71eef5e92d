package deployment

import (
	"context"
	"fmt"
	"sync"

	"github.com/mordilloSan/go-logger/logger"

	"github.com/vibekanban/desktop/bridge/store"
	"github.com/vibekanban/desktop/common/ipc"
)

// State owns the project/task store. It stays empty until Initialize runs.
type State struct {
	mu        sync.RWMutex
	dbPath    string
	assetsDir string
	store     *store.Store
}

func NewState(dbPath, assetsDir string) *State {
	return &State{dbPath: dbPath, assetsDir: assetsDir}
}

// Initialize opens the store. It reports false when already initialized.
func (s *State) Initialize(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		return false, nil
	}
	st, err := store.Open(s.dbPath)
	if err != nil {
		return false, fmt.Errorf("initialize deployment: %w", err)
	}
	s.store = st
	logger.InfoKV("deployment initialized", "db_path", s.dbPath)
	return true, nil
}

// Store returns the open store or ipc.ErrNotInitialized.
func (s *State) Store() (*store.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return nil, ipc.ErrNotInitialized
	}
	return s.store, nil
}

func (s *State) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store != nil
}

func (s *State) AssetsDir() string {
	return s.assetsDir
}

func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	return err
}
