package userconfig

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/mordilloSan/go-logger/logger"
)

const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// Settings is the persisted application configuration.
type Settings struct {
	App       map[string]any            `yaml:"app,omitempty"`
	Executors map[string]map[string]any `yaml:"executors,omitempty"`
}

// Store reads and writes Settings at a fixed path. Every write replaces the
// file atomically.
type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// App returns the application config, or an empty object when none was saved.
func (s *Store) App() (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err != nil {
		return nil, err
	}
	if cfg.App == nil {
		return map[string]any{}, nil
	}
	return cfg.App, nil
}

// SetApp replaces the application config.
func (s *Store) SetApp(app map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err != nil {
		return err
	}
	cfg.App = maps.Clone(app)
	return s.save(cfg)
}

// Executor returns the saved config of one executor and whether any was saved.
func (s *Store) Executor(name string) (map[string]any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err != nil {
		return nil, false, err
	}
	ec, ok := cfg.Executors[name]
	if !ok || ec == nil {
		return map[string]any{}, false, nil
	}
	return ec, true, nil
}

// SetExecutor replaces the config of one executor.
func (s *Store) SetExecutor(name string, ec map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err != nil {
		return err
	}
	if cfg.Executors == nil {
		cfg.Executors = map[string]map[string]any{}
	}
	if ec == nil {
		ec = map[string]any{}
	}
	cfg.Executors[name] = maps.Clone(ec)
	return s.save(cfg)
}

func (s *Store) load() (*Settings, error) {
	ok, err := CheckConfig(s.path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Settings{}, nil
	}
	cfg, err := readConfigStrict(s.path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", s.path, err)
	}
	return cfg, nil
}

func (s *Store) save(cfg *Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return err
	}
	out := Settings{App: quoteMultilineMap(cfg.App)}
	if cfg.Executors != nil {
		out.Executors = make(map[string]map[string]any, len(cfg.Executors))
		for name, c := range cfg.Executors {
			out.Executors[name] = quoteMultilineMap(c)
		}
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := writeYAMLAtomic(s.path, data, filePerm); err != nil {
		return fmt.Errorf("write config %s: %w", s.path, err)
	}
	logger.DebugKV("config saved", "path", s.path)
	return nil
}

// multiline is written as a double-quoted scalar. Block scalars lose the
// leading spaces of a line that follows an empty first line.
type multiline string

func (m multiline) MarshalYAML() ([]byte, error) {
	return []byte(strconv.Quote(string(m))), nil
}

func quoteMultiline(v any) any {
	switch t := v.(type) {
	case string:
		if strings.ContainsAny(t, "\r\n") {
			return multiline(t)
		}
	case map[string]any:
		return quoteMultilineMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = quoteMultiline(e)
		}
		return out
	}
	return v
}

func quoteMultilineMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = quoteMultiline(v)
	}
	return out
}

// CheckConfig returns true if the config file exists and is a regular file (not a symlink).
func CheckConfig(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err == nil {
		if info.Mode()&os.ModeSymlink != 0 {
			return false, errors.New("config path must not be a symlink")
		}
		return info.Mode().IsRegular(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// readConfigStrict parses YAML and fails on unknown fields.
func readConfigStrict(path string) (*Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out := &Settings{}
	if len(bytes.TrimSpace(b)) == 0 {
		return out, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(b), yaml.Strict())
	if err := dec.Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}

// writeYAMLAtomic writes data to a temp file in the same directory and renames it over path.
func writeYAMLAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	_, werr := f.Write(data)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
