package handler

import (
	"slices"
	"sync"

	"github.com/vibekanban/desktop/common/api"
)

// Registry maps commands to handlers. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	handlers map[api.Command]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[api.Command]Handler)}
}

// Register adds a handler for the given command.
//
// Panics if command is empty, handler is nil, or the command is already registered.
func (r *Registry) Register(command api.Command, h Handler) {
	if command == "" {
		panic("command cannot be empty")
	}
	if h == nil {
		panic("handler cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.handlers[command]; dup {
		panic("handler already registered: " + string(command))
	}
	r.handlers[command] = h
}

// RegisterFunc is a convenience method for registering function handlers.
func (r *Registry) RegisterFunc(command api.Command, fn HandlerFunc) {
	r.Register(command, fn)
}

// Get retrieves a handler by command.
// Returns (nil, false) if not found.
func (r *Registry) Get(command api.Command) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[command]
	return h, ok
}

// Unregister removes a handler. Returns true if it was registered.
func (r *Registry) Unregister(command api.Command) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[command]; !ok {
		return false
	}
	delete(r.handlers, command)
	return true
}

// List returns the registered commands in sorted order.
func (r *Registry) List() []api.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]api.Command, 0, len(r.handlers))
	for c := range r.handlers {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}
