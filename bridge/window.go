package bridge

import (
	"sync"

	"github.com/vibekanban/desktop/common/api"
)

// WindowState is the desktop window as seen by the host.
type WindowState struct {
	Visible   bool `json:"visible"`
	Focused   bool `json:"focused"`
	Minimized bool `json:"minimized"`
	Maximized bool `json:"maximized"`
	Closed    bool `json:"closed"`
}

type window struct {
	mu    sync.Mutex
	state WindowState
}

func newWindow() *window {
	return &window{state: WindowState{Visible: true, Focused: true}}
}

func (w *window) apply(op api.WindowOp) WindowState {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := &w.state
	switch op {
	case api.WindowMinimize:
		s.Minimized = true
		s.Focused = false
	case api.WindowToggleMaximize:
		s.Maximized = !s.Maximized
		s.Minimized = false
	case api.WindowHide:
		s.Visible = false
		s.Focused = false
	case api.WindowShow:
		s.Visible = true
		s.Minimized = false
		s.Closed = false
	case api.WindowFocus:
		s.Visible = true
		s.Minimized = false
		s.Focused = true
	case api.WindowClose:
		s.Closed = true
		s.Visible = false
		s.Focused = false
	}
	return w.state
}

func (w *window) snapshot() WindowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}
