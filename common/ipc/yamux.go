package ipc

import (
	"net"
	"sync"
	"time"

	"github.com/libp2p/go-yamux/v4"
)

// yamuxVersion is the first byte of every yamux frame header.
const yamuxVersion = 0x00

func sessionConfig() *yamux.Config {
	cfg := yamux.DefaultConfig()
	cfg.AcceptBacklog = 256
	cfg.EnableKeepAlive = true
	cfg.KeepAliveInterval = 30 * time.Second
	cfg.ConnectionWriteTimeout = 10 * time.Second
	// file contents travel in a single frame stream
	cfg.MaxStreamWindowSize = 16 * 1024 * 1024
	return cfg
}

// Session is one multiplexed connection to a host. Close is idempotent.
type Session struct {
	*yamux.Session
	ID string

	closeOnce sync.Once
	closeErr  error
}

// ServerSession wraps an accepted host connection.
func ServerSession(conn net.Conn, id string) (*Session, error) {
	s, err := yamux.Server(conn, sessionConfig(), nil)
	if err != nil {
		return nil, err
	}
	return &Session{Session: s, ID: id}, nil
}

// ClientSession wraps a dialed host connection.
func ClientSession(conn net.Conn) (*Session, error) {
	s, err := yamux.Client(conn, sessionConfig(), nil)
	if err != nil {
		return nil, err
	}
	return &Session{Session: s}, nil
}

func (s *Session) Close() error {
	s.closeOnce.Do(func() { s.closeErr = s.Session.Close() })
	return s.closeErr
}

// IsYamuxConnection reports whether the first byte read from a connection
// starts a yamux frame.
func IsYamuxConnection(firstByte byte) bool {
	return firstByte == yamuxVersion
}

// SessionSet tracks the live sessions of one listener so shutdown can close
// them together. Once CloseAll has run, Add refuses new sessions.
type SessionSet struct {
	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

func NewSessionSet() *SessionSet {
	return &SessionSet{sessions: make(map[string]*Session)}
}

// Add registers s. It returns false after CloseAll; the caller owns s then.
func (ss *SessionSet) Add(s *Session) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if ss.closed {
		return false
	}
	ss.sessions[s.ID] = s
	return true
}

func (ss *SessionSet) Remove(id string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, id)
}

func (ss *SessionSet) Len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.sessions)
}

// CloseAll closes every tracked session.
func (ss *SessionSet) CloseAll() {
	ss.mu.Lock()
	ss.closed = true
	open := make([]*Session, 0, len(ss.sessions))
	for _, s := range ss.sessions {
		open = append(open, s)
	}
	ss.mu.Unlock()

	for _, s := range open {
		_ = s.Close()
	}
}
