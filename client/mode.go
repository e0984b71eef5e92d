package client

import "github.com/vibekanban/desktop/common/ipc"

// Host and Handle are the capability a desktop shell injects.
type (
	Host   = ipc.Host
	Handle = ipc.Handle
)

// Mode is the transport a Client dispatches through. It is fixed in New.
type Mode int

const (
	ModeNetwork Mode = iota
	ModeBridge
)

func (m Mode) String() string {
	switch m {
	case ModeNetwork:
		return "network"
	case ModeBridge:
		return "bridge"
	}
	return "unknown"
}

// Capabilities is what the embedding process hands the client at startup.
// A nil Host means no privileged bridge is available.
type Capabilities struct {
	Host Host
}

// BridgeAvailable reports whether a host bridge was injected.
func (c Capabilities) BridgeAvailable() bool {
	return c.Host != nil
}
