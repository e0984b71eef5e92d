package bridge

import (
	"encoding/json"
	"sync"

	"github.com/mordilloSan/go-logger/logger"
)

// EventBus fans host events out to subscribers.
// Callbacks run on the emitting goroutine, outside the bus lock.
type EventBus struct {
	mu   sync.RWMutex
	next uint64
	subs map[string]map[uint64]func(json.RawMessage)
}

func NewEventBus() *EventBus {
	return &EventBus{subs: make(map[string]map[uint64]func(json.RawMessage))}
}

// Subscribe registers fn for event. The returned function removes it and is
// safe to call more than once.
func (b *EventBus) Subscribe(event string, fn func(payload json.RawMessage)) func() {
	b.mu.Lock()
	b.next++
	id := b.next
	if b.subs[event] == nil {
		b.subs[event] = make(map[uint64]func(json.RawMessage))
	}
	b.subs[event][id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs[event], id)
			if len(b.subs[event]) == 0 {
				delete(b.subs, event)
			}
		})
	}
}

// Emit serializes payload and delivers it to every subscriber of event.
func (b *EventBus) Emit(event string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.WarnKV("event payload marshal failed", "event", event, "error", err)
		return
	}

	b.mu.RLock()
	fns := make([]func(json.RawMessage), 0, len(b.subs[event]))
	for _, fn := range b.subs[event] {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	logger.DebugKV("event emitted", "event", event, "listeners", len(fns))
	for _, fn := range fns {
		fn(raw)
	}
}

// Listeners reports how many subscribers event currently has.
func (b *EventBus) Listeners(event string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[event])
}
