package swiper

import (
	"sync"

	"engage/internal/pager"
)

// Bridge forwards pager notifications into a channel the Bubble Tea program
// drains. Sends never block; the model re-reads the pager on every message, so
// a dropped notification only coalesces updates.
type Bridge struct {
	mu     sync.Mutex
	events chan pager.Snapshot
	closed bool
}

// NewBridge returns a bridge with the given buffer size.
func NewBridge(buffer int) *Bridge {
	if buffer <= 0 {
		buffer = 16
	}
	return &Bridge{events: make(chan pager.Snapshot, buffer)}
}

// OnChange implements pager.Observer.
func (b *Bridge) OnChange(snapshot pager.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	select {
	case b.events <- snapshot:
	default:
	}
}

// Events returns the receive side of the bridge.
func (b *Bridge) Events() <-chan pager.Snapshot {
	return b.events
}

// Close stops delivery. Later notifications are discarded.
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.events)
	}
}
