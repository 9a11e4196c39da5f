package telekey

import "telekey/wire"

// historyCapacity is the fixed size of the client's key-history ring
// buffer: the oldest entry is evicted first once full.
const historyCapacity = 20

// History is a fixed-capacity ring buffer of the most recent KeyEvents
// the client has sent, used only to feed the presenter's history sink.
type History struct {
	events []wire.KeyEvent
}

// NewHistory returns an empty history buffer.
func NewHistory() *History {
	return &History{events: make([]wire.KeyEvent, 0, historyCapacity)}
}

// Add appends evt, evicting the oldest entry if the buffer is already at
// capacity.
func (h *History) Add(evt wire.KeyEvent) {
	if len(h.events) == historyCapacity {
		copy(h.events, h.events[1:])
		h.events[len(h.events)-1] = evt
		return
	}
	h.events = append(h.events, evt)
}

// Events returns the buffered events, oldest first. The caller must not
// mutate the returned slice.
func (h *History) Events() []wire.KeyEvent {
	return h.events
}
