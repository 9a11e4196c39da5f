package telekey

import (
	"testing"

	"telekey/wire"
)

func TestHistoryNeverExceedsCapacity(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 45; i++ {
		h.Add(wire.KeyEvent{Kind: wire.KeyChar, Key: uint32('a' + i%26)})
	}
	if got := len(h.Events()); got != historyCapacity {
		t.Fatalf("got %d events, want capacity %d", got, historyCapacity)
	}
}

func TestHistoryEvictsOldestFirst(t *testing.T) {
	h := NewHistory()
	for i := 0; i < historyCapacity+3; i++ {
		h.Add(wire.KeyEvent{Kind: wire.KeyChar, Key: uint32(i)})
	}
	events := h.Events()
	if events[0].Key != 3 {
		t.Fatalf("expected oldest surviving event to have key 3, got %d", events[0].Key)
	}
	if last := events[len(events)-1].Key; last != uint32(historyCapacity+2) {
		t.Fatalf("expected newest event key %d, got %d", historyCapacity+2, last)
	}
}

func TestHistoryBelowCapacity(t *testing.T) {
	h := NewHistory()
	h.Add(wire.KeyEvent{Kind: wire.KeyEnter})
	h.Add(wire.KeyEvent{Kind: wire.KeyTab})
	if got := len(h.Events()); got != 2 {
		t.Fatalf("got %d events, want 2", got)
	}
}
