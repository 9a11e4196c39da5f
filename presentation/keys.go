// Package presentation adapts between the terminal/OS world and the wire
// protocol: translating a raw terminal keypress into a KeyEvent, and a
// received KeyEvent into whatever the remote side does with it (print it
// or synthesize it as a real keypress).
package presentation

import "telekey/wire"

// TermKeyName identifies a non-character terminal key. The names mirror
// wire.KeyKind's names exactly, so TermKeyToEvent is a direct lookup.
type TermKeyName string

const (
	TermBackspace TermKeyName = "BACKSPACE"
	TermEnter     TermKeyName = "ENTER"
	TermLeft      TermKeyName = "LEFT"
	TermRight     TermKeyName = "RIGHT"
	TermUp        TermKeyName = "UP"
	TermDown      TermKeyName = "DOWN"
	TermHome      TermKeyName = "HOME"
	TermEnd       TermKeyName = "END"
	TermPageUp    TermKeyName = "PAGEUP"
	TermPageDown  TermKeyName = "PAGEDOWN"
	TermTab       TermKeyName = "TAB"
	TermDelete    TermKeyName = "DELETE"
	TermInsert    TermKeyName = "INSERT"
	TermEsc       TermKeyName = "ESC"
	TermShift     TermKeyName = "SHIFT"
	TermMeta      TermKeyName = "META"
)

var termKeyKinds = map[TermKeyName]wire.KeyKind{
	TermBackspace: wire.KeyBackspace,
	TermEnter:     wire.KeyEnter,
	TermLeft:      wire.KeyLeft,
	TermRight:     wire.KeyRight,
	TermUp:        wire.KeyUp,
	TermDown:      wire.KeyDown,
	TermHome:      wire.KeyHome,
	TermEnd:       wire.KeyEnd,
	TermPageUp:    wire.KeyPageUp,
	TermPageDown:  wire.KeyPageDown,
	TermTab:       wire.KeyTab,
	TermDelete:    wire.KeyDelete,
	TermInsert:    wire.KeyInsert,
	TermEsc:       wire.KeyEsc,
	TermShift:     wire.KeyShift,
	TermMeta:      wire.KeyMeta,
}

// TermKey is what a Presenter hands back from ReadKey: either one
// of the named keys above, a function-key index (FunctionIndex > 0), or a
// literal character (IsChar true). Anything else maps to KeyUnknown.
type TermKey struct {
	Name          TermKeyName
	IsChar        bool
	Char          rune
	FunctionIndex uint32
}

// TermKeyToEvent implements the terminal-key-to-KeyEvent mapping table: a
// named key becomes the KeyKind of the same name, a character becomes
// {CHAR, key=rune}, a function key becomes {FUNCTION, key=index}, and
// anything else becomes UNKNOWN.
func TermKeyToEvent(k TermKey) wire.KeyEvent {
	if k.IsChar {
		return wire.KeyEvent{Kind: wire.KeyChar, Key: uint32(k.Char)}
	}
	if k.FunctionIndex > 0 {
		return wire.KeyEvent{Kind: wire.KeyFunction, Key: k.FunctionIndex}
	}
	if kind, ok := termKeyKinds[k.Name]; ok {
		return wire.KeyEvent{Kind: kind}
	}
	return wire.KeyEvent{Kind: wire.KeyUnknown}
}

// injectableKinds is the subset of KeyKind the key-injector boundary
// understands how to synthesize or format. Kinds outside this set produce
// a non-fatal warning in the caller rather than an injection attempt.
var injectableKinds = map[wire.KeyKind]bool{
	wire.KeyEnter:     true,
	wire.KeyUp:        true,
	wire.KeyDown:      true,
	wire.KeyLeft:      true,
	wire.KeyRight:     true,
	wire.KeyEsc:       true,
	wire.KeyBackspace: true,
	wire.KeyHome:      true,
	wire.KeyEnd:       true,
	wire.KeyTab:       true,
	wire.KeyDelete:    true,
	wire.KeyChar:      true,
	wire.KeyPageUp:    true,
	wire.KeyPageDown:  true,
	wire.KeyShift:     true,
	wire.KeyMeta:      true,
	wire.KeyFunction:  true,
}

// EventToInjection reports whether a KeyEvent falls within the
// injector-mappable subset. false means the caller should log a runtime
// warning and otherwise ignore the event.
func EventToInjection(evt wire.KeyEvent) bool {
	return injectableKinds[evt.Kind]
}

// Glyph renders a KeyEvent the way a cold-run server prints it: the
// literal character for CHAR, a newline for ENTER, and the bracketed key
// name otherwise. It is also what StdoutInjector writes.
func Glyph(evt wire.KeyEvent) string {
	switch evt.Kind {
	case wire.KeyChar:
		return string(rune(evt.Key))
	case wire.KeyEnter:
		return "\n"
	default:
		return "[" + evt.Kind.String() + "]"
	}
}
