package presentation

import (
	"fmt"
	"io"

	"telekey/wire"
)

// KeyInjector is the boundary the server's steady-state loop calls for
// every inbound KeyEvent it must act on. Real OS keyboard synthesis
// lives outside this repository's core; this interface exists so a
// platform-specific injector can be dropped in later without touching
// package telekey.
type KeyInjector interface {
	// Inject handles one KeyEvent as a click (press+release). Kinds
	// outside the injector-mappable subset are the caller's
	// responsibility to detect via EventToInjection before calling Inject.
	Inject(evt wire.KeyEvent) error
}

// StdoutInjector is the cold-run path: it formats each KeyEvent as the
// literal glyph it represents and writes it to an io.Writer.
type StdoutInjector struct {
	w io.Writer
}

// NewStdoutInjector returns an injector that writes glyphs to w.
func NewStdoutInjector(w io.Writer) *StdoutInjector {
	return &StdoutInjector{w: w}
}

func (s *StdoutInjector) Inject(evt wire.KeyEvent) error {
	_, err := io.WriteString(s.w, Glyph(evt))
	return err
}

// NoopInjector is the stub for the real OS-synthesis boundary: no
// cross-platform key-injection library appears anywhere in this
// repository's dependency set, so this is what a non-cold-run server
// falls back to until a real injector is wired in behind KeyInjector. It
// logs what it would have injected rather than silently dropping it.
type NoopInjector struct {
	Logf func(format string, v ...any)
}

func (n *NoopInjector) Inject(evt wire.KeyEvent) error {
	if n.Logf != nil {
		n.Logf("noop injector: would synthesize %s", evt.Kind)
	} else {
		fmt.Printf("noop injector: would synthesize %s\n", evt.Kind)
	}
	return nil
}
