package presentation

import "telekey/wire"

// Presenter is the terminal collaborator the client's input loop drives:
// a blocking key read, full or partial redraws, and a status/history
// sink. A real terminal implementation (TcellPresenter) and a test fake
// both satisfy it.
type Presenter interface {
	// ReadKey blocks until the operator presses a key.
	ReadKey() (TermKey, error)
	// ClearScreen performs a full-screen clear and repaint.
	ClearScreen()
	// ClearLastLines clears only the last n lines, for simple-menu mode.
	ClearLastLines(n int)
	// Status renders the status banner:
	// "TeleKey v<N> <peer-addr> (<peer-hostname>) [IDLE|ACTIVE] <latency>".
	Status(line string)
	// History renders the key history ring buffer, most recent last.
	History(events []wire.KeyEvent)
	// Close releases any terminal resources the presenter holds.
	Close()
}
