package telekey

import (
	"fmt"
	"io"

	"telekey/presentation"
	"telekey/wire"
)

// fakeInjector records every KeyEvent handed to it, standing in for a
// real key-injector in dispatch tests.
type fakeInjector struct {
	events []wire.KeyEvent
}

func (f *fakeInjector) Inject(evt wire.KeyEvent) error {
	f.events = append(f.events, evt)
	return nil
}

// fakeLogger captures formatted log lines instead of writing to stdlib
// log, so tests can assert a runtime warning was actually emitted.
type fakeLogger struct {
	lines []string
}

func (f *fakeLogger) Printf(format string, v ...any) {
	f.lines = append(f.lines, fmt.Sprintf(format, v...))
}

// fakeTransport replays a fixed sequence of inbound packets and records
// every outbound one, for driving Server.steadyState without a socket.
type fakeTransport struct {
	toRecv  []wire.Packet
	recvPos int
	sent    []wire.Packet
}

func (f *fakeTransport) RecvPacket() (wire.Packet, error) {
	if f.recvPos >= len(f.toRecv) {
		return wire.Packet{}, io.EOF
	}
	p := f.toRecv[f.recvPos]
	f.recvPos++
	return p, nil
}

func (f *fakeTransport) SendPacket(p wire.Packet) error {
	f.sent = append(f.sent, p)
	return nil
}

func (f *fakeTransport) Shutdown() error  { return nil }
func (f *fakeTransport) PeerAddr() string { return "fake-peer:0" }

// fakeLoopTransport is fakeTransport's client-side counterpart: sending a
// Ping auto-enqueues a timestamped reply, modeling a responsive loopback
// peer so the client's latency-probing cadence can be tested without a
// socket.
type fakeLoopTransport struct {
	sent    []wire.Packet
	inbound []wire.Packet
}

func (f *fakeLoopTransport) RecvPacket() (wire.Packet, error) {
	if len(f.inbound) == 0 {
		return wire.Packet{}, io.EOF
	}
	p := f.inbound[0]
	f.inbound = f.inbound[1:]
	return p, nil
}

func (f *fakeLoopTransport) SendPacket(p wire.Packet) error {
	f.sent = append(f.sent, p)
	if p.Kind == wire.PacketPing {
		f.inbound = append(f.inbound, replyToPing())
	}
	return nil
}

func (f *fakeLoopTransport) Shutdown() error  { return nil }
func (f *fakeLoopTransport) PeerAddr() string { return "loop-peer:0" }

// fakePresenter replays a fixed sequence of terminal keys and records
// every redraw call, for driving Client.inputLoop without a real
// terminal.
type fakePresenter struct {
	keys     []presentation.TermKey
	pos      int
	statuses []string
	history  [][]wire.KeyEvent
	fullRedr int
	lineRedr int
}

func (f *fakePresenter) ReadKey() (presentation.TermKey, error) {
	if f.pos >= len(f.keys) {
		return presentation.TermKey{}, io.EOF
	}
	k := f.keys[f.pos]
	f.pos++
	return k, nil
}

func (f *fakePresenter) ClearScreen()         { f.fullRedr++ }
func (f *fakePresenter) ClearLastLines(int)   { f.lineRedr++ }
func (f *fakePresenter) Status(line string)   { f.statuses = append(f.statuses, line) }
func (f *fakePresenter) History(e []wire.KeyEvent) {
	cp := append([]wire.KeyEvent{}, e...)
	f.history = append(f.history, cp)
}
func (f *fakePresenter) Close() {}
