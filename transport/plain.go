package transport

import (
	"fmt"
	"net"
	"sync"

	"telekey/wire"
)

// PlainTransport performs unencrypted packet I/O directly over a net.Conn.
// It owns the socket exclusively; Shutdown may be called from any error
// path and is safe to call more than once.
type PlainTransport struct {
	conn net.Conn
	mu   sync.Mutex
}

// NewPlainTransport wraps an already-connected net.Conn.
func NewPlainTransport(conn net.Conn) *PlainTransport {
	return &PlainTransport{conn: conn}
}

func (t *PlainTransport) RecvPacket() (wire.Packet, error) {
	p, err := wire.DecodeFrame(t.conn)
	if err != nil {
		return wire.Packet{}, fmt.Errorf("plain transport: recv: %w", err)
	}
	return p, nil
}

// SendPacket writes the full frame in one call so a partial write (from the
// caller's perspective) can never happen without returning an error.
func (t *PlainTransport) SendPacket(p wire.Packet) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := wire.EncodeFrame(t.conn, p); err != nil {
		return fmt.Errorf("plain transport: send: %w", err)
	}
	return nil
}

func (t *PlainTransport) Shutdown() error {
	return t.conn.Close()
}

func (t *PlainTransport) PeerAddr() string {
	if addr := t.conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}
