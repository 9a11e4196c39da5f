package telekey

import "errors"

// ErrInvalidSecret is returned (and logged, never sent to the peer) when
// a plain-mode HandshakeRequest's token doesn't match the session secret
// the server generated for this connection.
var ErrInvalidSecret = errors.New("telekey: invalid session secret")

// ErrUnexpectedPacket covers every steady-state ordering violation that
// isn't a runtime warning: a non-Handshake packet as the first packet of
// a connection, or a non-Ping reply during a latency probe.
var ErrUnexpectedPacket = errors.New("telekey: unexpected packet kind")
