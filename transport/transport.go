// Package transport implements the plain and secure packet transports that
// sit directly on a TCP connection: both expose the same blocking
// Transport contract, so the session state machine never needs to know
// which one it is driving.
package transport

import "telekey/wire"

// Transport is the contract shared by PlainTransport and SecureTransport.
// Shutdown is idempotent and safe to call from any error path.
type Transport interface {
	RecvPacket() (wire.Packet, error)
	SendPacket(p wire.Packet) error
	Shutdown() error
	PeerAddr() string
}
