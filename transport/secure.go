package transport

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"

	"telekey/wire"
)

// ErrDecrypt is returned when an inbound frame fails AEAD authentication:
// a tampered ciphertext, a key mismatch, or a corrupted nonce.
var ErrDecrypt = errors.New("transport: decryption failed")

// SecureTransport wraps a net.Conn with authenticated encryption under a
// pair of per-direction, per-session keys. The plaintext sealed under the
// send key is always body||kind: the kind byte lives at the end of the
// authenticated plaintext, never in the length-prefix header, so encrypted
// and plain frames share the exact same on-wire shape once opened.
//
// Every Seal/Open also binds the session ID derived alongside the
// session keys as additional authenticated data: a ciphertext produced
// under one session's keys fails to authenticate against another
// session's AAD even on a key collision.
type SecureTransport struct {
	conn       net.Conn
	sendCipher cipher.AEAD
	recvCipher cipher.AEAD
	sessionID  []byte
	mu         sync.Mutex
}

// NewSecureTransport builds a SecureTransport from mirrored 32-byte
// session keys: this side's sendKey must equal the peer's recvKey and
// vice versa (enforced by the session package's key derivation, not
// here). sessionID is bound as AAD on every seal/open; both
// sides must derive the identical value (session.DeriveSessionID, given
// the same shared secret and salt both key derivations already use).
func NewSecureTransport(conn net.Conn, sendKey, recvKey, sessionID []byte) (*SecureTransport, error) {
	sendAEAD, err := chacha20poly1305.New(sendKey)
	if err != nil {
		return nil, fmt.Errorf("secure transport: send cipher: %w", err)
	}
	recvAEAD, err := chacha20poly1305.New(recvKey)
	if err != nil {
		return nil, fmt.Errorf("secure transport: recv cipher: %w", err)
	}
	return &SecureTransport{conn: conn, sendCipher: sendAEAD, recvCipher: recvAEAD, sessionID: sessionID}, nil
}

// SendPacket seals body||kind under a fresh random nonce and frames the
// result as [len:u32 BE][nonce][ciphertext+tag].
func (t *SecureTransport) SendPacket(p wire.Packet) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	plaintext := make([]byte, len(p.Body)+1)
	copy(plaintext, p.Body)
	plaintext[len(plaintext)-1] = byte(p.Kind)

	nonce := make([]byte, t.sendCipher.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("secure transport: nonce: %w", err)
	}

	sealed := t.sendCipher.Seal(nonce, nonce, plaintext, t.sessionID)

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(sealed)))
	if _, err := t.conn.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("secure transport: send: %w", err)
	}
	if _, err := t.conn.Write(sealed); err != nil {
		return fmt.Errorf("secure transport: send: %w", err)
	}
	return nil
}

// RecvPacket reads one frame, opens it under the receive key, and treats
// the last plaintext byte as the packet kind and the rest as the body.
func (t *SecureTransport) RecvPacket() (wire.Packet, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(t.conn, lenBuf[:]); err != nil {
		return wire.Packet{}, fmt.Errorf("secure transport: recv: %w", err)
	}
	length := binary.BigEndian.Uint32(lenBuf[:])
	if length == 0 {
		return wire.Packet{}, wire.ErrZeroLengthFrame
	}

	sealed := make([]byte, length)
	if _, err := io.ReadFull(t.conn, sealed); err != nil {
		return wire.Packet{}, fmt.Errorf("secure transport: recv: %w", err)
	}

	nonceSize := t.recvCipher.NonceSize()
	if len(sealed) < nonceSize+t.recvCipher.Overhead() {
		return wire.Packet{}, ErrDecrypt
	}
	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]

	plaintext, err := t.recvCipher.Open(ciphertext[:0], nonce, ciphertext, t.sessionID)
	if err != nil {
		return wire.Packet{}, ErrDecrypt
	}
	if len(plaintext) == 0 {
		return wire.Packet{}, wire.ErrZeroLengthFrame
	}

	kind := wire.DecodePacketKind(plaintext[len(plaintext)-1])
	return wire.Packet{Kind: kind, Body: plaintext[:len(plaintext)-1]}, nil
}

func (t *SecureTransport) Shutdown() error {
	return t.conn.Close()
}

func (t *SecureTransport) PeerAddr() string {
	if addr := t.conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}
