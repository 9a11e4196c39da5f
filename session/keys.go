package session

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
)

// ErrAuth is returned by OpenPublicKey when a sealed public key fails to
// authenticate, is undersized, or does not open to 32 bytes. Token decoding
// (DecodeSecret) and the server's plain-mode token check report their own
// errors instead.
var ErrAuth = errors.New("session: authentication failed")

// EphemeralKeyPair is a single-connection X25519 keypair, generated
// fresh per session and never persisted.
type EphemeralKeyPair struct {
	Public  [32]byte
	private [32]byte
}

// NewEphemeralKeyPair generates a fresh X25519 keypair for one connection.
func NewEphemeralKeyPair() (EphemeralKeyPair, error) {
	var kp EphemeralKeyPair
	if _, err := io.ReadFull(rand.Reader, kp.private[:]); err != nil {
		return kp, fmt.Errorf("session: generate ephemeral key: %w", err)
	}
	pub, err := curve25519.X25519(kp.private[:], curve25519.Basepoint)
	if err != nil {
		return kp, fmt.Errorf("session: derive ephemeral public key: %w", err)
	}
	copy(kp.Public[:], pub)
	return kp, nil
}

// SharedSecret runs X25519 key agreement against the peer's public key.
func (kp EphemeralKeyPair) SharedSecret(peerPublic [32]byte) ([]byte, error) {
	shared, err := curve25519.X25519(kp.private[:], peerPublic[:])
	if err != nil {
		return nil, fmt.Errorf("session: key agreement: %w", err)
	}
	return shared, nil
}

// SealPublicKey seals a raw 32-byte ephemeral public key under the
// session secret, so it can travel in a Handshake packet's pkey field
// without revealing it to an eavesdropper who doesn't also know the
// out-of-band token. The token is already a shared symmetric secret, so
// a symmetric AEAD keyed directly on it is the fitting primitive.
func SealPublicKey(secret [SecretSize]byte, pub [32]byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(secret[:])
	if err != nil {
		return nil, fmt.Errorf("session: seal cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("session: seal nonce: %w", err)
	}
	return aead.Seal(nonce, nonce, pub[:], nil), nil
}

// OpenPublicKey reverses SealPublicKey. Any authentication failure or an
// undersized blob is reported as ErrAuth.
func OpenPublicKey(secret [SecretSize]byte, sealed []byte) ([32]byte, error) {
	var pub [32]byte
	aead, err := chacha20poly1305.New(secret[:])
	if err != nil {
		return pub, fmt.Errorf("session: open cipher: %w", err)
	}
	nonceSize := aead.NonceSize()
	if len(sealed) < nonceSize+aead.Overhead() {
		return pub, ErrAuth
	}
	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plain, err := aead.Open(ciphertext[:0], nonce, ciphertext, nil)
	if err != nil {
		return pub, ErrAuth
	}
	if len(plain) != 32 {
		return pub, ErrAuth
	}
	copy(pub[:], plain)
	return pub, nil
}

// DeriveKeys derives the mirrored send/recv session key pair from the
// shared X25519 secret and a salt both sides agree on (the concatenation
// of both ephemeral public keys). isServer selects the orientation: the
// server's send key is the client's recv key and vice versa.
func DeriveKeys(shared, salt []byte, isServer bool) (send, recv [32]byte, err error) {
	infoServerToClient := []byte("server-to-client")
	infoClientToServer := []byte("client-to-server")

	s2c := make([]byte, chacha20poly1305.KeySize)
	if _, readErr := io.ReadFull(hkdf.New(sha256.New, shared, salt, infoServerToClient), s2c); readErr != nil {
		return send, recv, fmt.Errorf("session: derive server-to-client key: %w", readErr)
	}
	c2s := make([]byte, chacha20poly1305.KeySize)
	if _, readErr := io.ReadFull(hkdf.New(sha256.New, shared, salt, infoClientToServer), c2s); readErr != nil {
		return send, recv, fmt.Errorf("session: derive client-to-server key: %w", readErr)
	}

	if isServer {
		copy(send[:], s2c)
		copy(recv[:], c2s)
	} else {
		copy(send[:], c2s)
		copy(recv[:], s2c)
	}
	return send, recv, nil
}

// DeriveSessionID derives a session-scoped identifier bound as AAD by
// the secure transport, so ciphertexts never authenticate across
// sessions.
func DeriveSessionID(shared, salt []byte) ([32]byte, error) {
	var id [32]byte
	if _, err := io.ReadFull(hkdf.New(sha256.New, shared, salt, []byte("session-id-derivation")), id[:]); err != nil {
		return id, fmt.Errorf("session: derive session id: %w", err)
	}
	return id, nil
}
