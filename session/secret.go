// Package session implements session establishment: the out-of-band
// token, the ephemeral X25519 key exchange sealed under a token-derived
// key, and the HKDF derivation of the mirrored send/recv session keys.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// SecretSize is the length, in bytes, of the session secret in both
// plain and secure mode.
const SecretSize = 32

// GenerateSecret produces a fresh cryptographically random session secret.
func GenerateSecret() ([SecretSize]byte, error) {
	var secret [SecretSize]byte
	if _, err := io.ReadFull(rand.Reader, secret[:]); err != nil {
		return secret, fmt.Errorf("session: generate secret: %w", err)
	}
	return secret, nil
}

// EncodeSecret renders a secret as the base64 string displayed to the
// operator, using the standard encoder verbatim (no padding is stripped).
func EncodeSecret(secret [SecretSize]byte) string {
	return base64.StdEncoding.EncodeToString(secret[:])
}

// DecodeSecret parses the base64 string the operator types into the
// client prompt. Any string that doesn't decode to exactly SecretSize
// bytes is rejected before anything is sent to the wire.
func DecodeSecret(s string) ([SecretSize]byte, error) {
	var secret [SecretSize]byte
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return secret, fmt.Errorf("session: invalid token encoding: %w", err)
	}
	if len(raw) != SecretSize {
		return secret, fmt.Errorf("session: token must decode to %d bytes, got %d", SecretSize, len(raw))
	}
	copy(secret[:], raw)
	return secret, nil
}
