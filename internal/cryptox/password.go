// Package cryptox holds the cryptographic primitives shared by the server:
// memory-hard password hashing, opaque token generation and hashing, and
// constant-time comparisons.
package cryptox

import (
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// Argon2Params configures the argon2id key derivation used for password
// hashing. Tests may shrink Time/MemoryKiB to keep suites fast.
type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
}

// DefaultArgon2Params returns the production derivation parameters.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{Time: 1, MemoryKiB: 64 * 1024, Threads: 4, KeyLen: 32}
}

// HashPassword derives an argon2id verifier for the given password and salt.
func HashPassword(password, salt []byte, p Argon2Params) []byte {
	return argon2.IDKey(password, salt, p.Time, p.MemoryKiB, p.Threads, p.KeyLen)
}

// VerifyPassword derives a candidate verifier and compares it with the
// stored one in constant time. The comparison cost does not depend on where
// the two verifiers first differ.
func VerifyPassword(password, salt, verifier []byte, p Argon2Params) bool {
	candidate := HashPassword(password, salt, p)
	defer WipeByteArray(candidate)
	return subtle.ConstantTimeCompare(candidate, verifier) == 1
}

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Useful for removing plaintext passwords from memory after use.
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
