package cryptox

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// SessionTokenBytes is the entropy of a raw session token. 32 bytes keeps a
// comfortable margin over the 128-bit minimum an opaque token needs.
const SessionTokenBytes = 32

// MakeRandHexString generates a random hexadecimal string of the given size.
// The size parameter specifies the number of random bytes to generate before
// encoding, so the final string length is twice the size.
//
// It returns an error if the random number generator fails.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// GenerateRandByteArray returns n cryptographically random bytes. It panics
// if the system RNG fails, which is not a condition to continue under.
func GenerateRandByteArray(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// TokenHash returns the hex SHA-256 of a raw token. Stores are keyed by this
// hash so a raw token never appears in storage, and lookups by hash do not
// leak token prefixes through comparison time.
func TokenHash(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}

// DeriveCSRFToken computes the anti-forgery token for a session: a hex
// HMAC-SHA256 over the session's token hash, keyed with the session's
// csrf secret. Re-derivable per render, bound to exactly one session.
func DeriveCSRFToken(csrfSecret []byte, tokenHash string) string {
	mac := hmac.New(sha256.New, csrfSecret)
	mac.Write([]byte(tokenHash))
	return hex.EncodeToString(mac.Sum(nil))
}

// ConstantTimeEquals reports whether two strings are equal without leaking
// the position of the first difference.
func ConstantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
