package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() Argon2Params {
	// small parameters, tests only
	return Argon2Params{Time: 1, MemoryKiB: 8, Threads: 1, KeyLen: 32}
}

func TestHashPassword_Deterministic(t *testing.T) {
	p := testParams()
	salt := []byte("0123456789abcdef")

	h1 := HashPassword([]byte("s3cret"), salt, p)
	h2 := HashPassword([]byte("s3cret"), salt, p)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, int(p.KeyLen))

	h3 := HashPassword([]byte("s3cret"), []byte("fedcba9876543210"), p)
	assert.NotEqual(t, h1, h3, "different salt must give a different verifier")
}

func TestVerifyPassword(t *testing.T) {
	p := testParams()
	salt := GenerateRandByteArray(16)
	verifier := HashPassword([]byte("correct horse"), salt, p)

	assert.True(t, VerifyPassword([]byte("correct horse"), salt, verifier, p))
	assert.False(t, VerifyPassword([]byte("correct-horse"), salt, verifier, p))
	assert.False(t, VerifyPassword([]byte(""), salt, verifier, p))
}

func TestMakeRandHexString(t *testing.T) {
	s1, err := MakeRandHexString(SessionTokenBytes)
	require.NoError(t, err)
	s2, err := MakeRandHexString(SessionTokenBytes)
	require.NoError(t, err)

	assert.Len(t, s1, SessionTokenBytes*2)
	assert.NotEqual(t, s1, s2)
}

func TestTokenHash_StableAndOpaque(t *testing.T) {
	h1 := TokenHash("tok")
	h2 := TokenHash("tok")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.NotContains(t, h1, "tok")
}

func TestDeriveCSRFToken_BoundToSecretAndSession(t *testing.T) {
	secret := GenerateRandByteArray(32)
	other := GenerateRandByteArray(32)

	tok := DeriveCSRFToken(secret, "hash-a")
	assert.Equal(t, tok, DeriveCSRFToken(secret, "hash-a"))
	assert.NotEqual(t, tok, DeriveCSRFToken(secret, "hash-b"))
	assert.NotEqual(t, tok, DeriveCSRFToken(other, "hash-a"))
}

func TestConstantTimeEquals(t *testing.T) {
	assert.True(t, ConstantTimeEquals("abc", "abc"))
	assert.False(t, ConstantTimeEquals("abc", "abd"))
	assert.False(t, ConstantTimeEquals("abc", "abcd"))
}

func TestWipeByteArray(t *testing.T) {
	b := []byte{1, 2, 3}
	WipeByteArray(b)
	assert.Equal(t, []byte{0, 0, 0}, b)
	WipeByteArray(nil) // must not panic
}
