package csrf

import (
	"testing"

	"github.com/hardbank/hardbank/internal/common"
	"github.com/hardbank/hardbank/internal/cryptox"
	"github.com/hardbank/hardbank/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession() *models.Session {
	return &models.Session{
		TokenHash:  cryptox.TokenHash("raw-token"),
		UserID:     "u-1",
		CSRFSecret: cryptox.GenerateRandByteArray(32),
	}
}

func TestGuard_TokenRoundTrip(t *testing.T) {
	g := NewGuard()
	session := newSession()

	token := g.TokenFor(session)
	require.NotEmpty(t, token)
	assert.Equal(t, token, g.TokenFor(session), "token must be re-derivable per render")
	assert.NoError(t, g.Validate(session, token))
}

func TestGuard_Validate_Rejections(t *testing.T) {
	g := NewGuard()
	session := newSession()
	valid := g.TokenFor(session)

	tests := []struct {
		name      string
		presented string
	}{
		{"missing token", ""},
		{"garbage token", "zzzz"},
		{"truncated token", valid[:len(valid)-2]},
		{"token of another session", g.TokenFor(newSession())},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, g.Validate(session, tc.presented), common.ErrorCSRFInvalid)
		})
	}
}
