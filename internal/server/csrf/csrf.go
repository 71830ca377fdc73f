// Package csrf issues and validates per-session anti-forgery tokens.
//
// Each session carries one random secret; the token handed to the client is
// an HMAC over the session's token hash keyed with that secret. A token is
// therefore bound to exactly one session and worthless to a cross-origin
// attacker, who can neither read the secret nor the cookie.
package csrf

import (
	"github.com/hardbank/hardbank/internal/common"
	"github.com/hardbank/hardbank/internal/cryptox"
	"github.com/hardbank/hardbank/internal/server/models"
)

type Guard struct{}

func NewGuard() *Guard {
	return &Guard{}
}

// TokenFor derives the anti-forgery token for a session. Deterministic per
// session, so it can be re-derived for every render.
func (g *Guard) TokenFor(session *models.Session) string {
	return cryptox.DeriveCSRFToken(session.CSRFSecret, session.TokenHash)
}

// Validate checks a presented token in constant time. Missing and wrong
// tokens fail identically.
func (g *Guard) Validate(session *models.Session, presented string) error {
	expected := g.TokenFor(session)
	if !cryptox.ConstantTimeEquals(expected, presented) {
		return common.ErrorCSRFInvalid
	}
	return nil
}
