// Package sessions owns login state. Sessions are opaque: the client holds
// a random token, the server holds everything else keyed by the token's
// SHA-256. Nothing outside this package creates, reads or deletes them.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hardbank/hardbank/internal/common"
	"github.com/hardbank/hardbank/internal/cryptox"
	"github.com/hardbank/hardbank/internal/server/models"
)

type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Create issues a session for the user: a fresh random token and an
// independent random csrf secret. The raw token is returned once and never
// stored.
func (m *Manager) Create(ctx context.Context, userID string) (string, *models.Session, error) {
	rawToken, err := cryptox.MakeRandHexString(cryptox.SessionTokenBytes)
	if err != nil {
		return "", nil, fmt.Errorf("token generation error: %w", err)
	}

	now := time.Now()
	session := &models.Session{
		TokenHash:  cryptox.TokenHash(rawToken),
		UserID:     userID,
		CSRFSecret: cryptox.GenerateRandByteArray(32),
		CreatedAt:  now,
		ExpiresAt:  now.Add(m.ttl),
	}

	if err := m.store.Save(ctx, session); err != nil {
		return "", nil, err
	}

	return rawToken, session, nil
}

// Validate resolves a presented token. It fails closed: empty, malformed,
// unknown and expired tokens all yield the same ErrorSessionInvalid.
// Expiry is lazy; an expired entry is deleted on sight.
func (m *Manager) Validate(ctx context.Context, rawToken string) (*models.Session, error) {
	if rawToken == "" {
		return nil, common.ErrorSessionInvalid
	}

	hash := cryptox.TokenHash(rawToken)
	session, err := m.store.Get(ctx, hash)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorSessionInvalid
		}
		return nil, err
	}

	if session.Expired(time.Now()) {
		_ = m.store.Delete(ctx, hash)
		return nil, common.ErrorSessionInvalid
	}

	return session, nil
}

// Revoke destroys the session for a token. Idempotent: revoking an absent
// or already-revoked token succeeds.
func (m *Manager) Revoke(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	return m.store.Delete(ctx, cryptox.TokenHash(rawToken))
}
