// Package services composes the security components into the operations the
// HTTP boundary exposes.
package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/hardbank/hardbank/internal/common"
	"github.com/hardbank/hardbank/internal/cryptox"
	"github.com/hardbank/hardbank/internal/logging"
	"github.com/hardbank/hardbank/internal/server/config"
	"github.com/hardbank/hardbank/internal/server/repositories/users"
)

// Credentials verifies username/password pairs without leaking which
// usernames exist. Unknown user, wrong password and locked account all do
// the same hashing work, return the same ErrorAuthFailed and finish no
// earlier than the configured minimum duration.
type Credentials struct {
	repo             users.Repository
	params           cryptox.Argon2Params
	lockoutThreshold int
	lockoutDuration  time.Duration
	minDuration      time.Duration
	throttleWindow   time.Duration
	logger           logging.Logger

	// decoy material for the unknown-user path, fixed per process
	decoySalt     []byte
	decoyVerifier []byte

	mu          sync.Mutex
	lastAttempt map[string]time.Time
}

func NewCredentials(repo users.Repository, cfg *config.Config, l logging.Logger) *Credentials {
	decoySalt := cryptox.GenerateRandByteArray(16)
	return &Credentials{
		repo:             repo,
		params:           cfg.Argon2,
		lockoutThreshold: cfg.LockoutThreshold,
		lockoutDuration:  cfg.LockoutDuration,
		minDuration:      cfg.LoginMinDuration,
		throttleWindow:   cfg.LoginThrottleWindow,
		logger:           l.With("module", "credentials"),
		decoySalt:        decoySalt,
		decoyVerifier:    cryptox.HashPassword(cryptox.GenerateRandByteArray(16), decoySalt, cfg.Argon2),
		lastAttempt:      make(map[string]time.Time),
	}
}

// Verify authenticates one login attempt. clientAddr feeds the per-address
// throttle; the throttle rejects before any credential work and is the only
// outcome allowed to return early.
func (c *Credentials) Verify(ctx context.Context, clientAddr, username, password string) (string, error) {
	if err := c.throttle(clientAddr); err != nil {
		return "", err
	}

	start := time.Now()
	userID, err := c.verify(ctx, username, password)
	c.padToMinDuration(ctx, start)
	return userID, err
}

func (c *Credentials) verify(ctx context.Context, username, password string) (string, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := c.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn the same work as a real verification
			cryptox.VerifyPassword([]byte(password), c.decoySalt, c.decoyVerifier, c.params)
			return "", common.ErrorAuthFailed
		}
		c.logger.Error(ctx, "user lookup failed", "error", err.Error())
		return "", common.ErrorInternal
	}

	// hash before consulting the lockout so the work is uniform
	passwordOK := cryptox.VerifyPassword([]byte(password), user.Salt, user.PasswordHash, c.params)

	if user.Locked(time.Now()) {
		c.logger.Warn(ctx, "login attempt on locked account", "user_id", user.ID)
		return "", common.ErrorAuthFailed
	}

	if !passwordOK {
		count, err := c.repo.RecordFailure(ctx, user.ID)
		if err != nil {
			c.logger.Error(ctx, "failure count update failed", "error", err.Error())
			return "", common.ErrorAuthFailed
		}
		if c.lockoutThreshold > 0 && count >= c.lockoutThreshold {
			until := time.Now().Add(c.lockoutDuration)
			if err := c.repo.SetLock(ctx, user.ID, until); err != nil {
				c.logger.Error(ctx, "lock update failed", "error", err.Error())
			} else {
				c.logger.Warn(ctx, "account locked", "user_id", user.ID, "until", until)
			}
		}
		return "", common.ErrorAuthFailed
	}

	if err := c.repo.ResetFailures(ctx, user.ID); err != nil {
		c.logger.Error(ctx, "failure count reset failed", "error", err.Error())
	}

	return user.ID, nil
}

// throttle rejects a second attempt from the same address inside the
// window. Zero window disables it.
func (c *Credentials) throttle(clientAddr string) error {
	if c.throttleWindow <= 0 || clientAddr == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if last, ok := c.lastAttempt[clientAddr]; ok && now.Sub(last) < c.throttleWindow {
		return common.ErrorThrottled
	}
	c.lastAttempt[clientAddr] = now
	return nil
}

// padToMinDuration stretches every verification to at least minDuration so
// the outcome is not observable through response latency.
func (c *Credentials) padToMinDuration(ctx context.Context, start time.Time) {
	remaining := c.minDuration - time.Since(start)
	if remaining <= 0 {
		return
	}
	select {
	case <-time.After(remaining):
	case <-ctx.Done():
	}
}
