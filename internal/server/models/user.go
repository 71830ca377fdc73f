// Package models holds the server-side domain structures.
package models

import "time"

// User is a provisioned bank customer. PasswordHash is an argon2id verifier
// derived with the per-user Salt. FailedAttempts and LockedUntil feed the
// lockout policy; neither is ever visible in a response.
type User struct {
	ID             string
	Username       string
	PasswordHash   []byte
	Salt           []byte
	FailedAttempts int
	LockedUntil    *time.Time
	CreatedAt      time.Time
}

// Locked reports whether the user is locked out at the given instant.
func (u *User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}
