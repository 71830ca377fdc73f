package models

import "time"

// Session is server-side login state. The raw token is returned to the
// client once and never stored; TokenHash (SHA-256 of the raw token) is the
// storage key. CSRFSecret seeds the per-session anti-forgery token. Both are
// immutable after issue.
type Session struct {
	TokenHash  string
	UserID     string
	CSRFSecret []byte
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Expired reports whether the session has passed its TTL at the given
// instant. Expired sessions are treated as absent.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
