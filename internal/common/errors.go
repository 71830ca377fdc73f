// Package common defines the closed set of sentinel errors shared by all
// layers, and the projection that collapses them to the externally visible
// kinds. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Generic flow control.
	ErrorInternal = errors.New("internal error")

	// Authentication. One value covers unknown user, wrong password and
	// locked account; callers must not be able to tell these apart.
	ErrorAuthFailed = errors.New("invalid credentials")

	// ErrorThrottled is returned when login attempts from one client
	// address arrive faster than the configured window allows.
	ErrorThrottled = errors.New("too many attempts")

	// Sessions. One value covers missing, malformed, expired and unknown
	// tokens.
	ErrorSessionInvalid = errors.New("invalid session")

	// CSRF token missing or not derived from the session secret.
	ErrorCSRFInvalid = errors.New("invalid csrf token")

	// Authorization. One value covers both "not yours" and "no such
	// account" so account ids cannot be enumerated.
	ErrorDenied = errors.New("denied")

	// Ledger failures. Specific internally; Public collapses all but
	// insufficient funds before they leave the orchestrator.
	ErrorInsufficientFunds = errors.New("insufficient funds")
	ErrorInvalidAmount     = errors.New("invalid amount")
	ErrorSameAccount       = errors.New("same account transfer")
	ErrorAccountNotFound   = errors.New("account not found")
	ErrorLimitExceeded     = errors.New("transfer limit exceeded")

	// Request body did not validate into a typed request.
	ErrorInvalidRequest = errors.New("invalid request")
)
