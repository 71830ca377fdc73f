package common

import (
	"errors"
	"net/http"
)

// PublicError is the external projection of an internal failure. Kind is the
// machine-readable value emitted in response bodies; Status the HTTP status.
type PublicError struct {
	Kind   string
	Status int
}

func (e PublicError) Error() string { return e.Kind }

var (
	PublicInvalidCredentials = PublicError{Kind: "invalid_credentials", Status: http.StatusUnauthorized}
	PublicTooManyAttempts    = PublicError{Kind: "too_many_attempts", Status: http.StatusTooManyRequests}
	PublicUnauthenticated    = PublicError{Kind: "unauthenticated", Status: http.StatusUnauthorized}
	PublicForbidden          = PublicError{Kind: "forbidden", Status: http.StatusForbidden}
	PublicNotFound           = PublicError{Kind: "not_found", Status: http.StatusNotFound}
	PublicInvalidRequest     = PublicError{Kind: "invalid_request", Status: http.StatusBadRequest}
	PublicInsufficientFunds  = PublicError{Kind: "insufficient_funds", Status: http.StatusUnprocessableEntity}
	PublicInternal           = PublicError{Kind: "internal_error", Status: http.StatusInternalServerError}
)

// Public collapses an internal error to its externally visible kind.
// Everything that could reveal identity or existence maps to the same
// generic values; insufficient funds stays specific because it is only
// reachable after ownership of the source account has been proven.
func Public(err error) PublicError {
	switch {
	case err == nil:
		return PublicError{}
	case errors.Is(err, ErrorAuthFailed):
		return PublicInvalidCredentials
	case errors.Is(err, ErrorThrottled):
		return PublicTooManyAttempts
	case errors.Is(err, ErrorSessionInvalid):
		return PublicUnauthenticated
	case errors.Is(err, ErrorCSRFInvalid):
		return PublicForbidden
	case errors.Is(err, ErrorDenied):
		return PublicNotFound
	case errors.Is(err, ErrorInsufficientFunds):
		return PublicInsufficientFunds
	case errors.Is(err, ErrorInvalidAmount),
		errors.Is(err, ErrorSameAccount),
		errors.Is(err, ErrorLimitExceeded),
		errors.Is(err, ErrorInvalidRequest):
		return PublicInvalidRequest
	case errors.Is(err, ErrorAccountNotFound):
		// Unreachable for unauthorized callers (authorization runs first),
		// still uniform with the authorization response.
		return PublicNotFound
	default:
		return PublicInternal
	}
}
