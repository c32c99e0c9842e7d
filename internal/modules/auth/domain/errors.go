package domain

import (
	"errors"
	"net/http"
)

// Error is the gateway's client-facing fault taxonomy. Everything the
// provider layer can throw is re-classified into one of these before it
// leaves the orchestrator; nothing raw from the provider reaches a client.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

var (
	// Deliberately indistinguishable between "no such account" and
	// "wrong password".
	ErrInvalidCredentials = &Error{http.StatusBadRequest, "INVALID_CREDENTIALS", "Invalid email or password."}

	// Distinct from invalid credentials: the remediation is to verify,
	// not to retype.
	ErrEmailNotConfirmed = &Error{http.StatusForbidden, "EMAIL_NOT_CONFIRMED", "Please verify your email before signing in."}

	ErrInvalidCode      = &Error{http.StatusBadRequest, "INVALID_CODE", "Invalid or expired verification code."}
	ErrRejected         = &Error{http.StatusBadRequest, "INVALID_REQUEST", "The request could not be processed. Please check your input and try again."}
	ErrNoPendingRequest = &Error{http.StatusBadRequest, "NO_PENDING_REQUEST", "No pending verification found. Please start the process again."}
	ErrUserNotFound     = &Error{http.StatusNotFound, "NOT_FOUND", "User not found."}

	// Gateway misconfiguration: the service credential was refused. The
	// message prompts operator action, not user action.
	ErrProviderUnauthorized = &Error{http.StatusInternalServerError, "PROVIDER_UNAUTHORIZED", "Authentication service rejected the gateway credentials. Contact the administrator."}

	// Transient; safe for the client to retry.
	ErrProviderUnavailable = &Error{http.StatusInternalServerError, "PROVIDER_UNAVAILABLE", "Authentication service is temporarily unavailable. Please try again."}

	ErrUnexpected = &Error{http.StatusInternalServerError, "SERVER_ERROR", "Something went wrong. Please try again."}
)

// AsError extracts a taxonomy error, falling back to ErrUnexpected so
// handlers always have a status and code to report.
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return ErrUnexpected
}
