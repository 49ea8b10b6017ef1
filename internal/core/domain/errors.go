package domain

import "errors"

// Sentinel errors for the auth plane. Handlers never branch on error text;
// the HTTP error handler maps each sentinel to its status code.
var (
	// ErrInvalidCredentials is deliberately generic: it covers unknown
	// username, inactive account and wrong password alike, so a caller
	// cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("username already exists")

	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access forbidden")

	// ErrSelfDeactivation guards AdminToggleActive against an admin
	// locking themselves out.
	ErrSelfDeactivation = errors.New("cannot deactivate your own account")

	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")

	ErrInvalidRole    = errors.New("invalid role")
	ErrPasswordPolicy = errors.New("password must be between 8 and 128 characters")
)
