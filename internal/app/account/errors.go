package account

import "errors"

var (
	// ErrInvalidInput means a supplied identifier, secret or body failed validation.
	ErrInvalidInput = errors.New("account: invalid input")

	// ErrUnauthenticated means the credential header was missing or malformed.
	ErrUnauthenticated = errors.New("account: unauthenticated")

	// ErrForbidden means the credential was well formed but does not grant access
	// to the target. It deliberately carries no detail about which check failed.
	ErrForbidden = errors.New("account: forbidden")

	// ErrConflict means the identifier is already taken.
	ErrConflict = errors.New("account: conflict")

	// ErrNotFound means the record is absent.
	ErrNotFound = errors.New("account: not found")
)
