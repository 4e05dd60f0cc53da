/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006
)

// 2xxx: Account Lifecycle Errors
const (
	// ErrAccountCreationFailed indicates the signup identifier or password failed validation.
	ErrAccountCreationFailed = 2001

	// ErrAccountAlreadyExists indicates the signup identifier is already taken.
	ErrAccountAlreadyExists = 2002

	// ErrUserNotFound indicates the target account vanished before an update was applied.
	ErrUserNotFound = 2003

	// ErrAccountDeletionFailed indicates the account was already absent when closing it.
	ErrAccountDeletionFailed = 2004
)

// 3xxx: Authentication and Authorization Errors
const (
	// ErrAuthenticationFailed indicates a missing or malformed Basic credential.
	ErrAuthenticationFailed = 3001

	// ErrNoPermission indicates a well-formed credential that is not valid for the target account.
	ErrNoPermission = 3002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
