/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},

	// 2xxx: Account Lifecycle Errors
	ErrAccountCreationFailed: {Code: ErrAccountCreationFailed, Message: "Account creation failed", Status: http.StatusBadRequest},
	ErrAccountAlreadyExists:  {Code: ErrAccountAlreadyExists, Message: "Account creation failed", Status: http.StatusConflict},
	ErrUserNotFound:          {Code: ErrUserNotFound, Message: "No user found", Status: http.StatusNotFound},
	ErrAccountDeletionFailed: {Code: ErrAccountDeletionFailed, Message: "Account deletion failed", Status: http.StatusNotFound},

	// 3xxx: Authentication and Authorization Errors
	ErrAuthenticationFailed: {Code: ErrAuthenticationFailed, Message: "Authentication failed", Status: http.StatusUnauthorized},
	ErrNoPermission:         {Code: ErrNoPermission, Message: "No permission for update", Status: http.StatusForbidden},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
