/*
Package resp provides helper functions for constructing and sending standardized HTTP JSON responses.

Successful responses carry a message and an optional user payload; error responses carry
the business code and message of an errs.CustomError.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"useracct/internal/pkg/auth/basic"
	"useracct/internal/pkg/errs"
	"useracct/internal/pkg/logx"
)

// JSONResponse defines the standardized JSON response structure returned by the application to clients.
type JSONResponse struct {
	// Code is the business error code; it is omitted on success.
	Code int `json:"code,omitempty"`

	// Message is the client-facing status description or error message.
	Message string `json:"message"`

	// User is the optional account payload of a successful request.
	User any `json:"user,omitempty"`
}

// RespondJSON is a generic response function used to set the Content-Type and send the JSON payload.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.FromContext(r.Context()).Error().
			Err(err).
			Int("http_status", httpStatus).
			Msg("Error encoding JSON response")

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	_, _ = w.Write(response)
}

// RespondSuccess sends an HTTP 200 response with message and an optional user payload.
func RespondSuccess(w http.ResponseWriter, r *http.Request, message string, user any) {
	RespondJSON(w, r, http.StatusOK, JSONResponse{
		Message: message,
		User:    user,
	})
}

// RespondError sends an HTTP response containing custom error information.
// 401 responses also carry the Basic authentication challenge.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	if customErr.Status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", basic.Challenge)
	}

	RespondJSON(w, r, customErr.Status, JSONResponse{
		Code:    customErr.Code,
		Message: customErr.Message,
	})
}
