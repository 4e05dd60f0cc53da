package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"useracct/internal/app/account"
	"useracct/internal/pkg/errs"
	"useracct/internal/pkg/logx"
	"useracct/internal/pkg/resp"
)

// Define Context Key for storing the verified identity, preventing key collisions with other packages.
type contextKey string

const (
	// ContextIdentityKey is the key used to store the verified *account.Identity in the request Context.
	ContextIdentityKey contextKey = "account_identity"
)

// TargetFunc returns the user id a request acts on. An empty result means the
// caller's own account, whichever it is.
type TargetFunc func(r *http.Request) string

// PathUserID targets the account named by the {user_id} route parameter.
func PathUserID(r *http.Request) string {
	return chi.URLParam(r, "user_id")
}

// OwnAccount targets the caller's own account.
func OwnAccount(*http.Request) string {
	return ""
}

// RequireCredential returns a middleware that admits a request only when its
// Basic credential is valid for the account chosen by target. Missing or
// malformed credentials get 401; valid-looking credentials that fail any check
// get the same 403 whatever the failing check was.
func RequireCredential(deps *AppDeps, target TargetFunc) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := deps.Accounts.Verify(r.Context(), r.Header.Get("Authorization"), target(r))
			if err != nil {
				switch {
				case errors.Is(err, account.ErrUnauthenticated):
					resp.RespondError(w, r, errs.NewError(errs.ErrAuthenticationFailed))
				case errors.Is(err, account.ErrForbidden):
					resp.RespondError(w, r, errs.NewError(errs.ErrNoPermission))
				default:
					respondInternal(w, r, err, "verify credential")
				}
				return
			}

			logx.AnnotateUser(r.Context(), identity.UserID)

			ctx := context.WithValue(r.Context(), ContextIdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentityFromContext extracts the identity stored by RequireCredential.
// It returns nil on routes that are not guarded.
func GetIdentityFromContext(r *http.Request) *account.Identity {
	identity, ok := r.Context().Value(ContextIdentityKey).(*account.Identity)
	if !ok {
		return nil
	}
	return identity
}

// respondInternal logs err against the request and sends a generic 500.
func respondInternal(w http.ResponseWriter, r *http.Request, err error, operation string) {
	logx.FromContext(r.Context()).Error().
		Err(err).
		Str("operation", operation).
		Msg("Account operation failed")
	resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
}
