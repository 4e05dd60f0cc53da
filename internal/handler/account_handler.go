package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"useracct/internal/app/account"
	"useracct/internal/pkg/errs"
	"useracct/internal/pkg/logx"
	"useracct/internal/pkg/req"
	"useracct/internal/pkg/resp"
)

// SignupInput is the request body of POST /signup.
type SignupInput struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// HandleSignup creates a new account from a user_id and password.
func HandleSignup(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input SignupInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			logx.FromContext(r.Context()).Warn().Int("code", customErr.Code).Msg("signup: unreadable body")
			resp.RespondError(w, r, errs.NewError(errs.ErrAccountCreationFailed))
			return
		}

		view, err := deps.Accounts.Create(r.Context(), input.UserID, input.Password)
		if err != nil {
			switch {
			case errors.Is(err, account.ErrInvalidInput):
				resp.RespondError(w, r, errs.NewError(errs.ErrAccountCreationFailed))
			case errors.Is(err, account.ErrConflict):
				logx.FromContext(r.Context()).Warn().Str("user_id", input.UserID).Msg("signup conflict: user_id already exists")
				resp.RespondError(w, r, errs.NewError(errs.ErrAccountAlreadyExists))
			default:
				respondInternal(w, r, err, "signup")
			}
			return
		}

		resp.RespondSuccess(w, r, "Account successfully created", view)
	}
}

// HandleGetUser returns the verified caller's account.
func HandleGetUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := GetIdentityFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAuthenticationFailed))
			return
		}

		resp.RespondSuccess(w, r, "User details by user_id", deps.Accounts.Read(identity))
	}
}

// HandleUpdateUser applies a partial nickname/comment update to the verified
// caller's account and reports the resulting value of each supplied field.
func HandleUpdateUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := GetIdentityFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAuthenticationFailed))
			return
		}

		var body map[string]json.RawMessage
		if customErr := req.BindJSON(w, r, &body); customErr != nil || body == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAuthenticationFailed))
			return
		}

		patch, err := decodePatch(body)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAuthenticationFailed))
			return
		}

		changes, err := deps.Accounts.Update(r.Context(), identity.UserID, patch)
		if err != nil {
			if errors.Is(err, account.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}
			respondInternal(w, r, err, "update user")
			return
		}

		resp.RespondSuccess(w, r, "User successfully updated", []account.Changes{changes})
	}
}

// HandleCloseAccount deletes the verified caller's account.
func HandleCloseAccount(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := GetIdentityFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAuthenticationFailed))
			return
		}

		if err := deps.Accounts.Delete(r.Context(), identity.UserID); err != nil {
			if errors.Is(err, account.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrAccountDeletionFailed))
				return
			}
			respondInternal(w, r, err, "close account")
			return
		}

		logx.FromContext(r.Context()).Info().Msg("account closed")
		resp.RespondSuccess(w, r, "Account successfully deleted", nil)
	}
}

// decodePatch reads the optional nickname and comment members of a PATCH body.
// A member set to JSON null counts as supplied and empty.
func decodePatch(body map[string]json.RawMessage) (account.Patch, error) {
	var (
		patch account.Patch
		err   error
	)
	if patch.Nickname, err = optionalString(body, "nickname"); err != nil {
		return account.Patch{}, err
	}
	if patch.Comment, err = optionalString(body, "comment"); err != nil {
		return account.Patch{}, err
	}
	return patch, nil
}

func optionalString(body map[string]json.RawMessage, key string) (*string, error) {
	raw, ok := body[key]
	if !ok {
		return nil, nil
	}

	var value *string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	if value == nil {
		empty := ""
		return &empty, nil
	}
	return value, nil
}
