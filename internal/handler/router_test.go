package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"useracct/internal/app/account"
	"useracct/internal/app/storage"
	"useracct/internal/configs"
	"useracct/internal/pkg/auth/basic"
)

func newTestRouter(t *testing.T, store account.Store) http.Handler {
	t.Helper()
	return Router(&AppDeps{
		Config:   &configs.AppConfig{Environment: "test", Port: 8080},
		Accounts: account.NewService(store),
	})
}

func do(t *testing.T, h http.Handler, method, path, body, auth string) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	if auth != "" {
		r.Header.Set("Authorization", auth)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func signup(t *testing.T, h http.Handler, userID, password string) {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/signup", `{"user_id":"`+userID+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, storage.NewMemoryStore())

	rec := do(t, h, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"ok"}`, rec.Body.String())
}

func TestSignup(t *testing.T) {
	h := newTestRouter(t, storage.NewMemoryStore())

	rec := do(t, h, http.MethodPost, "/signup", `{"user_id":"alice01","password":"Secret12"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"message":"Account successfully created","user":{"user_id":"alice01","nickname":"alice01"}}`,
		rec.Body.String())

	rec = do(t, h, http.MethodPost, "/signup", `{"user_id":"alice01","password":"Other123"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Account creation failed", decodeBody(t, rec)["message"])
}

func TestSignup_InvalidInput(t *testing.T) {
	h := newTestRouter(t, storage.NewMemoryStore())

	for _, body := range []string{
		`{"user_id":"alice","password":"Secret12"}`,
		`{"user_id":"alice01","password":"short"}`,
		`{"user_id":"alice01"}`,
		`{"user_id":"alice01","password":"Secret12"`,
		`{"user_id":12345678,"password":"Secret12"}`,
		`[]`,
	} {
		rec := do(t, h, http.MethodPost, "/signup", body, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.Equal(t, "Account creation failed", decodeBody(t, rec)["message"], "body %s", body)
	}
}

func TestGetUser(t *testing.T) {
	h := newTestRouter(t, storage.NewMemoryStore())
	signup(t, h, "alice01", "Secret12")

	rec := do(t, h, http.MethodGet, "/users/alice01", "", basic.Header("alice01", "Secret12"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"message":"User details by user_id","user":{"user_id":"alice01","nickname":"alice01"}}`,
		rec.Body.String())
}

func TestGetUser_AuthFailures(t *testing.T) {
	h := newTestRouter(t, storage.NewMemoryStore())
	signup(t, h, "alice01", "Secret12")
	signup(t, h, "bobby01", "Passw0rd")

	cases := []struct {
		name   string
		path   string
		auth   string
		status int
	}{
		{"missing header", "/users/alice01", "", http.StatusUnauthorized},
		{"bearer scheme", "/users/alice01", "Bearer token", http.StatusUnauthorized},
		{"malformed base64", "/users/alice01", "Basic %%%", http.StatusUnauthorized},
		{"no separator", "/users/alice01", "Basic YWxpY2UwMQ==", http.StatusUnauthorized},
		{"wrong password", "/users/alice01", basic.Header("alice01", "Wrong123"), http.StatusForbidden},
		{"unknown user", "/users/nobody01", basic.Header("nobody01", "Secret12"), http.StatusForbidden},
		{"someone else's account", "/users/bobby01", basic.Header("alice01", "Secret12"), http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tc.path, "", tc.auth)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusUnauthorized {
				assert.Equal(t, basic.Challenge, rec.Header().Get("WWW-Authenticate"))
				assert.Equal(t, "Authentication failed", decodeBody(t, rec)["message"])
			}
		})
	}
}

func TestForbiddenResponsesAreIndistinguishable(t *testing.T) {
	h := newTestRouter(t, storage.NewMemoryStore())
	signup(t, h, "alice01", "Secret12")

	wrongPassword := do(t, h, http.MethodGet, "/users/alice01", "", basic.Header("alice01", "Wrong123"))
	unknownUser := do(t, h, http.MethodGet, "/users/alice01", "", basic.Header("nobody01", "Secret12"))

	assert.Equal(t, http.StatusForbidden, wrongPassword.Code)
	assert.Equal(t, wrongPassword.Code, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	assert.Equal(t, "No permission for update", decodeBody(t, wrongPassword)["message"])
}

func TestUpdateUser(t *testing.T) {
	h := newTestRouter(t, storage.NewMemoryStore())
	signup(t, h, "alice01", "Secret12")
	auth := basic.Header("alice01", "Secret12")

	rec := do(t, h, http.MethodPatch, "/users/alice01", `{"nickname":"Alice","comment":"hello"}`, auth)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"message":"User successfully updated","user":[{"nickname":"Alice","comment":"hello"}]}`,
		rec.Body.String())

	rec = do(t, h, http.MethodGet, "/users/alice01", "", auth)
	assert.JSONEq(t,
		`{"message":"User details by user_id","user":{"user_id":"alice01","nickname":"Alice","comment":"hello"}}`,
		rec.Body.String())

	rec = do(t, h, http.MethodPatch, "/users/alice01", `{"nickname":"","comment":""}`, auth)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"message":"User successfully updated","user":[{"nickname":"alice01","comment":""}]}`,
		rec.Body.String())

	rec = do(t, h, http.MethodGet, "/users/alice01", "", auth)
	assert.JSONEq(t,
		`{"message":"User details by user_id","user":{"user_id":"alice01","nickname":"alice01"}}`,
		rec.Body.String())
}

func TestUpdateUser_PartialAndNull(t *testing.T) {
	h := newTestRouter(t, storage.NewMemoryStore())
	signup(t, h, "alice01", "Secret12")
	auth := basic.Header("alice01", "Secret12")

	rec := do(t, h, http.MethodPatch, "/users/alice01", `{"comment":"hi"}`, auth)
	assert.JSONEq(t, `{"message":"User successfully updated","user":[{"comment":"hi"}]}`, rec.Body.String())

	rec = do(t, h, http.MethodPatch, "/users/alice01", `{"nickname":null}`, auth)
	assert.JSONEq(t, `{"message":"User successfully updated","user":[{"nickname":"alice01"}]}`, rec.Body.String())

	rec = do(t, h, http.MethodPatch, "/users/alice01", `{"password":"Changed12"}`, auth)
	assert.JSONEq(t, `{"message":"User successfully updated","user":[{}]}`, rec.Body.String())

	// Unknown members are ignored; the password is unchanged.
	rec = do(t, h, http.MethodGet, "/users/alice01", "", auth)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateUser_MalformedBodyIsUnauthenticated(t *testing.T) {
	h := newTestRouter(t, storage.NewMemoryStore())
	signup(t, h, "alice01", "Secret12")
	auth := basic.Header("alice01", "Secret12")

	for _, body := range []string{`{"nickname":`, `{"nickname":5}`, `"text"`, `null`, `[]`} {
		rec := do(t, h, http.MethodPatch, "/users/alice01", body, auth)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "body %s", body)
	}
}

func TestUpdateUser_Forbidden(t *testing.T) {
	h := newTestRouter(t, storage.NewMemoryStore())
	signup(t, h, "alice01", "Secret12")
	signup(t, h, "bobby01", "Passw0rd")

	rec := do(t, h, http.MethodPatch, "/users/bobby01", `{"nickname":"pwned"}`, basic.Header("alice01", "Secret12"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodGet, "/users/bobby01", "", basic.Header("bobby01", "Passw0rd"))
	assert.Equal(t, "bobby01", decodeBody(t, rec)["user"].(map[string]any)["nickname"])
}

func TestCloseAccount(t *testing.T) {
	h := newTestRouter(t, storage.NewMemoryStore())
	signup(t, h, "alice01", "Secret12")
	auth := basic.Header("alice01", "Secret12")

	rec := do(t, h, http.MethodPost, "/close", "", auth)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Account successfully deleted"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/users/alice01", "", auth)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodPost, "/close", "", auth)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodPost, "/close", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// vanishingStore drops userID from the snapshot after the first Load, which
// simulates another request deleting the account between verification and
// the operation itself.
type vanishingStore struct {
	account.Store
	userID string
	once   sync.Once
}

func (v *vanishingStore) Load(ctx context.Context) (account.Snapshot, error) {
	snap, err := v.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	v.once.Do(func() {
		next := snap.Clone()
		delete(next, v.userID)
		err = v.Store.Save(ctx, next)
	})
	return snap, err
}

func TestRecordVanishesMidRequest(t *testing.T) {
	seed := func(t *testing.T) *storage.MemoryStore {
		t.Helper()
		store := storage.NewMemoryStore()
		require.NoError(t, store.Save(context.Background(), account.Snapshot{
			"alice01": {Password: "Secret12", Nickname: "alice01"},
		}))
		return store
	}
	auth := basic.Header("alice01", "Secret12")

	t.Run("patch", func(t *testing.T) {
		h := newTestRouter(t, &vanishingStore{Store: seed(t), userID: "alice01"})
		rec := do(t, h, http.MethodPatch, "/users/alice01", `{"nickname":"x"}`, auth)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "No user found", decodeBody(t, rec)["message"])
	})

	t.Run("close", func(t *testing.T) {
		h := newTestRouter(t, &vanishingStore{Store: seed(t), userID: "alice01"})
		rec := do(t, h, http.MethodPost, "/close", "", auth)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Account deletion failed", decodeBody(t, rec)["message"])
	})
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestRouter(t, storage.NewMemoryStore())

	rec := do(t, h, http.MethodGet, "/signup", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
