/*
Package handler provides the HTTP handlers and routing setup for the account service.

This file defines the main Router, applying middleware like request ids, logging,
panic recovery and CORS before delegating requests to the account handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"useracct/internal/pkg/logx"
	"useracct/internal/pkg/resp"
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// Signup is open; every other account route sits behind RequireCredential.
func Router(deps *AppDeps) http.Handler {
	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"WWW-Authenticate"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, "ok", nil)
	})

	r.Post("/signup", HandleSignup(deps))

	r.Route("/users/{user_id}", func(users chi.Router) {
		users.Use(RequireCredential(deps, PathUserID))
		users.Get("/", HandleGetUser(deps))
		users.Patch("/", HandleUpdateUser(deps))
	})

	r.With(RequireCredential(deps, OwnAccount)).Post("/close", HandleCloseAccount(deps))

	return r
}
