/*
Package main is the entry point for the account service.

It is responsible for loading configuration, initializing the global logging system,
opening the snapshot store, optionally seeding the test account, setting up the HTTP
server, and gracefully handling operating system interrupt signals (SIGINT, SIGTERM)
to ensure a smooth server shutdown.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"useracct/internal/app/account"
	"useracct/internal/app/storage"
	"useracct/internal/configs"
	"useracct/internal/handler"
	"useracct/internal/pkg/logx"
)

const (
	seedUserID   = "TaroYamada"
	seedPassword = "PaSSwd4TY"
	seedNickname = "たろー"
	seedComment  = "僕は元気です"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Str("store_backend", cfg.Storage.Backend).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewSnapshotStore(ctx, cfg.Storage)
	if err != nil {
		logx.Fatal(err, "Failed to open snapshot store", "backend", cfg.Storage.Backend)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logx.Error(err, "Failed to close snapshot store")
		}
	}()

	accounts := account.NewService(store)

	if cfg.SeedTestUser {
		if err := seedTestUser(ctx, accounts); err != nil {
			logx.Error(err, "Failed to seed test user", "user_id", seedUserID)
		}
	}

	router := handler.Router(&handler.AppDeps{
		Config:   cfg,
		Accounts: accounts,
	})

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logx.Info("Account service listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
		return
	}

	logx.Info("Server gracefully stopped.")
}

// seedTestUser creates the well-known test account with a nickname and comment.
// An existing account with that id is left untouched. If the profile cannot be
// written, the new account is removed again.
func seedTestUser(ctx context.Context, accounts *account.Service) error {
	if _, err := accounts.Create(ctx, seedUserID, seedPassword); err != nil {
		if errors.Is(err, account.ErrConflict) {
			return nil
		}
		return err
	}

	nickname, comment := seedNickname, seedComment
	if _, err := accounts.Update(ctx, seedUserID, account.Patch{Nickname: &nickname, Comment: &comment}); err != nil {
		// Roll back so the next start does not take a bare account for a finished seed.
		if delErr := accounts.Delete(ctx, seedUserID); delErr != nil {
			logx.Warn("Test user left partially seeded", "user_id", seedUserID, "rollback_error", delErr.Error())
		}
		return err
	}

	logx.Info("Seeded test user", "user_id", seedUserID)
	return nil
}
