// Command jurnal-emulator serves a local copy of the journal and general
// ledger REST API for development and integration tests.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shunichi-ikebuchi/jurnal/internal/emulator/api"
	"github.com/shunichi-ikebuchi/jurnal/internal/emulator/auth"
	"github.com/shunichi-ikebuchi/jurnal/internal/emulator/store"
)

const (
	defaultPort   = "8080"
	defaultDBPath = "./data/emulator.db"

	// staticTokenTTL is how long EMULATOR_TOKEN stays valid.
	staticTokenTTL = 365 * 24 * time.Hour
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		slog.Error("emulator failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	port := getEnvOrDefault("PORT", defaultPort)
	dbPath := getEnvOrDefault("EMULATOR_DB_PATH", defaultDBPath)

	st, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	slog.Info("database initialized", "db_path", dbPath)

	if err := seed(st, os.Getenv("EMULATOR_SEED")); err != nil {
		return err
	}

	tokens := auth.NewTokenManager(st)
	if token := os.Getenv("EMULATOR_TOKEN"); token != "" {
		if err := tokens.Register(token, staticTokenTTL); err != nil {
			return err
		}
		slog.Info("static token registered")
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      api.NewRouter(st, tokens, logger, splitList(os.Getenv("EMULATOR_CORS_ORIGINS"))...),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	slog.Info("starting journal API emulator", "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// seed loads reference data from path, or the built-in set when the store
// has none yet.
func seed(st *store.Store, path string) error {
	if path != "" {
		data, err := store.LoadSeed(path)
		if err != nil {
			return err
		}
		if err := st.Seed(data); err != nil {
			return err
		}
		slog.Info("reference data loaded", "seed", path, "accounts", len(data.Chart))
		return nil
	}

	seeded, err := st.Seeded()
	if err != nil {
		return fmt.Errorf("failed to check reference data: %w", err)
	}
	if seeded {
		return nil
	}

	if err := st.Seed(store.DefaultSeed()); err != nil {
		return err
	}
	slog.Info("default reference data loaded")
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
