package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/kartikn/roomfund/internal/auth"
	"github.com/kartikn/roomfund/internal/server"
	"github.com/kartikn/roomfund/internal/storage/sqlite"
	"github.com/kartikn/roomfund/pkg/logging"
)

const tokenDuration = 24 * time.Hour

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/roomfund.db")
	port := getEnv("PORT", "8080")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Warn("JWT_SECRET not set, using an insecure development secret")
		jwtSecret = "roomfund-dev-secret"
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	tokens := auth.NewTokenManager(jwtSecret, tokenDuration)
	srv := server.New(store, tokens)

	addr := fmt.Sprintf(":%s", port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
