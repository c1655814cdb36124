// Package cli provides common startup utilities for cmd entrypoints.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/nambse/gelirgider/internal/config"
	"github.com/nambse/gelirgider/internal/storage"
)

// SetupLogger initializes structured logging with default settings.
// Returns the configured logger and sets it as the default logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitStorage opens (bootstrapping if needed) the SQLite repository.
// Returns the repository or exits the process on failure.
func InitStorage(logger *slog.Logger, cfg *config.Config) *storage.SQLiteRepository {
	repo, err := storage.NewSQLiteRepository(cfg.DBPath, storage.Options{SeedPath: cfg.SeedDBPath})
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	return repo
}
