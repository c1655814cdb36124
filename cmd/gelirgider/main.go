package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nambse/gelirgider/internal/cli"
	apphttp "github.com/nambse/gelirgider/internal/http"
	"github.com/nambse/gelirgider/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitStorage(logger, cfg)
	defer repo.Close()

	st := store.New(repo)

	// Warm the projection so the first request is served from memory.
	// A cold database is not fatal; the first successful fetch heals it.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := st.FetchAll(warmCtx); err != nil {
		logger.Warn("Initial projection load failed", "error", err)
	}
	warmCancel()

	srv := apphttp.NewServer(":"+cfg.Port, st, apphttp.Options{
		RequestsPerMinute: cfg.RequestsPerMinute,
	})
	defer srv.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting gelirgider server", "port", cfg.Port, "db", cfg.DBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
