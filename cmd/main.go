package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parking-gateway/config"
	"parking-gateway/handler"
	"parking-gateway/repository"
	"parking-gateway/service"
)

func main() {
	// Parse command line flags
	healthCheck := flag.Bool("health-check", false, "Perform health check and exit")
	flag.Parse()

	// Setup structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if *healthCheck {
		performHealthCheckWithOutput()
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("Parking gateway starting",
		"service", cfg.ServiceName,
		"admin_addr", cfg.AdminAddr,
		"credential_store", cfg.CredentialStore)

	if err := run(cfg, logger); err != nil {
		logger.Error("Parking gateway failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Parking gateway stopped")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	bundled, err := repository.LoadBundledCredentials(cfg.SecretsFile)
	if err != nil {
		// Missing or malformed bundled credentials are fatal, not retryable.
		return fmt.Errorf("bundled credentials unavailable: %w", err)
	}

	overrides, closeStore, err := buildOverrideStore(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize credential override store: %w", err)
	}
	defer closeStore()

	credentials := repository.NewLayeredCredentialRepository(overrides, bundled, logger)
	registry := service.NewRegistry(cfg, credentials, nil, logger)
	adminHandler := handler.NewAdminHandler(registry, credentials, logger)

	server := &http.Server{
		Addr:         cfg.AdminAddr,
		Handler:      adminHandler.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Admin API listening", "addr", cfg.AdminAddr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("admin server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("admin server shutdown failed: %w", err)
	}

	return nil
}

func buildOverrideStore(cfg *config.Config, logger *slog.Logger) (repository.CredentialOverrideStore, func(), error) {
	noop := func() {}

	switch cfg.CredentialStore {
	case "bolt":
		store, err := repository.NewBoltCredentialStore(cfg.BoltPath, logger)
		if err != nil {
			return nil, noop, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("Failed to close override store", "error", err)
			}
		}, nil
	case "kubernetes":
		store, err := repository.NewKubernetesSecretCredentialStore(
			cfg.Kubernetes.Namespace, cfg.Kubernetes.SecretName, logger)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	default:
		return repository.NewMemoryCredentialStore(), noop, nil
	}
}
