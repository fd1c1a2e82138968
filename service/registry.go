// ABOUTME: This file implements the per-environment service registry
// ABOUTME: Lazily builds API services with isolated token caches over one shared transport

package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"parking-gateway/config"
	"parking-gateway/driver"
	"parking-gateway/models"
	"parking-gateway/repository"

	"github.com/google/uuid"
)

// Registry maps an environment to its API service instance. Instances are
// created on first use and reused afterwards. Each environment gets its own
// token manager and token cache; only the HTTP transport is shared.
type Registry struct {
	cfg         *config.Config
	credentials repository.CredentialRepository
	httpClient  *http.Client
	logger      *slog.Logger

	mu       sync.Mutex
	services map[models.Environment]*ParkingService
	managers map[models.Environment]*TokenManager
}

// NewRegistry creates a registry over the given credential repository. Pass a
// nil httpClient for a default shared transport.
func NewRegistry(cfg *config.Config, credentials repository.CredentialRepository, httpClient *http.Client, logger *slog.Logger) *Registry {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Registry{
		cfg:         cfg,
		credentials: credentials,
		httpClient:  httpClient,
		logger:      logger,
		services:    make(map[models.Environment]*ParkingService),
		managers:    make(map[models.Environment]*TokenManager),
	}
}

// ServiceFor returns the API service for an environment, building it on
// first use. Credentials are resolved at construction time.
func (r *Registry) ServiceFor(ctx context.Context, env models.Environment) (*ParkingService, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if svc, ok := r.services[env]; ok {
		return svc, nil
	}

	svc, manager, err := r.build(ctx, env)
	if err != nil {
		return nil, err
	}

	r.services[env] = svc
	r.managers[env] = manager
	r.logger.Info("API service created", "environment", string(env))

	return svc, nil
}

// TokenManagerFor returns the token manager backing an environment's service,
// building the service on first use.
func (r *Registry) TokenManagerFor(ctx context.Context, env models.Environment) (*TokenManager, error) {
	if _, err := r.ServiceFor(ctx, env); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.managers[env], nil
}

// Reset discards the environment's instance so the next use rebuilds it with
// freshly resolved credentials. No-op when no instance exists.
func (r *Registry) Reset(env models.Environment) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.services, env)
	delete(r.managers, env)
}

func (r *Registry) build(ctx context.Context, env models.Environment) (*ParkingService, *TokenManager, error) {
	envCfg, err := r.cfg.ForEnvironment(env)
	if err != nil {
		return nil, nil, err
	}

	creds, err := r.credentials.GetCredentials(ctx, env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve credentials for %s: %w", env, err)
	}

	traceID := r.cfg.TraceID
	if traceID == "" {
		traceID = uuid.New().String()
	}

	tokenClient := driver.NewTokenClient(driver.OAuthConfig{
		TokenURL:        envCfg.TokenURL,
		ClientID:        creds.ClientID,
		ClientSecret:    creds.ClientSecret,
		Audience:        envCfg.Audience,
		TraceHeaderName: r.cfg.TraceHeaderName,
		TraceID:         traceID,
	}, r.httpClient, r.logger.With("environment", string(env)))

	manager := NewTokenManager(tokenClient, nil, r.logger.With("environment", string(env)))

	apiClient := driver.NewAPIClient(r.httpClient, r.cfg.TraceHeaderName, traceID, r.logger.With("environment", string(env)))

	svc := NewParkingService(envCfg.BaseURL, apiClient, manager, r.logger.With("environment", string(env)))

	return svc, manager, nil
}
