// ABOUTME: This file implements override-preferring credential resolution
// ABOUTME: User overrides win over bundled defaults; deletes never touch defaults

package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"parking-gateway/models"
)

// LayeredCredentialRepository combines a user-override store with the
// bundled defaults, implementing the CredentialRepository contract.
type LayeredCredentialRepository struct {
	overrides CredentialOverrideStore
	bundled   *BundledCredentials
	logger    *slog.Logger
}

// NewLayeredCredentialRepository builds the credential store facade.
func NewLayeredCredentialRepository(
	overrides CredentialOverrideStore,
	bundled *BundledCredentials,
	logger *slog.Logger,
) *LayeredCredentialRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &LayeredCredentialRepository{
		overrides: overrides,
		bundled:   bundled,
		logger:    logger,
	}
}

// GetCredentials returns the user override when present, else the bundled
// default, else ErrCredentialsNotFound.
func (r *LayeredCredentialRepository) GetCredentials(ctx context.Context, env models.Environment) (*models.ClientCredentials, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}

	creds, err := r.overrides.Get(ctx, env)
	if err == nil {
		r.logger.Debug("Resolved credentials from user override", "environment", string(env))
		return creds, nil
	}
	if !errors.Is(err, ErrCredentialsNotFound) {
		return nil, fmt.Errorf("override store access failed: %w", err)
	}

	return r.bundled.Get(env)
}

// SaveCredentials persists a user override for the environment.
func (r *LayeredCredentialRepository) SaveCredentials(ctx context.Context, env models.Environment, creds models.ClientCredentials) error {
	if err := env.Validate(); err != nil {
		return err
	}
	return r.overrides.Save(ctx, env, creds)
}

// DeleteCredentials removes only a user override; the bundled default stays
// in place. Returns ErrNoOverrideToDelete when no override exists.
func (r *LayeredCredentialRepository) DeleteCredentials(ctx context.Context, env models.Environment) error {
	if err := env.Validate(); err != nil {
		return err
	}

	err := r.overrides.Delete(ctx, env)
	if errors.Is(err, ErrCredentialsNotFound) {
		return ErrNoOverrideToDelete
	}
	return err
}

// HasUserOverride reports whether the environment's effective credentials
// come from a user override rather than the bundled default.
func (r *LayeredCredentialRepository) HasUserOverride(ctx context.Context, env models.Environment) (bool, error) {
	if err := env.Validate(); err != nil {
		return false, err
	}

	_, err := r.overrides.Get(ctx, env)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrCredentialsNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("override store access failed: %w", err)
}
