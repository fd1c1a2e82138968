// ABOUTME: This file defines the credential store contracts and sentinel errors
// ABOUTME: User overrides and bundled defaults are separate storage concerns

package repository

import (
	"context"
	"errors"

	"parking-gateway/models"
)

// CredentialRepository resolves the client-credentials pair for an
// environment, preferring a securely-stored user override over the bundled
// default.
type CredentialRepository interface {
	// GetCredentials returns the effective credentials for the environment.
	GetCredentials(ctx context.Context, env models.Environment) (*models.ClientCredentials, error)

	// SaveCredentials persists a user override; subsequent reads for the
	// environment return it.
	SaveCredentials(ctx context.Context, env models.Environment, creds models.ClientCredentials) error

	// DeleteCredentials removes only a user override, never the bundled
	// default. Returns ErrNoOverrideToDelete when no override exists.
	DeleteCredentials(ctx context.Context, env models.Environment) error

	// HasUserOverride distinguishes override vs default source. Display
	// only; carries no other contract.
	HasUserOverride(ctx context.Context, env models.Environment) (bool, error)
}

// CredentialOverrideStore is the secure per-environment key/value store
// holding user-provided overrides.
type CredentialOverrideStore interface {
	Get(ctx context.Context, env models.Environment) (*models.ClientCredentials, error)
	Save(ctx context.Context, env models.Environment, creds models.ClientCredentials) error
	Delete(ctx context.Context, env models.Environment) error
}

// Repository error definitions.
var (
	// ErrCredentialsNotFound signals that neither an override nor a bundled
	// default exists for the requested environment.
	ErrCredentialsNotFound = errors.New("no credentials configured for environment")

	// ErrNoOverrideToDelete signals a delete against an environment that has
	// no user override.
	ErrNoOverrideToDelete = errors.New("no user credential override to delete")

	// ErrInvalidCredentials signals a save with an incomplete pair.
	ErrInvalidCredentials = errors.New("client_id and client_secret are both required")

	// ErrBundledSecretsMissing is fatal at startup: the application cannot
	// authenticate at all without the bundled defaults file.
	ErrBundledSecretsMissing = errors.New("bundled credentials file is missing")

	// ErrBundledSecretsMalformed is fatal at startup: the bundled defaults
	// file exists but cannot be decoded.
	ErrBundledSecretsMalformed = errors.New("bundled credentials file is malformed")
)
