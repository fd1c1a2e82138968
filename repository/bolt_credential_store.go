// ABOUTME: bbolt-backed CredentialOverrideStore implementation
// ABOUTME: Durable user overrides in a 0600 local file, one bucket keyed by environment

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"parking-gateway/models"

	bolt "go.etcd.io/bbolt"
)

var credentialsBucket = []byte("credential_overrides")

// BoltCredentialStore persists user credential overrides in a local bbolt
// database. The file is created with owner-only permissions.
type BoltCredentialStore struct {
	db     *bolt.DB
	logger *slog.Logger
}

// NewBoltCredentialStore opens (creating if needed) the override database at
// path. Call Close when done.
func NewBoltCredentialStore(path string, logger *slog.Logger) (*BoltCredentialStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(credentialsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize credential bucket: %w", err)
	}

	return &BoltCredentialStore{db: db, logger: logger}, nil
}

// Close releases the underlying database file.
func (s *BoltCredentialStore) Close() error {
	return s.db.Close()
}

// Get returns the stored override or ErrCredentialsNotFound.
func (s *BoltCredentialStore) Get(ctx context.Context, env models.Environment) (*models.ClientCredentials, error) {
	var creds *models.ClientCredentials

	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(credentialsBucket).Get([]byte(env))
		if raw == nil {
			return ErrCredentialsNotFound
		}

		var decoded models.ClientCredentials
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return fmt.Errorf("corrupt credential record for %q: %w", env, err)
		}
		creds = &decoded
		return nil
	})
	if err != nil {
		return nil, err
	}

	return creds, nil
}

// Save stores an override for the environment.
func (s *BoltCredentialStore) Save(ctx context.Context, env models.Environment, creds models.ClientCredentials) error {
	if !creds.IsComplete() {
		return ErrInvalidCredentials
	}

	raw, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to serialize credentials: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(credentialsBucket).Put([]byte(env), raw)
	})
	if err != nil {
		return fmt.Errorf("failed to persist credential override: %w", err)
	}

	s.logger.Info("Credential override saved", "environment", string(env))
	return nil
}

// Delete removes an override, or returns ErrCredentialsNotFound when none
// exists.
func (s *BoltCredentialStore) Delete(ctx context.Context, env models.Environment) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(credentialsBucket)
		if bucket.Get([]byte(env)) == nil {
			return ErrCredentialsNotFound
		}
		return bucket.Delete([]byte(env))
	})
	if err != nil {
		return err
	}

	s.logger.Info("Credential override deleted", "environment", string(env))
	return nil
}
