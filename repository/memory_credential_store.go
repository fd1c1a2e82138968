// ABOUTME: In-memory CredentialOverrideStore implementation
// ABOUTME: Default for tests and deployments without durable override storage

package repository

import (
	"context"
	"sync"

	"parking-gateway/models"
)

// MemoryCredentialStore keeps user overrides in process memory.
type MemoryCredentialStore struct {
	mu        sync.RWMutex
	overrides map[models.Environment]models.ClientCredentials
}

// NewMemoryCredentialStore creates an empty in-memory override store.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{
		overrides: make(map[models.Environment]models.ClientCredentials),
	}
}

// Get returns the stored override or ErrCredentialsNotFound.
func (s *MemoryCredentialStore) Get(ctx context.Context, env models.Environment) (*models.ClientCredentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	creds, ok := s.overrides[env]
	if !ok {
		return nil, ErrCredentialsNotFound
	}
	return &creds, nil
}

// Save stores an override for the environment.
func (s *MemoryCredentialStore) Save(ctx context.Context, env models.Environment, creds models.ClientCredentials) error {
	if !creds.IsComplete() {
		return ErrInvalidCredentials
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[env] = creds
	return nil
}

// Delete removes an override, or returns ErrCredentialsNotFound when none
// exists.
func (s *MemoryCredentialStore) Delete(ctx context.Context, env models.Environment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.overrides[env]; !ok {
		return ErrCredentialsNotFound
	}
	delete(s.overrides, env)
	return nil
}
