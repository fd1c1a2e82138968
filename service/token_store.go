// ABOUTME: This file defines the token cache slot behind the token manager
// ABOUTME: Interface over {in-memory, persistent}; token and expiry move together

package service

import (
	"context"
	"sync"

	"parking-gateway/models"
)

// TokenStore is the single cached-token slot owned by one TokenManager.
// Implementations must write token and expiry atomically from the caller's
// perspective; a nil load means the slot is empty.
type TokenStore interface {
	Load(ctx context.Context) (*models.AccessToken, error)
	Save(ctx context.Context, token *models.AccessToken) error
	Clear(ctx context.Context) error
}

// MemoryTokenStore is the default in-memory slot.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token *models.AccessToken
}

// NewMemoryTokenStore creates an empty slot.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Load returns the cached token, or nil when the slot is empty.
func (s *MemoryTokenStore) Load(ctx context.Context) (*models.AccessToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == nil {
		return nil, nil
	}
	copied := *s.token
	return &copied, nil
}

// Save replaces the slot contents in one write.
func (s *MemoryTokenStore) Save(ctx context.Context, token *models.AccessToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == nil {
		s.token = nil
		return nil
	}
	copied := *token
	s.token = &copied
	return nil
}

// Clear empties the slot. Idempotent.
func (s *MemoryTokenStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	return nil
}
