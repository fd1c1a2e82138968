// ABOUTME: This file implements the per-environment OAuth2 token lifecycle manager
// ABOUTME: Single-flight fetch, 60-second expiry safety margin, idempotent invalidation

package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"parking-gateway/models"

	"golang.org/x/sync/singleflight"
)

// DefaultExpiryMargin is the safety margin applied before a cached token's
// real expiry: a token inside the margin is treated as already expired.
const DefaultExpiryMargin = 60 * time.Second

// TokenFetcher performs one client-credentials token request.
type TokenFetcher interface {
	FetchToken(ctx context.Context) (*models.AccessToken, error)
}

// TokenMetrics tracks token lifecycle operations for the admin surface.
type TokenMetrics struct {
	TotalFetches      atomic.Int64
	SuccessfulFetches atomic.Int64
	FailedFetches     atomic.Int64
	SharedResults     atomic.Int64
	Invalidations     atomic.Int64
}

// TokenManager owns exactly one cached-token slot and one set of OAuth2
// credentials. Not shared across environments. At most one token fetch is
// outstanding per manager at any time.
type TokenManager struct {
	fetcher TokenFetcher
	store   TokenStore
	margin  time.Duration
	logger  *slog.Logger

	// Single-flight group serializes concurrent fetches into one network call.
	fetchGroup singleflight.Group

	metrics TokenMetrics
	now     func() time.Time
}

// NewTokenManager creates a token manager with the default expiry margin and
// an in-memory store when store is nil.
func NewTokenManager(fetcher TokenFetcher, store TokenStore, logger *slog.Logger) *TokenManager {
	if store == nil {
		store = NewMemoryTokenStore()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TokenManager{
		fetcher: fetcher,
		store:   store,
		margin:  DefaultExpiryMargin,
		logger:  logger,
		now:     time.Now,
	}
}

// ValidAccessToken returns the cached token when it is still valid past the
// safety margin; otherwise it performs exactly one token fetch. Concurrent
// callers while a fetch is in flight all receive that fetch's outcome.
func (m *TokenManager) ValidAccessToken(ctx context.Context) (string, error) {
	cached, err := m.store.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("token store access failed: %w", err)
	}
	if cached.Valid(m.margin, m.now()) {
		return cached.Token, nil
	}

	result, err, shared := m.fetchGroup.Do("token_fetch", func() (interface{}, error) {
		// Re-check the slot: another flight may have refreshed it between
		// our load and entering the group.
		current, err := m.store.Load(ctx)
		if err == nil && current.Valid(m.margin, m.now()) {
			return current.Token, nil
		}

		m.metrics.TotalFetches.Add(1)
		token, err := m.fetcher.FetchToken(ctx)
		if err != nil {
			m.metrics.FailedFetches.Add(1)
			return nil, fmt.Errorf("authentication failed: %w", err)
		}

		if err := m.store.Save(ctx, token); err != nil {
			m.metrics.FailedFetches.Add(1)
			return nil, fmt.Errorf("failed to cache access token: %w", err)
		}

		m.metrics.SuccessfulFetches.Add(1)
		m.logger.Info("Access token refreshed",
			"expires_at", token.ExpiresAt,
			"time_until_expiry", token.TimeUntilExpiry(m.now()))

		return token.Token, nil
	})
	if err != nil {
		return "", err
	}

	if shared {
		m.metrics.SharedResults.Add(1)
		m.logger.Debug("Token fetch result shared with concurrent caller")
	}

	return result.(string), nil
}

// Invalidate unconditionally clears the cached token regardless of current
// state. Idempotent.
func (m *TokenManager) Invalidate(ctx context.Context) error {
	m.metrics.Invalidations.Add(1)
	m.logger.Info("Cached access token invalidated")
	return m.store.Clear(ctx)
}

// TokenStatus reports the current state of the cached token for diagnostics.
type TokenStatus struct {
	HasToken         bool      `json:"has_token"`
	ExpiresAt        time.Time `json:"expires_at,omitempty"`
	ExpiresInSeconds int64     `json:"expires_in_seconds,omitempty"`
	NeedsRefresh     bool      `json:"needs_refresh"`
}

// Status returns the cached token state without triggering a fetch.
func (m *TokenManager) Status(ctx context.Context) (TokenStatus, error) {
	cached, err := m.store.Load(ctx)
	if err != nil {
		return TokenStatus{}, fmt.Errorf("token store access failed: %w", err)
	}

	if cached == nil || cached.Token == "" {
		return TokenStatus{NeedsRefresh: true}, nil
	}

	now := m.now()
	return TokenStatus{
		HasToken:         true,
		ExpiresAt:        cached.ExpiresAt,
		ExpiresInSeconds: int64(cached.TimeUntilExpiry(now).Seconds()),
		NeedsRefresh:     !cached.Valid(m.margin, now),
	}, nil
}

// Metrics exposes the manager's lifecycle counters.
func (m *TokenManager) Metrics() *TokenMetrics {
	return &m.metrics
}
