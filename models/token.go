// ABOUTME: This file defines the cached OAuth2 access token domain model
// ABOUTME: Token and expiry are always written together, never partially

package models

import (
	"time"
)

// AccessToken represents a cached OAuth2 bearer token with its computed expiry.
type AccessToken struct {
	Token     string    `json:"access_token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	IssuedAt  time.Time `json:"issued_at"`
}

// Valid reports whether the token can still be used, given the safety
// margin applied before the real expiry.
func (t *AccessToken) Valid(margin time.Duration, now time.Time) bool {
	if t == nil || t.Token == "" {
		return false
	}
	return now.Add(margin).Before(t.ExpiresAt)
}

// TimeUntilExpiry returns the duration until the token expires.
func (t *AccessToken) TimeUntilExpiry(now time.Time) time.Duration {
	return t.ExpiresAt.Sub(now)
}
