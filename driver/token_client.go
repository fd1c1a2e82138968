// ABOUTME: This file implements the OAuth2 client-credentials token endpoint client
// ABOUTME: Form-encoded fetch with tolerant expiry resolution across server variants

package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"parking-gateway/models"

	"github.com/golang-jwt/jwt/v4"
)

// defaultTokenValidity is assumed when the token response carries neither an
// expires_in nor a parseable expires_at, and the access token itself exposes
// no exp claim.
const defaultTokenValidity = 3600 * time.Second

// OAuthConfig is the immutable per-environment configuration for token
// fetches. Constructed once per environment; never mutated.
type OAuthConfig struct {
	TokenURL        string
	ClientID        string
	ClientSecret    string
	Audience        string
	TraceHeaderName string
	TraceID         string
}

// tokenEndpointResponse is the wire shape of a 2xx token response. The
// server may report expiry as relative seconds or an absolute timestamp.
type tokenEndpointResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	ExpiresAt   string `json:"expires_at"`
	Scope       string `json:"scope"`
}

// TokenClient fetches OAuth2 client-credentials tokens for one environment.
type TokenClient struct {
	config     OAuthConfig
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// NewTokenClient creates a token endpoint client. The HTTP client may be
// shared read-only with other drivers; pass nil for a default.
func NewTokenClient(config OAuthConfig, httpClient *http.Client, logger *slog.Logger) *TokenClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TokenClient{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}
}

// FetchToken performs one client-credentials token request. A non-2xx
// response is returned as *TokenEndpointError and is not retried here.
func (c *TokenClient) FetchToken(ctx context.Context) (*models.AccessToken, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	setIfNotEmpty(form, "audience", c.config.Audience)
	setIfNotEmpty(form, "client_id", c.config.ClientID)
	setIfNotEmpty(form, "client_secret", c.config.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.config.TraceHeaderName != "" {
		req.Header.Set(c.config.TraceHeaderName, c.config.TraceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("token request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read token response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Token endpoint rejected request",
			"status_code", resp.StatusCode,
			"token_url", c.config.TokenURL)
		return nil, &TokenEndpointError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tokenResp tokenEndpointResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, &DecodeError{Err: fmt.Errorf("invalid token response body: %w", err)}
	}
	if tokenResp.AccessToken == "" {
		return nil, &DecodeError{Err: fmt.Errorf("token response missing access_token")}
	}

	issuedAt := c.now()
	expiresAt := c.resolveExpiry(tokenResp, issuedAt)

	c.logger.Info("Access token fetched",
		"token_type", tokenResp.TokenType,
		"expires_at", expiresAt,
		"validity_seconds", int64(expiresAt.Sub(issuedAt).Seconds()))

	return &models.AccessToken{
		Token:     tokenResp.AccessToken,
		TokenType: tokenResp.TokenType,
		ExpiresAt: expiresAt,
		IssuedAt:  issuedAt,
	}, nil
}

// resolveExpiry computes the token expiry from the response, tolerating both
// server variants: expires_in (relative seconds) and expires_at (absolute
// RFC3339). When neither parses, a JWT exp claim on the access token is used
// if present, else the default validity applies.
func (c *TokenClient) resolveExpiry(resp tokenEndpointResponse, issuedAt time.Time) time.Time {
	if resp.ExpiresIn > 0 {
		return issuedAt.Add(time.Duration(resp.ExpiresIn) * time.Second)
	}

	if resp.ExpiresAt != "" {
		if expiresAt, err := time.Parse(time.RFC3339, resp.ExpiresAt); err == nil {
			return expiresAt
		}
		c.logger.Warn("Unparseable expires_at in token response", "expires_at", resp.ExpiresAt)
	}

	if expiresAt, ok := jwtExpiry(resp.AccessToken); ok {
		return expiresAt
	}

	return issuedAt.Add(defaultTokenValidity)
}

// jwtExpiry extracts the exp claim from a JWT-shaped access token. The
// signature is deliberately not verified; the expiry is a caching hint only.
func jwtExpiry(accessToken string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// setIfNotEmpty adds a form parameter, omitting empty-valued fields from the
// request body entirely.
func setIfNotEmpty(form url.Values, key, value string) {
	if value != "" {
		form.Set(key, value)
	}
}
