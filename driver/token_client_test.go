// ABOUTME: Tests for the OAuth2 token endpoint client
// ABOUTME: Form encoding, empty-param omission, expiry variants and error classification

package driver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenClient_FetchToken_FormEncoding(t *testing.T) {
	var capturedBody string
	var capturedContentType string
	var capturedTrace string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		capturedBody = string(body)
		capturedContentType = r.Header.Get("Content-Type")
		capturedTrace = r.Header.Get("X-Trace-Id")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	defer server.Close()

	client := NewTokenClient(OAuthConfig{
		TokenURL:        server.URL,
		ClientID:        "client-1",
		ClientSecret:    "secret-1",
		Audience:        "https://api.example.test",
		TraceHeaderName: "X-Trace-Id",
		TraceID:         "trace-123",
	}, server.Client(), nil)

	token, err := client.FetchToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token.Token)

	assert.Equal(t, "application/x-www-form-urlencoded", capturedContentType)
	assert.Equal(t, "trace-123", capturedTrace)

	// url.Values encodes keys in sorted order, so the body is deterministic.
	expected := "audience=https%3A%2F%2Fapi.example.test&client_id=client-1&client_secret=secret-1&grant_type=client_credentials"
	assert.Equal(t, expected, capturedBody)
}

func TestTokenClient_FetchToken_OmitsEmptyParams(t *testing.T) {
	var capturedBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		capturedBody = string(body)

		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok-2", "expires_in": 60})
	}))
	defer server.Close()

	client := NewTokenClient(OAuthConfig{
		TokenURL: server.URL,
		ClientID: "client-1",
		// ClientSecret and Audience deliberately empty
	}, server.Client(), nil)

	_, err := client.FetchToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "client_id=client-1&grant_type=client_credentials", capturedBody)
	assert.NotContains(t, capturedBody, "client_secret")
	assert.NotContains(t, capturedBody, "audience")
}

func TestTokenClient_FetchToken_ExpiryVariants(t *testing.T) {
	issuedAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	absolute := issuedAt.Add(30 * time.Minute)

	tests := []struct {
		name      string
		response  map[string]any
		wantValid time.Duration
	}{
		{
			name:      "expires_in relative seconds",
			response:  map[string]any{"access_token": "tok", "expires_in": 1800},
			wantValid: 30 * time.Minute,
		},
		{
			name:      "expires_at absolute timestamp",
			response:  map[string]any{"access_token": "tok", "expires_at": absolute.Format(time.RFC3339)},
			wantValid: 30 * time.Minute,
		},
		{
			name:      "neither field defaults to one hour",
			response:  map[string]any{"access_token": "tok"},
			wantValid: time.Hour,
		},
		{
			name:      "unparseable expires_at falls back to default",
			response:  map[string]any{"access_token": "tok", "expires_at": "next tuesday"},
			wantValid: time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(tt.response)
			}))
			defer server.Close()

			client := NewTokenClient(OAuthConfig{TokenURL: server.URL, ClientID: "c"}, server.Client(), nil)
			client.now = func() time.Time { return issuedAt }

			token, err := client.FetchToken(context.Background())
			require.NoError(t, err)
			assert.Equal(t, issuedAt.Add(tt.wantValid), token.ExpiresAt)
		})
	}
}

func TestTokenClient_FetchToken_JWTExpClaim(t *testing.T) {
	// A JWT-shaped token with an exp claim and no expiry fields in the
	// response body: the claim wins over the default validity.
	exp := time.Date(2026, 3, 14, 13, 30, 0, 0, time.UTC)
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	claims := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(`{"exp":%d}`, exp.Unix())))
	jwtToken := header + "." + claims + "."

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": jwtToken})
	}))
	defer server.Close()

	client := NewTokenClient(OAuthConfig{TokenURL: server.URL, ClientID: "c"}, server.Client(), nil)

	token, err := client.FetchToken(context.Background())
	require.NoError(t, err)
	assert.True(t, token.ExpiresAt.Equal(exp), "expiry should come from the exp claim")
}

func TestTokenClient_FetchToken_RejectedCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid_client"}`)
	}))
	defer server.Close()

	client := NewTokenClient(OAuthConfig{TokenURL: server.URL, ClientID: "bad"}, server.Client(), nil)

	_, err := client.FetchToken(context.Background())
	require.Error(t, err)

	var endpointErr *TokenEndpointError
	require.True(t, errors.As(err, &endpointErr))
	assert.Equal(t, http.StatusUnauthorized, endpointErr.StatusCode)
	assert.Contains(t, endpointErr.Body, "invalid_client")
}

func TestTokenClient_FetchToken_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not JSON", body: "<html>oops</html>"},
		{name: "missing access_token", body: `{"token_type":"Bearer","expires_in":3600}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := NewTokenClient(OAuthConfig{TokenURL: server.URL, ClientID: "c"}, server.Client(), nil)

			_, err := client.FetchToken(context.Background())
			require.Error(t, err)

			var decodeErr *DecodeError
			assert.True(t, errors.As(err, &decodeErr))
		})
	}
}

func TestTokenClient_FetchToken_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewTokenClient(OAuthConfig{TokenURL: server.URL, ClientID: "c"}, nil, nil)

	_, err := client.FetchToken(context.Background())
	require.Error(t, err)

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
}
