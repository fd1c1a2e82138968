// ABOUTME: This file implements the raw signed HTTP driver for resource calls
// ABOUTME: One request in, classified status and body out; no retry logic here

package driver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// APIResponse carries the status and raw body of one resource call. Retry
// and error classification decisions happen above this layer.
type APIResponse struct {
	StatusCode int
	Body       []byte
}

// Success reports whether the status is in [200, 300).
func (r *APIResponse) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// APIClient performs raw authenticated HTTP calls against resource
// endpoints. The underlying transport may be shared across environments;
// credentials never live here.
type APIClient struct {
	httpClient      *http.Client
	traceHeaderName string
	traceID         string
	logger          *slog.Logger
}

// NewAPIClient creates a resource call driver. Pass nil for a default
// HTTP client with the standard timeout.
func NewAPIClient(httpClient *http.Client, traceHeaderName, traceID string, logger *slog.Logger) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &APIClient{
		httpClient:      httpClient,
		traceHeaderName: traceHeaderName,
		traceID:         traceID,
		logger:          logger,
	}
}

// Do issues one signed request. Network-level failures return
// *TransportError; any HTTP response, success or not, is returned for the
// caller to classify.
func (c *APIClient) Do(ctx context.Context, method, rawURL string, body []byte, accessToken string) (*APIResponse, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	if c.traceHeaderName != "" {
		req.Header.Set(c.traceHeaderName, c.traceID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("API request failed: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read API response: %w", err)}
	}

	c.logger.Debug("API request completed",
		"method", method,
		"url", rawURL,
		"status_code", resp.StatusCode,
		"response_bytes", len(respBody))

	return &APIResponse{StatusCode: resp.StatusCode, Body: respBody}, nil
}
