// ABOUTME: This file defines the error taxonomy for remote API communication
// ABOUTME: Token endpoint, resource HTTP, transport and decode failures stay distinct

package driver

import (
	"fmt"
)

// TokenEndpointError reports a non-2xx response from the OAuth2 token
// endpoint. It is never retried internally; the single 401 retry applies to
// resource calls only.
type TokenEndpointError struct {
	StatusCode int
	Body       string
}

func (e *TokenEndpointError) Error() string {
	return fmt.Sprintf("token endpoint returned status %d: %s", e.StatusCode, e.Body)
}

// HTTPError reports a non-2xx response from a resource endpoint, surfaced
// verbatim with status and body for diagnostics.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

// TransportError reports a network-level failure (DNS, connection refused,
// truncated response) not tied to any HTTP status.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response body that did not match the expected schema
// for a required field. Optional-field mismatches degrade to defaults instead.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode API response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
