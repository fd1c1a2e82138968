// ABOUTME: This file defines environment and client-credential domain types
// ABOUTME: One credential pair exists per configured API environment

package models

import (
	"fmt"
)

// Environment identifies one configured parking API environment.
type Environment string

const (
	EnvironmentProduction  Environment = "production"
	EnvironmentStaging     Environment = "staging"
	EnvironmentDevelopment Environment = "development"
)

// Validate checks that the environment is one of the known names.
func (e Environment) Validate() error {
	switch e {
	case EnvironmentProduction, EnvironmentStaging, EnvironmentDevelopment:
		return nil
	default:
		return fmt.Errorf("unknown environment %q", string(e))
	}
}

// ClientCredentials holds the OAuth2 client-credentials pair for one environment.
type ClientCredentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// IsComplete reports whether both fields are populated.
func (c ClientCredentials) IsComplete() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
