// ABOUTME: Tests for the per-environment service registry
// ABOUTME: Lazy construction, instance reuse and token cache isolation

package service

import (
	"context"
	"testing"

	"parking-gateway/config"
	"parking-gateway/mocks"
	"parking-gateway/models"
	"parking-gateway/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func registryTestConfig() *config.Config {
	return &config.Config{
		TraceHeaderName: "X-Trace-Id",
		Production: config.EnvironmentConfig{
			BaseURL:  "https://api.prod.test/v1",
			TokenURL: "https://auth.prod.test/oauth/token",
			Audience: "https://api.prod.test",
		},
		Staging: config.EnvironmentConfig{
			BaseURL:  "https://api.staging.test/v1",
			TokenURL: "https://auth.staging.test/oauth/token",
			Audience: "https://api.staging.test",
		},
		Development: config.EnvironmentConfig{
			BaseURL:  "https://api.dev.test/v1",
			TokenURL: "https://auth.dev.test/oauth/token",
			Audience: "https://api.dev.test",
		},
	}
}

func TestRegistry_ServiceFor_ReusesInstance(t *testing.T) {
	ctrl := gomock.NewController(t)
	creds := mocks.NewMockCredentialRepository(ctrl)

	// Exactly one credential resolution for repeated lookups.
	creds.EXPECT().GetCredentials(gomock.Any(), models.EnvironmentProduction).
		Return(&models.ClientCredentials{ClientID: "id", ClientSecret: "sec"}, nil).
		Times(1)

	registry := NewRegistry(registryTestConfig(), creds, nil, nil)

	first, err := registry.ServiceFor(context.Background(), models.EnvironmentProduction)
	require.NoError(t, err)
	second, err := registry.ServiceFor(context.Background(), models.EnvironmentProduction)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestRegistry_ServiceFor_IsolatesEnvironments(t *testing.T) {
	ctrl := gomock.NewController(t)
	creds := mocks.NewMockCredentialRepository(ctrl)

	creds.EXPECT().GetCredentials(gomock.Any(), models.EnvironmentProduction).
		Return(&models.ClientCredentials{ClientID: "prod-id", ClientSecret: "prod-sec"}, nil)
	creds.EXPECT().GetCredentials(gomock.Any(), models.EnvironmentStaging).
		Return(&models.ClientCredentials{ClientID: "stg-id", ClientSecret: "stg-sec"}, nil)

	registry := NewRegistry(registryTestConfig(), creds, nil, nil)

	prod, err := registry.ServiceFor(context.Background(), models.EnvironmentProduction)
	require.NoError(t, err)
	staging, err := registry.ServiceFor(context.Background(), models.EnvironmentStaging)
	require.NoError(t, err)

	assert.NotSame(t, prod, staging)

	prodManager, err := registry.TokenManagerFor(context.Background(), models.EnvironmentProduction)
	require.NoError(t, err)
	stagingManager, err := registry.TokenManagerFor(context.Background(), models.EnvironmentStaging)
	require.NoError(t, err)

	assert.NotSame(t, prodManager, stagingManager, "environments must not share token caches")
}

func TestRegistry_ServiceFor_UnknownEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := NewRegistry(registryTestConfig(), mocks.NewMockCredentialRepository(ctrl), nil, nil)

	_, err := registry.ServiceFor(context.Background(), models.Environment("sandbox"))
	assert.Error(t, err)
}

func TestRegistry_ServiceFor_CredentialsMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	creds := mocks.NewMockCredentialRepository(ctrl)
	creds.EXPECT().GetCredentials(gomock.Any(), models.EnvironmentDevelopment).
		Return(nil, repository.ErrCredentialsNotFound)

	registry := NewRegistry(registryTestConfig(), creds, nil, nil)

	_, err := registry.ServiceFor(context.Background(), models.EnvironmentDevelopment)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrCredentialsNotFound)
}

func TestRegistry_Reset_RebuildsWithFreshCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	creds := mocks.NewMockCredentialRepository(ctrl)

	creds.EXPECT().GetCredentials(gomock.Any(), models.EnvironmentProduction).
		Return(&models.ClientCredentials{ClientID: "old", ClientSecret: "old"}, nil)
	creds.EXPECT().GetCredentials(gomock.Any(), models.EnvironmentProduction).
		Return(&models.ClientCredentials{ClientID: "new", ClientSecret: "new"}, nil)

	registry := NewRegistry(registryTestConfig(), creds, nil, nil)

	first, err := registry.ServiceFor(context.Background(), models.EnvironmentProduction)
	require.NoError(t, err)

	registry.Reset(models.EnvironmentProduction)

	second, err := registry.ServiceFor(context.Background(), models.EnvironmentProduction)
	require.NoError(t, err)

	assert.NotSame(t, first, second, "reset should discard the cached instance")
}
