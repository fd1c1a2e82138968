// ABOUTME: Tests for the admin HTTP surface
// ABOUTME: Credential override CRUD semantics and token lifecycle endpoints

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"parking-gateway/mocks"
	"parking-gateway/models"
	"parking-gateway/repository"
	"parking-gateway/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeDirectory serves one pre-built token manager for every environment and
// records resets.
type fakeDirectory struct {
	manager *service.TokenManager
	resets  []models.Environment
}

func (f *fakeDirectory) ServiceFor(ctx context.Context, env models.Environment) (*service.ParkingService, error) {
	return nil, nil
}

func (f *fakeDirectory) TokenManagerFor(ctx context.Context, env models.Environment) (*service.TokenManager, error) {
	return f.manager, nil
}

func (f *fakeDirectory) Reset(env models.Environment) {
	f.resets = append(f.resets, env)
}

func newTestHandler(t *testing.T, fetcher service.TokenFetcher) (*AdminHandler, *fakeDirectory, repository.CredentialRepository) {
	t.Helper()

	bundledPath := filepath.Join(t.TempDir(), "secrets.json")
	require.NoError(t, os.WriteFile(bundledPath,
		[]byte(`{"production": {"client_id": "bundled", "client_secret": "bundled"}}`), 0o600))

	bundled, err := repository.LoadBundledCredentials(bundledPath)
	require.NoError(t, err)

	credentials := repository.NewLayeredCredentialRepository(
		repository.NewMemoryCredentialStore(), bundled, nil)

	directory := &fakeDirectory{manager: service.NewTokenManager(fetcher, nil, nil)}

	return NewAdminHandler(directory, credentials, nil), directory, credentials
}

func doRequest(h *AdminHandler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func TestAdminHandler_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, _, _ := newTestHandler(t, mocks.NewMockTokenFetcher(ctrl))

	rec := doRequest(h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestAdminHandler_InvalidEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, _, _ := newTestHandler(t, mocks.NewMockTokenFetcher(ctrl))

	rec := doRequest(h, http.MethodGet, "/admin/token/status?environment=sandbox", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "INVALID_ENVIRONMENT", errResp.ErrorCode)
}

func TestAdminHandler_SaveCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, directory, credentials := newTestHandler(t, mocks.NewMockTokenFetcher(ctrl))

	rec := doRequest(h, http.MethodPut, "/admin/credentials?environment=production",
		`{"client_id": "user-id", "client_secret": "user-sec"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	creds, err := credentials.GetCredentials(context.Background(), models.EnvironmentProduction)
	require.NoError(t, err)
	assert.Equal(t, "user-id", creds.ClientID)

	assert.Equal(t, []models.Environment{models.EnvironmentProduction}, directory.resets,
		"saving credentials should reset the environment's service instance")
}

func TestAdminHandler_SaveCredentials_Incomplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, _, _ := newTestHandler(t, mocks.NewMockTokenFetcher(ctrl))

	rec := doRequest(h, http.MethodPut, "/admin/credentials?environment=production",
		`{"client_id": "only-id"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "INVALID_CREDENTIALS", errResp.ErrorCode)
}

func TestAdminHandler_DeleteCredentials_NoOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, _, _ := newTestHandler(t, mocks.NewMockTokenFetcher(ctrl))

	rec := doRequest(h, http.MethodDelete, "/admin/credentials?environment=production", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "NO_OVERRIDE", errResp.ErrorCode)
}

func TestAdminHandler_DeleteCredentials_RemovesOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, directory, credentials := newTestHandler(t, mocks.NewMockTokenFetcher(ctrl))

	require.NoError(t, credentials.SaveCredentials(context.Background(),
		models.EnvironmentProduction,
		models.ClientCredentials{ClientID: "user", ClientSecret: "user"}))

	rec := doRequest(h, http.MethodDelete, "/admin/credentials?environment=production", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Bundled default is exposed again.
	creds, err := credentials.GetCredentials(context.Background(), models.EnvironmentProduction)
	require.NoError(t, err)
	assert.Equal(t, "bundled", creds.ClientID)
	assert.NotEmpty(t, directory.resets)
}

func TestAdminHandler_CredentialStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, _, credentials := newTestHandler(t, mocks.NewMockTokenFetcher(ctrl))

	rec := doRequest(h, http.MethodGet, "/admin/credentials/status?environment=production", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var status CredentialStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.HasUserOverride)

	require.NoError(t, credentials.SaveCredentials(context.Background(),
		models.EnvironmentProduction,
		models.ClientCredentials{ClientID: "u", ClientSecret: "u"}))

	rec = doRequest(h, http.MethodGet, "/admin/credentials/status?environment=production", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.HasUserOverride)
}

func TestAdminHandler_TokenStatus_EmptyCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, _, _ := newTestHandler(t, mocks.NewMockTokenFetcher(ctrl))

	rec := doRequest(h, http.MethodGet, "/admin/token/status?environment=staging", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var status TokenStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.HasToken)
	assert.True(t, status.NeedsRefresh)
}

func TestAdminHandler_TokenRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockTokenFetcher(ctrl)
	fetcher.EXPECT().FetchToken(gomock.Any()).Return(&models.AccessToken{
		Token:     "fresh",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)

	h, directory, _ := newTestHandler(t, fetcher)

	rec := doRequest(h, http.MethodPost, "/admin/token/refresh?environment=production", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	status, err := directory.manager.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, status.HasToken)
}

func TestAdminHandler_TokenRefresh_FetchFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockTokenFetcher(ctrl)
	fetcher.EXPECT().FetchToken(gomock.Any()).Return(nil, assert.AnError)

	h, _, _ := newTestHandler(t, fetcher)

	rec := doRequest(h, http.MethodPost, "/admin/token/refresh?environment=production", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestAdminHandler_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, _, _ := newTestHandler(t, mocks.NewMockTokenFetcher(ctrl))

	rec := doRequest(h, http.MethodPost, "/admin/credentials/status?environment=production", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
