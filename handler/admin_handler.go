// ABOUTME: This file implements the admin HTTP surface for credentials and tokens
// ABOUTME: Health, credential override CRUD, token status and forced refresh

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"parking-gateway/models"
	"parking-gateway/repository"
	"parking-gateway/service"
)

// ServiceDirectory resolves per-environment service components.
type ServiceDirectory interface {
	ServiceFor(ctx context.Context, env models.Environment) (*service.ParkingService, error)
	TokenManagerFor(ctx context.Context, env models.Environment) (*service.TokenManager, error)
	Reset(env models.Environment)
}

// AdminHandler exposes the operational endpoints of the gateway.
type AdminHandler struct {
	directory   ServiceDirectory
	credentials repository.CredentialRepository
	logger      *slog.Logger
}

// ErrorResponse is the JSON error envelope of the admin API.
type ErrorResponse struct {
	Status    string    `json:"status"`
	ErrorCode string    `json:"error_code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// CredentialStatusResponse reports where an environment's effective
// credentials come from. Secrets are never echoed back.
type CredentialStatusResponse struct {
	Environment     string    `json:"environment"`
	HasUserOverride bool      `json:"has_user_override"`
	Timestamp       time.Time `json:"timestamp"`
}

// TokenStatusResponse reports the cached token state of one environment.
type TokenStatusResponse struct {
	Environment      string    `json:"environment"`
	HasToken         bool      `json:"has_token"`
	ExpiresAt        time.Time `json:"expires_at,omitempty"`
	ExpiresInSeconds int64     `json:"expires_in_seconds,omitempty"`
	NeedsRefresh     bool      `json:"needs_refresh"`
	Timestamp        time.Time `json:"timestamp"`
}

// NewAdminHandler creates the admin API handler.
func NewAdminHandler(directory ServiceDirectory, credentials repository.CredentialRepository, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &AdminHandler{
		directory:   directory,
		credentials: credentials,
		logger:      logger,
	}
}

// Routes registers all admin endpoints on a fresh mux.
func (h *AdminHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.HandleHealth)
	mux.HandleFunc("/admin/credentials", h.HandleCredentials)
	mux.HandleFunc("/admin/credentials/status", h.HandleCredentialStatus)
	mux.HandleFunc("/admin/token/status", h.HandleTokenStatus)
	mux.HandleFunc("/admin/token/refresh", h.HandleTokenRefresh)
	return mux
}

// HandleHealth reports process liveness.
func (h *AdminHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.respondWithError(w, "METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.respondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// HandleCredentials serves the credential override CRUD operations.
func (h *AdminHandler) HandleCredentials(w http.ResponseWriter, r *http.Request) {
	env, ok := h.environmentParam(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.saveCredentials(w, r, env)
	case http.MethodDelete:
		h.deleteCredentials(w, r, env)
	default:
		h.respondWithError(w, "METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AdminHandler) saveCredentials(w http.ResponseWriter, r *http.Request, env models.Environment) {
	var creds models.ClientCredentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.respondWithError(w, "INVALID_BODY", "Request body must be JSON with client_id and client_secret", http.StatusBadRequest)
		return
	}
	if !creds.IsComplete() {
		h.respondWithError(w, "INVALID_CREDENTIALS", "client_id and client_secret are both required", http.StatusBadRequest)
		return
	}

	if err := h.credentials.SaveCredentials(r.Context(), env, creds); err != nil {
		h.logger.Error("Failed to save credential override", "environment", string(env), "error", err)
		h.respondWithError(w, "SAVE_FAILED", "Failed to persist credential override", http.StatusInternalServerError)
		return
	}

	// The next use of this environment rebuilds with the new credentials.
	h.directory.Reset(env)

	h.logger.Info("Credential override saved", "environment", string(env))
	h.respondWithJSON(w, http.StatusOK, map[string]string{
		"status":      "success",
		"environment": string(env),
	})
}

func (h *AdminHandler) deleteCredentials(w http.ResponseWriter, r *http.Request, env models.Environment) {
	err := h.credentials.DeleteCredentials(r.Context(), env)
	if errors.Is(err, repository.ErrNoOverrideToDelete) {
		h.respondWithError(w, "NO_OVERRIDE", "No user override exists for this environment", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Failed to delete credential override", "environment", string(env), "error", err)
		h.respondWithError(w, "DELETE_FAILED", "Failed to delete credential override", http.StatusInternalServerError)
		return
	}

	h.directory.Reset(env)

	h.logger.Info("Credential override deleted", "environment", string(env))
	h.respondWithJSON(w, http.StatusOK, map[string]string{
		"status":      "success",
		"environment": string(env),
	})
}

// HandleCredentialStatus reports whether the environment runs on a user
// override or the bundled default.
func (h *AdminHandler) HandleCredentialStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.respondWithError(w, "METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	env, ok := h.environmentParam(w, r)
	if !ok {
		return
	}

	hasOverride, err := h.credentials.HasUserOverride(r.Context(), env)
	if err != nil {
		h.logger.Error("Failed to check credential source", "environment", string(env), "error", err)
		h.respondWithError(w, "STATUS_FAILED", "Failed to determine credential source", http.StatusInternalServerError)
		return
	}

	h.respondWithJSON(w, http.StatusOK, CredentialStatusResponse{
		Environment:     string(env),
		HasUserOverride: hasOverride,
		Timestamp:       time.Now(),
	})
}

// HandleTokenStatus reports the cached token state without fetching.
func (h *AdminHandler) HandleTokenStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.respondWithError(w, "METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	env, ok := h.environmentParam(w, r)
	if !ok {
		return
	}

	manager, err := h.directory.TokenManagerFor(r.Context(), env)
	if err != nil {
		h.logger.Error("Failed to resolve token manager", "environment", string(env), "error", err)
		h.respondWithError(w, "SERVICE_UNAVAILABLE", "Failed to resolve environment service", http.StatusServiceUnavailable)
		return
	}

	status, err := manager.Status(r.Context())
	if err != nil {
		h.respondWithError(w, "STATUS_FAILED", "Failed to read token status", http.StatusInternalServerError)
		return
	}

	h.respondWithJSON(w, http.StatusOK, TokenStatusResponse{
		Environment:      string(env),
		HasToken:         status.HasToken,
		ExpiresAt:        status.ExpiresAt,
		ExpiresInSeconds: status.ExpiresInSeconds,
		NeedsRefresh:     status.NeedsRefresh,
		Timestamp:        time.Now(),
	})
}

// HandleTokenRefresh invalidates the cached token and fetches a new one.
func (h *AdminHandler) HandleTokenRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.respondWithError(w, "METHOD_NOT_ALLOWED", "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	env, ok := h.environmentParam(w, r)
	if !ok {
		return
	}

	manager, err := h.directory.TokenManagerFor(r.Context(), env)
	if err != nil {
		h.logger.Error("Failed to resolve token manager", "environment", string(env), "error", err)
		h.respondWithError(w, "SERVICE_UNAVAILABLE", "Failed to resolve environment service", http.StatusServiceUnavailable)
		return
	}

	if err := manager.Invalidate(r.Context()); err != nil {
		h.respondWithError(w, "INVALIDATE_FAILED", "Failed to invalidate cached token", http.StatusInternalServerError)
		return
	}

	if _, err := manager.ValidAccessToken(r.Context()); err != nil {
		h.logger.Error("Forced token refresh failed", "environment", string(env), "error", err)
		h.respondWithError(w, "REFRESH_FAILED", "Token fetch failed", http.StatusBadGateway)
		return
	}

	h.logger.Info("Token refreshed via admin API", "environment", string(env))
	h.respondWithJSON(w, http.StatusOK, map[string]string{
		"status":      "success",
		"environment": string(env),
	})
}

func (h *AdminHandler) environmentParam(w http.ResponseWriter, r *http.Request) (models.Environment, bool) {
	env := models.Environment(r.URL.Query().Get("environment"))
	if err := env.Validate(); err != nil {
		h.respondWithError(w, "INVALID_ENVIRONMENT", "Query parameter environment must be production, staging or development", http.StatusBadRequest)
		return "", false
	}
	return env, true
}

func (h *AdminHandler) respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *AdminHandler) respondWithError(w http.ResponseWriter, code, message string, status int) {
	h.respondWithJSON(w, status, ErrorResponse{
		Status:    "error",
		ErrorCode: code,
		Message:   message,
		Timestamp: time.Now(),
	})
}
