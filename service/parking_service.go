// ABOUTME: This file implements the typed parking API operations
// ABOUTME: Signs requests, retries exactly once on 401, decodes at the wire boundary

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"parking-gateway/driver"
	"parking-gateway/models"
)

// APIDriver performs one raw signed resource call.
type APIDriver interface {
	Do(ctx context.Context, method, rawURL string, body []byte, accessToken string) (*driver.APIResponse, error)
}

// TokenSource supplies and invalidates bearer tokens for one environment.
type TokenSource interface {
	ValidAccessToken(ctx context.Context) (string, error)
	Invalidate(ctx context.Context) error
}

// ParkingService exposes the typed operations of the parking API for one
// environment. It owns one token source; instances never share token caches.
type ParkingService struct {
	baseURL string
	api     APIDriver
	tokens  TokenSource
	logger  *slog.Logger
}

// NewParkingService creates a typed API service rooted at baseURL (the
// versioned base path, no trailing slash).
func NewParkingService(baseURL string, api APIDriver, tokens TokenSource, logger *slog.Logger) *ParkingService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ParkingService{
		baseURL: baseURL,
		api:     api,
		tokens:  tokens,
		logger:  logger,
	}
}

// execute signs and performs one resource call. A 401 triggers exactly one
// token invalidation, re-authentication and retry of the same request; the
// retry's outcome is final. Non-401 failures surface immediately.
func (s *ParkingService) execute(ctx context.Context, method, rawURL string, body []byte) ([]byte, error) {
	token, err := s.tokens.ValidAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.api.Do(ctx, method, rawURL, body, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		s.logger.Warn("Request rejected with 401, re-authenticating once",
			"method", method,
			"url", rawURL)

		if err := s.tokens.Invalidate(ctx); err != nil {
			return nil, err
		}
		token, err = s.tokens.ValidAccessToken(ctx)
		if err != nil {
			return nil, err
		}

		resp, err = s.api.Do(ctx, method, rawURL, body, token)
		if err != nil {
			return nil, err
		}
	}

	if !resp.Success() {
		return nil, &driver.HTTPError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	return resp.Body, nil
}

// FetchZones returns the zones visible to an operator.
func (s *ParkingService) FetchZones(ctx context.Context, operatorID string) ([]models.Zone, error) {
	query := url.Values{}
	query.Set("operator_id", operatorID)
	endpoint := s.baseURL + "/shared/zones?" + query.Encode()

	body, err := s.execute(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var zones []models.Zone
	if err := json.Unmarshal(body, &zones); err != nil {
		return nil, &driver.DecodeError{Err: fmt.Errorf("invalid zones response: %w", err)}
	}

	s.logger.Debug("Zones fetched", "operator_id", operatorID, "count", len(zones))
	return zones, nil
}

// FetchParkingRights searches parking rights by zone or by space/vehicle
// attributes. All non-empty filters are forwarded; when both addressing
// modes are supplied the server's precedence applies.
func (s *ParkingService) FetchParkingRights(ctx context.Context, q models.ParkingRightQuery) ([]models.ParkingRight, error) {
	query := url.Values{}
	query.Set("operator_id", q.OperatorID)
	setQueryIfNotEmpty(query, "zone_id", q.ZoneID)
	setQueryIfNotEmpty(query, "space_number", q.SpaceNumber)
	setQueryIfNotEmpty(query, "vehicle_plate", q.VehiclePlate)
	setQueryIfNotEmpty(query, "vehicle_state", q.VehicleState)
	endpoint := s.baseURL + "/shared/parking-rights?" + query.Encode()

	body, err := s.execute(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var rights []models.ParkingRight
	if err := json.Unmarshal(body, &rights); err != nil {
		return nil, &driver.DecodeError{Err: fmt.Errorf("invalid parking rights response: %w", err)}
	}

	s.logger.Debug("Parking rights fetched",
		"operator_id", q.OperatorID,
		"zone_id", q.ZoneID,
		"count", len(rights))
	return rights, nil
}

// PublishSessionEvents posts a versioned event envelope. Success is
// determined solely by HTTP status; the response body is not parsed.
func (s *ParkingService) PublishSessionEvents(ctx context.Context, eventType, version string, data []*models.SessionEventPayload) (bool, error) {
	envelope := models.EventEnvelope{
		Type:    eventType,
		Version: version,
		Data:    data,
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return false, fmt.Errorf("failed to serialize event envelope: %w", err)
	}

	respBody, err := s.execute(ctx, http.MethodPost, s.baseURL+"/events", body)
	if err != nil {
		return false, err
	}

	s.logger.Info("Session events published",
		"type", eventType,
		"version", version,
		"event_count", len(data))
	s.logger.Debug("Events endpoint response body", "body", string(respBody))

	return true, nil
}

// ValidToken is a diagnostic pass-through to the token source.
func (s *ParkingService) ValidToken(ctx context.Context) (string, error) {
	return s.tokens.ValidAccessToken(ctx)
}

func setQueryIfNotEmpty(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}
