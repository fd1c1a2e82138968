// ABOUTME: This file defines session lifecycle event payloads and the envelope
// ABOUTME: Write-only DTOs; the publish response body is never parsed

package models

import (
	"fmt"
	"time"
)

// Session lifecycle event types accepted by the events endpoint.
const (
	SessionEventStarted  = "session.started"
	SessionEventExtended = "session.extended"
	SessionEventStopped  = "session.stopped"
)

// ZoneReference addresses the zone a session event belongs to. Exactly one
// of the two identifiers must be set.
type ZoneReference struct {
	PassportZoneID string `json:"passport_zone_id,omitempty"`
	ExternalZoneID string `json:"external_zone_id,omitempty"`
}

// NewPassportZoneReference references a zone by its internal identifier.
func NewPassportZoneReference(id string) ZoneReference {
	return ZoneReference{PassportZoneID: id}
}

// NewExternalZoneReference references a zone by the operator's own identifier.
func NewExternalZoneReference(id string) ZoneReference {
	return ZoneReference{ExternalZoneID: id}
}

// Validate checks the exactly-one constraint.
func (z ZoneReference) Validate() error {
	if (z.PassportZoneID == "") == (z.ExternalZoneID == "") {
		return fmt.Errorf("zone reference must set exactly one of passport_zone_id or external_zone_id")
	}
	return nil
}

// FeeBreakdown carries the monetary breakdown for a session event.
type FeeBreakdown struct {
	ParkingFee     float64 `json:"parking_fee"`
	TransactionFee float64 `json:"transaction_fee"`
	Total          float64 `json:"total"`
	Currency       string  `json:"currency"`
}

// PaymentMetadata is optional payment context attached to an event.
type PaymentMetadata struct {
	Method        string `json:"method,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// LocationMetadata is optional geolocation context attached to an event.
type LocationMetadata struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SessionEventPayload is the body of one Started/Extended/Stopped lifecycle
// event. The zone fields are flattened onto the payload so the wire shape
// carries exactly one of passport_zone_id or external_zone_id.
type SessionEventPayload struct {
	OccurredAt     time.Time         `json:"occurred_at"`
	SessionID      string            `json:"session_id"`
	OperatorID     string            `json:"operator_id"`
	PassportZoneID string            `json:"passport_zone_id,omitempty"`
	ExternalZoneID string            `json:"external_zone_id,omitempty"`
	StartTime      time.Time         `json:"start_time"`
	EndTime        time.Time         `json:"end_time"`
	VehiclePlate   string            `json:"vehicle_plate,omitempty"`
	VehicleState   string            `json:"vehicle_state,omitempty"`
	SpaceNumber    string            `json:"space_number,omitempty"`
	Fee            FeeBreakdown      `json:"fee"`
	Payment        *PaymentMetadata  `json:"payment,omitempty"`
	Location       *LocationMetadata `json:"location,omitempty"`
}

// NewSessionEventPayload builds an event payload with the zone reference
// applied. The returned payload is ready to serialize.
func NewSessionEventPayload(
	occurredAt time.Time,
	sessionID, operatorID string,
	zone ZoneReference,
	startTime, endTime time.Time,
	fee FeeBreakdown,
) (*SessionEventPayload, error) {
	if err := zone.Validate(); err != nil {
		return nil, err
	}

	return &SessionEventPayload{
		OccurredAt:     occurredAt,
		SessionID:      sessionID,
		OperatorID:     operatorID,
		PassportZoneID: zone.PassportZoneID,
		ExternalZoneID: zone.ExternalZoneID,
		StartTime:      startTime,
		EndTime:        endTime,
		Fee:            fee,
	}, nil
}

// EventEnvelope is the versioned wrapper posted to the events endpoint.
type EventEnvelope struct {
	Type    string                 `json:"type"`
	Version string                 `json:"version"`
	Data    []*SessionEventPayload `json:"data"`
}
