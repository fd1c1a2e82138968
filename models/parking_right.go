// ABOUTME: This file defines the ParkingRight wire model for the parking API
// ABOUTME: Immutable value once decoded; snake_case mapping is explicit per field

package models

import (
	"time"
)

// Vehicle identifies the vehicle attached to a parking right.
type Vehicle struct {
	Plate string `json:"vehicle_plate"`
	State string `json:"vehicle_state"`
}

// ParkingRight represents one active or historical right to park, fetched
// either by zone or by space/vehicle attributes.
type ParkingRight struct {
	ID          string    `json:"id"`
	OperatorID  string    `json:"operator_id"`
	ZoneID      string    `json:"zone_id"`
	Type        string    `json:"type"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Vehicle     *Vehicle  `json:"vehicle,omitempty"`
	ReferenceID string    `json:"reference_id,omitempty"`
	SpaceNumber string    `json:"space_number,omitempty"`
}

// ParkingRightQuery carries the filters for a parking-rights search. Exactly
// one addressing mode is expected per call: zone-based (ZoneID set) or
// attribute-based (one or more of SpaceNumber/VehiclePlate/VehicleState set).
// The service forwards all non-empty filters without enforcing exclusivity;
// when both modes are supplied the server's precedence applies.
type ParkingRightQuery struct {
	OperatorID   string
	ZoneID       string
	SpaceNumber  string
	VehiclePlate string
	VehicleState string
}
