// ABOUTME: This file defines the Zone wire model for the parking API
// ABOUTME: Decoding tolerates partial payloads with documented defaults

package models

import (
	"encoding/json"
)

// DefaultZoneName is substituted when a zone payload omits the name field.
const DefaultZoneName = "Unknown Zone"

// Zone represents one parking zone as returned by the shared zones endpoint.
type Zone struct {
	ID         string
	Name       string
	Number     string
	OperatorID string
}

// zoneWire is the snake_case wire shape. Optional fields are pointers so a
// missing field can be told apart from an empty one.
type zoneWire struct {
	ID         string  `json:"id"`
	Name       *string `json:"name"`
	Number     *string `json:"number"`
	OperatorID *string `json:"operator_id"`
}

// UnmarshalJSON decodes a zone payload, applying defaults for missing
// optional fields instead of failing.
func (z *Zone) UnmarshalJSON(data []byte) error {
	var wire zoneWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	z.ID = wire.ID
	z.Name = DefaultZoneName
	if wire.Name != nil {
		z.Name = *wire.Name
	}
	z.Number = ""
	if wire.Number != nil {
		z.Number = *wire.Number
	}
	z.OperatorID = ""
	if wire.OperatorID != nil {
		z.OperatorID = *wire.OperatorID
	}

	return nil
}

// MarshalJSON emits the snake_case wire shape.
func (z Zone) MarshalJSON() ([]byte, error) {
	name := z.Name
	number := z.Number
	operatorID := z.OperatorID
	return json.Marshal(zoneWire{
		ID:         z.ID,
		Name:       &name,
		Number:     &number,
		OperatorID: &operatorID,
	})
}
