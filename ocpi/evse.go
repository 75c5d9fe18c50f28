package ocpi

import (
	"roamsync/ocpi/types"
	"time"
)

// Evse is the wire representation of a charge point outlet group.
// Uid stays stable across inventory renames; EvseId is the
// partner-facing identifier.
type Evse struct {
	Uid          types.EvseUid      `json:"uid" bson:"uid" validate:"required,max=39"`
	EvseId       types.EvseId       `json:"evse_id,omitempty" bson:"evse_id,omitempty" validate:"omitempty,max=48"`
	Status       types.Status       `json:"status" bson:"status" validate:"required"`
	Capabilities []types.Capability `json:"capabilities,omitempty" bson:"capabilities,omitempty"`
	Connectors   []*Connector       `json:"connectors" bson:"connectors" validate:"required,min=1,dive"`
	FloorLevel   string             `json:"floor_level,omitempty" bson:"floor_level,omitempty" validate:"omitempty,max=4"`
	Coordinates  *GeoLocation       `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	EnergyMeter  *EnergyMeter       `json:"energy_meter,omitempty" bson:"energy_meter,omitempty"`
	LastUpdated  time.Time          `json:"last_updated" bson:"last_updated" validate:"required"`
}

type EnergyMeter struct {
	Id              string `json:"id" bson:"id" validate:"required,max=255"`
	Vendor          string `json:"vendor,omitempty" bson:"vendor,omitempty"`
	Model           string `json:"model,omitempty" bson:"model,omitempty"`
	FirmwareVersion string `json:"firmware_version,omitempty" bson:"firmware_version,omitempty"`
}
