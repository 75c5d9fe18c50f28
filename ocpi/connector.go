package ocpi

import (
	"roamsync/ocpi/types"
	"time"
)

// Connector is the wire representation of a single plug or socket.
type Connector struct {
	Id          types.ConnectorId       `json:"id" bson:"id" validate:"required,max=36"`
	Standard    types.ConnectorStandard `json:"standard" bson:"standard" validate:"required"`
	Format      types.ConnectorFormat   `json:"format" bson:"format" validate:"required"`
	PowerType   types.PowerType         `json:"power_type" bson:"power_type" validate:"required"`
	MaxVoltage  int                     `json:"max_voltage" bson:"max_voltage" validate:"required,gt=0"`
	MaxAmperage int                     `json:"max_amperage" bson:"max_amperage" validate:"required,gt=0"`
	MaxPower    int                     `json:"max_electric_power,omitempty" bson:"max_electric_power,omitempty"`
	LastUpdated time.Time               `json:"last_updated" bson:"last_updated" validate:"required"`
}
