package models

import "time"

// Evse is a single charge point outlet group in the inventory. The
// inventory identifier is mutable (operators rename EVSEs); the
// roaming unique id must stay stable across renames, so it travels
// separately in Metadata under MetaOcpiUid when pinned.
type Evse struct {
	Id             string            `json:"evse_id" bson:"evse_id"`
	StationId      string            `json:"station_id" bson:"station_id"`
	Status         string            `json:"status" bson:"status"`
	StatusTime     time.Time         `json:"status_time" bson:"status_time"`
	FloorLevel     string            `json:"floor_level,omitempty" bson:"floor_level,omitempty"`
	Coordinates    *GeoPoint         `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	AuthModes      []string          `json:"auth_modes,omitempty" bson:"auth_modes,omitempty"`
	UIFeatures     []string          `json:"ui_features,omitempty" bson:"ui_features,omitempty"`
	PaymentOptions []string          `json:"payment_options,omitempty" bson:"payment_options,omitempty"`
	EnergyMeter    *EnergyMeter      `json:"energy_meter,omitempty" bson:"energy_meter,omitempty"`
	Connectors     []*Connector      `json:"connectors,omitempty" bson:"connectors,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty" bson:"metadata,omitempty"`
	LastChanged    time.Time         `json:"last_changed" bson:"last_changed"`
}

// MetaOcpiUid is the metadata key carrying an explicitly pinned
// roaming unique id for an EVSE.
const MetaOcpiUid = "ocpi_evse_uid"

// Inventory vocabulary for auth modes, UI features and payment
// options as reported by station firmware.
const (
	AuthModeRfid       = "RFID"
	AuthModeApp        = "APP"
	AuthModePlugCharge = "PLUG_AND_CHARGE"

	UIFeatureRfidReader = "RFID_READER"
	UIFeatureAppControl = "APP_CONTROL"
	UIFeatureDisplay    = "DISPLAY"

	PaymentOptionCreditCard  = "CREDIT_CARD"
	PaymentOptionContactless = "CONTACTLESS"
	PaymentOptionApp         = "APP"
)

type EnergyMeter struct {
	Id              string `json:"meter_id" bson:"meter_id"`
	Vendor          string `json:"vendor,omitempty" bson:"vendor,omitempty"`
	Model           string `json:"model,omitempty" bson:"model,omitempty"`
	FirmwareVersion string `json:"firmware_version,omitempty" bson:"firmware_version,omitempty"`
}

// Connector is a single physical socket or cable on an EVSE.
// Electrical ratings may be absent or zero when the station never
// reported them; projection falls back to nominal values then.
type Connector struct {
	Id          string    `json:"connector_id" bson:"connector_id"`
	EvseId      string    `json:"evse_id" bson:"evse_id"`
	PlugType    string    `json:"plug_type" bson:"plug_type"`
	CableFixed  bool      `json:"cable_fixed" bson:"cable_fixed"`
	CurrentType string    `json:"current_type" bson:"current_type"`
	MaxVoltage  int       `json:"max_voltage,omitempty" bson:"max_voltage,omitempty"`
	MaxAmperage int       `json:"max_amperage,omitempty" bson:"max_amperage,omitempty"`
	MaxPower    int       `json:"max_power,omitempty" bson:"max_power,omitempty"`
	LastChanged time.Time `json:"last_changed" bson:"last_changed"`
}

// Current types reported by the inventory.
const (
	CurrentTypeAC1Phase = "AC_1_PHASE"
	CurrentTypeAC3Phase = "AC_3_PHASE"
	CurrentTypeDC       = "DC"
)
