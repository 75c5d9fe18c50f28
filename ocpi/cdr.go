package ocpi

import (
	"roamsync/ocpi/types"
	"time"
)

// Cdr is a finalized billing record for one completed charging
// session. Totals are carried verbatim from the source session, no
// recomputation or rounding happens here.
type Cdr struct {
	Id              string            `json:"id" bson:"id" validate:"required,max=39"`
	CountryCode     types.CountryCode `json:"country_code" bson:"country_code" validate:"required,len=2"`
	PartyId         types.PartyId     `json:"party_id" bson:"party_id" validate:"required,max=3"`
	StartDateTime   time.Time         `json:"start_date_time" bson:"start_date_time" validate:"required"`
	EndDateTime     time.Time         `json:"end_date_time" bson:"end_date_time" validate:"required"`
	AuthId          types.TokenId     `json:"auth_id" bson:"auth_id" validate:"required,max=36"`
	AuthMethod      types.AuthMethod  `json:"auth_method" bson:"auth_method" validate:"required"`
	Location        *Location         `json:"location" bson:"location" validate:"required"`
	Currency        string            `json:"currency" bson:"currency" validate:"required,len=3"`
	ChargingPeriods []ChargingPeriod  `json:"charging_periods" bson:"charging_periods" validate:"required,min=1,dive"`
	TotalCost       float64           `json:"total_cost" bson:"total_cost"`
	TotalEnergy     float64           `json:"total_energy" bson:"total_energy"`
	TotalTime       float64           `json:"total_time" bson:"total_time"`
	LastUpdated     time.Time         `json:"last_updated" bson:"last_updated" validate:"required"`
}

// ChargingPeriod covers the span from its start until the next
// period's start, or the session end for the last one.
type ChargingPeriod struct {
	StartDateTime time.Time      `json:"start_date_time" bson:"start_date_time" validate:"required"`
	Dimensions    []CdrDimension `json:"dimensions" bson:"dimensions" validate:"required,min=1,dive"`
}

type CdrDimension struct {
	Type   types.CdrDimensionType `json:"type" bson:"type" validate:"required"`
	Volume float64                `json:"volume" bson:"volume"`
}
