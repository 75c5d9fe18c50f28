package ocpi

import (
	"roamsync/ocpi/types"
	"time"
)

// Location is the wire representation of a charging pool exposed to
// roaming partners.
type Location struct {
	Id           types.LocationId  `json:"id" bson:"id" validate:"required,max=39"`
	CountryCode  types.CountryCode `json:"country_code" bson:"country_code" validate:"required,len=2"`
	PartyId      types.PartyId     `json:"party_id" bson:"party_id" validate:"required,max=3"`
	Publish      bool              `json:"publish" bson:"publish"`
	Name         string            `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,max=255"`
	Address      string            `json:"address" bson:"address" validate:"required,max=45"`
	City         string            `json:"city" bson:"city" validate:"required,max=45"`
	PostalCode   string            `json:"postal_code,omitempty" bson:"postal_code,omitempty" validate:"omitempty,max=10"`
	Country      string            `json:"country" bson:"country" validate:"required,len=3"`
	Coordinates  GeoLocation       `json:"coordinates" bson:"coordinates" validate:"required"`
	Evses        []*Evse           `json:"evses,omitempty" bson:"evses,omitempty" validate:"omitempty,dive"`
	Operator     *BusinessDetails  `json:"operator,omitempty" bson:"operator,omitempty"`
	SubOperators []BusinessDetails `json:"suboperators,omitempty" bson:"suboperators,omitempty"`
	Facilities   []string          `json:"facilities,omitempty" bson:"facilities,omitempty"`
	TimeZone     string            `json:"time_zone" bson:"time_zone" validate:"required,max=255"`
	OpeningTimes *Hours            `json:"opening_times,omitempty" bson:"opening_times,omitempty"`
	EnergyMix    *EnergyMix        `json:"energy_mix,omitempty" bson:"energy_mix,omitempty"`
	Created      time.Time         `json:"created" bson:"created"`
	LastUpdated  time.Time         `json:"last_updated" bson:"last_updated" validate:"required"`
}

type GeoLocation struct {
	Latitude  string `json:"latitude" bson:"latitude" validate:"required,max=10"`
	Longitude string `json:"longitude" bson:"longitude" validate:"required,max=11"`
}

type Hours struct {
	TwentyFourSeven bool           `json:"twentyfourseven" bson:"twentyfourseven"`
	RegularHours    []RegularHours `json:"regular_hours,omitempty" bson:"regular_hours,omitempty"`
}

type RegularHours struct {
	Weekday     int    `json:"weekday" bson:"weekday" validate:"required,min=1,max=7"`
	PeriodBegin string `json:"period_begin" bson:"period_begin" validate:"required,len=5"`
	PeriodEnd   string `json:"period_end" bson:"period_end" validate:"required,len=5"`
}

type BusinessDetails struct {
	Name    string `json:"name" bson:"name" validate:"required,max=100"`
	Website string `json:"website,omitempty" bson:"website,omitempty" validate:"omitempty,url"`
}
