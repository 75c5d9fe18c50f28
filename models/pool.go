package models

import "time"

// Pool is a charging pool as kept in the operator's inventory: a
// physical site grouping one or more stations. Pools are the unit of
// projection towards roaming partners.
type Pool struct {
	Id           string        `json:"pool_id" bson:"pool_id"`
	OperatorName string        `json:"operator_name" bson:"operator_name"`
	Name         string        `json:"name,omitempty" bson:"name,omitempty"`
	Address      *Address      `json:"address,omitempty" bson:"address,omitempty"`
	Coordinates  *GeoPoint     `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	TimeZone     string        `json:"time_zone" bson:"time_zone"`
	Published    bool          `json:"published" bson:"published"`
	Brand        string        `json:"brand,omitempty" bson:"brand,omitempty"`
	Facilities   []string      `json:"facilities,omitempty" bson:"facilities,omitempty"`
	OpeningHours *OpeningHours `json:"opening_hours,omitempty" bson:"opening_hours,omitempty"`
	FloorLevel   string        `json:"floor_level,omitempty" bson:"floor_level,omitempty"`
	EnergyMix    *EnergyMix    `json:"energy_mix,omitempty" bson:"energy_mix,omitempty"`
	Stations     []*Station    `json:"stations,omitempty" bson:"stations,omitempty"`
	Created      time.Time     `json:"created" bson:"created"`
	LastChanged  time.Time     `json:"last_changed" bson:"last_changed"`
}

type Address struct {
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	PostalCode string `json:"postal_code" bson:"postal_code"`
	Country    string `json:"country" bson:"country"`
}

type GeoPoint struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// EnergyMix is the supplied-energy description as entered by the
// operator. Source and impact categories are free text here and only
// validated during projection.
type EnergyMix struct {
	IsGreenEnergy bool                 `json:"is_green_energy" bson:"is_green_energy"`
	SupplierName  string               `json:"supplier_name,omitempty" bson:"supplier_name,omitempty"`
	ProductName   string               `json:"product_name,omitempty" bson:"product_name,omitempty"`
	Sources       []EnergySourceShare  `json:"sources,omitempty" bson:"sources,omitempty"`
	Impact        *EnvironmentalImpact `json:"impact,omitempty" bson:"impact,omitempty"`
}

type EnergySourceShare struct {
	Source     string `json:"source" bson:"source"`
	Percentage int    `json:"percentage" bson:"percentage"`
}

type EnvironmentalImpact struct {
	Category string `json:"category" bson:"category"`
	Amount   int    `json:"amount" bson:"amount"`
}

type OpeningHours struct {
	TwentyFourSeven bool            `json:"twentyfourseven" bson:"twentyfourseven"`
	Periods         []RegularPeriod `json:"periods,omitempty" bson:"periods,omitempty"`
}

type RegularPeriod struct {
	Weekday     int    `json:"weekday" bson:"weekday"`
	PeriodBegin string `json:"period_begin" bson:"period_begin"`
	PeriodEnd   string `json:"period_end" bson:"period_end"`
}
