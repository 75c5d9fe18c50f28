package ocpi

import "roamsync/ocpi/types"

// EnergyMix describes the energy mix and environmental impact of the
// supplied energy at a location.
type EnergyMix struct {
	IsGreenEnergy       bool                 `json:"is_green_energy" bson:"is_green_energy"`
	EnergySources       []EnergySource       `json:"energy_sources,omitempty" bson:"energy_sources,omitempty" validate:"omitempty,dive"`
	EnvironmentalImpact *EnvironmentalImpact `json:"environ_impact,omitempty" bson:"environ_impact,omitempty"`
	SupplierName        string               `json:"supplier_name,omitempty" bson:"supplier_name,omitempty" validate:"omitempty,max=64"`
	EnergyProductName   string               `json:"energy_product_name,omitempty" bson:"energy_product_name,omitempty" validate:"omitempty,max=64"`
}

// EnergySource is one category's share of the mix. Shares should add
// up to 100 percent across the sources of a mix.
type EnergySource struct {
	Source     types.EnergySourceCategory `json:"source" bson:"source" validate:"required"`
	Percentage int                        `json:"percentage" bson:"percentage" validate:"min=0,max=100"`
}

// EnvironmentalImpact is waste or carbon dioxide emission in g/kWh.
type EnvironmentalImpact struct {
	Category types.EnvironmentalImpactCategory `json:"category" bson:"category" validate:"required"`
	Amount   int                               `json:"amount" bson:"amount" validate:"min=0"`
}
