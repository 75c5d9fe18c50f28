package projection

import (
	"fmt"
	"roamsync/models"
	"roamsync/ocpi"
	"roamsync/ocpi/types"
	"sort"
	"time"
)

func lastOf(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

func geoLocationOf(point *models.GeoPoint) ocpi.GeoLocation {
	return ocpi.GeoLocation{
		Latitude:  fmt.Sprintf("%.6f", point.Latitude),
		Longitude: fmt.Sprintf("%.6f", point.Longitude),
	}
}

// ProjectPool converts one inventory pool into a wire Location.
// Missing mandatory data yields no Location and warnings, one per
// missing field; a data problem on a single EVSE or connector drops
// only that entity. A nil pool is a programmer error and panics.
// Re-running on unchanged input produces identical output: derived
// collections are sorted, everything else keeps source order.
func (p *Projector) ProjectPool(pool *models.Pool, include Include) (*ocpi.Location, []Warning) {
	if pool == nil {
		panic("projection: nil pool")
	}

	var warnings []Warning
	if pool.Id == "" {
		warnings = append(warnings, Warnf("pool has no identifier"))
	}
	if pool.OperatorName == "" {
		warnings = append(warnings, Warnf("pool %s: missing operator", pool.Id))
	}
	if pool.Address == nil {
		warnings = append(warnings, Warnf("pool %s: missing address", pool.Id))
	}
	if pool.Coordinates == nil {
		warnings = append(warnings, Warnf("pool %s: missing geo location", pool.Id))
	}
	if len(warnings) > 0 {
		return nil, warnings
	}

	lastUpdated := pool.LastChanged
	var evses []*ocpi.Evse
	for _, station := range pool.Stations {
		for _, evse := range station.Evses {
			if !include.evse(evse) {
				continue
			}
			lastUpdated = lastOf(lastUpdated, lastOf(evse.StatusTime, evse.LastChanged))
			converted, evseWarnings := p.projectEvse(pool, station, evse, include)
			warnings = append(warnings, evseWarnings...)
			if converted != nil {
				evses = append(evses, converted)
			}
		}
	}

	location := &ocpi.Location{
		Id:          types.LocationId(pool.Id),
		CountryCode: p.CountryCode,
		PartyId:     p.PartyId,
		Publish:     pool.Published,
		Name:        pool.Name,
		Address:     pool.Address.Street,
		City:        pool.Address.City,
		PostalCode:  pool.Address.PostalCode,
		Country:     pool.Address.Country,
		Coordinates: geoLocationOf(pool.Coordinates),
		Evses:       evses,
		Operator:    &ocpi.BusinessDetails{Name: pool.OperatorName},
		TimeZone:    pool.TimeZone,
		Created:     pool.Created.UTC(),
		LastUpdated: lastUpdated.UTC(),
	}

	location.SubOperators = brandsOf(pool)
	location.Facilities = p.facilitiesOf(pool)
	if pool.OpeningHours != nil {
		location.OpeningTimes = hoursOf(pool.OpeningHours)
	}
	if pool.EnergyMix != nil {
		mix, mixWarnings := energyMixOf(pool)
		warnings = append(warnings, mixWarnings...)
		location.EnergyMix = mix
	}
	return location, warnings
}

var energySourceCategories = map[string]types.EnergySourceCategory{
	"NUCLEAR":        types.EnergySourceNuclear,
	"GENERAL_FOSSIL": types.EnergySourceGeneralFossil,
	"COAL":           types.EnergySourceCoal,
	"GAS":            types.EnergySourceGas,
	"GENERAL_GREEN":  types.EnergySourceGeneralGreen,
	"SOLAR":          types.EnergySourceSolar,
	"WIND":           types.EnergySourceWind,
	"WATER":          types.EnergySourceWater,
}

var environmentalImpactCategories = map[string]types.EnvironmentalImpactCategory{
	"NUCLEAR_WASTE":  types.ImpactNuclearWaste,
	"CARBON_DIOXIDE": types.ImpactCarbonDioxide,
}

// energyMixOf converts the operator-entered energy mix. A source or
// impact entry with an unknown category is dropped with a warning;
// the rest of the mix survives.
func energyMixOf(pool *models.Pool) (*ocpi.EnergyMix, []Warning) {
	var warnings []Warning
	source := pool.EnergyMix

	mix := &ocpi.EnergyMix{
		IsGreenEnergy:     source.IsGreenEnergy,
		SupplierName:      source.SupplierName,
		EnergyProductName: source.ProductName,
	}
	for _, share := range source.Sources {
		category, ok := energySourceCategories[normalizeToken(share.Source)]
		if !ok {
			warnings = append(warnings, Warnf("pool %s: unknown energy source category %q", pool.Id, share.Source))
			continue
		}
		mix.EnergySources = append(mix.EnergySources, ocpi.EnergySource{
			Source:     category,
			Percentage: share.Percentage,
		})
	}
	if source.Impact != nil {
		category, ok := environmentalImpactCategories[normalizeToken(source.Impact.Category)]
		if ok {
			mix.EnvironmentalImpact = &ocpi.EnvironmentalImpact{
				Category: category,
				Amount:   source.Impact.Amount,
			}
		} else {
			warnings = append(warnings, Warnf("pool %s: unknown environmental impact category %q", pool.Id, source.Impact.Category))
		}
	}
	return mix, warnings
}

// brandsOf collects distinct brand names across the pool and its
// stations, sorted by display text.
func brandsOf(pool *models.Pool) []ocpi.BusinessDetails {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	add(pool.Brand)
	for _, station := range pool.Stations {
		add(station.Brand)
	}
	sort.Strings(names)

	var brands []ocpi.BusinessDetails
	for _, name := range names {
		brands = append(brands, ocpi.BusinessDetails{Name: name})
	}
	return brands
}

func (p *Projector) facilitiesOf(pool *models.Pool) []string {
	if p.Registry == nil || len(pool.Facilities) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	var facilities []string
	for _, text := range pool.Facilities {
		facility := p.Registry.Register(text)
		if facility == nil || seen[facility.String()] {
			continue
		}
		seen[facility.String()] = true
		facilities = append(facilities, facility.String())
	}
	sort.Strings(facilities)
	return facilities
}

func hoursOf(hours *models.OpeningHours) *ocpi.Hours {
	result := &ocpi.Hours{TwentyFourSeven: hours.TwentyFourSeven}
	for _, period := range hours.Periods {
		result.RegularHours = append(result.RegularHours, ocpi.RegularHours{
			Weekday:     period.Weekday,
			PeriodBegin: period.PeriodBegin,
			PeriodEnd:   period.PeriodEnd,
		})
	}
	return result
}
