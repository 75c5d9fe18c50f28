package projection

import (
	"roamsync/models"
	"roamsync/ocpi/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func testProjector() *Projector {
	projector := NewProjector("NL", "ROA", types.NewFacilityRegistry())
	projector.UidConverter = func(sourceId string) (string, bool) {
		return sourceId, sourceId != ""
	}
	return projector
}

func testConnector(id string) *models.Connector {
	return &models.Connector{
		Id:          id,
		PlugType:    "Type2",
		CurrentType: models.CurrentTypeAC3Phase,
		MaxVoltage:  230,
		MaxAmperage: 32,
		MaxPower:    22000,
		LastChanged: baseTime,
	}
}

func testEvse(id string, connectors ...*models.Connector) *models.Evse {
	return &models.Evse{
		Id:          id,
		Status:      "Available",
		StatusTime:  baseTime,
		Connectors:  connectors,
		LastChanged: baseTime,
	}
}

// testPool builds the reference fixture: two stations, station A with
// two EVSEs, station B with one, each EVSE with one convertible
// connector.
func testPool() *models.Pool {
	return &models.Pool{
		Id:           "P1",
		OperatorName: "Fast Charge Ops",
		Name:         "Harbour Site",
		Address: &models.Address{
			Street:     "Kade 12",
			City:       "Rotterdam",
			PostalCode: "3011AB",
			Country:    "NLD",
		},
		Coordinates: &models.GeoPoint{Latitude: 51.9225, Longitude: 4.47917},
		TimeZone:    "Europe/Amsterdam",
		Published:   true,
		Brand:       "FastCharge",
		Facilities:  []string{"supermarket", "WIFI"},
		Stations: []*models.Station{
			{
				Id:          "A",
				Brand:       "AlphaCharge",
				RemoteStart: true,
				Evses: []*models.Evse{
					testEvse("E1", testConnector("1")),
					testEvse("E2", testConnector("1")),
				},
				LastChanged: baseTime,
			},
			{
				Id: "B",
				Evses: []*models.Evse{
					testEvse("E3", testConnector("1")),
				},
				LastChanged: baseTime,
			},
		},
		Created:     baseTime.Add(-24 * time.Hour),
		LastChanged: baseTime,
	}
}

func TestProjectPoolScenario(t *testing.T) {
	location, warnings := testProjector().ProjectPool(testPool(), IncludeAll())

	require.NotNil(t, location)
	assert.Empty(t, warnings)
	require.Len(t, location.Evses, 3)
	for _, evse := range location.Evses {
		assert.Len(t, evse.Connectors, 1)
	}
	assert.Equal(t, "P1", location.Id.String())
	assert.Equal(t, "NL", location.CountryCode.String())
	assert.True(t, location.Publish)
}

func TestProjectPoolUnconvertibleEvseIsDropped(t *testing.T) {
	pool := testPool()
	badConnector := testConnector("1")
	badConnector.PlugType = "GOST-7396"
	pool.Stations[0].Evses = append(pool.Stations[0].Evses, testEvse("E4", badConnector))

	location, warnings := testProjector().ProjectPool(pool, IncludeAll())

	require.NotNil(t, location)
	require.Len(t, location.Evses, 3)
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0].String(), "unconvertible plug type")
}

func TestProjectPoolMissingMandatoryFields(t *testing.T) {
	pool := testPool()
	pool.OperatorName = ""
	pool.Coordinates = nil

	location, warnings := testProjector().ProjectPool(pool, IncludeAll())

	assert.Nil(t, location)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0].String(), "missing operator")
	assert.Contains(t, warnings[1].String(), "missing geo location")
}

func TestProjectPoolNilPoolPanics(t *testing.T) {
	assert.Panics(t, func() {
		testProjector().ProjectPool(nil, IncludeAll())
	})
}

func TestProjectPoolIdempotent(t *testing.T) {
	projector := testProjector()
	pool := testPool()

	first, firstWarnings := projector.ProjectPool(pool, IncludeAll())
	second, secondWarnings := projector.ProjectPool(pool, IncludeAll())

	require.NotNil(t, first)
	assert.Equal(t, first, second)
	assert.Equal(t, firstWarnings, secondWarnings)
	assert.Equal(t, first.Created, second.Created)
	assert.Equal(t, first.LastUpdated, second.LastUpdated)
}

func TestProjectPoolLastUpdatedMonotonic(t *testing.T) {
	projector := testProjector()
	pool := testPool()

	before, _ := projector.ProjectPool(pool, IncludeAll())
	require.NotNil(t, before)

	// status change on one EVSE moves the location timestamp forward
	pool.Stations[0].Evses[0].Status = "Charging"
	pool.Stations[0].Evses[0].StatusTime = baseTime.Add(5 * time.Minute)

	after, _ := projector.ProjectPool(pool, IncludeAll())
	require.NotNil(t, after)
	assert.True(t, after.LastUpdated.After(before.LastUpdated))
	assert.Equal(t, baseTime.Add(5*time.Minute), after.LastUpdated)
}

func TestProjectPoolConnectorlessEvseSiblingsSurvive(t *testing.T) {
	pool := testPool()
	// all connectors of E1 fail conversion
	pool.Stations[0].Evses[0].Connectors[0].CurrentType = "AC_2_PHASE"

	location, warnings := testProjector().ProjectPool(pool, IncludeAll())

	require.NotNil(t, location)
	assert.Len(t, location.Evses, 2)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0].String(), "unconvertible current type")
	assert.Contains(t, warnings[1].String(), "no convertible connectors")
}

func TestProjectPoolBrandsSorted(t *testing.T) {
	location, _ := testProjector().ProjectPool(testPool(), IncludeAll())

	require.NotNil(t, location)
	require.Len(t, location.SubOperators, 2)
	assert.Equal(t, "AlphaCharge", location.SubOperators[0].Name)
	assert.Equal(t, "FastCharge", location.SubOperators[1].Name)
}

func TestProjectPoolFacilitiesNormalized(t *testing.T) {
	location, _ := testProjector().ProjectPool(testPool(), IncludeAll())

	require.NotNil(t, location)
	assert.Equal(t, []string{"SUPERMARKET", "WIFI"}, location.Facilities)
}

func TestProjectPoolIncludePredicate(t *testing.T) {
	include := Include{
		Evse: func(evse *models.Evse) bool { return evse.Id == "E3" },
	}
	location, warnings := testProjector().ProjectPool(testPool(), include)

	require.NotNil(t, location)
	assert.Empty(t, warnings)
	require.Len(t, location.Evses, 1)
	assert.Equal(t, "E3", location.Evses[0].Uid.String())
}

func TestProjectPoolEnergyMix(t *testing.T) {
	pool := testPool()
	pool.EnergyMix = &models.EnergyMix{
		IsGreenEnergy: true,
		SupplierName:  "Green Grid BV",
		ProductName:   "Harbour Wind",
		Sources: []models.EnergySourceShare{
			{Source: "wind", Percentage: 80},
			{Source: "solar", Percentage: 20},
		},
		Impact: &models.EnvironmentalImpact{Category: "carbon_dioxide", Amount: 12},
	}

	location, warnings := testProjector().ProjectPool(pool, IncludeAll())

	require.NotNil(t, location)
	assert.Empty(t, warnings)
	require.NotNil(t, location.EnergyMix)
	assert.True(t, location.EnergyMix.IsGreenEnergy)
	assert.Equal(t, "Green Grid BV", location.EnergyMix.SupplierName)
	require.Len(t, location.EnergyMix.EnergySources, 2)
	assert.Equal(t, types.EnergySourceWind, location.EnergyMix.EnergySources[0].Source)
	assert.Equal(t, 80, location.EnergyMix.EnergySources[0].Percentage)
	require.NotNil(t, location.EnergyMix.EnvironmentalImpact)
	assert.Equal(t, types.ImpactCarbonDioxide, location.EnergyMix.EnvironmentalImpact.Category)
}

func TestProjectPoolEnergyMixUnknownCategory(t *testing.T) {
	pool := testPool()
	pool.EnergyMix = &models.EnergyMix{
		Sources: []models.EnergySourceShare{
			{Source: "FUSION", Percentage: 50},
			{Source: "WATER", Percentage: 50},
		},
	}

	location, warnings := testProjector().ProjectPool(pool, IncludeAll())

	require.NotNil(t, location)
	require.NotNil(t, location.EnergyMix)
	// the unknown share is dropped, the rest of the mix survives
	require.Len(t, location.EnergyMix.EnergySources, 1)
	assert.Equal(t, types.EnergySourceWater, location.EnergyMix.EnergySources[0].Source)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].String(), "unknown energy source category")
}

func TestProjectEvsePinnedUidWins(t *testing.T) {
	pool := testPool()
	pool.Stations[1].Evses[0].Metadata = map[string]string{models.MetaOcpiUid: "STABLE-UID-9"}

	location, _ := testProjector().ProjectPool(pool, IncludeAll())

	require.NotNil(t, location)
	require.Len(t, location.Evses, 3)
	assert.Equal(t, "STABLE-UID-9", location.Evses[2].Uid.String())
}

func TestProjectEvseNoUidResolvable(t *testing.T) {
	projector := NewProjector("NL", "ROA", types.NewFacilityRegistry())
	// no converter and no pinned uid: EVSEs cannot be projected
	location, warnings := projector.ProjectPool(testPool(), IncludeAll())

	require.NotNil(t, location)
	assert.Empty(t, location.Evses)
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0].String(), "no roaming unique id")
}

func TestProjectEvseCapabilities(t *testing.T) {
	pool := testPool()
	evse := pool.Stations[0].Evses[0]
	evse.AuthModes = []string{models.AuthModeRfid}
	evse.PaymentOptions = []string{models.PaymentOptionContactless}
	pool.Stations[0].Reservable = true

	location, _ := testProjector().ProjectPool(pool, IncludeAll())

	require.NotNil(t, location)
	capabilities := location.Evses[0].Capabilities
	assert.Contains(t, capabilities, types.CapabilityRfidReader)
	assert.Contains(t, capabilities, types.CapabilityRemoteStartStop)
	assert.Contains(t, capabilities, types.CapabilityReservable)
	assert.Contains(t, capabilities, types.CapabilityContactless)
	assert.NotContains(t, capabilities, types.CapabilityCreditCard)
}

func TestProjectEvseInheritsFloorAndCoordinates(t *testing.T) {
	pool := testPool()
	pool.FloorLevel = "-1"
	pool.Stations[1].Coordinates = &models.GeoPoint{Latitude: 51.92, Longitude: 4.48}

	location, _ := testProjector().ProjectPool(pool, IncludeAll())

	require.NotNil(t, location)
	evse := location.Evses[2]
	assert.Equal(t, "-1", evse.FloorLevel)
	require.NotNil(t, evse.Coordinates)
	assert.Equal(t, "51.920000", evse.Coordinates.Latitude)

	// station A carries no coordinates of its own, so its EVSEs fall
	// back to the pool's
	first := location.Evses[0]
	require.NotNil(t, first.Coordinates)
	assert.Equal(t, "51.922500", first.Coordinates.Latitude)
}
