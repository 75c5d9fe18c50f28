package projection

import (
	"roamsync/models"
	"roamsync/ocpi/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() *models.ChargingSession {
	pool := testPool()
	station := pool.Stations[0]
	evse := station.Evses[0]
	connector := evse.Connectors[0]

	end := baseTime.Add(45 * time.Minute)
	duration := 45 * time.Minute
	energy := 12.5
	cost := 6.25
	return &models.ChargingSession{
		Id:           "S-100",
		OperatorName: "Fast Charge Ops",
		TokenId:      "TAG-7",
		AuthMethod:   models.SessionAuthRfid,
		TimeStart:    baseTime,
		TimeEnd:      &end,
		Duration:     &duration,
		EnergyKwh:    &energy,
		TotalCost:    &cost,
		Currency:     "EUR",
		MeterSamples: []models.MeterSample{
			{Time: baseTime.Add(15 * time.Minute), EnergyKwh: 4.0},
			{Time: baseTime.Add(30 * time.Minute), EnergyKwh: 8.5},
		},
		Pool:        pool,
		Station:     station,
		Evse:        evse,
		Connector:   connector,
		LastChanged: end,
	}
}

func TestProjectCdrSuccess(t *testing.T) {
	cdr, warnings := testProjector().ProjectCdr(testSession())

	require.NotNil(t, cdr)
	assert.Empty(t, warnings)
	assert.Equal(t, "S-100", cdr.Id)
	assert.Equal(t, types.AuthMethodWhitelist, cdr.AuthMethod)
	assert.Equal(t, "EUR", cdr.Currency)
	assert.Equal(t, 6.25, cdr.TotalCost)
	assert.Equal(t, 12.5, cdr.TotalEnergy)
	assert.Equal(t, 0.75, cdr.TotalTime)

	// one charging period per metering sample, in time order
	require.Len(t, cdr.ChargingPeriods, 2)
	assert.Equal(t, 4.0, cdr.ChargingPeriods[0].Dimensions[0].Volume)
	assert.Equal(t, types.DimensionEnergy, cdr.ChargingPeriods[0].Dimensions[0].Type)
	assert.True(t, cdr.ChargingPeriods[0].StartDateTime.Before(cdr.ChargingPeriods[1].StartDateTime))

	// location scoped to the session's EVSE and connector
	require.NotNil(t, cdr.Location)
	require.Len(t, cdr.Location.Evses, 1)
	assert.Equal(t, "E1", cdr.Location.Evses[0].Uid.String())
	assert.Len(t, cdr.Location.Evses[0].Connectors, 1)
}

func TestProjectCdrMissingEndTime(t *testing.T) {
	session := testSession()
	session.TimeEnd = nil

	cdr, warnings := testProjector().ProjectCdr(session)

	assert.Nil(t, cdr)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].String(), "session endtime")
}

func TestProjectCdrTooFewMeterSamples(t *testing.T) {
	session := testSession()
	session.MeterSamples = session.MeterSamples[:1]

	cdr, warnings := testProjector().ProjectCdr(session)

	assert.Nil(t, cdr)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].String(), "two energy metering values")
}

func TestProjectCdrMissingPrice(t *testing.T) {
	session := testSession()
	session.TotalCost = nil

	cdr, warnings := testProjector().ProjectCdr(session)

	assert.Nil(t, cdr)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].String(), "price or currency")
}

func TestProjectCdrUnconvertibleAuthMethod(t *testing.T) {
	session := testSession()
	session.AuthMethod = "CASH"

	cdr, warnings := testProjector().ProjectCdr(session)

	assert.Nil(t, cdr)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].String(), "unconvertible auth method")
}

func TestProjectCdrChecksShortCircuitInOrder(t *testing.T) {
	session := testSession()
	// several problems at once: only the first check in order reports
	session.TimeEnd = nil
	session.TotalCost = nil
	session.MeterSamples = nil

	cdr, warnings := testProjector().ProjectCdr(session)

	assert.Nil(t, cdr)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].String(), "session endtime")
}

func TestProjectCdrMissingHierarchy(t *testing.T) {
	session := testSession()
	session.Station = nil

	cdr, warnings := testProjector().ProjectCdr(session)

	assert.Nil(t, cdr)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].String(), "missing station")
}

func TestProjectCdrNilSessionPanics(t *testing.T) {
	assert.Panics(t, func() {
		testProjector().ProjectCdr(nil)
	})
}
