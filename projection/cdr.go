package projection

import (
	"roamsync/models"
	"roamsync/ocpi"
	"roamsync/ocpi/types"
	"sort"
)

func authMethodOf(method string) (types.AuthMethod, bool) {
	switch method {
	case models.SessionAuthRfid:
		return types.AuthMethodWhitelist, true
	case models.SessionAuthApp, models.SessionAuthRemote:
		return types.AuthMethodAuthRequest, true
	}
	return "", false
}

// ProjectCdr converts one finished charging session into a billable
// CDR. Checks run in a fixed order and the first failing one returns
// exactly one warning; an incomplete session is never zero-filled.
func (p *Projector) ProjectCdr(session *models.ChargingSession) (*ocpi.Cdr, []Warning) {
	if session == nil {
		panic("projection: nil session")
	}

	if session.OperatorName == "" {
		return nil, []Warning{Warnf("session %s: missing operator", session.Id)}
	}
	if session.TimeEnd == nil {
		return nil, []Warning{Warnf("session %s: missing session endtime", session.Id)}
	}
	if session.Duration == nil {
		return nil, []Warning{Warnf("session %s: missing session duration", session.Id)}
	}
	authMethod, ok := authMethodOf(session.AuthMethod)
	if !ok {
		return nil, []Warning{Warnf("session %s: unconvertible auth method %q", session.Id, session.AuthMethod)}
	}
	if session.Connector == nil {
		return nil, []Warning{Warnf("session %s: missing connector", session.Id)}
	}
	if session.Evse == nil {
		return nil, []Warning{Warnf("session %s: missing evse", session.Id)}
	}
	if session.Station == nil {
		return nil, []Warning{Warnf("session %s: missing station", session.Id)}
	}
	if session.Pool == nil {
		return nil, []Warning{Warnf("session %s: missing pool", session.Id)}
	}

	include := Include{
		Evse: func(evse *models.Evse) bool {
			return evse.Id == session.Evse.Id
		},
		Connector: func(connector *models.Connector) bool {
			return connector.Id == session.Connector.Id
		},
	}
	location, _ := p.ProjectPool(session.Pool, include)
	if location == nil || len(location.Evses) == 0 {
		return nil, []Warning{Warnf("session %s: location projection failed for pool %s", session.Id, session.Pool.Id)}
	}

	if session.TotalCost == nil || session.Currency == "" {
		return nil, []Warning{Warnf("session %s: missing price or currency", session.Id)}
	}
	if session.EnergyKwh == nil {
		return nil, []Warning{Warnf("session %s: missing consumed energy", session.Id)}
	}
	if len(session.MeterSamples) < 2 {
		return nil, []Warning{Warnf("session %s: at least two energy metering values are required", session.Id)}
	}

	samples := make([]models.MeterSample, len(session.MeterSamples))
	copy(samples, session.MeterSamples)
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Time.Before(samples[j].Time)
	})

	periods := make([]ocpi.ChargingPeriod, 0, len(samples))
	for _, sample := range samples {
		periods = append(periods, ocpi.ChargingPeriod{
			StartDateTime: sample.Time.UTC(),
			Dimensions: []ocpi.CdrDimension{
				{Type: types.DimensionEnergy, Volume: sample.EnergyKwh},
			},
		})
	}

	return &ocpi.Cdr{
		Id:              session.Id,
		CountryCode:     p.CountryCode,
		PartyId:         p.PartyId,
		StartDateTime:   session.TimeStart.UTC(),
		EndDateTime:     session.TimeEnd.UTC(),
		AuthId:          types.TokenId(session.TokenId),
		AuthMethod:      authMethod,
		Location:        location,
		Currency:        session.Currency,
		ChargingPeriods: periods,
		TotalCost:       *session.TotalCost,
		TotalEnergy:     *session.EnergyKwh,
		TotalTime:       session.Duration.Hours(),
		LastUpdated:     session.LastChanged.UTC(),
	}, nil
}
