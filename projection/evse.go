package projection

import (
	"roamsync/models"
	"roamsync/ocpi"
	"roamsync/ocpi/types"
	"roamsync/utility"
	"strings"
)

func normalizeToken(text string) string {
	return strings.ToUpper(strings.TrimSpace(text))
}

var statusMap = map[string]types.Status{
	"available":     types.StatusAvailable,
	"preparing":     types.StatusCharging,
	"charging":      types.StatusCharging,
	"suspendedev":   types.StatusCharging,
	"suspendedevse": types.StatusCharging,
	"finishing":     types.StatusCharging,
	"reserved":      types.StatusReserved,
	"unavailable":   types.StatusInoperative,
	"faulted":       types.StatusOutOfOrder,
	"planned":       types.StatusPlanned,
	"removed":       types.StatusRemoved,
	"blocked":       types.StatusBlocked,
}

func statusOf(status string) types.Status {
	if mapped, ok := statusMap[utility.NormalizedText(status)]; ok {
		return mapped
	}
	return types.StatusUnknown
}

// capabilitiesOf derives wire capabilities from station and EVSE
// signals. Several source signals map to the same capability; the
// combination is a disjunction per flag.
func capabilitiesOf(station *models.Station, evse *models.Evse) []types.Capability {
	var capabilities []types.Capability

	if utility.Contains(evse.AuthModes, models.AuthModeRfid) || utility.Contains(evse.UIFeatures, models.UIFeatureRfidReader) {
		capabilities = append(capabilities, types.CapabilityRfidReader)
	}
	if station.RemoteStart || utility.Contains(evse.UIFeatures, models.UIFeatureAppControl) || utility.Contains(evse.AuthModes, models.AuthModeApp) {
		capabilities = append(capabilities, types.CapabilityRemoteStartStop)
	}
	if station.Reservable {
		capabilities = append(capabilities, types.CapabilityReservable)
	}
	if utility.Contains(evse.PaymentOptions, models.PaymentOptionCreditCard) || station.PaymentTerminal {
		capabilities = append(capabilities, types.CapabilityCreditCard)
	}
	if utility.Contains(evse.PaymentOptions, models.PaymentOptionContactless) || station.PaymentTerminal {
		capabilities = append(capabilities, types.CapabilityContactless)
	}
	if station.UnlockCapable {
		capabilities = append(capabilities, types.CapabilityUnlock)
	}
	return capabilities
}

// projectEvse converts one inventory EVSE. Resolution of the roaming
// unique id prefers a pinned metadata value over converter-derived
// text; there is no fallback to a generated id. An EVSE without a
// single convertible connector is not representable and is dropped
// with a warning.
func (p *Projector) projectEvse(pool *models.Pool, station *models.Station, evse *models.Evse, include Include) (*ocpi.Evse, []Warning) {
	var warnings []Warning

	uidText := evse.Metadata[models.MetaOcpiUid]
	if uidText == "" && p.UidConverter != nil {
		if derived, ok := p.UidConverter(evse.Id); ok {
			uidText = derived
		}
	}
	uid, ok := types.TryParseEvseUid(uidText)
	if !ok {
		warnings = append(warnings, Warnf("evse %s: no roaming unique id could be resolved", evse.Id))
		return nil, warnings
	}

	var evseId types.EvseId
	idText := evse.Id
	if p.IdConverter != nil {
		if derived, converted := p.IdConverter(evse.Id); converted {
			idText = derived
		} else {
			idText = ""
		}
	}
	evseId, ok = types.TryParseEvseId(idText)
	if !ok {
		warnings = append(warnings, Warnf("evse %s: no partner-facing evse id could be resolved", evse.Id))
		evseId = ""
	}

	var connectors []*ocpi.Connector
	for _, connector := range evse.Connectors {
		if !include.connector(connector) {
			continue
		}
		converted, connectorWarnings := p.projectConnector(evse.Id, connector)
		warnings = append(warnings, connectorWarnings...)
		if converted != nil {
			connectors = append(connectors, converted)
		}
	}
	if len(connectors) == 0 {
		warnings = append(warnings, Warnf("evse %s: no convertible connectors, evse skipped", evse.Id))
		return nil, warnings
	}

	floorLevel := evse.FloorLevel
	if floorLevel == "" {
		floorLevel = station.FloorLevel
	}
	if floorLevel == "" {
		floorLevel = pool.FloorLevel
	}

	coordinates := evse.Coordinates
	if coordinates == nil {
		coordinates = station.Coordinates
	}
	if coordinates == nil {
		coordinates = pool.Coordinates
	}

	result := &ocpi.Evse{
		Uid:          uid,
		EvseId:       evseId,
		Status:       statusOf(evse.Status),
		Capabilities: capabilitiesOf(station, evse),
		Connectors:   connectors,
		FloorLevel:   floorLevel,
		LastUpdated:  lastOf(evse.StatusTime, evse.LastChanged).UTC(),
	}
	if coordinates != nil {
		geo := geoLocationOf(coordinates)
		result.Coordinates = &geo
	}
	if evse.EnergyMeter != nil {
		result.EnergyMeter = &ocpi.EnergyMeter{
			Id:              evse.EnergyMeter.Id,
			Vendor:          evse.EnergyMeter.Vendor,
			Model:           evse.EnergyMeter.Model,
			FirmwareVersion: evse.EnergyMeter.FirmwareVersion,
		}
	}
	return result, warnings
}
