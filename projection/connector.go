package projection

import (
	"roamsync/models"
	"roamsync/ocpi"
	"roamsync/ocpi/types"
)

type ratings struct {
	voltage  int
	amperage int
	power    int
}

// Nominal electrical ratings applied when the source value is absent
// or zero. The three-phase AC voltage is the line-to-neutral nominal
// (230 V, not 400 V): partners already consume this interpretation,
// so it must not change even though the wire format leaves it
// ambiguous.
var defaultRatings = map[types.PowerType]ratings{
	types.PowerTypeAC1Phase: {voltage: 230, amperage: 16, power: 3700},
	types.PowerTypeAC3Phase: {voltage: 230, amperage: 32, power: 22000},
	types.PowerTypeDC:       {voltage: 400, amperage: 125, power: 50000},
}

var plugStandards = map[string]types.ConnectorStandard{
	"TYPE1":              types.StandardType1,
	"IEC_62196_T1":       types.StandardType1,
	"TYPE1_COMBO":        types.StandardType1Combo,
	"IEC_62196_T1_COMBO": types.StandardType1Combo,
	"TYPE2":              types.StandardType2,
	"IEC_62196_T2":       types.StandardType2,
	"MENNEKES":           types.StandardType2,
	"TYPE2_COMBO":        types.StandardType2Combo,
	"CCS":                types.StandardType2Combo,
	"CCS2":               types.StandardType2Combo,
	"IEC_62196_T2_COMBO": types.StandardType2Combo,
	"CHADEMO":            types.StandardChademo,
	"SCHUKO":             types.StandardDomesticF,
	"DOMESTIC_F":         types.StandardDomesticF,
	"TESLA":              types.StandardTeslaS,
	"TESLA_S":            types.StandardTeslaS,
}

func powerTypeOf(currentType string) (types.PowerType, bool) {
	switch currentType {
	case models.CurrentTypeAC1Phase:
		return types.PowerTypeAC1Phase, true
	case models.CurrentTypeAC3Phase:
		return types.PowerTypeAC3Phase, true
	case models.CurrentTypeDC:
		return types.PowerTypeDC, true
	}
	return "", false
}

// projectConnector converts one inventory connector. A connector with
// no wire equivalent for its current type or plug type is dropped
// with a warning; siblings are unaffected.
func (p *Projector) projectConnector(evseId string, connector *models.Connector) (*ocpi.Connector, []Warning) {
	id, ok := types.TryParseConnectorId(connector.Id)
	if !ok {
		return nil, []Warning{Warnf("evse %s: connector with empty id skipped", evseId)}
	}

	powerType, ok := powerTypeOf(connector.CurrentType)
	if !ok {
		return nil, []Warning{Warnf("evse %s: connector %s has unconvertible current type %q", evseId, connector.Id, connector.CurrentType)}
	}

	standard, ok := plugStandards[normalizeToken(connector.PlugType)]
	if !ok {
		return nil, []Warning{Warnf("evse %s: connector %s has unconvertible plug type %q", evseId, connector.Id, connector.PlugType)}
	}

	format := types.FormatSocket
	if connector.CableFixed {
		format = types.FormatCable
	}

	fallback := defaultRatings[powerType]
	voltage := connector.MaxVoltage
	if voltage <= 0 {
		voltage = fallback.voltage
	}
	amperage := connector.MaxAmperage
	if amperage <= 0 {
		amperage = fallback.amperage
	}
	power := connector.MaxPower
	if power <= 0 {
		power = fallback.power
	}

	return &ocpi.Connector{
		Id:          id,
		Standard:    standard,
		Format:      format,
		PowerType:   powerType,
		MaxVoltage:  voltage,
		MaxAmperage: amperage,
		MaxPower:    power,
		LastUpdated: connector.LastChanged.UTC(),
	}, nil
}
