package projection

import (
	"roamsync/ocpi/types"
)

// EvseUidConverter derives a stable roaming unique id from an
// inventory EVSE identifier when no pinned uid is present.
type EvseUidConverter func(sourceId string) (string, bool)

// EvseIdConverter derives the partner-facing EVSE id from an
// inventory EVSE identifier.
type EvseIdConverter func(sourceId string) (string, bool)

// Projector converts inventory trees into wire entities. It is pure
// and performs no I/O; one instance is safe for concurrent use across
// pools.
type Projector struct {
	CountryCode  types.CountryCode
	PartyId      types.PartyId
	Registry     *types.FacilityRegistry
	UidConverter EvseUidConverter
	IdConverter  EvseIdConverter
}

func NewProjector(countryCode types.CountryCode, partyId types.PartyId, registry *types.FacilityRegistry) *Projector {
	return &Projector{
		CountryCode: countryCode,
		PartyId:     partyId,
		Registry:    registry,
	}
}
