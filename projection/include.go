package projection

import "roamsync/models"

// Include filters which parts of a pool take part in a projection.
// A nil predicate includes everything.
type Include struct {
	Evse      func(evse *models.Evse) bool
	Connector func(connector *models.Connector) bool
}

func IncludeAll() Include {
	return Include{}
}

func (i Include) evse(evse *models.Evse) bool {
	if i.Evse == nil {
		return true
	}
	return i.Evse(evse)
}

func (i Include) connector(connector *models.Connector) bool {
	if i.Connector == nil {
		return true
	}
	return i.Connector(connector)
}
