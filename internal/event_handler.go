package internal

import "time"

type EventKind string

const (
	EventPoolChanged     EventKind = "pool"
	EventStationChanged  EventKind = "station"
	EventEvseChanged     EventKind = "evse"
	EventSessionFinished EventKind = "session"
)

// ChangeEvent is one inventory change notification received on the
// feed. Station and EVSE changes carry the owning pool id so the
// whole pool can be re-projected.
type ChangeEvent struct {
	Kind     EventKind `json:"kind" bson:"kind"`
	EntityId string    `json:"entity_id" bson:"entity_id"`
	PoolId   string    `json:"pool_id,omitempty" bson:"pool_id,omitempty"`
	Time     time.Time `json:"time" bson:"time"`
	Source   string    `json:"source,omitempty" bson:"source,omitempty"`
}

type EventHandler interface {
	OnPoolChanged(event *ChangeEvent)
	OnSessionFinished(event *ChangeEvent)
}
