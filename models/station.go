package models

import "time"

// Station groups the EVSEs of one physical charge point cabinet.
type Station struct {
	Id              string    `json:"station_id" bson:"station_id"`
	PoolId          string    `json:"pool_id" bson:"pool_id"`
	Brand           string    `json:"brand,omitempty" bson:"brand,omitempty"`
	FloorLevel      string    `json:"floor_level,omitempty" bson:"floor_level,omitempty"`
	Coordinates     *GeoPoint `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	RemoteStart     bool      `json:"remote_start" bson:"remote_start"`
	Reservable      bool      `json:"reservable" bson:"reservable"`
	PaymentTerminal bool      `json:"payment_terminal" bson:"payment_terminal"`
	UnlockCapable   bool      `json:"unlock_capable" bson:"unlock_capable"`
	Evses           []*Evse   `json:"evses,omitempty" bson:"evses,omitempty"`
	LastChanged     time.Time `json:"last_changed" bson:"last_changed"`
}
