package models

import "time"

// ChargingSession is a finished or running charging session as kept
// in the inventory, with the hierarchy references resolved by the
// caller before projection.
type ChargingSession struct {
	Id           string         `json:"session_id" bson:"session_id"`
	OperatorName string         `json:"operator_name" bson:"operator_name"`
	TokenId      string         `json:"token_id" bson:"token_id"`
	AuthMethod   string         `json:"auth_method" bson:"auth_method"`
	TimeStart    time.Time      `json:"time_start" bson:"time_start"`
	TimeEnd      *time.Time     `json:"time_end,omitempty" bson:"time_end,omitempty"`
	Duration     *time.Duration `json:"duration,omitempty" bson:"duration,omitempty"`
	EnergyKwh    *float64       `json:"energy_kwh,omitempty" bson:"energy_kwh,omitempty"`
	TotalCost    *float64       `json:"total_cost,omitempty" bson:"total_cost,omitempty"`
	Currency     string         `json:"currency,omitempty" bson:"currency,omitempty"`
	MeterSamples []MeterSample  `json:"meter_samples,omitempty" bson:"meter_samples,omitempty"`
	Pool         *Pool          `json:"pool,omitempty" bson:"pool,omitempty"`
	Station      *Station       `json:"station,omitempty" bson:"station,omitempty"`
	Evse         *Evse          `json:"evse,omitempty" bson:"evse,omitempty"`
	Connector    *Connector     `json:"connector,omitempty" bson:"connector,omitempty"`
	LastChanged  time.Time      `json:"last_changed" bson:"last_changed"`
}

// Auth methods accepted for session start.
const (
	SessionAuthRfid   = "RFID"
	SessionAuthApp    = "APP"
	SessionAuthRemote = "REMOTE"
)

// MeterSample is one energy metering reading taken during a session.
type MeterSample struct {
	Time      time.Time `json:"time" bson:"time"`
	EnergyKwh float64   `json:"energy_kwh" bson:"energy_kwh"`
}
