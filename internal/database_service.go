package internal

import (
	"roamsync/models"
	"roamsync/ocpi"
)

type Database interface {
	Write(table string, data Data) error
	WriteLogMessage(data Data) error
	ReadLog() (interface{}, error)
	GetPool(id string) (*models.Pool, error)
	GetPools() ([]*models.Pool, error)
	GetChargingSession(id string) (*models.ChargingSession, error)
	GetLocation(id string) (*ocpi.Location, error)
	UpsertLocation(location *ocpi.Location) error
	UpsertCdr(cdr *ocpi.Cdr) error
	GetSubscriptions() ([]*models.SubscriptionRecord, error)
	UpsertSubscription(record *models.SubscriptionRecord) error
	GetAlertSubscribers() ([]models.AlertSubscriber, error)
	AddAlertSubscriber(subscriber *models.AlertSubscriber) error
	DeleteAlertSubscriber(userId int) error
}

type Data interface {
	DataType() string
}
