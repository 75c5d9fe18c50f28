package internal

import (
	"context"
	"fmt"
	"log"
	"roamsync/internal/config"
	"roamsync/models"
	"roamsync/ocpi"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionLog              = "sys_log"
	collectionPools            = "pools"
	collectionSessions         = "sessions"
	collectionLocations        = "locations"
	collectionCdrs             = "cdrs"
	collectionSubscriptions    = "subscriptions"
	collectionAlertSubscribers = "alert_subscribers"
)

type MongoDB struct {
	ctx           context.Context
	clientOptions *options.ClientOptions
	database      string
}

func NewMongoClient(conf *config.Config) (*MongoDB, error) {
	if !conf.Mongo.Enabled {
		return nil, nil
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	client := &MongoDB{
		ctx:           context.Background(),
		clientOptions: clientOptions,
		database:      conf.Mongo.Database,
	}
	return client, nil
}

func (m *MongoDB) connect() (*mongo.Client, error) {
	connection, err := mongo.Connect(m.ctx, m.clientOptions)
	if err != nil {
		return nil, err
	}
	return connection, nil
}

func (m *MongoDB) disconnect(connection *mongo.Client) {
	err := connection.Disconnect(m.ctx)
	if err != nil {
		log.Println("mongodb disconnect error;", err)
	}
}

func (m *MongoDB) Write(table string, data Data) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)
	collection := connection.Database(m.database).Collection(table)
	_, err = collection.InsertOne(m.ctx, data)
	return err
}

func (m *MongoDB) WriteLogMessage(data Data) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)
	collection := connection.Database(m.database).Collection(collectionLog)
	_, err = collection.InsertOne(m.ctx, data)
	return err
}

func (m *MongoDB) ReadLog() (interface{}, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	var logMessages []FeatureLogMessage
	collection := connection.Database(m.database).Collection(collectionLog)
	filter := bson.D{}
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: -1}}).SetLimit(1000)
	cursor, err := collection.Find(m.ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	if err = cursor.All(m.ctx, &logMessages); err != nil {
		return nil, err
	}
	return logMessages, nil
}

func (m *MongoDB) GetPool(id string) (*models.Pool, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	filter := bson.D{{Key: "pool_id", Value: id}}
	collection := connection.Database(m.database).Collection(collectionPools)
	var pool models.Pool
	err = collection.FindOne(m.ctx, filter).Decode(&pool)
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

func (m *MongoDB) GetPools() ([]*models.Pool, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	var pools []*models.Pool
	collection := connection.Database(m.database).Collection(collectionPools)
	cursor, err := collection.Find(m.ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	if err = cursor.All(m.ctx, &pools); err != nil {
		return nil, err
	}
	return pools, nil
}

func (m *MongoDB) GetChargingSession(id string) (*models.ChargingSession, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	filter := bson.D{{Key: "session_id", Value: id}}
	collection := connection.Database(m.database).Collection(collectionSessions)
	var session models.ChargingSession
	err = collection.FindOne(m.ctx, filter).Decode(&session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (m *MongoDB) GetLocation(id string) (*ocpi.Location, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	filter := bson.D{{Key: "id", Value: id}}
	collection := connection.Database(m.database).Collection(collectionLocations)
	var location ocpi.Location
	err = collection.FindOne(m.ctx, filter).Decode(&location)
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (m *MongoDB) UpsertLocation(location *ocpi.Location) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	filter := bson.D{{Key: "id", Value: location.Id}}
	update := bson.M{"$set": location}
	opts := options.Update().SetUpsert(true)
	collection := connection.Database(m.database).Collection(collectionLocations)
	_, err = collection.UpdateOne(m.ctx, filter, update, opts)
	return err
}

func (m *MongoDB) UpsertCdr(cdr *ocpi.Cdr) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	filter := bson.D{{Key: "id", Value: cdr.Id}}
	update := bson.M{"$set": cdr}
	opts := options.Update().SetUpsert(true)
	collection := connection.Database(m.database).Collection(collectionCdrs)
	_, err = collection.UpdateOne(m.ctx, filter, update, opts)
	return err
}

func (m *MongoDB) GetSubscriptions() ([]*models.SubscriptionRecord, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	var records []*models.SubscriptionRecord
	collection := connection.Database(m.database).Collection(collectionSubscriptions)
	cursor, err := collection.Find(m.ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	if err = cursor.All(m.ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (m *MongoDB) UpsertSubscription(record *models.SubscriptionRecord) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	filter := bson.D{{Key: "subscription_id", Value: record.Id}}
	update := bson.M{"$set": record}
	opts := options.Update().SetUpsert(true)
	collection := connection.Database(m.database).Collection(collectionSubscriptions)
	_, err = collection.UpdateOne(m.ctx, filter, update, opts)
	return err
}

func (m *MongoDB) GetAlertSubscribers() ([]models.AlertSubscriber, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	var subscribers []models.AlertSubscriber
	collection := connection.Database(m.database).Collection(collectionAlertSubscribers)
	cursor, err := collection.Find(m.ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	if err = cursor.All(m.ctx, &subscribers); err != nil {
		return nil, err
	}
	return subscribers, nil
}

func (m *MongoDB) AddAlertSubscriber(subscriber *models.AlertSubscriber) error {
	existing, _ := m.getAlertSubscriber(subscriber.UserID)
	if existing != nil {
		return nil
	}
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionAlertSubscribers)
	_, err = collection.InsertOne(m.ctx, subscriber)
	return err
}

func (m *MongoDB) getAlertSubscriber(userId int) (*models.AlertSubscriber, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	filter := bson.D{{Key: "user_id", Value: userId}}
	collection := connection.Database(m.database).Collection(collectionAlertSubscribers)
	var subscriber models.AlertSubscriber
	err = collection.FindOne(m.ctx, filter).Decode(&subscriber)
	if err != nil {
		return nil, err
	}
	return &subscriber, nil
}

func (m *MongoDB) DeleteAlertSubscriber(userId int) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	filter := bson.D{{Key: "user_id", Value: userId}}
	collection := connection.Database(m.database).Collection(collectionAlertSubscribers)
	_, err = collection.DeleteOne(m.ctx, filter)
	return err
}
