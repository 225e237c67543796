package storage

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"docspot/internal"
)

const slotsCollection = "slots"

type slotDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// Mongo stores each slot as one document in the "slots" collection.
type Mongo struct {
	conn *internal.DatabaseConnection
	coll *mongo.Collection
}

func NewMongo(conn *internal.DatabaseConnection) *Mongo {
	return &Mongo{conn: conn, coll: conn.MongoDB.Collection(slotsCollection)}
}

func (m *Mongo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var doc slotDocument
	err := m.coll.FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(doc.Value), true, nil
}

func (m *Mongo) Set(ctx context.Context, key string, value []byte) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "value", Value: string(value)},
		{Key: "updatedAt", Value: time.Now()},
	}}}
	_, err := m.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: key}}, update, options.Update().SetUpsert(true))
	return err
}

func (m *Mongo) Remove(ctx context.Context, key string) error {
	_, err := m.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: key}})
	return err
}

func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.conn.Disconnect(ctx)
}
