package internal

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DatabaseConnection struct {
	URI         string
	DB          string
	MongoDB     *mongo.Database
	MongoClient *mongo.Client
	Logger      *logrus.Logger
}

// Connect dials the cluster and pings it before handing out the database.
func (d *DatabaseConnection) Connect(ctx context.Context) error {
	if d.URI == "" {
		return errors.New("mongo uri is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(d.URI))
	if err != nil {
		return err
	}
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}

	d.MongoClient = client
	d.MongoDB = client.Database(d.DB)
	if d.Logger != nil {
		d.Logger.Infof("Successfully connected to database: %s", d.DB)
	}
	return nil
}

func (d *DatabaseConnection) Disconnect(ctx context.Context) error {
	if d.MongoClient == nil {
		return nil
	}
	return d.MongoClient.Disconnect(ctx)
}
