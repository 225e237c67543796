// Package storage holds the slot backends the entity store and the auth module persist into.
// A slot is a single key holding one serialized value, the way a browser's local storage works.
package storage

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"docspot/internal"
)

// Backend is a flat key -> blob store. A missing key is reported as (nil, false, nil).
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverMongo    = "mongo"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Open builds the backend selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *internal.Config, logger *logrus.Logger) (Backend, error) {
	switch cfg.StoreDriver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		return NewFile(cfg.StorePath)
	case DriverMongo:
		conn := &internal.DatabaseConnection{URI: cfg.MongoURI, DB: cfg.MainDB, Logger: logger}
		if err := conn.Connect(ctx); err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		return NewMongo(conn), nil
	case DriverRedis:
		return NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case DriverPostgres:
		return NewPostgres(ctx, cfg.PostgresURL)
	case DriverMySQL:
		return NewMySQL(ctx, cfg.MySQLDSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
