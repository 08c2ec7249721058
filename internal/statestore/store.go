// Package statestore selects where the saved board record lives: the
// local SQLite file by default, or a Postgres, MySQL or MongoDB server.
package statestore

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"pions/internal/config"
	"pions/internal/domain"
	"pions/internal/secret"
	"pions/internal/storage"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMongoDB  = "mongodb"
)

// recordKey identifies the board record in remote stores.
const recordKey = storage.StateKey

// New returns the StateStore for cfg.Driver. The local SQLite store reuses
// db; remote stores open their own connection and verify it.
func New(ctx context.Context, cfg config.StoreConfig, db *storage.DB, secrets secret.SecretStore, log *zap.Logger) (domain.StateStore, error) {
	password, err := lookupPassword(cfg, secrets)
	if err != nil {
		return nil, err
	}

	var store domain.StateStore
	switch cfg.Driver {
	case "", DriverSQLite:
		return storage.NewStateStore(db), nil
	case DriverPostgres:
		store, err = newSQLStore(ctx, postgresDialect, buildPostgresDSN(cfg, password))
	case DriverMySQL:
		store, err = newSQLStore(ctx, mysqlDialect, buildMySQLDSN(cfg, password))
	case DriverMongoDB:
		store, err = newMongoStore(ctx, cfg, password)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
	}
	log.Info("remote state store ready",
		zap.String("driver", cfg.Driver),
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database),
	)
	return store, nil
}

func lookupPassword(cfg config.StoreConfig, secrets secret.SecretStore) (string, error) {
	if cfg.PasswordKey == "" || secrets == nil {
		return "", nil
	}
	v, err := secrets.Get(cfg.PasswordKey)
	if err != nil {
		return "", fmt.Errorf("lookup store password: %w", err)
	}
	return string(v), nil
}
