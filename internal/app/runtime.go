package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"pions/internal/config"
	"pions/internal/domain"
	"pions/internal/secret"
	"pions/internal/service"
	"pions/internal/statestore"
	"pions/internal/storage"
)

// core is what both the GUI and the standalone MCP server run on: the
// local SQLite file, the selected state store and the restored board.
type core struct {
	cfg      *config.Config
	log      *zap.Logger
	db       *storage.DB
	store    domain.StateStore
	board    *service.BoardService
	settings *storage.SettingsStore
}

func openCore(ctx context.Context, cfg *config.Config, emitter service.EventEmitter, log *zap.Logger) (*core, error) {
	db, err := storage.New(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store, err := statestore.New(ctx, cfg.Store, db, secret.Default(), log.Named("store"))
	if err != nil {
		db.Close()
		return nil, err
	}

	return &core{
		cfg:      cfg,
		log:      log,
		db:       db,
		store:    store,
		board:    service.Restore(ctx, store, emitter, log),
		settings: storage.NewSettingsStore(db),
	}, nil
}

// watchesLocalFile reports whether the board record lives in the local
// SQLite file, the only store the file watcher can observe.
func (c *core) watchesLocalFile() bool {
	d := c.cfg.Store.Driver
	return c.cfg.WatchExternal && (d == "" || d == statestore.DriverSQLite)
}

func (c *core) close() {
	if err := c.store.Close(); err != nil {
		c.log.Warn("close state store", zap.Error(err))
	}
	if err := c.db.Close(); err != nil {
		c.log.Warn("close database", zap.Error(err))
	}
}
