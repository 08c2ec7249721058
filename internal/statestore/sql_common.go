package statestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pions/internal/domain"
)

// dialect holds the statements that differ between SQL servers.
type dialect struct {
	driverName string
	createSQL  string
	selectSQL  string
	upsertSQL  string
}

// sqlStore is the shared implementation for Postgres and MySQL.
type sqlStore struct {
	dialect dialect
	db      *sql.DB
}

var _ domain.StateStore = (*sqlStore)(nil)

func newSQLStore(ctx context.Context, d dialect, dsn string) (*sqlStore, error) {
	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.driverName, err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(10 * time.Minute)

	s := &sqlStore{dialect: d, db: db}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.driverName, err)
	}
	if _, err := db.ExecContext(ctx, d.createSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return s, nil
}

func (s *sqlStore) LoadState(ctx context.Context) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.dialect.selectSQL, recordKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return []byte(value), nil
}

func (s *sqlStore) SaveState(ctx context.Context, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := s.db.ExecContext(ctx, s.dialect.upsertSQL, recordKey, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}
